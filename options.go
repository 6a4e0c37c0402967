package stylecheck

import (
	"log/slog"

	"github.com/tsawler/stylecheck/guide"
	"github.com/tsawler/stylecheck/model"
	"github.com/tsawler/stylecheck/rules"
	"github.com/tsawler/stylecheck/validate"
)

// CheckOptions holds configuration for a check.
type CheckOptions struct {
	docType  model.DocumentType
	guide    *guide.StyleGuide
	registry *rules.Registry
	logger   *slog.Logger
	recorder validate.Recorder
}

// defaultOptions returns the default check options: an assignment checked
// against the built-in guide with every rule enabled.
func defaultOptions() CheckOptions {
	return CheckOptions{
		docType: model.Assignment,
		logger:  slog.New(slog.DiscardHandler),
	}
}

// clone creates a copy of CheckOptions. The guide, registry, logger and
// recorder are shared; none of them is modified by a check.
func (o CheckOptions) clone() CheckOptions {
	return CheckOptions{
		docType:  o.docType,
		guide:    o.guide,
		registry: o.registry,
		logger:   o.logger,
		recorder: o.recorder,
	}
}

func (o CheckOptions) styleGuide() *guide.StyleGuide {
	if o.guide == nil {
		return guide.Default()
	}
	return o.guide
}
