package guide

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads a YAML style guide from path and overlays it on Default.
// Keys missing from the file keep their default values.
func Load(path string) (*StyleGuide, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("reading style guide %s: %w", path, err)
	}
	return fromKoanf(k)
}

// Parse reads a YAML style guide from memory and overlays it on Default.
func Parse(data []byte) (*StyleGuide, error) {
	k := koanf.New(".")
	if err := k.Load(rawBytes(data), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("parsing style guide: %w", err)
	}
	return fromKoanf(k)
}

func fromKoanf(k *koanf.Koanf) (*StyleGuide, error) {
	g := Default()
	if err := k.UnmarshalWithConf("", g, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decoding style guide: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks the guide for values the rules cannot work with and
// compiles its patterns.
func (g *StyleGuide) Validate() error {
	if g.Fonts.Required == "" {
		return fmt.Errorf("fonts.required must not be empty")
	}
	if g.Fonts.BodySize <= 0 {
		return fmt.Errorf("fonts.body_size must be positive, got %v", g.Fonts.BodySize)
	}
	if g.Fonts.BodySizeMin > g.Fonts.BodySizeMax {
		return fmt.Errorf("fonts.body_size_min (%v) exceeds body_size_max (%v)", g.Fonts.BodySizeMin, g.Fonts.BodySizeMax)
	}
	if g.Quotations.CharsPerLine <= 0 {
		return fmt.Errorf("quotations.chars_per_line must be positive, got %d", g.Quotations.CharsPerLine)
	}
	if g.Margins.Tolerance < 0 || g.Spacing.Tolerance < 0 {
		return fmt.Errorf("tolerances must not be negative")
	}
	for rule, sev := range g.Rules.Severity {
		switch sev {
		case "critical", "high", "medium", "low":
		default:
			return fmt.Errorf("rules.severity[%s]: unknown severity %q", rule, sev)
		}
	}
	return g.Compile()
}

// Marshal encodes the guide as YAML.
func (g *StyleGuide) Marshal() ([]byte, error) {
	return yamlv3.Marshal(g)
}

// rawBytes is a koanf.Provider over an in-memory document.
type rawBytes []byte

func (b rawBytes) ReadBytes() ([]byte, error) {
	return b, nil
}

func (b rawBytes) Read() (map[string]interface{}, error) {
	return nil, fmt.Errorf("raw bytes provider does not support Read")
}
