// Package guide defines the style guide configuration consumed by the rule
// modules.
//
// Every constant a rule depends on (required font and sizes, margin tables,
// tolerances, thresholds, keyword lists) lives in a [StyleGuide] value so a
// revised guide can be deployed without code changes. [Default] returns the
// built-in SAIACS guide; [Load] overlays a YAML file on top of it:
//
//	g, err := guide.Load("saiacs-2026.yaml")
//	if err != nil {
//	    // handle error
//	}
package guide
