package docx

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tsawler/stylecheck/model"
)

// ResolvedStyle contains the resolved properties of a paragraph style after
// following its basedOn chain down from the document defaults.
type ResolvedStyle struct {
	ID   string
	Name string

	Alignment   string  // left, center, right, both (justify)
	LineSpacing float64 // multiple of single spacing, 0 = auto

	FontName string
	FontSize float64 // points
	Bold     bool
	Italic   bool
}

// StyleResolver resolves styles with inheritance support.
type StyleResolver struct {
	styles      map[string]*styleDefXML
	resolved    map[string]*ResolvedStyle
	defaultFont string
	defaultSize float64
	defaultJc   string
	defaultLine float64
	defaultID   string
}

// NewStyleResolver creates a new style resolver from parsed styles.
func NewStyleResolver(styles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles:      make(map[string]*styleDefXML),
		resolved:    make(map[string]*ResolvedStyle),
		defaultFont: "Calibri", // Word default
		defaultSize: 11,        // Word default (11pt)
		defaultJc:   "left",
	}

	if styles == nil {
		return sr
	}

	for i := range styles.Styles {
		style := &styles.Styles[i]
		sr.styles[style.StyleID] = style
		if style.Type == "paragraph" && style.Default == "1" {
			sr.defaultID = style.StyleID
		}
	}

	rpr := styles.DocDefaults.RPrDefault.RPr
	if rpr.Font.ASCII != "" {
		sr.defaultFont = rpr.Font.ASCII
	}
	if size := parseHalfPoints(rpr.FontSize.Val); size > 0 {
		sr.defaultSize = size
	}

	ppr := styles.DocDefaults.PPrDefault.PPr
	if ppr.Justification.Val != "" {
		sr.defaultJc = ppr.Justification.Val
	}
	if ppr.Spacing != nil {
		sr.defaultLine = parseLineSpacing(ppr.Spacing.Line)
	}

	return sr
}

// Resolve returns the resolved style for the given style ID. An empty ID
// resolves the default paragraph style. Unknown IDs resolve to the
// document defaults.
func (sr *StyleResolver) Resolve(styleID string) *ResolvedStyle {
	if styleID == "" {
		styleID = sr.defaultID
	}
	if styleID == "" {
		return sr.defaultStyle()
	}

	if resolved, ok := sr.resolved[styleID]; ok {
		return resolved
	}

	resolved := sr.defaultStyle()
	resolved.ID = styleID

	if def, ok := sr.styles[styleID]; ok {
		resolved.Name = def.Name.Val
		for _, sid := range sr.buildInheritanceChain(styleID) {
			if d, ok := sr.styles[sid]; ok {
				sr.applyStyleDef(resolved, d)
			}
		}
	}

	sr.resolved[styleID] = resolved
	return resolved
}

// defaultStyle returns a style with default values.
func (sr *StyleResolver) defaultStyle() *ResolvedStyle {
	return &ResolvedStyle{
		FontName:    sr.defaultFont,
		FontSize:    sr.defaultSize,
		Alignment:   sr.defaultJc,
		LineSpacing: sr.defaultLine,
	}
}

// buildInheritanceChain returns style IDs from base to derived.
func (sr *StyleResolver) buildInheritanceChain(styleID string) []string {
	var chain []string
	visited := make(map[string]bool)

	current := styleID
	for current != "" && !visited[current] {
		visited[current] = true
		chain = append([]string{current}, chain...) // Prepend

		def, ok := sr.styles[current]
		if !ok {
			break
		}
		current = def.BasedOn.Val
	}

	return chain
}

// applyStyleDef applies a style definition's properties to a resolved style.
func (sr *StyleResolver) applyStyleDef(resolved *ResolvedStyle, def *styleDefXML) {
	ppr := def.PPr
	if ppr.Justification.Val != "" {
		resolved.Alignment = ppr.Justification.Val
	}
	if ppr.Spacing != nil {
		if v := parseLineSpacing(ppr.Spacing.Line); v > 0 {
			resolved.LineSpacing = v
		}
	}

	rpr := def.RPr
	if rpr.Font.ASCII != "" {
		resolved.FontName = rpr.Font.ASCII
	}
	if size := parseHalfPoints(rpr.FontSize.Val); size > 0 {
		resolved.FontSize = size
	}
	if rpr.Bold.XMLName.Local != "" {
		resolved.Bold = rpr.Bold.on()
	}
	if rpr.Italic.XMLName.Local != "" {
		resolved.Italic = rpr.Italic.on()
	}
}

// formatParagraph is the resolution applied by resolveParagraphFormatting.
var formatParagraph = paragraphFormatting

// resolveParagraphFormatting resolves the formatting of one paragraph. A
// panic while resolving yields the zero value and an error.
func resolveParagraphFormatting(p paragraphXML) (f model.ParagraphFormatting, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			f = model.ParagraphFormatting{}
			err = fmt.Errorf("resolving paragraph formatting: %v", rec)
		}
	}()
	return formatParagraph(p), nil
}

// paragraphFormatting reads the formatting of one paragraph from its own
// properties and runs. Style inheritance is not applied: a run without
// explicit font or size is recorded as inherited.
func paragraphFormatting(p paragraphXML) (f model.ParagraphFormatting) {
	ppr := p.Properties
	f.Alignment = ppr.Justification.Val
	if ind := ppr.Indent; ind != nil {
		f.Indentation = &model.Indentation{
			Left:      ind.Left,
			Right:     ind.Right,
			FirstLine: ind.FirstLine,
			Hanging:   ind.Hanging,
		}
	}
	if sp := ppr.Spacing; sp != nil {
		f.Spacing = &model.Spacing{
			Before:   sp.Before,
			After:    sp.After,
			Line:     sp.Line,
			LineRule: sp.LineRule,
		}
	}

	seenFonts := make(map[string]bool)
	seenSizes := make(map[float64]bool)
	for _, run := range p.Runs {
		if !run.textBearing() {
			continue
		}
		rpr := run.Properties

		if name := rpr.Font.first(); name != "" {
			if !seenFonts[name] {
				seenFonts[name] = true
				f.Fonts = append(f.Fonts, model.ExplicitFont(name))
			}
		} else {
			f.Fonts = append(f.Fonts, model.InheritedFont())
		}

		if size := parseHalfPoints(rpr.FontSize.Val); size > 0 {
			if !seenSizes[size] {
				seenSizes[size] = true
				f.FontSizes = append(f.FontSizes, model.ExplicitSize(size))
			}
		} else {
			f.FontSizes = append(f.FontSizes, model.InheritedSize())
		}

		if rpr.Bold.on() {
			f.Bold = true
		}
		if rpr.Italic.on() {
			f.Italic = true
		}
	}

	return f
}

// parseHalfPoints parses a size in half-points to points.
// Word uses half-points for font sizes (e.g., "24" = 12pt).
func parseHalfPoints(s string) float64 {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val / 2
}

// parseLineSpacing converts a w:spacing line value (240ths of a line) to a
// multiple of single spacing.
func parseLineSpacing(s string) float64 {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val / 240
}

// twipsToInches converts a twips value to inches rounded to 0.01.
// Unparseable input yields 0.
func twipsToInches(s string) float64 {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return math.Round(val/1440*100) / 100
}
