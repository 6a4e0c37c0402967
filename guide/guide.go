package guide

import (
	"fmt"
	"regexp"
	"sync"
)

// Version is the revision of the built-in guide.
const Version = "2024.1"

// StyleGuide is a versioned set of style rules.
type StyleGuide struct {
	Name       string         `koanf:"name" yaml:"name"`
	Version    string         `koanf:"version" yaml:"version"`
	Fonts      FontRules      `koanf:"fonts" yaml:"fonts"`
	Margins    MarginRules    `koanf:"margins" yaml:"margins"`
	Spacing    SpacingRules   `koanf:"spacing" yaml:"spacing"`
	Footnotes  FootnoteRules  `koanf:"footnotes" yaml:"footnotes"`
	CoverPage  CoverPageRules `koanf:"cover_page" yaml:"cover_page"`
	Quotations QuotationRules `koanf:"quotations" yaml:"quotations"`
	Citations  CitationRules  `koanf:"citations" yaml:"citations"`
	Structure  StructureRules `koanf:"structure" yaml:"structure"`
	Headings   HeadingRules   `koanf:"headings" yaml:"headings"`
	Rules      RuleOverrides  `koanf:"rules" yaml:"rules"`

	compileOnce sync.Once
	compileErr  error
}

// FontRules configures the font and size checks.
type FontRules struct {
	Required string `koanf:"required" yaml:"required"`
	// BodySize is the required main text size in points.
	BodySize float64 `koanf:"body_size" yaml:"body_size"`
	// BodySizeMin and BodySizeMax bound the sizes considered body text.
	BodySizeMin float64 `koanf:"body_size_min" yaml:"body_size_min"`
	BodySizeMax float64 `koanf:"body_size_max" yaml:"body_size_max"`
	// SecondarySize is tolerated in body paragraphs (footnote-sized text).
	SecondarySize float64 `koanf:"secondary_size" yaml:"secondary_size"`
	// MaxDistinct is the number of fonts allowed before a consistency warning.
	MaxDistinct int `koanf:"max_distinct" yaml:"max_distinct"`
	// Allowed fonts are never reported in body paragraphs.
	Allowed []string `koanf:"allowed" yaml:"allowed"`
	// FootnoteAllowed fonts are never reported in footnotes.
	FootnoteAllowed []string `koanf:"footnote_allowed" yaml:"footnote_allowed"`
}

// Margin is a set of page margins in inches.
type Margin struct {
	Top    float64 `koanf:"top" yaml:"top"`
	Bottom float64 `koanf:"bottom" yaml:"bottom"`
	Left   float64 `koanf:"left" yaml:"left"`
	Right  float64 `koanf:"right" yaml:"right"`
}

// MarginRules configures the required margins per document type.
type MarginRules struct {
	Assignment   Margin `koanf:"assignment" yaml:"assignment"`
	Dissertation Margin `koanf:"dissertation" yaml:"dissertation"`
	// Tolerance is inclusive: a difference equal to it passes.
	Tolerance float64 `koanf:"tolerance" yaml:"tolerance"`
}

// SpacingRules configures the line spacing check.
type SpacingRules struct {
	Line      float64 `koanf:"line" yaml:"line"`
	Tolerance float64 `koanf:"tolerance" yaml:"tolerance"`
}

// FootnoteRules configures footnote formatting checks.
type FootnoteRules struct {
	Size float64 `koanf:"size" yaml:"size"`
	// MaxLength is the character count above which a footnote is flagged.
	MaxLength int `koanf:"max_length" yaml:"max_length"`
}

// CoverPageRules configures the cover-page heuristic used to exempt
// centred cover content from the alignment check.
type CoverPageRules struct {
	Keywords []string `koanf:"keywords" yaml:"keywords"`
	// Paragraphs with a 0-based position below MaxParagraph and text
	// shorter than MaxLength are treated as cover content.
	MaxParagraph int `koanf:"max_paragraph" yaml:"max_paragraph"`
	MaxLength    int `koanf:"max_length" yaml:"max_length"`
}

// QuotationRules configures quotation line estimation.
type QuotationRules struct {
	CharsPerLine int `koanf:"chars_per_line" yaml:"chars_per_line"`
	// MaxInlineLines is the longest quotation allowed without block format.
	MaxInlineLines int `koanf:"max_inline_lines" yaml:"max_inline_lines"`
	// ContextWindow is the number of characters searched on each side of a
	// quotation for a citation marker.
	ContextWindow int `koanf:"context_window" yaml:"context_window"`
}

// Abbreviation is a citation abbreviation the guide prohibits.
type Abbreviation struct {
	Term        string `koanf:"term" yaml:"term"`
	Full        string `koanf:"full" yaml:"full"`
	Replacement string `koanf:"replacement" yaml:"replacement"`
}

// CitationRules configures the citation checks.
type CitationRules struct {
	Prohibited []Abbreviation `koanf:"prohibited" yaml:"prohibited"`
	// InformalSources are keywords marking a web source as informal.
	InformalSources []string `koanf:"informal_sources" yaml:"informal_sources"`
	// AccessMarker must accompany URLs of informal sources.
	AccessMarker string `koanf:"access_marker" yaml:"access_marker"`
	// ScriptureBooks are book abbreviations recognised in references.
	ScriptureBooks []string `koanf:"scripture_books" yaml:"scripture_books"`
	// BibliographyWords is the word count above which a bibliography is
	// expected.
	BibliographyWords int `koanf:"bibliography_words" yaml:"bibliography_words"`
}

// CoverElement is a required assignment cover-page element.
type CoverElement struct {
	Name    string `koanf:"name" yaml:"name"`
	Pattern string `koanf:"pattern" yaml:"pattern"`

	re *regexp.Regexp
}

// StructureRules configures document organisation checks.
type StructureRules struct {
	CoverElements []CoverElement `koanf:"cover_elements" yaml:"cover_elements"`
	// HonestyDeclaration is the pattern for the academic honesty sentence.
	HonestyDeclaration string `koanf:"honesty_declaration" yaml:"honesty_declaration"`
	// HonestyText is the full declaration shown in the issue.
	HonestyText       string `koanf:"honesty_text" yaml:"honesty_text"`
	Signature         string `koanf:"signature" yaml:"signature"`
	DeclarationPage   string `koanf:"declaration_page" yaml:"declaration_page"`
	ChapterKeywords   string `koanf:"chapter_keywords" yaml:"chapter_keywords"`
	MinChapters       int    `koanf:"min_chapters" yaml:"min_chapters"`
	BibliographyWords int    `koanf:"bibliography_words" yaml:"bibliography_words"`
	// IntroductionOffset is the character offset past which an
	// introduction is considered late.
	IntroductionOffset int `koanf:"introduction_offset" yaml:"introduction_offset"`
	// BibliographyTail is the maximum distance of the bibliography keyword
	// from the end of the text.
	BibliographyTail int `koanf:"bibliography_tail" yaml:"bibliography_tail"`

	honesty     *regexp.Regexp
	signature   *regexp.Regexp
	declaration *regexp.Regexp
	chapter     *regexp.Regexp
}

// HeadingRules configures heading hierarchy checks.
type HeadingRules struct {
	MaxDepth int `koanf:"max_depth" yaml:"max_depth"`
}

// RuleOverrides lets a deployment disable or re-grade rules by identifier.
type RuleOverrides struct {
	Disabled []string          `koanf:"disabled" yaml:"disabled"`
	Severity map[string]string `koanf:"severity" yaml:"severity"`
}

// Default returns the built-in SAIACS style guide.
func Default() *StyleGuide {
	return &StyleGuide{
		Name:    "SAIACS Style Guide",
		Version: Version,
		Fonts: FontRules{
			Required:        "Times New Roman",
			BodySize:        12,
			BodySizeMin:     10,
			BodySizeMax:     13,
			SecondarySize:   10,
			MaxDistinct:     2,
			Allowed:         []string{"Symbol", "Courier New"},
			FootnoteAllowed: []string{"Symbol"},
		},
		Margins: MarginRules{
			Assignment:   Margin{Top: 1, Bottom: 1, Left: 1, Right: 1},
			Dissertation: Margin{Top: 1, Bottom: 1, Left: 1.5, Right: 1},
			Tolerance:    0.1,
		},
		Spacing: SpacingRules{Line: 1.5, Tolerance: 0.2},
		Footnotes: FootnoteRules{
			Size:      10,
			MaxLength: 500,
		},
		CoverPage: CoverPageRules{
			Keywords: []string{
				"south asia institute",
				"submitted to",
				"partial fulfillment",
				"due date",
				"expected time",
				"actual time",
				"expected word",
				"actual word",
				"academic honesty",
				"signature:",
				"admission no",
			},
			MaxParagraph: 30,
			MaxLength:    100,
		},
		Quotations: QuotationRules{
			CharsPerLine:   80,
			MaxInlineLines: 4,
			ContextWindow:  50,
		},
		Citations: CitationRules{
			Prohibited: []Abbreviation{
				{Term: "ibid", Full: "ibidem", Replacement: "abbreviated footnote style"},
				{Term: "et al", Full: "et alii", Replacement: `"and others"`},
				{Term: "op. cit.", Full: "opere citato", Replacement: "full abbreviated reference"},
				{Term: "loc. cit.", Full: "loco citato", Replacement: "full abbreviated reference"},
			},
			InformalSources: []string{"blog", "wordpress", "medium", "personal"},
			AccessMarker:    "accessed",
			ScriptureBooks: []string{
				"Gen", "Exod", "Lev", "Num", "Deut", "Josh", "Judg", "Ruth", "Sam", "Kings",
				"Chron", "Ezra", "Neh", "Esther", "Job", "Ps", "Prov", "Eccles", "Song", "Isa",
				"Jer", "Lam", "Ezek", "Dan", "Hosea", "Joel", "Amos", "Obad", "Jon", "Mic",
				"Nah", "Hab", "Zeph", "Hag", "Zech", "Mal", "Matt", "Mark", "Luke", "John",
				"Acts", "Rom", "Cor", "Gal", "Eph", "Phil", "Col", "Thess", "Tim", "Titus",
				"Philem", "Heb", "James", "Pet", "Jude", "Rev",
			},
			BibliographyWords: 2000,
		},
		Structure: StructureRules{
			CoverElements: []CoverElement{
				{Name: "SAIACS header", Pattern: `(?i)SOUTH ASIA INSTITUTE OF ADVANCED CHRISTIAN STUDIES`},
				{Name: `"Submitted to"`, Pattern: `(?i)submitted\s+to`},
				{Name: `"In Partial Fulfillment"`, Pattern: `(?i)partial\s+fulfillment`},
				{Name: "Due Date", Pattern: `(?i)due\s+date`},
				{Name: "Expected Time/Word Count", Pattern: `(?i)expected\s+(time|word)`},
				{Name: "Actual Time/Word Count", Pattern: `(?i)actual\s+(time|word)`},
			},
			HonestyDeclaration: `(?i)(I\s+)?declare\s+that\s+this\s+assignment\s+is\s+(my|our)\s+own\s+unaided\s+work`,
			HonestyText: `Declaration: "I declare that this assignment is my own unaided work. ` +
				`I have not copied it from any person, article, book, website or other form of storage. ` +
				`Every idea or phrase that is not my own has been duly acknowledged."`,
			Signature:          `(?i)signature\s*:`,
			DeclarationPage:    `(?i)(declaration|hereby declare)`,
			ChapterKeywords:    `(?i)chapter|introduction|conclusion`,
			MinChapters:        3,
			BibliographyWords:  1500,
			IntroductionOffset: 1000,
			BibliographyTail:   1000,
		},
		Headings: HeadingRules{MaxDepth: 4},
		Rules:    RuleOverrides{Severity: map[string]string{}},
	}
}

// MarginsFor returns the required margins for a document type name.
func (g *StyleGuide) MarginsFor(documentType string) Margin {
	if documentType == "dissertation" {
		return g.Margins.Dissertation
	}
	return g.Margins.Assignment
}

// Compile compiles every pattern in the guide. It is safe to call more than
// once and from multiple goroutines; the first result is cached.
func (g *StyleGuide) Compile() error {
	g.compileOnce.Do(func() {
		g.compileErr = g.compile()
	})
	return g.compileErr
}

func (g *StyleGuide) compile() error {
	s := &g.Structure
	for i := range s.CoverElements {
		re, err := regexp.Compile(s.CoverElements[i].Pattern)
		if err != nil {
			return fmt.Errorf("cover element %q: %w", s.CoverElements[i].Name, err)
		}
		s.CoverElements[i].re = re
	}

	patterns := []struct {
		name string
		expr string
		dst  **regexp.Regexp
	}{
		{"honesty_declaration", s.HonestyDeclaration, &s.honesty},
		{"signature", s.Signature, &s.signature},
		{"declaration_page", s.DeclarationPage, &s.declaration},
		{"chapter_keywords", s.ChapterKeywords, &s.chapter},
	}
	for _, p := range patterns {
		re, err := regexp.Compile(p.expr)
		if err != nil {
			return fmt.Errorf("structure.%s: %w", p.name, err)
		}
		*p.dst = re
	}
	return nil
}

// Match reports whether the element's pattern occurs in text.
// Compile must have succeeded first.
func (e CoverElement) Match(text string) bool {
	return e.re != nil && e.re.MatchString(text)
}

// HasHonestyDeclaration reports whether text contains the declaration.
func (s *StructureRules) HasHonestyDeclaration(text string) bool {
	return s.honesty != nil && s.honesty.MatchString(text)
}

// HasSignature reports whether text contains a signature line.
func (s *StructureRules) HasSignature(text string) bool {
	return s.signature != nil && s.signature.MatchString(text)
}

// HasDeclarationPage reports whether text contains a declaration page.
func (s *StructureRules) HasDeclarationPage(text string) bool {
	return s.declaration != nil && s.declaration.MatchString(text)
}

// IsChapterTitle reports whether a heading text names a chapter.
func (s *StructureRules) IsChapterTitle(text string) bool {
	return s.chapter != nil && s.chapter.MatchString(text)
}

// IsDisabled reports whether a rule identifier has been switched off.
func (o RuleOverrides) IsDisabled(rule string) bool {
	for _, d := range o.Disabled {
		if d == rule {
			return true
		}
	}
	return false
}
