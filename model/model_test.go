package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// DocumentType Tests
// ============================================================================

func TestParseDocumentType(t *testing.T) {
	tests := []struct {
		in   string
		want DocumentType
	}{
		{"assignment", Assignment},
		{"dissertation", Dissertation},
		{" Dissertation ", Dissertation},
		{"", Assignment},
		{"thesis", Assignment},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDocumentType(tt.in))
		})
	}
}

// ============================================================================
// FontValue / SizeValue Tests
// ============================================================================

func TestFontValue(t *testing.T) {
	explicit := ExplicitFont("Arial")
	name, ok := explicit.Name()
	assert.True(t, ok)
	assert.Equal(t, "Arial", name)
	assert.False(t, explicit.IsInherited())
	assert.Equal(t, "Arial", explicit.String())

	inherited := InheritedFont()
	_, ok = inherited.Name()
	assert.False(t, ok)
	assert.True(t, inherited.IsInherited())
	assert.Equal(t, InheritedFontSentinel, inherited.String())
}

func TestSizeValue(t *testing.T) {
	pt, ok := ExplicitSize(12).Points()
	assert.True(t, ok)
	assert.Equal(t, 12.0, pt)
	assert.Equal(t, "10.5", ExplicitSize(10.5).String())
	assert.Equal(t, "0", InheritedSize().String())
}

func TestParagraphFormatting_JSON(t *testing.T) {
	f := ParagraphFormatting{
		Fonts:     []FontValue{ExplicitFont("Arial"), InheritedFont()},
		FontSizes: []SizeValue{ExplicitSize(12), InheritedSize()},
	}

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fonts":["Arial",null],"fontSizes":[12,null],"bold":false,"italic":false}`, string(data))

	var back ParagraphFormatting
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, f, back)
}

func TestParagraphFormatting_Explicit(t *testing.T) {
	f := ParagraphFormatting{
		Fonts:     []FontValue{InheritedFont(), ExplicitFont("Arial"), ExplicitFont("Times New Roman")},
		FontSizes: []SizeValue{InheritedSize(), ExplicitSize(14)},
	}

	assert.Equal(t, []string{"Arial", "Times New Roman"}, f.ExplicitFonts())
	assert.Equal(t, []float64{14}, f.ExplicitSizes())
}

func TestIndentation_HasFirstLine(t *testing.T) {
	var nilInd *Indentation
	assert.False(t, nilInd.HasFirstLine())
	assert.False(t, (&Indentation{Left: "720"}).HasFirstLine())
	assert.False(t, (&Indentation{FirstLine: "0"}).HasFirstLine())
	assert.True(t, (&Indentation{FirstLine: "720"}).HasFirstLine())
}

// ============================================================================
// Helpers
// ============================================================================

func TestMargins_Side(t *testing.T) {
	m := Margins{Top: 1, Bottom: 1.1, Left: 1.5, Right: 0.9}

	left, err := m.Side("left")
	require.NoError(t, err)
	assert.Equal(t, 1.5, left)

	_, err = m.Side("gutter")
	assert.Error(t, err)
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", Snippet("  short  ", 80))
	assert.Equal(t, "abc...", Snippet("abcdef", 3))
}

func TestFormatting_HasFont(t *testing.T) {
	f := Formatting{FontsUsed: []string{"Arial", "Times New Roman"}}
	assert.True(t, f.HasFont("Times New Roman"))
	assert.False(t, f.HasFont("Calibri"))
}

// ============================================================================
// Clone Tests
// ============================================================================

func TestDocument_Clone(t *testing.T) {
	orig := &Document{
		Content: Content{
			Text: "Intro",
			Paragraphs: []Paragraph{{
				Index: 1,
				Text:  "Intro",
				Formatting: ParagraphFormatting{
					Indentation: &Indentation{FirstLine: "720"},
					Spacing:     &Spacing{Line: "480"},
					Fonts:       []FontValue{ExplicitFont("Arial")},
					FontSizes:   []SizeValue{ExplicitSize(12)},
				},
			}},
			Footnotes:  []Footnote{{ID: "1", Text: "Note", Formatting: ParagraphFormatting{Fonts: []FontValue{InheritedFont()}}}},
			Headings:   []Heading{{Index: 1, Text: "Intro", Level: 1}},
			Quotations: []Quotation{{Text: "q"}},
		},
		Formatting: Formatting{
			FontsUsed:          []string{"Arial"},
			FontSizesUsed:      []float64{12},
			Margins:            &Margins{Top: 1},
			LineSpacingSamples: []float64{2},
		},
	}

	c := orig.Clone()
	require.Equal(t, orig, c)

	c.Content.Paragraphs[0].Text = "changed"
	c.Content.Paragraphs[0].Formatting.Indentation.FirstLine = "0"
	c.Content.Paragraphs[0].Formatting.Spacing.Line = "240"
	c.Content.Paragraphs[0].Formatting.Fonts[0] = ExplicitFont("Times New Roman")
	c.Content.Footnotes[0].Formatting.Fonts[0] = ExplicitFont("Arial")
	c.Content.Headings[0].Level = 3
	c.Content.Quotations[0].Text = "x"
	c.Formatting.FontsUsed[0] = "Symbol"
	c.Formatting.Margins.Top = 2
	c.Formatting.LineSpacingSamples[0] = 1

	assert.Equal(t, "Intro", orig.Content.Paragraphs[0].Text)
	assert.Equal(t, "720", orig.Content.Paragraphs[0].Formatting.Indentation.FirstLine)
	assert.Equal(t, "480", orig.Content.Paragraphs[0].Formatting.Spacing.Line)
	assert.Equal(t, []string{"Arial"}, orig.Content.Paragraphs[0].Formatting.ExplicitFonts())
	assert.True(t, orig.Content.Footnotes[0].Formatting.Fonts[0].IsInherited())
	assert.Equal(t, 1, orig.Content.Headings[0].Level)
	assert.Equal(t, "q", orig.Content.Quotations[0].Text)
	assert.Equal(t, []string{"Arial"}, orig.Formatting.FontsUsed)
	assert.Equal(t, 1.0, orig.Formatting.Margins.Top)
	assert.Equal(t, []float64{2}, orig.Formatting.LineSpacingSamples)
}

func TestDocument_CloneNil(t *testing.T) {
	var d *Document
	assert.Nil(t, d.Clone())

	empty := (&Document{}).Clone()
	assert.Nil(t, empty.Content.Paragraphs)
	assert.Nil(t, empty.Formatting.Margins)
}
