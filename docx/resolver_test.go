package docx

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseStylesXML(t *testing.T, content string) *stylesXML {
	t.Helper()
	var s stylesXML
	require.NoError(t, xml.Unmarshal([]byte(`<w:styles `+wNamespace+`>`+content+`</w:styles>`), &s))
	return &s
}

func TestNewStyleResolver_Nil(t *testing.T) {
	sr := NewStyleResolver(nil)

	rs := sr.Resolve("")
	assert.Equal(t, "Calibri", rs.FontName)
	assert.Equal(t, 11.0, rs.FontSize)
	assert.Equal(t, "left", rs.Alignment)

	unknown := sr.Resolve("Missing")
	assert.Equal(t, "Missing", unknown.ID)
	assert.Equal(t, "Calibri", unknown.FontName)
}

func TestNewStyleResolver_DocDefaults(t *testing.T) {
	sr := NewStyleResolver(parseStylesXML(t, `<w:docDefaults><w:rPrDefault><w:rPr>
<w:rFonts w:ascii="Times New Roman" w:hAnsi="Times New Roman"/><w:sz w:val="24"/>
</w:rPr></w:rPrDefault></w:docDefaults>`))

	rs := sr.Resolve("")
	assert.Equal(t, "Times New Roman", rs.FontName)
	assert.Equal(t, 12.0, rs.FontSize)
	assert.Equal(t, "left", rs.Alignment)
	assert.Zero(t, rs.LineSpacing)
}

func TestNewStyleResolver_ParagraphDefaults(t *testing.T) {
	sr := NewStyleResolver(parseStylesXML(t, `<w:docDefaults><w:pPrDefault><w:pPr>
<w:jc w:val="both"/><w:spacing w:after="160" w:line="360" w:lineRule="auto"/>
</w:pPr></w:pPrDefault></w:docDefaults>
<w:style w:type="paragraph" w:styleId="Title"><w:pPr><w:jc w:val="center"/></w:pPr></w:style>`))

	rs := sr.Resolve("")
	assert.Equal(t, "both", rs.Alignment)
	assert.Equal(t, 1.5, rs.LineSpacing)

	title := sr.Resolve("Title")
	assert.Equal(t, "center", title.Alignment)
	assert.Equal(t, 1.5, title.LineSpacing, "line spacing inherited from the defaults")
}

func TestStyleResolver_Inheritance(t *testing.T) {
	sr := NewStyleResolver(parseStylesXML(t, `
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/>
  <w:pPr><w:spacing w:line="480" w:lineRule="auto"/></w:pPr>
  <w:rPr><w:rFonts w:ascii="Times New Roman"/><w:sz w:val="24"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/>
  <w:pPr><w:jc w:val="center"/></w:pPr>
  <w:rPr><w:b/><w:sz w:val="28"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading1Plain"><w:basedOn w:val="Heading1"/>
  <w:rPr><w:b w:val="0"/><w:i/></w:rPr></w:style>`))

	h1 := sr.Resolve("Heading1")
	assert.Equal(t, "heading 1", h1.Name)
	assert.Equal(t, "Times New Roman", h1.FontName, "font inherited from Normal")
	assert.Equal(t, 14.0, h1.FontSize)
	assert.Equal(t, "center", h1.Alignment)
	assert.Equal(t, 2.0, h1.LineSpacing)
	assert.True(t, h1.Bold)

	plain := sr.Resolve("Heading1Plain")
	assert.False(t, plain.Bold, "explicit off overrides the base style")
	assert.True(t, plain.Italic)
	assert.Equal(t, 14.0, plain.FontSize)

	assert.Same(t, h1, sr.Resolve("Heading1"), "resolved styles are cached")
	assert.Equal(t, "Normal", sr.Resolve("").ID)
}

func TestStyleResolver_BasedOnCycle(t *testing.T) {
	sr := NewStyleResolver(parseStylesXML(t, `
<w:style w:type="paragraph" w:styleId="A"><w:basedOn w:val="B"/><w:rPr><w:sz w:val="20"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="B"><w:basedOn w:val="A"/><w:rPr><w:rFonts w:ascii="Arial"/></w:rPr></w:style>`))

	assert.Equal(t, []string{"B", "A"}, sr.buildInheritanceChain("A"))

	rs := sr.Resolve("A")
	assert.Equal(t, "Arial", rs.FontName)
	assert.Equal(t, 10.0, rs.FontSize)
}

func TestParseHalfPoints(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"24", 12},
		{"21", 10.5},
		{"", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseHalfPoints(tt.in), "input %q", tt.in)
	}
}

func TestParseLineSpacing(t *testing.T) {
	assert.Equal(t, 1.0, parseLineSpacing("240"))
	assert.Equal(t, 1.5, parseLineSpacing("360"))
	assert.Equal(t, 0.0, parseLineSpacing(""))
}

func TestTwipsToInches(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1440", 1},
		{"2160", 1.5},
		{"1584", 1.1},
		{"1728", 1.2},
		{"1000", 0.69},
		{"", 0},
		{"x", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, twipsToInches(tt.in), "input %q", tt.in)
	}
}
