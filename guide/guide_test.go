package guide

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	g := Default()
	require.NoError(t, g.Validate())

	assert.Equal(t, "Times New Roman", g.Fonts.Required)
	assert.Equal(t, 12.0, g.Fonts.BodySize)
	assert.Equal(t, 1.5, g.MarginsFor("dissertation").Left)
	assert.Equal(t, 1.0, g.MarginsFor("assignment").Left)
	assert.Equal(t, 1.0, g.MarginsFor("anything").Left)
	assert.Len(t, g.Structure.CoverElements, 6)
}

func TestDefault_Independent(t *testing.T) {
	a := Default()
	b := Default()
	a.Fonts.Allowed[0] = "Wingdings"
	assert.Equal(t, "Symbol", b.Fonts.Allowed[0])
}

func TestStructurePredicates(t *testing.T) {
	g := Default()
	require.NoError(t, g.Compile())
	s := &g.Structure

	assert.True(t, s.HasHonestyDeclaration("I declare that this assignment is my own unaided work."))
	assert.True(t, s.HasHonestyDeclaration("We DECLARE that this assignment is our own unaided work"))
	assert.False(t, s.HasHonestyDeclaration("This assignment is my own work."))

	assert.True(t, s.HasSignature("Signature : ______"))
	assert.False(t, s.HasSignature("signed by the author"))

	assert.True(t, s.HasDeclarationPage("I hereby declare"))
	assert.True(t, s.IsChapterTitle("1. INTRODUCTION"))
	assert.False(t, s.IsChapterTitle("1. METHOD"))

	for _, el := range s.CoverElements {
		assert.False(t, el.Match("nothing relevant here"), el.Name)
	}
	assert.True(t, s.CoverElements[1].Match("Submitted   to Dr. Smith"))
}

func TestCoverElement_Uncompiled(t *testing.T) {
	el := CoverElement{Name: "x", Pattern: "x"}
	assert.False(t, el.Match("x"))
}

func TestParse_OverlaysDefaults(t *testing.T) {
	g, err := Parse([]byte(`
name: Seminary Guide
fonts:
  required: Garamond
margins:
  tolerance: 0.05
rules:
  disabled:
    - Text Alignment
  severity:
    Font Consistency: low
`))
	require.NoError(t, err)

	assert.Equal(t, "Seminary Guide", g.Name)
	assert.Equal(t, "Garamond", g.Fonts.Required)
	assert.Equal(t, 12.0, g.Fonts.BodySize, "unset keys keep defaults")
	assert.Equal(t, 0.05, g.Margins.Tolerance)
	assert.True(t, g.Rules.IsDisabled("Text Alignment"))
	assert.False(t, g.Rules.IsDisabled("Font Style"))
	assert.Equal(t, "low", g.Rules.Severity["Font Consistency"])
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty font", "fonts:\n  required: \"\"\n"},
		{"bad severity", "rules:\n  severity:\n    Font Style: urgent\n"},
		{"bad pattern", "structure:\n  signature: \"(\"\n"},
		{"size range", "fonts:\n  body_size_min: 14\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.yaml")
	require.NoError(t, os.WriteFile(path, []byte("spacing:\n  line: 2\n"), 0o644))

	g, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, g.Spacing.Line)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMarshal_RoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "Times New Roman")

	g, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default().Citations.ScriptureBooks, g.Citations.ScriptureBooks)
}
