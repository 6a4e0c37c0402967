package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/stylecheck/model"
)

func headingDocument(headings ...model.Heading) *model.Document {
	doc := &model.Document{}
	doc.Content.Headings = headings
	return doc
}

func TestHeadings_LevelOneFormat(t *testing.T) {
	g := testGuide(t)

	good := headingDocument(model.Heading{Index: 1, Text: "1. INTRODUCTION", Level: 1})
	assert.Empty(t, Headings.Check(good, model.Assignment, g))

	bad := headingDocument(model.Heading{Index: 3, Text: "Introduction", Level: 1})
	issues := Headings.Check(bad, model.Assignment, g)
	require.Len(t, issues, 2)

	assert.Equal(t, "Level 1 Heading Format", issues[0].Rule)
	assert.Equal(t, SeverityHigh, issues[0].Severity)
	assert.Equal(t, "INTRODUCTION", issues[0].Expected)
	assert.Equal(t, CategoryFormatting, issues[0].Category)

	assert.Equal(t, "Level 1 Heading Format", issues[1].Rule)
	assert.Equal(t, SeverityMedium, issues[1].Severity)
	assert.Equal(t, 3, issues[1].Location.Paragraph)
}

func TestHeadings_LevelFormats(t *testing.T) {
	tests := []struct {
		heading  model.Heading
		severity Severity
	}{
		{model.Heading{Index: 1, Text: "1.1 Scope", Level: 2}, ""},
		{model.Heading{Index: 1, Text: "Scope", Level: 2}, SeverityMedium},
		{model.Heading{Index: 1, Text: "1.1.1 Detail", Level: 3}, ""},
		{model.Heading{Index: 1, Text: "1.1 Detail", Level: 3}, SeverityMedium},
		{model.Heading{Index: 1, Text: "1.1.1.1 Point", Level: 4}, ""},
		{model.Heading{Index: 1, Text: "Point", Level: 4}, SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.heading.Text, func(t *testing.T) {
			issues := Headings.Check(headingDocument(tt.heading), model.Assignment, testGuide(t))
			if tt.severity == "" {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			assert.Equal(t, tt.severity, issues[0].Severity)
		})
	}
}

func TestHeadings_Hierarchy(t *testing.T) {
	doc := headingDocument(
		model.Heading{Index: 1, Text: "1.1 Starts deep", Level: 2},
		model.Heading{Index: 2, Text: "1. MAIN", Level: 1},
		model.Heading{Index: 5, Text: "1.1.1 Skipped", Level: 3},
		model.Heading{Index: 7, Text: "1.2 Back", Level: 2},
	)

	issues := byRule(Headings.Check(doc, model.Assignment, testGuide(t)), "Heading Hierarchy")
	require.Len(t, issues, 1)
	assert.Equal(t, 5, issues[0].Location.Paragraph)
	assert.Equal(t, "Heading level skipped (went from 1 to 3)", issues[0].Message)
	assert.Equal(t, "Level 2", issues[0].Expected)
	assert.Equal(t, CategoryStructure, issues[0].Category)
}

func TestHeadings_Depth(t *testing.T) {
	doc := headingDocument(
		model.Heading{Index: 1, Text: "1.1.1.1 Four", Level: 4},
		model.Heading{Index: 2, Text: "Five", Level: 5},
	)

	issues := Headings.Check(doc, model.Assignment, testGuide(t))
	require.Len(t, issues, 1, "level 5 has no prescribed format")
	assert.Equal(t, "Heading Depth", issues[0].Rule)
	assert.Equal(t, "Level 5", issues[0].Found)
}

func TestHeadings_NoHeadings(t *testing.T) {
	g := testGuide(t)

	assert.Empty(t, Headings.Check(headingDocument(), model.Assignment, g))

	issues := Headings.Check(headingDocument(), model.Dissertation, g)
	require.Len(t, issues, 1)
	assert.Equal(t, "Headings", issues[0].Rule)
	assert.Equal(t, SeverityHigh, issues[0].Severity)
}

func TestHeadings_ChapterFormat(t *testing.T) {
	g := testGuide(t)

	for _, text := range []string{"1. CHAPTER ONE", "2. LITERATURE REVIEW"} {
		issues := Headings.Check(headingDocument(model.Heading{Index: 1, Text: text, Level: 1}), model.Dissertation, g)
		assert.Empty(t, issues, text)
	}

	issues := Headings.Check(headingDocument(model.Heading{Index: 1, Text: "Chapter 1: Beginnings", Level: 1}), model.Dissertation, g)
	chapter := byRule(issues, "Chapter Heading Format")
	require.Len(t, chapter, 1)
	assert.Equal(t, CategoryStructure, chapter[0].Category)
	assert.Len(t, byRule(issues, "Level 1 Heading Format"), 2)

	issues = Headings.Check(headingDocument(model.Heading{Index: 1, Text: "Chapter 1: Beginnings", Level: 1}), model.Assignment, g)
	assert.Empty(t, byRule(issues, "Chapter Heading Format"))
}
