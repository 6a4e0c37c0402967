package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsawler/stylecheck/guide"
	"github.com/tsawler/stylecheck/heuristic"
	"github.com/tsawler/stylecheck/model"
)

func testGuide(t *testing.T) *guide.StyleGuide {
	t.Helper()
	g := guide.Default()
	require.NoError(t, g.Compile())
	return g
}

// byRule returns the issues reported under a rule name.
func byRule(issues []Issue, rule string) []Issue {
	var out []Issue
	for _, i := range issues {
		if i.Rule == rule {
			out = append(out, i)
		}
	}
	return out
}

// textDocument builds a document from paragraph texts, deriving the
// flattened text, quotations and structure the way extraction does.
func textDocument(paras ...string) *model.Document {
	doc := &model.Document{}
	for i, text := range paras {
		doc.Content.Paragraphs = append(doc.Content.Paragraphs, model.Paragraph{
			Index:   i + 1,
			Text:    text,
			IsEmpty: text == "",
		})
	}
	doc.Content.Text = joinParagraphs(paras)
	doc.Content.Quotations = heuristic.FindQuotations(doc.Content.Text, 80, 4)
	words := heuristic.WordCount(doc.Content.Text)
	doc.Structure = model.Structure{
		WordCount:          words,
		PageCountEstimate:  heuristic.EstimatePages(words),
		HasTableOfContents: heuristic.HasTableOfContents(doc.Content.Text),
		HasBibliography:    heuristic.HasBibliography(doc.Content.Text),
	}
	return doc
}

func joinParagraphs(paras []string) string {
	out := ""
	for i, p := range paras {
		if i > 0 {
			out += "\n\n"
		}
		out += p
	}
	return out
}

func fonts(names ...string) []model.FontValue {
	out := make([]model.FontValue, len(names))
	for i, n := range names {
		if n == "" {
			out[i] = model.InheritedFont()
		} else {
			out[i] = model.ExplicitFont(n)
		}
	}
	return out
}

func sizes(points ...float64) []model.SizeValue {
	out := make([]model.SizeValue, len(points))
	for i, p := range points {
		if p == 0 {
			out[i] = model.InheritedSize()
		} else {
			out[i] = model.ExplicitSize(p)
		}
	}
	return out
}
