package docx

import (
	"strconv"
	"strings"

	"github.com/tsawler/stylecheck/heuristic"
	"github.com/tsawler/stylecheck/model"
)

// paragraphSeparator joins paragraph texts in the flattened document text.
const paragraphSeparator = "\n\n"

// Model builds the document model from the parsed package. Each extraction
// step runs on its own; a step that fails is logged and leaves its field
// at the zero value, so Model always returns a complete document.
func (r *Reader) Model() *model.Document {
	doc := &model.Document{
		Content: model.Content{
			Paragraphs: []model.Paragraph{},
			Footnotes:  []model.Footnote{},
			Headings:   []model.Heading{},
			Quotations: []model.Quotation{},
		},
		Formatting: model.Formatting{
			FontsUsed:          []string{},
			FontSizesUsed:      []float64{},
			LineSpacingSamples: []float64{},
		},
	}
	body := r.document.Body

	r.safeStep("paragraphs", func() {
		doc.Content.Paragraphs = r.extractParagraphs(body.Paragraphs)
	})
	r.safeStep("text", func() {
		doc.Content.Text = flatten(body.TextParagraphs)
	})

	r.safeStep("headings", func() {
		doc.Content.Headings = extractHeadings(body.Paragraphs)
	})
	r.safeStep("footnotes", func() {
		doc.Content.Footnotes = r.extractFootnotes(r.footnotes)
	})
	r.safeStep("quotations", func() {
		if q := heuristic.FindQuotations(doc.Content.Text, r.charsPerLine, r.maxInlineLines); q != nil {
			doc.Content.Quotations = q
		}
	})

	r.safeStep("fonts", func() {
		doc.Formatting.FontsUsed, doc.Formatting.FontSizesUsed = extractFonts(body.Paragraphs)
	})
	r.safeStep("margins", func() {
		doc.Formatting.Margins = extractMargins(body.SectPr)
	})
	r.safeStep("spacing", func() {
		doc.Formatting.LineSpacingSamples = extractSpacing(body.Paragraphs)
	})
	r.safeStep("page numbering", func() {
		doc.Formatting.PageNumbering = r.detectPageNumbering()
	})

	r.safeStep("structure", func() {
		words := heuristic.WordCount(doc.Content.Text)
		doc.Structure = model.Structure{
			WordCount:          words,
			PageCountEstimate:  heuristic.EstimatePages(words),
			HasTableOfContents: heuristic.HasTableOfContents(doc.Content.Text),
			HasBibliography:    heuristic.HasBibliography(doc.Content.Text),
		}
	})

	return doc
}

// safeStep runs one extraction step, recovering from a panic.
func (r *Reader) safeStep(name string, step func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("extraction step failed", "step", name, "panic", rec)
		}
	}()
	step()
}

// paragraphText concatenates the rendered text of a paragraph's runs.
func paragraphText(p paragraphXML) string {
	var b strings.Builder
	for _, run := range p.Runs {
		b.WriteString(run.Text)
	}
	return b.String()
}

// isEmptyParagraph reports a paragraph without any text-bearing run.
func isEmptyParagraph(p paragraphXML) bool {
	for _, run := range p.Runs {
		if run.textBearing() {
			return false
		}
	}
	return true
}

func (r *Reader) extractParagraphs(paras []paragraphXML) []model.Paragraph {
	out := make([]model.Paragraph, 0, len(paras))
	for i, p := range paras {
		f, err := resolveParagraphFormatting(p)
		if err != nil {
			r.logger.Debug("skipping paragraph formatting", "paragraph", i+1, "error", err)
		}
		out = append(out, model.Paragraph{
			Index:      i + 1,
			Text:       paragraphText(p),
			IsEmpty:    isEmptyParagraph(p),
			Formatting: f,
		})
	}
	return out
}

// flatten joins paragraph texts into the document's plain text. Table
// cells and content controls contribute their paragraphs in place.
func flatten(paras []paragraphXML) string {
	texts := make([]string, len(paras))
	for i, p := range paras {
		texts[i] = paragraphText(p)
	}
	return strings.Join(texts, paragraphSeparator)
}

func extractHeadings(paras []paragraphXML) []model.Heading {
	headings := []model.Heading{}
	for i, p := range paras {
		styleID := p.Properties.Style.Val
		if !heuristic.IsHeadingStyle(styleID) {
			continue
		}
		headings = append(headings, model.Heading{
			Index:   i + 1,
			Text:    paragraphText(p),
			Level:   heuristic.HeadingLevel(styleID),
			StyleID: styleID,
		})
	}
	return headings
}

// extractFootnotes returns the document's footnotes, skipping the
// separator entries. A footnote spanning several paragraphs is treated as
// one block: texts are joined by a space and formatting covers all runs.
func (r *Reader) extractFootnotes(fx *footnotesXML) []model.Footnote {
	notes := []model.Footnote{}
	if fx == nil {
		return notes
	}

	for _, fn := range fx.Footnotes {
		if fn.ID == "" || fn.ID == "-1" || fn.ID == "0" {
			continue
		}
		if fn.Type != "" && fn.Type != "normal" {
			continue
		}

		var merged paragraphXML
		texts := make([]string, 0, len(fn.Paragraphs))
		for i, p := range fn.Paragraphs {
			if i == 0 {
				merged.Properties = p.Properties
			}
			merged.Runs = append(merged.Runs, p.Runs...)
			texts = append(texts, paragraphText(p))
		}

		f, err := resolveParagraphFormatting(merged)
		if err != nil {
			r.logger.Debug("skipping footnote formatting", "footnote", fn.ID, "error", err)
		}
		notes = append(notes, model.Footnote{
			ID:         fn.ID,
			Text:       strings.TrimSpace(strings.Join(texts, " ")),
			Formatting: f,
		})
	}
	return notes
}

// extractFonts collects the document-wide font and size sets: each run's
// explicit ASCII font and explicit size, in first-seen order. Only the
// ASCII attribute counts here; the per-paragraph resolution checks all
// four font attributes.
func extractFonts(paras []paragraphXML) ([]string, []float64) {
	fonts := []string{}
	sizes := []float64{}
	seenFonts := make(map[string]bool)
	seenSizes := make(map[float64]bool)

	for _, p := range paras {
		for _, run := range p.Runs {
			if name := run.Properties.Font.ASCII; name != "" && !seenFonts[name] {
				seenFonts[name] = true
				fonts = append(fonts, name)
			}
			if size := parseHalfPoints(run.Properties.FontSize.Val); size > 0 && !seenSizes[size] {
				seenSizes[size] = true
				sizes = append(sizes, size)
			}
		}
	}
	return fonts, sizes
}

func extractMargins(sect *sectPrXML) *model.Margins {
	if sect == nil || sect.PgMar == nil {
		return nil
	}
	m := sect.PgMar
	return &model.Margins{
		Top:    twipsToInches(m.Top),
		Bottom: twipsToInches(m.Bottom),
		Left:   twipsToInches(m.Left),
		Right:  twipsToInches(m.Right),
	}
}

// extractSpacing returns the line spacing of every paragraph that declares
// one, as a multiple of single spacing.
func extractSpacing(paras []paragraphXML) []float64 {
	samples := []float64{}
	for _, p := range paras {
		sp := p.Properties.Spacing
		if sp == nil || sp.Line == "" {
			continue
		}
		v, err := strconv.ParseFloat(sp.Line, 64)
		if err != nil {
			continue
		}
		samples = append(samples, v/240)
	}
	return samples
}
