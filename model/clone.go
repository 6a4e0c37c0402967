package model

import "slices"

// Clone returns a deep copy of d. Rules receive clones so that no rule can
// observe another rule's mutations.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d

	c.Content.Paragraphs = cloneEach(d.Content.Paragraphs, func(p Paragraph) Paragraph {
		p.Formatting = p.Formatting.Clone()
		return p
	})
	c.Content.Footnotes = cloneEach(d.Content.Footnotes, func(f Footnote) Footnote {
		f.Formatting = f.Formatting.Clone()
		return f
	})
	c.Content.Headings = slices.Clone(d.Content.Headings)
	c.Content.Quotations = slices.Clone(d.Content.Quotations)

	c.Formatting.FontsUsed = slices.Clone(d.Formatting.FontsUsed)
	c.Formatting.FontSizesUsed = slices.Clone(d.Formatting.FontSizesUsed)
	c.Formatting.LineSpacingSamples = slices.Clone(d.Formatting.LineSpacingSamples)
	if d.Formatting.Margins != nil {
		m := *d.Formatting.Margins
		c.Formatting.Margins = &m
	}
	return &c
}

// Clone returns a deep copy of f.
func (f ParagraphFormatting) Clone() ParagraphFormatting {
	if f.Indentation != nil {
		ind := *f.Indentation
		f.Indentation = &ind
	}
	if f.Spacing != nil {
		sp := *f.Spacing
		f.Spacing = &sp
	}
	f.Fonts = slices.Clone(f.Fonts)
	f.FontSizes = slices.Clone(f.FontSizes)
	return f
}

func cloneEach[T any](in []T, fn func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}
