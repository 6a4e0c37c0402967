// Package docx reads word-processing documents in the Office Open XML
// (DOCX) format and extracts the facts that style rules check.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
)

// Relationship types referenced from word/_rels/document.xml.rels.
const (
	relFootnotes = "/footnotes"
	relStyles    = "/styles"
	relHeader    = "/header"
	relFooter    = "/footer"
)

// Reader provides access to DOCX document content.
type Reader struct {
	zipReader *zip.Reader
	closer    io.Closer
	logger    *slog.Logger

	charsPerLine   int
	maxInlineLines int

	document  *documentXML
	styles    *stylesXML
	footnotes *footnotesXML
	rels      *relationshipsXML
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger used for recovered extraction failures.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithCloser makes Close release c, typically the file behind the
// io.ReaderAt passed to NewReader.
func WithCloser(c io.Closer) Option {
	return func(r *Reader) { r.closer = c }
}

// WithQuoteLayout sets the line estimate used by quotation detection.
func WithQuoteLayout(charsPerLine, maxInlineLines int) Option {
	return func(r *Reader) {
		if charsPerLine > 0 {
			r.charsPerLine = charsPerLine
		}
		if maxInlineLines > 0 {
			r.maxInlineLines = maxInlineLines
		}
	}
}

// Open opens a DOCX file for reading.
func Open(filename string, opts ...Option) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r, err := newReader(&zr.Reader, opts)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.closer = zr
	return r, nil
}

// NewReader reads a DOCX package of the given size from ra.
func NewReader(ra io.ReaderAt, size int64, opts ...Option) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr, opts)
}

func newReader(zr *zip.Reader, opts []Option) (*Reader, error) {
	r := &Reader{
		zipReader:      zr,
		logger:         slog.New(slog.DiscardHandler),
		charsPerLine:   80,
		maxInlineLines: 4,
	}
	for _, opt := range opts {
		opt(r)
	}

	// Validate required files exist
	if err := r.validate(); err != nil {
		return nil, err
	}

	// The main document is the only mandatory part.
	if err := r.parseDocument(); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	if err := r.parseRelationships(); err != nil {
		r.logger.Warn("ignoring unreadable relationships", "error", err)
		r.rels = nil
	}
	if err := r.parseStyles(); err != nil {
		r.logger.Warn("ignoring unreadable styles", "error", err)
		r.styles = nil
	}
	if err := r.parseFootnotes(); err != nil {
		r.logger.Warn("ignoring unreadable footnotes", "error", err)
		r.footnotes = nil
	}

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"word/document.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zipReader.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// hasFile reports whether the archive contains name.
func (r *Reader) hasFile(name string) bool {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			return true
		}
	}
	return false
}

// parseRelationships parses the document relationships file.
func (r *Reader) parseRelationships() error {
	if !r.hasFile("word/_rels/document.xml.rels") {
		return nil
	}
	data, err := r.getFileContent("word/_rels/document.xml.rels")
	if err != nil {
		return err
	}

	r.rels = &relationshipsXML{}
	return xml.Unmarshal(data, r.rels)
}

// parseDocument parses the main document content.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent("word/document.xml")
	if err != nil {
		return err
	}

	r.document = &documentXML{}
	if err := xml.Unmarshal(data, r.document); err != nil {
		return fmt.Errorf("unmarshaling document.xml: %w", err)
	}
	if r.document.Body == nil {
		return fmt.Errorf("document.xml has no body")
	}
	return nil
}

// parseStyles parses the styles definition file.
func (r *Reader) parseStyles() error {
	name := r.partName(relStyles, "word/styles.xml")
	if !r.hasFile(name) {
		return nil
	}
	data, err := r.getFileContent(name)
	if err != nil {
		return err
	}

	r.styles = &stylesXML{}
	return xml.Unmarshal(data, r.styles)
}

// parseFootnotes parses the footnotes part. A missing part is not an error.
func (r *Reader) parseFootnotes() error {
	name := r.partName(relFootnotes, "word/footnotes.xml")
	if !r.hasFile(name) {
		return nil
	}
	data, err := r.getFileContent(name)
	if err != nil {
		return err
	}

	r.footnotes = &footnotesXML{}
	return xml.Unmarshal(data, r.footnotes)
}

// partName returns the archive path of the first part related to the
// document with a relationship type ending in relType, or fallback.
func (r *Reader) partName(relType, fallback string) string {
	if names := r.relatedParts(relType); len(names) > 0 {
		return names[0]
	}
	return fallback
}

// relatedParts returns the archive paths of internal parts whose
// relationship type ends in relType, in relationship order.
func (r *Reader) relatedParts(relType string) []string {
	if r.rels == nil {
		return nil
	}
	var names []string
	for _, rel := range r.rels.Relationships {
		if rel.TargetMode == "External" || !strings.HasSuffix(rel.Type, relType) {
			continue
		}
		names = append(names, resolveTarget(rel.Target))
	}
	return names
}

// resolveTarget converts a relationship target relative to word/ into an
// archive path.
func resolveTarget(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join("word", target)
}

// StyleUsage describes a paragraph style used in the document body and the
// formatting it resolves to through the style hierarchy.
type StyleUsage struct {
	StyleID     string  `json:"styleId"`
	Name        string  `json:"name"`
	Font        string  `json:"font"`
	Size        float64 `json:"size"`
	Alignment   string  `json:"alignment"`
	LineSpacing float64 `json:"lineSpacing,omitempty"` // multiple of single, 0 = auto
	Bold        bool    `json:"bold,omitempty"`
	Italic      bool    `json:"italic,omitempty"`
	Paragraphs  int     `json:"paragraphs"`
}

// StyleUsage lists the paragraph styles used by body paragraphs in
// first-use order. Paragraphs without a style are reported under the
// default paragraph style.
func (r *Reader) StyleUsage() []StyleUsage {
	sr := NewStyleResolver(r.styles)

	var usage []StyleUsage
	index := make(map[string]int)
	for _, p := range r.document.Body.Paragraphs {
		id := p.Properties.Style.Val
		if i, ok := index[id]; ok {
			usage[i].Paragraphs++
			continue
		}
		rs := sr.Resolve(id)
		index[id] = len(usage)
		usage = append(usage, StyleUsage{
			StyleID:     rs.ID,
			Name:        rs.Name,
			Font:        rs.FontName,
			Size:        rs.FontSize,
			Alignment:   rs.Alignment,
			LineSpacing: rs.LineSpacing,
			Bold:        rs.Bold,
			Italic:      rs.Italic,
			Paragraphs:  1,
		})
	}
	return usage
}
