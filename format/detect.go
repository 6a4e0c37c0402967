// Package format identifies input files before extraction.
//
// Only Office Open XML word-processing packages (.docx) can be checked.
// Other formats are still recognised so that the error names what was
// uploaded.
package format

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned for input that is not a DOCX package.
var ErrUnsupported = errors.New("unsupported document format")

// Format represents a recognised input format.
type Format int

const (
	// Unknown indicates an unrecognised format.
	Unknown Format = iota
	// DOCX indicates a Word document package (.docx).
	DOCX
	// DOC indicates a legacy binary Word document (.doc).
	DOC
	// PDF indicates a PDF document.
	PDF
	// ODT indicates an OpenDocument Text document.
	ODT
	// ZIP indicates a ZIP archive that is not a word-processing package.
	ZIP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case DOC:
		return "DOC"
	case PDF:
		return "PDF"
	case ODT:
		return "ODT"
	case ZIP:
		return "ZIP"
	default:
		return "Unknown"
	}
}

var (
	zipMagic = []byte("PK\x03\x04")
	pdfMagic = []byte("%PDF")
	// OLE compound file header used by .doc.
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// Detect determines the format from a file name extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return DOCX
	case ".doc":
		return DOC
	case ".pdf":
		return PDF
	case ".odt":
		return ODT
	case ".zip":
		return ZIP
	default:
		return Unknown
	}
}

// DetectFromReader inspects content to determine the format. A ZIP archive
// is a DOCX only when it contains the main document part.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 8)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	switch {
	case bytes.HasPrefix(magic, pdfMagic):
		return PDF, nil
	case bytes.HasPrefix(magic, oleMagic):
		return DOC, nil
	case bytes.HasPrefix(magic, zipMagic):
		return detectZIPFormat(r, size)
	}
	return Unknown, nil
}

func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		switch f.Name {
		case "word/document.xml":
			return DOCX, nil
		case "mimetype":
			if isODT(f) {
				return ODT, nil
			}
		}
	}
	return ZIP, nil
}

func isODT(f *zip.File) bool {
	rc, err := f.Open()
	if err != nil {
		return false
	}
	defer rc.Close()

	data := make([]byte, 64)
	n, _ := io.ReadFull(rc, data)
	return strings.HasPrefix(string(data[:n]), "application/vnd.oasis.opendocument.text")
}

// RequireDOCX returns nil when r holds a DOCX package and an error wrapping
// ErrUnsupported otherwise.
func RequireDOCX(r io.ReaderAt, size int64) error {
	f, err := DetectFromReader(r, size)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	switch f {
	case DOCX:
		return nil
	case Unknown:
		return ErrUnsupported
	default:
		return fmt.Errorf("%w: %s files cannot be checked, save the document as .docx", ErrUnsupported, f)
	}
}
