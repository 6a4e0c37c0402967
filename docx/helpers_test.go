package docx

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	wNamespace = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`

	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

	packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

	relTypeBase = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// testPackage describes a DOCX package built in memory for tests. Empty
// fields produce no part.
type testPackage struct {
	body      string // content of w:body
	styles    string // content of w:styles
	footnotes string // content of w:footnotes
	rels      string // content of Relationships in document.xml.rels
	parts     map[string]string
}

func (p testPackage) bytes(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	add := func(name, content string) {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}

	add("[Content_Types].xml", contentTypesXML)
	add("_rels/.rels", packageRelsXML)
	add("word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document `+wNamespace+`><w:body>`+p.body+`</w:body></w:document>`)

	if p.styles != "" {
		add("word/styles.xml", `<w:styles `+wNamespace+`>`+p.styles+`</w:styles>`)
	}
	if p.footnotes != "" {
		add("word/footnotes.xml", `<w:footnotes `+wNamespace+`>`+p.footnotes+`</w:footnotes>`)
	}
	if p.rels != "" {
		add("word/_rels/document.xml.rels",
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+p.rels+`</Relationships>`)
	}
	for name, content := range p.parts {
		add(name, content)
	}

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func (p testPackage) open(t *testing.T) *Reader {
	t.Helper()
	data := p.bytes(t)
	r, err := NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return r
}

// rawPackage zips the given files as-is.
func rawPackage(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// createTestDOCX writes a minimal DOCX file with the given body content and
// returns its path.
func createTestDOCX(t *testing.T, content string) string {
	t.Helper()

	docxPath := filepath.Join(t.TempDir(), "test.docx")
	data := testPackage{body: content}.bytes(t)
	require.NoError(t, os.WriteFile(docxPath, data, 0o644))
	return docxPath
}

// para builds a paragraph from a style identifier and runs.
func para(style string, runs ...string) string {
	ppr := ""
	if style != "" {
		ppr = `<w:pPr><w:pStyle w:val="` + style + `"/></w:pPr>`
	}
	out := `<w:p>` + ppr
	for _, r := range runs {
		out += r
	}
	return out + `</w:p>`
}

// run builds a run with optional run properties.
func run(rpr, text string) string {
	if rpr != "" {
		rpr = `<w:rPr>` + rpr + `</w:rPr>`
	}
	return `<w:r>` + rpr + `<w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

func rel(id, typ, target string) string {
	return `<Relationship Id="` + id + `" Type="` + relTypeBase + `/` + typ + `" Target="` + target + `"/>`
}
