package commands

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/stylecheck/docx"
	"github.com/tsawler/stylecheck/model"
	"github.com/tsawler/stylecheck/report"
)

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

// writeDOCX writes a minimal package whose paragraphs use font and the
// Heading1 style for texts starting with "#".
func writeDOCX(t *testing.T, font string, texts ...string) string {
	t.Helper()

	var body strings.Builder
	for _, text := range texts {
		body.WriteString(`<w:p>`)
		if h, ok := strings.CutPrefix(text, "#"); ok {
			body.WriteString(`<w:pPr><w:pStyle w:val="Heading1"/></w:pPr>`)
			text = h
		}
		body.WriteString(`<w:r><w:rPr><w:rFonts w:ascii="` + font + `"/><w:sz w:val="24"/></w:rPr><w:t>` + text + `</w:t></w:r></w:p>`)
	}
	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document ` + wordNS + `><w:body>` + body.String() +
		`<w:sectPr><w:pgMar w:top="1440" w:bottom="1440" w:left="1440" w:right="1440"/></w:sectPr>` +
		`</w:body></w:document>`
	return writePackage(t, map[string]string{"word/document.xml": document})
}

const headingStyles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<w:styles ` + wordNS + `>` +
	`<w:docDefaults><w:pPrDefault><w:pPr><w:spacing w:line="480" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:jc w:val="center"/></w:pPr><w:rPr><w:b/><w:i/></w:rPr></w:style>` +
	`</w:styles>`

func writePackage(t *testing.T, parts map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "essay.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestNewVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCommand("1.2.3"))
	require.NoError(t, err)
	assert.Contains(t, out, "stylecheck v1.2.3")
}

func TestCheckCommand_Text(t *testing.T) {
	path := writeDOCX(t, "Arial", "Essay", "Body text.")

	out, err := execute(t, NewCheckCommand(), path)
	require.NoError(t, err)
	assert.Contains(t, out, "Style report: "+path)
	assert.Contains(t, out, "Font Style")
	assert.Contains(t, out, "critical")
}

func TestCheckCommand_JSON(t *testing.T) {
	path := writeDOCX(t, "Arial", "Essay", "Body text.")

	out, err := execute(t, NewCheckCommand(), path, "--format", "json", "--type", "dissertation")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, model.Dissertation, rep.DocumentType)
	assert.Equal(t, len(rep.Issues), rep.Summary.TotalIssues)
	assert.Positive(t, rep.Summary.Critical)
}

func TestCheckCommand_OutFile(t *testing.T) {
	path := writeDOCX(t, "Arial", "Essay")
	dest := filepath.Join(t.TempDir(), "report.html")

	out, err := execute(t, NewCheckCommand(), path, "--format", "html", "--out", dest)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
}

func TestCheckCommand_FailOn(t *testing.T) {
	path := writeDOCX(t, "Arial", "Essay")

	_, err := execute(t, NewCheckCommand(), path, "--fail-on", "critical")
	var exit *ExitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 1, exit.Code)
	assert.Contains(t, exit.Error(), "critical")

	_, err = execute(t, NewCheckCommand(), path, "--fail-on", "none")
	assert.NoError(t, err)
}

func TestCheckCommand_Errors(t *testing.T) {
	path := writeDOCX(t, "Arial", "Essay")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no file", []string{}, "accepts 1 arg"},
		{"bad type", []string{path, "--type", "thesis"}, "unknown document type"},
		{"bad format", []string{path, "--format", "pdf"}, "pdf"},
		{"bad fail-on", []string{path, "--fail-on", "urgent"}, "unknown severity"},
		{"missing file", []string{filepath.Join(t.TempDir(), "missing.docx")}, "could not be read"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, NewCheckCommand(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestInspectCommand_Text(t *testing.T) {
	path := writeDOCX(t, "Times New Roman", "#INTRODUCTION", "Body text.")

	out, err := execute(t, NewInspectCommand(), path)
	require.NoError(t, err)
	assert.Contains(t, out, "Paragraphs:     2")
	assert.Contains(t, out, "Times New Roman")
	assert.Contains(t, out, "12pt")
	assert.Contains(t, out, "top 1.00in")
	assert.Contains(t, out, "INTRODUCTION")
	assert.Contains(t, out, "Heading1")
}

func TestInspectCommand_JSON(t *testing.T) {
	path := writeDOCX(t, "Times New Roman", "#INTRODUCTION", "Body text.", "More text.")

	out, err := execute(t, NewInspectCommand(), path, "--format", "json")
	require.NoError(t, err)

	var got InspectJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 3, got.Paragraphs)
	assert.Equal(t, []string{"Times New Roman"}, got.Fonts)
	require.Len(t, got.Headings, 1)
	assert.Equal(t, 1, got.Headings[0].Level)

	paragraphs := 0
	for _, s := range got.Styles {
		paragraphs += s.Paragraphs
	}
	assert.Equal(t, 3, paragraphs)
	assert.IsType(t, []docx.StyleUsage{}, got.Styles)
}

func TestInspectCommand_StyleFormatting(t *testing.T) {
	src, err := os.ReadFile(writeDOCX(t, "Times New Roman", "#INTRODUCTION", "Body text."))
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(src), int64(len(src)))
	require.NoError(t, err)
	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	document, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())

	path := writePackage(t, map[string]string{
		"word/document.xml": string(document),
		"word/styles.xml":   headingStyles,
	})

	out, err := execute(t, NewInspectCommand(), path, "--format", "json")
	require.NoError(t, err)
	var got InspectJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Styles, 2)

	heading := got.Styles[0]
	assert.Equal(t, "Heading1", heading.StyleID)
	assert.Equal(t, "center", heading.Alignment)
	assert.Equal(t, 2.0, heading.LineSpacing)
	assert.True(t, heading.Bold)
	assert.True(t, heading.Italic)

	normal := got.Styles[1]
	assert.Equal(t, "Normal", normal.StyleID)
	assert.Equal(t, "left", normal.Alignment)
	assert.False(t, normal.Bold)

	text, err := execute(t, NewInspectCommand(), path)
	require.NoError(t, err)
	assert.Contains(t, text, "center")
	assert.Contains(t, text, "2.00")
	assert.Contains(t, text, "bold italic")
}

func TestInspectCommand_BadFormat(t *testing.T) {
	path := writeDOCX(t, "Times New Roman", "Body text.")
	_, err := execute(t, NewInspectCommand(), path, "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestRulesCommand(t *testing.T) {
	out, err := execute(t, NewRulesCommand())
	require.NoError(t, err)
	for _, id := range []string{"formatting", "citations", "structure", "quotations", "headings"} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "Font Style")
}

func TestRulesCommand_Single(t *testing.T) {
	out, err := execute(t, NewRulesCommand(), "headings")
	require.NoError(t, err)
	assert.Contains(t, out, "headings")
	assert.NotContains(t, out, "citations")

	_, err = execute(t, NewRulesCommand(), "spelling")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRulesCommand_JSON(t *testing.T) {
	out, err := execute(t, NewRulesCommand(), "--format", "json")
	require.NoError(t, err)

	var got RulesJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 5, got.Count)
	require.Len(t, got.Rules, 5)
	assert.Equal(t, "formatting", got.Rules[0].ID)
	assert.NotEmpty(t, got.Rules[0].Checks)
}

func TestGuideCommand(t *testing.T) {
	out, err := execute(t, NewGuideCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "Times New Roman")
}

func TestParseFailOn(t *testing.T) {
	sev, err := parseFailOn("")
	require.NoError(t, err)
	assert.Empty(t, sev)

	sev, err = parseFailOn("None")
	require.NoError(t, err)
	assert.Empty(t, sev)

	sev, err = parseFailOn("HIGH")
	require.NoError(t, err)
	assert.Equal(t, "high", string(sev))

	_, err = parseFailOn("severe")
	assert.Error(t, err)
}
