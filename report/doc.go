// Package report holds the result of a validation run and renders it.
//
// A Report carries the document type, the file name, a Summary of issue
// counts by severity and the sorted issues. Its JSON form is the flat
// structure consumed by the HTTP API:
//
//	{
//	  "documentType": "assignment",
//	  "fileName": "essay.docx",
//	  "summary": {"totalIssues": 2, "critical": 1, "high": 0, "medium": 1, "low": 0},
//	  "issues": [...]
//	}
//
// Renderers:
//
//	Text      go-pretty table with optional lipgloss severity colours
//	JSON      indented encoding/json output
//	HTML      standalone page built as an x/net/html node tree
//	Markdown  the HTML body converted with html-to-markdown
package report
