package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/stylecheck/rules"
)

const stylesheet = `body{font-family:sans-serif;max-width:60em;margin:2em auto}
li{margin-bottom:.6em}
.critical{color:#b00020}.high{color:#d35400}.medium{color:#b7950b}.low{color:#2471a3}
.detail{color:#555}`

// HTML writes the report as a standalone HTML document.
func HTML(w io.Writer, r *Report) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, attr("lang", "en"))
	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(withText(element(atom.Title), title(r)))
	head.AppendChild(withText(element(atom.Style), stylesheet))
	root.AppendChild(head)
	root.AppendChild(body(r))
	doc.AppendChild(root)

	return html.Render(w, doc)
}

// Markdown writes the report as Markdown, converted from the HTML body.
func Markdown(w io.Writer, r *Report) error {
	var buf bytes.Buffer
	if err := html.Render(&buf, body(r)); err != nil {
		return err
	}
	md, err := htmltomarkdown.ConvertString(buf.String())
	if err != nil {
		return fmt.Errorf("convert report to markdown: %w", err)
	}
	_, err = io.WriteString(w, strings.TrimSpace(md)+"\n")
	return err
}

// body builds the report body: a heading, the summary and one list of
// issues per severity that has any.
func body(r *Report) *html.Node {
	b := element(atom.Body)
	b.AppendChild(withText(element(atom.H1), title(r)))

	p := element(atom.P)
	p.AppendChild(textNode("Document type: " + string(r.DocumentType) + ". " + summaryLine(r.Summary) + "."))
	b.AppendChild(p)

	if len(r.Issues) == 0 {
		b.AppendChild(withText(element(atom.P), "No issues found."))
		return b
	}

	for _, sev := range rules.Severities {
		issues := r.BySeverity(sev)
		if len(issues) == 0 {
			continue
		}
		h := withText(element(atom.H2, attr("class", string(sev))),
			fmt.Sprintf("%s (%d)", capitalize(string(sev)), len(issues)))
		b.AppendChild(h)

		ul := element(atom.Ul)
		for _, i := range issues {
			ul.AppendChild(issueItem(i))
		}
		b.AppendChild(ul)
	}
	return b
}

func issueItem(i rules.Issue) *html.Node {
	li := element(atom.Li)
	li.AppendChild(withText(element(atom.Strong), i.Rule))
	li.AppendChild(textNode(fmt.Sprintf(" [%s] %s", i.Category, i.Message)))
	if loc := FormatLocation(i.Location); loc != "" {
		li.AppendChild(textNode(" (" + loc + ")"))
	}

	var details []string
	if i.Location != nil && i.Location.Text != "" {
		details = append(details, "Text: "+strings.Join(strings.Fields(i.Location.Text), " "))
	}
	if i.Expected != "" {
		details = append(details, "Expected: "+i.Expected)
	}
	if i.Found != "" {
		details = append(details, "Found: "+i.Found)
	}
	if i.Fix != "" {
		details = append(details, "Fix: "+i.Fix)
	}
	if len(details) == 0 {
		return li
	}

	ul := element(atom.Ul, attr("class", "detail"))
	for _, d := range details {
		ul.AppendChild(withText(element(atom.Li), d))
	}
	li.AppendChild(ul)
	return li
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(textNode(s))
	return n
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
