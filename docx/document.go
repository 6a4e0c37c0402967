package docx

import (
	"encoding/xml"
	"strings"
)

// documentXML represents the structure of word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

// bodyXML represents the document body.
type bodyXML struct {
	// Paragraphs are the top-level w:p children of the body.
	Paragraphs []paragraphXML
	// TextParagraphs holds every paragraph in document order, including
	// those inside tables and block-level content controls.
	TextParagraphs []paragraphXML
	SectPr         *sectPrXML
}

// blockContainers hold paragraphs below the body level.
var blockContainers = map[string]bool{
	"tbl":        true,
	"tr":         true,
	"tc":         true,
	"sdt":        true,
	"sdtContent": true,
	"customXml":  true,
}

// UnmarshalXML decodes the body, descending into tables and content
// controls so that their paragraphs keep document order.
func (b *bodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "p":
				var p paragraphXML
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				if depth == 0 {
					b.Paragraphs = append(b.Paragraphs, p)
				}
				b.TextParagraphs = append(b.TextParagraphs, p)
			case t.Name.Local == "sectPr" && depth == 0:
				b.SectPr = &sectPrXML{}
				if err := d.DecodeElement(b.SectPr, &t); err != nil {
					return err
				}
			case blockContainers[t.Name.Local]:
				depth++
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

// sectPrXML represents the final section properties (<w:sectPr>).
type sectPrXML struct {
	PgMar *pgMarXML `xml:"pgMar"`
}

// pgMarXML represents page margins in twips.
type pgMarXML struct {
	Top    string `xml:"top,attr"`
	Bottom string `xml:"bottom,attr"`
	Left   string `xml:"left,attr"`
	Right  string `xml:"right,attr"`
}

// paragraphXML represents a paragraph element (<w:p>).
// Runs holds every run in document order, including runs nested in
// hyperlinks, insertions, smart tags and content controls.
type paragraphXML struct {
	Properties paragraphPropsXML
	Runs       []runXML
}

// containerElements hold runs without being runs themselves.
var containerElements = map[string]bool{
	"hyperlink":  true,
	"ins":        true,
	"smartTag":   true,
	"customXml":  true,
	"fldSimple":  true,
	"sdt":        true,
	"sdtContent": true,
	"moveTo":     true,
}

// UnmarshalXML decodes a paragraph, flattening container elements so that
// run order is preserved. Deleted runs are dropped.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "pPr" && depth == 0:
				if err := d.DecodeElement(&p.Properties, &t); err != nil {
					return err
				}
			case t.Name.Local == "r":
				var r runXML
				if err := d.DecodeElement(&r, &t); err != nil {
					return err
				}
				p.Runs = append(p.Runs, r)
			case containerElements[t.Name.Local]:
				depth++
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
// Indent and Spacing are nil when the element is absent.
type paragraphPropsXML struct {
	Style         styleRefXML      `xml:"pStyle"`
	Justification justificationXML `xml:"jc"`
	Spacing       *spacingXML      `xml:"spacing"`
	Indent        *indentXML       `xml:"ind"`
}

// styleRefXML represents a style reference.
type styleRefXML struct {
	Val string `xml:"val,attr"`
}

// justificationXML represents text justification.
type justificationXML struct {
	Val string `xml:"val,attr"` // left, center, right, both
}

// spacingXML represents paragraph spacing.
type spacingXML struct {
	Before   string `xml:"before,attr"` // Space before in twips
	After    string `xml:"after,attr"`  // Space after in twips
	Line     string `xml:"line,attr"`   // 240ths of a line when lineRule is auto
	LineRule string `xml:"lineRule,attr"`
}

// indentXML represents paragraph indentation.
type indentXML struct {
	Left      string `xml:"left,attr"`
	Right     string `xml:"right,attr"`
	FirstLine string `xml:"firstLine,attr"`
	Hanging   string `xml:"hanging,attr"`
}

// runXML represents a text run (<w:r>).
type runXML struct {
	Properties runPropsXML
	// Text is the rendered content: text, tabs, breaks and footnote
	// reference numbers in document order.
	Text string
	// Literal is the content of the run's w:t elements only.
	Literal string
}

// UnmarshalXML decodes a run, rendering its content in document order.
func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var text, literal strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				if err := d.DecodeElement(&r.Properties, &t); err != nil {
					return err
				}
				continue
			case "t":
				var v textXML
				if err := d.DecodeElement(&v, &t); err != nil {
					return err
				}
				text.WriteString(v.Value)
				literal.WriteString(v.Value)
				continue
			case "tab":
				text.WriteString("\t")
			case "br":
				if attr(t, "type") == "page" {
					text.WriteString("\n\n")
				} else {
					text.WriteString("\n")
				}
			case "cr":
				text.WriteString("\n")
			case "noBreakHyphen":
				text.WriteString("-")
			case "footnoteReference":
				text.WriteString(attr(t, "id"))
			}
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			r.Text = text.String()
			r.Literal = literal.String()
			return nil
		}
	}
}

// textBearing reports whether the run carries visible text.
func (r runXML) textBearing() bool {
	return strings.TrimSpace(r.Literal) != ""
}

// attr returns the value of the attribute with the given local name.
func attr(e xml.StartElement, local string) string {
	for _, a := range e.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Bold     boolXML `xml:"b"`
	Italic   boolXML `xml:"i"`
	FontSize sizeXML `xml:"sz"`
	Font     fontXML `xml:"rFonts"`
}

// boolXML represents a boolean attribute.
type boolXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

// on reports whether the toggle is present and not switched off.
func (b boolXML) on() bool {
	return b.XMLName.Local != "" && b.Val != "false" && b.Val != "0"
}

// sizeXML represents font size (in half-points).
type sizeXML struct {
	Val string `xml:"val,attr"`
}

// fontXML represents font settings.
type fontXML struct {
	ASCII    string `xml:"ascii,attr"`
	HAnsi    string `xml:"hAnsi,attr"`
	CS       string `xml:"cs,attr"`
	EastAsia string `xml:"eastAsia,attr"`
}

// first returns the first font named, checking ascii, hAnsi, cs and
// eastAsia in that order.
func (f fontXML) first() string {
	for _, name := range []string{f.ASCII, f.HAnsi, f.CS, f.EastAsia} {
		if name != "" {
			return name
		}
	}
	return ""
}

// textXML represents text content (<w:t>).
type textXML struct {
	Value string `xml:",chardata"`
}

// footnotesXML represents word/footnotes.xml
type footnotesXML struct {
	XMLName   xml.Name      `xml:"footnotes"`
	Footnotes []footnoteXML `xml:"footnote"`
}

// footnoteXML represents a single footnote (<w:footnote>).
type footnoteXML struct {
	ID         string         `xml:"id,attr"`
	Type       string         `xml:"type,attr"` // separator, continuationSeparator
	Paragraphs []paragraphXML `xml:"p"`
}
