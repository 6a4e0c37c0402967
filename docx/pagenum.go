package docx

import (
	"bytes"
	"regexp"
	"sort"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/tsawler/stylecheck/model"
)

var (
	// fieldNodes selects simple fields and complex-field instructions.
	fieldNodes = xpath.MustCompile(`//*[local-name()='fldSimple' or local-name()='instrText']`)

	pageField = regexp.MustCompile(`(?i)^\s*PAGE\b`)
)

// detectPageNumbering looks for a PAGE field in the header and footer parts.
// Footers are checked before headers.
func (r *Reader) detectPageNumbering() model.PageNumbering {
	for _, part := range r.headerFooterParts() {
		data, err := r.getFileContent(part.name)
		if err != nil {
			r.logger.Warn("skipping unreadable part", "part", part.name, "error", err)
			continue
		}
		found, err := hasPageField(data)
		if err != nil {
			r.logger.Warn("skipping unparseable part", "part", part.name, "error", err)
			continue
		}
		if found {
			return model.PageNumbering{Present: true, Location: part.location}
		}
	}
	return model.PageNumbering{}
}

type headerFooterPart struct {
	name     string
	location string // "header" or "footer"
}

// headerFooterParts lists footer parts, then header parts. Without a
// relationships part the archive is scanned by file name.
func (r *Reader) headerFooterParts() []headerFooterPart {
	var parts []headerFooterPart
	if r.rels != nil {
		for _, name := range r.relatedParts(relFooter) {
			parts = append(parts, headerFooterPart{name: name, location: "footer"})
		}
		for _, name := range r.relatedParts(relHeader) {
			parts = append(parts, headerFooterPart{name: name, location: "header"})
		}
		return parts
	}

	var footers, headers []string
	for _, f := range r.zipReader.File {
		switch {
		case strings.HasPrefix(f.Name, "word/footer") && strings.HasSuffix(f.Name, ".xml"):
			footers = append(footers, f.Name)
		case strings.HasPrefix(f.Name, "word/header") && strings.HasSuffix(f.Name, ".xml"):
			headers = append(headers, f.Name)
		}
	}
	sort.Strings(footers)
	sort.Strings(headers)
	for _, name := range footers {
		parts = append(parts, headerFooterPart{name: name, location: "footer"})
	}
	for _, name := range headers {
		parts = append(parts, headerFooterPart{name: name, location: "header"})
	}
	return parts
}

// hasPageField reports whether an XML part contains a PAGE field, either
// as w:fldSimple/@w:instr or as w:instrText.
func hasPageField(data []byte) (bool, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return false, err
	}

	for _, n := range xmlquery.QuerySelectorAll(root, fieldNodes) {
		instr := n.InnerText()
		if n.Data == "fldSimple" {
			instr = ""
			for _, a := range n.Attr {
				if a.Name.Local == "instr" {
					instr = a.Value
				}
			}
		}
		if pageField.MatchString(instr) {
			return true, nil
		}
	}
	return false, nil
}
