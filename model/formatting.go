package model

import (
	"encoding/json"
	"strconv"
)

// InheritedFontSentinel is the serialized form of an inherited font entry.
const InheritedFontSentinel = "_inherit_"

// ParagraphFormatting is the formatting resolved for one paragraph.
type ParagraphFormatting struct {
	// Alignment is the w:jc value; empty means undetermined.
	Alignment   string       `json:"alignment,omitempty"`
	Indentation *Indentation `json:"indentation,omitempty"`
	Spacing     *Spacing     `json:"spacing,omitempty"`
	// Fonts has one entry per text-bearing run that needed resolution.
	// Explicit values are deduplicated within the paragraph.
	Fonts []FontValue `json:"fonts"`
	// FontSizes follows the same rules as Fonts, in points.
	FontSizes []SizeValue `json:"fontSizes"`
	Bold      bool        `json:"bold"`
	Italic    bool        `json:"italic"`
}

// ExplicitFonts returns the explicit font names, skipping inherited entries.
func (f ParagraphFormatting) ExplicitFonts() []string {
	var names []string
	for _, v := range f.Fonts {
		if name, ok := v.Name(); ok {
			names = append(names, name)
		}
	}
	return names
}

// ExplicitSizes returns the explicit sizes in points, skipping inherited
// entries.
func (f ParagraphFormatting) ExplicitSizes() []float64 {
	var sizes []float64
	for _, v := range f.FontSizes {
		if pt, ok := v.Points(); ok {
			sizes = append(sizes, pt)
		}
	}
	return sizes
}

// Indentation holds the raw w:ind attributes (twips).
type Indentation struct {
	Left      string `json:"left,omitempty"`
	Right     string `json:"right,omitempty"`
	FirstLine string `json:"firstLine,omitempty"`
	Hanging   string `json:"hanging,omitempty"`
}

// HasFirstLine reports a non-zero first-line indent.
func (i *Indentation) HasFirstLine() bool {
	if i == nil || i.FirstLine == "" {
		return false
	}
	v, err := strconv.Atoi(i.FirstLine)
	return err != nil || v != 0
}

// Spacing holds the raw w:spacing attributes.
type Spacing struct {
	Before   string `json:"before,omitempty"`
	After    string `json:"after,omitempty"`
	Line     string `json:"line,omitempty"`
	LineRule string `json:"lineRule,omitempty"`
}

// FontValue is either an explicit font name or the inherited marker.
type FontValue struct {
	name     string
	explicit bool
}

// ExplicitFont returns a FontValue carrying an explicit font name.
func ExplicitFont(name string) FontValue {
	return FontValue{name: name, explicit: true}
}

// InheritedFont returns the marker for a run without an explicit font.
func InheritedFont() FontValue {
	return FontValue{}
}

// Name returns the font name and true for explicit values.
func (v FontValue) Name() (string, bool) {
	return v.name, v.explicit
}

// IsInherited reports whether the run had no explicit font.
func (v FontValue) IsInherited() bool {
	return !v.explicit
}

// String returns the font name, or InheritedFontSentinel.
func (v FontValue) String() string {
	if !v.explicit {
		return InheritedFontSentinel
	}
	return v.name
}

// MarshalJSON encodes inherited values as null.
func (v FontValue) MarshalJSON() ([]byte, error) {
	if !v.explicit {
		return []byte("null"), nil
	}
	return json.Marshal(v.name)
}

// UnmarshalJSON decodes a string or null.
func (v *FontValue) UnmarshalJSON(data []byte) error {
	var name *string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	if name == nil {
		*v = InheritedFont()
		return nil
	}
	*v = ExplicitFont(*name)
	return nil
}

// SizeValue is either an explicit size in points or the inherited marker.
type SizeValue struct {
	points   float64
	explicit bool
}

// ExplicitSize returns a SizeValue carrying an explicit size in points.
func ExplicitSize(points float64) SizeValue {
	return SizeValue{points: points, explicit: true}
}

// InheritedSize returns the marker for a run without an explicit size.
func InheritedSize() SizeValue {
	return SizeValue{}
}

// Points returns the size and true for explicit values.
func (v SizeValue) Points() (float64, bool) {
	return v.points, v.explicit
}

// IsInherited reports whether the run had no explicit size.
func (v SizeValue) IsInherited() bool {
	return !v.explicit
}

// String returns the size in points, or "0" for inherited values.
func (v SizeValue) String() string {
	if !v.explicit {
		return "0"
	}
	return strconv.FormatFloat(v.points, 'f', -1, 64)
}

// MarshalJSON encodes inherited values as null.
func (v SizeValue) MarshalJSON() ([]byte, error) {
	if !v.explicit {
		return []byte("null"), nil
	}
	return json.Marshal(v.points)
}

// UnmarshalJSON decodes a number or null.
func (v *SizeValue) UnmarshalJSON(data []byte) error {
	var pt *float64
	if err := json.Unmarshal(data, &pt); err != nil {
		return err
	}
	if pt == nil {
		*v = InheritedSize()
		return nil
	}
	*v = ExplicitSize(*pt)
	return nil
}
