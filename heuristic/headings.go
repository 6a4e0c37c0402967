package heuristic

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	levelFormats = map[int]*regexp.Regexp{
		1: regexp.MustCompile(`^\d+\.\s+[A-Z\s]+$`),
		2: regexp.MustCompile(`^\d+\.\d+\s+`),
		3: regexp.MustCompile(`^\d+\.\d+\.\d+\s+`),
		4: regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+\s+`),
	}
	chapterFormat = regexp.MustCompile(`^\d+\.\s+(CHAPTER\s+)?[A-Z\s]+$`)
	firstInteger  = regexp.MustCompile(`\d+`)

	upper = cases.Upper(language.Und)
)

// IsHeadingStyle reports whether a paragraph style identifier names a
// heading style ("Heading1", "heading 2", "MyHeading").
func IsHeadingStyle(styleID string) bool {
	return strings.Contains(strings.ToLower(styleID), "heading")
}

// HeadingLevel returns the first integer embedded in a heading style
// identifier, or 1 when there is none.
func HeadingLevel(styleID string) int {
	m := firstInteger.FindString(styleID)
	if m == "" {
		return 1
	}
	level, err := strconv.Atoi(m)
	if err != nil || level < 1 {
		return 1
	}
	return level
}

// ToUpper returns text in upper case using Unicode case mapping.
func ToUpper(text string) string {
	return upper.String(text)
}

// IsAllCaps reports whether text is unchanged by upper-casing.
func IsAllCaps(text string) bool {
	return ToUpper(text) == text
}

// HasLevelFormat reports whether text follows the numbering format of a
// heading level:
//
//	1  "1. HEADING TEXT"
//	2  "1.1 Heading Text"
//	3  "1.1.1 Heading Text"
//	4  "1.1.1.1 Heading Text"
//
// Levels without a prescribed format always pass.
func HasLevelFormat(level int, text string) bool {
	re, ok := levelFormats[level]
	if !ok {
		return true
	}
	return re.MatchString(text)
}

// HasChapterFormat reports a dissertation chapter heading such as
// "1. CHAPTER ONE HEADING" or "1. HEADING".
func HasChapterFormat(text string) bool {
	return chapterFormat.MatchString(text)
}
