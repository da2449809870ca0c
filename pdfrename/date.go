package pdfrename

import (
	"path/filepath"
	"regexp"
	"time"

	"filekit/internal/fuzzydate"
)

// DateMatcher pairs a pattern with the capture group holding the date text.
// Group 0 uses the whole match.
type DateMatcher struct {
	Name    string
	Pattern *regexp.Regexp
	Group   int
}

// match returns the date substring of the first match in text.
func (m DateMatcher) match(text string) (string, bool) {
	sub := m.Pattern.FindStringSubmatch(text)
	if sub == nil || m.Group >= len(sub) || sub[m.Group] == "" {
		return "", false
	}
	return sub[m.Group], true
}

const (
	// labelDate is the date shape accepted after a label: "3. Mai 2021" or "03.05.2021".
	labelDate = `(\d{1,2}\.\s*\p{L}+\.?\s*\d{4}|\d{1,2}\.\d{1,2}\.\d{4})`
	// labelPlace optionally skips a place name written before the date ("Berlin, ").
	labelPlace = `(?:\p{L}[\p{L} .\-]{0,40},\s*)?`
)

// DefaultDateMatchers returns the matchers in priority order: labelled
// fields first, then bare dates from the most to the least common shape.
func DefaultDateMatchers() []DateMatcher {
	return []DateMatcher{
		{
			Name:    "place-date label",
			Pattern: regexp.MustCompile(`(?i)Ort\s*,\s*D[au]tum\s*[:\-]?\s*` + labelPlace + labelDate),
			Group:   1,
		},
		{
			Name:    "date-place label",
			Pattern: regexp.MustCompile(`(?i)D[au]tum\s*,\s*Ort\s*[:\-]?\s*` + labelPlace + labelDate),
			Group:   1,
		},
		{
			Name:    "signature label",
			Pattern: regexp.MustCompile(`(?i)Unterschrift(?:en)?\s*[:\-]?\s*` + labelDate),
			Group:   1,
		},
		{
			Name:    "dotted numeric",
			Pattern: regexp.MustCompile(`\b(\d{1,2}\.\d{1,2}\.\d{4})\b`),
			Group:   1,
		},
		{
			Name:    "month name",
			Pattern: regexp.MustCompile(`(?i)\b(\d{1,2}\.\s*\p{L}+\.?\s*\d{4})\b`),
			Group:   1,
		},
		{
			Name:    "iso",
			Pattern: regexp.MustCompile(`\b(\d{4}-\d{1,2}-\d{1,2})\b`),
			Group:   1,
		},
		{
			Name:    "slash numeric",
			Pattern: regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`),
			Group:   1,
		},
	}
}

var filenameMatchers = []DateMatcher{
	{Name: "filename prefix", Pattern: regexp.MustCompile(`^(\d{8})_`), Group: 1},
	{Name: "filename iso", Pattern: regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`), Group: 1},
	{Name: "filename dotted", Pattern: regexp.MustCompile(`(\d{2}\.\d{2}\.\d{4})`), Group: 1},
}

// DateExtractor finds the document date in extracted text.
type DateExtractor struct {
	// Matchers are tried in order; the first one whose first match parses wins.
	Matchers []DateMatcher
	// Location of the returned dates. Defaults to time.Local.
	Location *time.Location
}

// NewDateExtractor returns an extractor using DefaultDateMatchers.
func NewDateExtractor() *DateExtractor {
	return &DateExtractor{Matchers: DefaultDateMatchers(), Location: time.Local}
}

// Extract returns the date of a document and the name of the matcher that
// found it. When the text holds no usable date, a date embedded in the base
// name of filename is used. ok is false when neither source has one.
func (e *DateExtractor) Extract(text, filename string) (date time.Time, matcher string, ok bool) {
	if date, matcher, ok = e.first(e.Matchers, text); ok {
		return date, matcher, true
	}
	if filename == "" {
		return time.Time{}, "", false
	}
	return e.first(filenameMatchers, filepath.Base(filename))
}

func (e *DateExtractor) first(matchers []DateMatcher, s string) (time.Time, string, bool) {
	for _, m := range matchers {
		raw, found := m.match(s)
		if !found {
			continue
		}
		date, err := fuzzydate.Parse(raw, e.Location)
		if err != nil {
			continue
		}
		return date, m.Name, true
	}
	return time.Time{}, "", false
}

// ExtractDate is a shortcut for NewDateExtractor().Extract without the matcher name.
func ExtractDate(text, filename string) (time.Time, bool) {
	date, _, ok := NewDateExtractor().Extract(text, filename)
	return date, ok
}
