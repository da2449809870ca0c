package pdfrename

import (
	"regexp"
	"strings"
)

// TitleOptions tunes title extraction.
type TitleOptions struct {
	// Placeholder is returned when no keyword matches. Defaults to "Unknown".
	Placeholder string
	// MaxLength caps the matched window in characters. Defaults to 80.
	MaxLength int
}

func (o TitleOptions) withDefaults() TitleOptions {
	if o.Placeholder == "" {
		o.Placeholder = "Unknown"
	}
	if o.MaxLength <= 0 {
		o.MaxLength = 80
	}
	return o
}

const (
	wordChar = `[\p{L}\p{N}_]`
	gap      = `[ \t]+`
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	slugger    = strings.NewReplacer(
		"/", "_",
		`\`, "_",
		":", "_",
		";", "_",
		"*", "_",
		"?", "_",
		"<", "_",
		">", "_",
		"|", "_",
		`"`, "",
		"'", "",
		" ", "_",
	)
)

// windowPattern matches up to five word groups on either side of keyword,
// staying within one line and one sentence.
func windowPattern(keyword string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)(?:` + wordChar + `[^\n\r.]{0,30}` + gap + `){0,5}` +
		regexp.QuoteMeta(keyword) +
		`(?:` + gap + `[^\n\r.]{0,30}` + wordChar + `){0,5}`)
}

// wordPattern matches keyword at a word start plus its trailing word characters.
func wordPattern(keyword string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)(?:^|[^\p{L}\p{N}_])(` + regexp.QuoteMeta(keyword) + wordChar + `*)`)
}

// ExtractTitle derives a filename-safe title from the first keyword, in
// OrderKeywords order, that occurs in text. The title is the keyword together
// with its surrounding words. Without a match the placeholder is returned.
func ExtractTitle(text string, keywords []string, opts TitleOptions) string {
	opts = opts.withDefaults()

	for _, keyword := range OrderKeywords(keywords) {
		if re, err := windowPattern(keyword); err == nil {
			if window := re.FindString(text); window != "" {
				return Slug(truncateAtSpace(strings.TrimSpace(window), opts.MaxLength))
			}
		}

		if re, err := wordPattern(keyword); err == nil {
			if sub := re.FindStringSubmatch(text); sub != nil {
				return Slug(sub[1])
			}
		}
	}
	return opts.Placeholder
}

// truncateAtSpace shortens s to at most max characters at the last space, as
// long as that keeps more than half of max. Otherwise s is returned unchanged.
func truncateAtSpace(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	head := string(runes[:max])
	cut := strings.LastIndex(head, " ")
	if cut < 0 || len([]rune(head[:cut])) <= max/2 {
		return s
	}
	return head[:cut]
}

// Slug collapses whitespace and replaces characters that are unsafe in file names.
func Slug(s string) string {
	s = whitespace.ReplaceAllString(strings.TrimSpace(s), " ")
	return slugger.Replace(s)
}
