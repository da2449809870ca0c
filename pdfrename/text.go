package pdfrename

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// TextSource yields the plain text of the first pages of a document.
type TextSource interface {
	Text(ctx context.Context, path string, pages int) (string, error)
}

// PDFTextSource reads the text layer with github.com/ledongthuc/pdf.
type PDFTextSource struct{}

// Text concatenates the text of at most pages leading pages (all pages when
// pages <= 0). Scanned documents without a text layer yield an empty string.
func (PDFTextSource) Text(ctx context.Context, path string, pages int) (text string, err error) {
	// The pdf package panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrUnreadable, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	n := reader.NumPage()
	if pages > 0 && pages < n {
		n = pages
	}

	fonts := make(map[string]*pdf.Font)
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}
		pageText, err := page.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrUnreadable, i, err)
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	return NormalizeText(sb.String()), nil
}

// textCleaner maps no-break space to space and drops soft hyphens and
// zero-width spaces.
var textCleaner = strings.NewReplacer(
	"\u00a0", " ",
	"\u00ad", "",
	"\u200b", "",
)

// NormalizeText composes combining sequences (a + U+0308 becomes ä) and drops
// invisible characters that break pattern matching.
func NormalizeText(s string) string {
	return textCleaner.Replace(norm.NFC.String(s))
}
