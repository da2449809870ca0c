package pdfrename

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bluele/gcache"
)

// ParseKeywords reads one keyword per line. Surrounding whitespace and a
// leading UTF-8 byte order mark are stripped; blank lines are ignored.
func ParseKeywords(r io.Reader) ([]string, error) {
	var keywords []string
	sc := bufio.NewScanner(r)
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		keywords = append(keywords, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return keywords, nil
}

// LoadKeywords reads a keyword file in declared order.
func LoadKeywords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Op: "load keywords", Path: path, Err: err}
	}
	defer f.Close()

	keywords, err := ParseKeywords(f)
	if err != nil {
		return nil, &FileError{Op: "load keywords", Path: path, Err: err}
	}
	return keywords, nil
}

// OrderKeywords returns the match order: longer keywords first so specific
// terms win over generic substrings, with the declared order breaking ties.
// Blank entries are dropped.
func OrderKeywords(keywords []string) []string {
	ordered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if strings.TrimSpace(k) != "" {
			ordered = append(ordered, k)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return utf8.RuneCountInString(ordered[i]) > utf8.RuneCountInString(ordered[j])
	})
	return ordered
}

// KeywordLoader caches keyword files for the lifetime of a run. Entries are
// keyed by path, size and modification time, so an edited file is re-read.
type KeywordLoader struct {
	cache gcache.Cache
}

type keywordKey struct {
	path    string
	size    int64
	modTime int64
}

// NewKeywordLoader returns a loader holding up to size keyword files.
func NewKeywordLoader(size int) *KeywordLoader {
	if size <= 0 {
		size = 4
	}
	return &KeywordLoader{
		cache: gcache.New(size).LRU().LoaderFunc(func(key interface{}) (interface{}, error) {
			return LoadKeywords(key.(keywordKey).path)
		}).Build(),
	}
}

// Load returns the keywords of path in declared order.
func (l *KeywordLoader) Load(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &FileError{Op: "load keywords", Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &FileError{Op: "load keywords", Path: path, Err: fmt.Errorf("is a directory")}
	}

	v, err := l.cache.Get(keywordKey{path: path, size: info.Size(), modTime: info.ModTime().UnixNano()})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}
