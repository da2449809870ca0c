package stamp

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"filekit/internal/fuzzydate"
)

var filenamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})_.*\.(?i:pdf)$`),
	regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})_.*\.(?i:pdf)$`),
	regexp.MustCompile(`^.*_(\d{4})(\d{2})(\d{2})\.(?i:pdf)$`),
}

// ParseFilenameDate returns midnight, local time, of the date encoded in the
// base name of path. The first matching pattern decides; if its digits are
// not a calendar day the result is ErrInvalidDate.
func ParseFilenameDate(path string) (time.Time, error) {
	name := filepath.Base(path)
	for _, re := range filenamePatterns {
		m := re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		date, ok := fuzzydate.Date(y, mo, d, time.Local)
		if !ok {
			return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, name)
		}
		return date, nil
	}
	return time.Time{}, fmt.Errorf("%w: %s", ErrNoPattern, name)
}
