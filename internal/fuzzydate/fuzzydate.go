// Package fuzzydate parses loosely formatted, German-first date strings such as
// "3. Mai 2021", "03.05.2021" or "2021-05-03" into calendar dates.
//
// Numeric dates are read day-first. German month names and their common
// abbreviations are translated before the string is handed to dateparse, so
// English input keeps working as well.
package fuzzydate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/unicode/norm"
)

// ErrUnrecognized is returned when the input does not describe a calendar date.
var ErrUnrecognized = errors.New("fuzzydate: unrecognized date")

var (
	numericDMY = regexp.MustCompile(`^(\d{1,2})\s*[./]\s*(\d{1,2})\s*[./]\s*(\d{4})$`)
	compactYMD = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})$`)
	isoYMD     = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	namedDMY   = regexp.MustCompile(`^(\d{1,2})\.?\s*(\p{L}+)\.?,?\s*(\d{4})$`)
	spaces     = regexp.MustCompile(`\s+`)
)

// monthSpellings lists the accepted names per month, January first.
var monthSpellings = [][]string{
	{"januar", "jänner", "jaenner", "jan", "january"},
	{"februar", "feber", "feb", "february"},
	{"märz", "maerz", "mrz", "mär", "march", "mar"},
	{"april", "apr"},
	{"mai", "may"},
	{"juni", "jun", "june"},
	{"juli", "jul", "july"},
	{"august", "aug"},
	{"september", "sep", "sept"},
	{"oktober", "okt", "october", "oct"},
	{"november", "nov"},
	{"dezember", "dez", "december", "dec"},
}

var monthNames = func() map[string]time.Month {
	m := make(map[string]time.Month)
	for i, names := range monthSpellings {
		for _, name := range names {
			m[name] = time.Month(i + 1)
		}
	}
	return m
}()

// Parse interprets s as a date in loc. The result is midnight of that day.
func Parse(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	clean := spaces.ReplaceAllString(norm.NFC.String(strings.TrimSpace(s)), " ")
	if clean == "" {
		return time.Time{}, ErrUnrecognized
	}

	if m := numericDMY.FindStringSubmatch(clean); m != nil {
		return fromParts(m[3], m[2], m[1], loc)
	}
	if m := isoYMD.FindStringSubmatch(clean); m != nil {
		return fromParts(m[1], m[2], m[3], loc)
	}
	if m := compactYMD.FindStringSubmatch(clean); m != nil {
		return fromParts(m[1], m[2], m[3], loc)
	}
	if m := namedDMY.FindStringSubmatch(clean); m != nil {
		month, ok := monthNames[strings.ToLower(m[2])]
		if !ok {
			return time.Time{}, fmt.Errorf("%w: unknown month %q", ErrUnrecognized, m[2])
		}
		return fromParts(m[3], strconv.Itoa(int(month)), m[1], loc)
	}

	t, err := dateparse.ParseIn(clean, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrUnrecognized, err)
	}
	return Day(t.In(loc)), nil
}

// Date builds a date and reports whether year, month and day form a valid
// calendar day. time.Date normalizes overflow, so the fields are compared back.
func Date(year, month, day int, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// fromParts builds a date from numeric fields, rejecting impossible days such
// as 2021-02-30.
func fromParts(year, month, day string, loc *time.Location) (time.Time, error) {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	t, ok := Date(y, mo, d, loc)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d is not a calendar day", ErrUnrecognized, y, mo, d)
	}
	return t, nil
}
