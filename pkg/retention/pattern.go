package retention

import (
	"regexp"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// ExtractedDate is the first day of the month an index belongs to,
// derived from the date encoded in its name.
type ExtractedDate struct {
	Year  int
	Month int
}

// Matcher extracts dates from index names for a fixed prefix and pattern.
//
// The date body must be the entire remainder of the name after the prefix:
// wrong prefix, malformed body or trailing characters all mean "no match".
type Matcher struct {
	pattern DatePattern
	re      *regexp.Regexp
}

func NewMatcher(prefix string, pattern DatePattern) (*Matcher, error) {
	var body string

	switch pattern {
	case PatternMonth:
		body = `(\d{4})[.-](\d{2})`
	case PatternWeek:
		body = `(\d{4})-(\d{1,2})`
	default:
		return nil, errors.Errorf("invalid date pattern '%s'", pattern)
	}

	re, err := regexp.Compile(`^` + regexp.QuoteMeta(prefix) + body + `$`)
	if err != nil {
		return nil, errors.Wrap(err, "unable to compile index name pattern")
	}

	return &Matcher{
		pattern: pattern,
		re:      re,
	}, nil
}

// Extract returns the date encoded in the index name. Names that do not
// match the pattern, or match it with an out-of-range month or week,
// report ok == false and are never candidates for deletion.
func (m *Matcher) Extract(name string) (ExtractedDate, bool) {
	caps := m.re.FindStringSubmatch(name)
	if caps == nil {
		return ExtractedDate{}, false
	}

	year, err := strconv.Atoi(caps[1])
	if err != nil {
		return ExtractedDate{}, false
	}

	part, err := strconv.Atoi(caps[2])
	if err != nil {
		return ExtractedDate{}, false
	}

	switch m.pattern {
	case PatternMonth:
		if part < 1 || part > 12 {
			return ExtractedDate{}, false
		}

		return ExtractedDate{Year: year, Month: part}, true

	case PatternWeek:
		if part < 1 || part > 53 {
			return ExtractedDate{}, false
		}

		monday, ok := isoWeekStart(year, part)
		if !ok {
			return ExtractedDate{}, false
		}

		return ExtractedDate{Year: monday.Year(), Month: int(monday.Month())}, true
	}

	return ExtractedDate{}, false
}

// isoWeekStart returns the Monday starting the given ISO week. Week 53
// only exists in some years, so the result is verified by mapping it
// back through ISOWeek.
func isoWeekStart(year, week int) (time.Time, bool) {
	// January 4th is always within ISO week 1
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)

	wd := int(jan4.Weekday())
	if wd == 0 {
		wd = 7
	}

	monday := jan4.AddDate(0, 0, 1-wd+(week-1)*7)

	y, w := monday.ISOWeek()
	if y != year || w != week {
		return time.Time{}, false
	}

	return monday, true
}
