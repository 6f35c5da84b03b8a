package retention

import (
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

type DatePattern string

const (
	// Indices named PREFIX + YYYY-MM or PREFIX + YYYY.MM
	PatternMonth DatePattern = "month"

	// Indices named PREFIX + YYYY-W with W being an ISO week number
	PatternWeek DatePattern = "week"
)

func (p DatePattern) IsValid() bool {
	return p == PatternMonth || p == PatternWeek
}

// Rule describes a single retention sweep: which indices to consider
// and how old (in whole months) they must be before deletion.
//
// The zero value of NoDryRun means dry-run, so a rule never deletes
// anything unless explicitly told to.
type Rule struct {
	Name            string      `mapstructure:"name"`
	IndexPrefix     string      `mapstructure:"index_prefix"`
	Pattern         DatePattern `mapstructure:"date_pattern"`
	OlderThanMonths int         `mapstructure:"older_than_months"`
	NoDryRun        bool        `mapstructure:"no_dryrun"`
}

func (r Rule) DryRun() bool {
	return !r.NoDryRun
}

func (r Rule) Validate() error {
	if r.Name == "" {
		return errors.New("rule name must not be empty")
	}

	if r.IndexPrefix == "" {
		return errors.Errorf("rule '%s': index prefix must not be empty", r.Name)
	}

	if !r.Pattern.IsValid() {
		return errors.Errorf("rule '%s': invalid date pattern '%s', expected 'month' or 'week'", r.Name, r.Pattern)
	}

	if r.OlderThanMonths < 0 {
		return errors.Errorf("rule '%s': age threshold must be non-negative", r.Name)
	}

	return nil
}

var monthsRegex = regexp.MustCompile(`(?i)^\s*(\d+)\s*(?:m(?:onths?)?)?\s*$`)

// ParseMonths parses an age threshold given either as a bare number of
// months ("25") or with a unit suffix ("25m", "12 months").
func ParseMonths(s string) (int, error) {
	caps := monthsRegex.FindStringSubmatch(s)
	if caps == nil {
		return 0, errors.Errorf("invalid months value: '%s', try '25' or '25m'", s)
	}

	n, err := strconv.Atoi(caps[1])
	if err != nil {
		return 0, errors.Wrapf(err, "invalid months value: '%s'", s)
	}

	return n, nil
}
