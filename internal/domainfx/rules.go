package domainfx

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/yurykabanov/es-retention/pkg/retention"
)

const (
	ConfigRules       = "rules"
	ConfigIndexPrefix = "index-prefix"
	ConfigOlderThan   = "older-than"
	ConfigDatePattern = "date-pattern"
	ConfigNoDryRun    = "no-dryrun"
)

// LoadRules builds the retention rules either from the `rules` key of a
// config file or, in the common CLI case, as a single rule from flags.
func LoadRules(v *viper.Viper) ([]retention.Rule, error) {
	if v.IsSet(ConfigRules) {
		var rules []retention.Rule

		err := v.UnmarshalKey(ConfigRules, &rules)
		if err != nil {
			return nil, errors.Wrap(err, "Unable to unmarshal rules")
		}

		if len(rules) == 0 {
			return nil, errors.New("config file declares no rules")
		}

		for i := range rules {
			if rules[i].Pattern == "" {
				rules[i].Pattern = retention.PatternMonth
			}

			if err := rules[i].Validate(); err != nil {
				return nil, err
			}
		}

		return rules, nil
	}

	months, err := retention.ParseMonths(v.GetString(ConfigOlderThan))
	if err != nil {
		return nil, errors.Wrap(err, "Unable to parse --older-than")
	}

	rule := retention.Rule{
		Name:            "default",
		IndexPrefix:     v.GetString(ConfigIndexPrefix),
		Pattern:         retention.DatePattern(v.GetString(ConfigDatePattern)),
		OlderThanMonths: months,
		NoDryRun:        v.GetBool(ConfigNoDryRun),
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}

	return []retention.Rule{rule}, nil
}
