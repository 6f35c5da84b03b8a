package retention

import "time"

// AgeInMonths is the difference in whole months between now and the
// extracted date: days within the month are ignored on both sides.
func AgeInMonths(date ExtractedDate, now time.Time) int {
	return (now.Year()*12 + int(now.Month())) - (date.Year*12 + date.Month)
}

// ShouldDelete reports whether an index with the given age exceeds the
// rule's threshold. The comparison is strict: an index exactly at the
// threshold is kept.
func (r Rule) ShouldDelete(ageMonths int) bool {
	return ageMonths > r.OlderThanMonths
}
