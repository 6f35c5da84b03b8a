package retention

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcher_MonthExtractsDate(t *testing.T) {
	m, err := NewMatcher("zis-audit-", PatternMonth)
	assert.Nil(t, err)

	date, ok := m.Extract("zis-audit-2020-01")
	assert.True(t, ok)
	assert.Equal(t, ExtractedDate{Year: 2020, Month: 1}, date)

	date, ok = m.Extract("zis-audit-2025.03")
	assert.True(t, ok)
	assert.Equal(t, ExtractedDate{Year: 2025, Month: 3}, date)
}

func TestMatcher_MonthRejectsMalformedNames(t *testing.T) {
	m, err := NewMatcher("zis-audit-", PatternMonth)
	assert.Nil(t, err)

	for _, name := range []string{
		"other-prefix-2020-01",     // wrong prefix
		"zis-audit-2020-1",         // month must be two digits
		"zis-audit-2020-01-extra",  // trailing characters
		"zis-audit-2020-13",        // month out of range
		"zis-audit-2020-00",        // month out of range
		"zis-audit-202-01",         // year must be four digits
		"zis-audit-",               // no body at all
		"prefix-zis-audit-2020-01", // prefix must anchor at the start
	} {
		_, ok := m.Extract(name)
		assert.False(t, ok, "expected no match for %q", name)
	}
}

func TestMatcher_PrefixIsQuoted(t *testing.T) {
	// dots in the prefix are literal, not regex wildcards
	m, err := NewMatcher("app.logs.", PatternMonth)
	assert.Nil(t, err)

	_, ok := m.Extract("appXlogsX2020-01")
	assert.False(t, ok)

	date, ok := m.Extract("app.logs.2020-01")
	assert.True(t, ok)
	assert.Equal(t, ExtractedDate{Year: 2020, Month: 1}, date)
}

func TestMatcher_WeekDerivesMonthOfMonday(t *testing.T) {
	m, err := NewMatcher("kafka-zis-external-orders-notify-", PatternWeek)
	assert.Nil(t, err)

	// ISO week 1 of 2024 starts Monday 2024-01-01
	date, ok := m.Extract("kafka-zis-external-orders-notify-2024-1")
	assert.True(t, ok)
	assert.Equal(t, ExtractedDate{Year: 2024, Month: 1}, date)

	// ISO week 1 of 2025 starts Monday 2024-12-30
	date, ok = m.Extract("kafka-zis-external-orders-notify-2025-1")
	assert.True(t, ok)
	assert.Equal(t, ExtractedDate{Year: 2024, Month: 12}, date)

	// two-digit weeks work as well: week 31 of 2025 starts 2025-07-28
	date, ok = m.Extract("kafka-zis-external-orders-notify-2025-31")
	assert.True(t, ok)
	assert.Equal(t, ExtractedDate{Year: 2025, Month: 7}, date)
}

func TestMatcher_WeekRejectsInvalidWeeks(t *testing.T) {
	m, err := NewMatcher("foo-", PatternWeek)
	assert.Nil(t, err)

	for _, name := range []string{
		"foo-2025-0",   // week out of range
		"foo-2025-54",  // week out of range
		"foo-2025-123", // at most two digits
		"foo-2025-53",  // 2025 has no ISO week 53
	} {
		_, ok := m.Extract(name)
		assert.False(t, ok, "expected no match for %q", name)
	}

	// 2020 does have ISO week 53, starting Monday 2020-12-28
	date, ok := m.Extract("foo-2020-53")
	assert.True(t, ok)
	assert.Equal(t, ExtractedDate{Year: 2020, Month: 12}, date)
}

func TestNewMatcher_InvalidPattern(t *testing.T) {
	_, err := NewMatcher("foo-", DatePattern("daily"))
	assert.NotNil(t, err)
}
