package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// WeekKey is an ISO 8601 (year, week) pair. Weeks start on Monday 00:00 UTC.
type WeekKey struct {
	Year int
	Week int
}

// WeekKeyOf returns the ISO week containing t
func WeekKeyOf(t time.Time) WeekKey {
	y, w := t.UTC().ISOWeek()
	return WeekKey{Year: y, Week: w}
}

// ParseWeekKey parses "YYYY-Www" (e.g. "2025-W14")
func ParseWeekKey(s string) (WeekKey, error) {
	y, w, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(s)), "-W")
	if !ok {
		return WeekKey{}, goerr.New("week key must be formatted as YYYY-Www", goerr.V("value", s))
	}

	year, err := strconv.Atoi(y)
	if err != nil {
		return WeekKey{}, goerr.Wrap(err, "invalid year in week key", goerr.V("value", s))
	}
	week, err := strconv.Atoi(w)
	if err != nil {
		return WeekKey{}, goerr.Wrap(err, "invalid week in week key", goerr.V("value", s))
	}

	key := WeekKey{Year: year, Week: week}
	if err := key.Validate(); err != nil {
		return WeekKey{}, err
	}
	return key, nil
}

// String returns the ISO label, e.g. "2025-W14". The zero key renders empty.
func (k WeekKey) String() string {
	if k.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-W%02d", k.Year, k.Week)
}

// IsZero reports whether the key is unset
func (k WeekKey) IsZero() bool {
	return k.Year == 0 && k.Week == 0
}

// Validate checks that the week exists in its ISO year
func (k WeekKey) Validate() error {
	if k.Year < 1 || k.Year > 9999 {
		return goerr.New("week key year out of range", goerr.V("year", k.Year))
	}
	if k.Week < 1 || k.Week > WeeksInYear(k.Year) {
		return goerr.New("week number out of range for year",
			goerr.V("year", k.Year),
			goerr.V("week", k.Week),
			goerr.V("max", WeeksInYear(k.Year)))
	}
	return nil
}

// Start returns Monday 00:00 UTC of the week
func (k WeekKey) Start() time.Time {
	// January 4th always falls in ISO week 1
	jan4 := time.Date(k.Year, time.January, 4, 0, 0, 0, 0, time.UTC)
	week1 := FloorWeek(jan4)
	return week1.AddDate(0, 0, 7*(k.Week-1))
}

// Next returns the following week
func (k WeekKey) Next() WeekKey {
	return WeekKeyOf(k.Start().AddDate(0, 0, 7))
}

// Before reports whether k is an earlier week than other
func (k WeekKey) Before(other WeekKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Week < other.Week
}

// MarshalText implements encoding.TextMarshaler
func (k WeekKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *WeekKey) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*k = WeekKey{}
		return nil
	}
	key, err := ParseWeekKey(string(b))
	if err != nil {
		return err
	}
	*k = key
	return nil
}

// WeeksInYear returns 52 or 53, the number of ISO weeks in year
func WeeksInYear(year int) int {
	// December 28th is always in the last ISO week of its year
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

// FloorWeek truncates t to Monday 00:00 UTC of its week
func FloorWeek(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day()-WeekdayIndex(t), 0, 0, 0, 0, time.UTC)
}

// WeeksBetween returns the number of whole weeks from the week of from to
// the week of to. It is negative when to is in an earlier week.
func WeeksBetween(from, to time.Time) int {
	const secondsPerWeek = 7 * 24 * 60 * 60
	return int((FloorWeek(to).Unix() - FloorWeek(from).Unix()) / secondsPerWeek)
}

// WeekEnd returns the last instant of the week containing t
func WeekEnd(t time.Time) time.Time {
	return FloorWeek(t).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// WeekdayIndex returns 0 for Monday through 6 for Sunday
func WeekdayIndex(t time.Time) int {
	return (int(t.UTC().Weekday()) + 6) % 7
}
