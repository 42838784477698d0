package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// DateLayout is the form used by date inputs
const DateLayout = "2006-01-02"

// ParseSelectionTime accepts a calendar date (taken as 00:00 UTC) or an
// RFC 3339 timestamp
func ParseSelectionTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, goerr.New("time value is empty", goerr.T(ErrTagInvalidSelection))
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "time must be YYYY-MM-DD or RFC3339",
			goerr.V("value", s),
			goerr.T(ErrTagInvalidSelection))
	}
	return t.UTC(), nil
}

// Normalized returns the selection with its range in ascending order
func (s Selection) Normalized() Selection {
	if s.RangeStart.After(s.RangeEnd) {
		s.RangeStart, s.RangeEnd = s.RangeEnd, s.RangeStart
	}
	return s
}
