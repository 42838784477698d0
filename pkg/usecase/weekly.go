package usecase

import (
	"time"

	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/domain/types"
)

// AggregateWeekly counts records created in [rangeStart, rangeEnd] by ISO
// week and status. An inverted range is swapped. The result has one bucket
// per week from the week of rangeStart through the week of rangeEnd,
// ascending, with empty weeks zero-filled. An unset bound or an empty
// record list yields no buckets.
func AggregateWeekly(records []*model.Record, rangeStart, rangeEnd time.Time) []model.WeekBucket {
	if len(records) == 0 || rangeStart.IsZero() || rangeEnd.IsZero() {
		return []model.WeekBucket{}
	}
	if rangeStart.After(rangeEnd) {
		rangeStart, rangeEnd = rangeEnd, rangeStart
	}

	first := types.FloorWeek(rangeStart)
	n := types.WeeksBetween(first, rangeEnd) + 1

	buckets := make([]model.WeekBucket, n)
	for i := range buckets {
		start := first.AddDate(0, 0, 7*i)
		buckets[i] = model.WeekBucket{
			Key:       types.WeekKeyOf(start),
			WeekStart: start,
		}
	}

	for _, r := range records {
		if r.CreatedAt.Before(rangeStart) || r.CreatedAt.After(rangeEnd) {
			continue
		}
		b := &buckets[types.WeeksBetween(first, r.CreatedAt)]
		switch r.Status {
		case types.StatusOpen:
			b.Open++
		case types.StatusClosed:
			b.Closed++
		case types.StatusMerged:
			b.Merged++
		}
	}

	return buckets
}
