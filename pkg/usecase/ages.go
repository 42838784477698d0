package usecase

import (
	"sort"
	"time"

	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/domain/types"
)

const millisPerDay = 24 * 60 * 60 * 1000

// IndexOpenAges builds the age index of every open record against now.
// It covers the full record list regardless of any selected range.
func IndexOpenAges(records []*model.Record, now time.Time) *model.AgeIndex {
	weeks := make(map[types.WeekKey][]model.AgePoint)

	for _, r := range records {
		if r.Status != types.StatusOpen {
			continue
		}
		key := r.Week()
		weeks[key] = append(weeks[key], model.AgePoint{
			ID:           r.ID,
			Week:         key,
			WeekdayIndex: types.WeekdayIndex(r.CreatedAt),
			AgeDays:      float64(now.Sub(r.CreatedAt).Milliseconds()) / millisPerDay,
			CreatedAt:    r.CreatedAt,
		})
	}

	for _, points := range weeks {
		sort.Slice(points, func(i, j int) bool {
			if !points[i].CreatedAt.Equal(points[j].CreatedAt) {
				return points[i].CreatedAt.Before(points[j].CreatedAt)
			}
			return points[i].ID < points[j].ID
		})
	}

	return model.NewAgeIndex(now, weeks)
}
