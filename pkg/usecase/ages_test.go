package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/domain/types"
	"github.com/secmon-lab/prpulse/pkg/usecase"
)

func TestIndexOpenAges(t *testing.T) {
	now := mustTime(t, "2025-04-11T10:00:00Z")
	records := []*model.Record{
		newRecord(t, 1, "2025-04-01T10:00:00Z", types.StatusOpen),
		newRecord(t, 2, "2025-04-01T11:00:00Z", types.StatusMerged),
		newRecord(t, 3, "2025-04-03T09:00:00Z", types.StatusClosed),
		newRecord(t, 4, "2025-04-09T22:00:00Z", types.StatusOpen),
		newRecord(t, 5, "2025-03-31T08:00:00Z", types.StatusOpen),
		newRecord(t, 6, "2025-04-06T23:59:59Z", types.StatusOpen),
	}

	index := usecase.IndexOpenAges(records, now)

	t.Run("only open records are indexed", func(t *testing.T) {
		gt.Equal(t, 4, index.Len())
		gt.Equal(t, []types.WeekKey{w14, w15}, index.Weeks())
		gt.Equal(t, now, index.Now())
	})

	t.Run("points are ordered by creation time", func(t *testing.T) {
		points := index.PointsForWeek(w14)
		gt.Equal(t, 3, len(points))
		gt.Equal(t, types.RecordID(5), points[0].ID)
		gt.Equal(t, types.RecordID(1), points[1].ID)
		gt.Equal(t, types.RecordID(6), points[2].ID)
	})

	t.Run("weekday index is Monday based", func(t *testing.T) {
		points := index.PointsForWeek(w14)
		gt.Equal(t, 0, points[0].WeekdayIndex)
		gt.Equal(t, 1, points[1].WeekdayIndex)
		gt.Equal(t, 6, points[2].WeekdayIndex)
	})

	t.Run("age is fractional days since creation", func(t *testing.T) {
		gt.Equal(t, 10.0, index.PointsForWeek(w14)[1].AgeDays)
		gt.Equal(t, 1.5, index.PointsForWeek(w15)[0].AgeDays)
	})

	t.Run("unknown week yields an empty list", func(t *testing.T) {
		points := index.PointsForWeek(w18)
		gt.V(t, points).NotNil()
		gt.Equal(t, 0, len(points))
	})

	t.Run("latest week with open records", func(t *testing.T) {
		latest, ok := index.Latest()
		gt.True(t, ok)
		gt.Equal(t, w15, latest)
	})

	t.Run("returned slices are copies", func(t *testing.T) {
		points := index.PointsForWeek(w15)
		points[0].AgeDays = -1
		gt.Equal(t, 1.5, index.PointsForWeek(w15)[0].AgeDays)
	})

	t.Run("no open records", func(t *testing.T) {
		empty := usecase.IndexOpenAges([]*model.Record{
			newRecord(t, 1, "2025-04-01T10:00:00Z", types.StatusClosed),
		}, now)
		gt.Equal(t, 0, empty.Len())
		_, ok := empty.Latest()
		gt.False(t, ok)
	})
}
