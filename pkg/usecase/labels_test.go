package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/domain/types"
	"github.com/secmon-lab/prpulse/pkg/usecase"
)

func TestLabelCountsForWeek(t *testing.T) {
	t.Run("unlabeled records count toward the sentinel", func(t *testing.T) {
		records := []*model.Record{
			newRecord(t, 1, "2025-04-01T10:00:00Z", types.StatusOpen),
			newRecord(t, 2, "2025-04-02T10:00:00Z", types.StatusOpen, "bug"),
			newRecord(t, 3, "2025-04-03T10:00:00Z", types.StatusMerged, "bug", "ui"),
		}
		counts := usecase.LabelCountsForWeek(records, w14)
		gt.Equal(t, []model.LabelCount{
			{Label: "bug", Count: 2},
			{Label: model.NoLabel, Count: 1},
			{Label: "ui", Count: 1},
		}, counts)
	})

	t.Run("only records of the week are counted", func(t *testing.T) {
		records := []*model.Record{
			newRecord(t, 1, "2025-04-01T10:00:00Z", types.StatusOpen, "bug"),
			newRecord(t, 2, "2025-04-08T10:00:00Z", types.StatusOpen, "docs"),
		}
		counts := usecase.LabelCountsForWeek(records, w15)
		gt.Equal(t, []model.LabelCount{{Label: "docs", Count: 1}}, counts)
	})

	t.Run("all statuses contribute", func(t *testing.T) {
		records := []*model.Record{
			newRecord(t, 1, "2025-04-01T10:00:00Z", types.StatusOpen, "a"),
			newRecord(t, 2, "2025-04-01T10:00:00Z", types.StatusClosed, "a"),
			newRecord(t, 3, "2025-04-01T10:00:00Z", types.StatusMerged, "a"),
		}
		counts := usecase.LabelCountsForWeek(records, w14)
		gt.Equal(t, []model.LabelCount{{Label: "a", Count: 3}}, counts)
	})

	t.Run("repeated labels on one record count once", func(t *testing.T) {
		records := []*model.Record{
			newRecord(t, 1, "2025-04-01T10:00:00Z", types.StatusOpen, "bug", "bug"),
		}
		counts := usecase.LabelCountsForWeek(records, w14)
		gt.Equal(t, []model.LabelCount{{Label: "bug", Count: 1}}, counts)
	})

	t.Run("ties keep first-seen order", func(t *testing.T) {
		records := []*model.Record{
			newRecord(t, 1, "2025-04-01T10:00:00Z", types.StatusOpen, "zeta"),
			newRecord(t, 2, "2025-04-01T10:00:00Z", types.StatusOpen, "alpha"),
			newRecord(t, 3, "2025-04-01T10:00:00Z", types.StatusOpen, "mid", "alpha"),
		}
		counts := usecase.LabelCountsForWeek(records, w14)
		gt.Equal(t, []model.LabelCount{
			{Label: "alpha", Count: 2},
			{Label: "zeta", Count: 1},
			{Label: "mid", Count: 1},
		}, counts)
	})

	t.Run("sum covers at least every record of the week", func(t *testing.T) {
		records := []*model.Record{
			newRecord(t, 1, "2025-04-01T10:00:00Z", types.StatusOpen),
			newRecord(t, 2, "2025-04-01T10:00:00Z", types.StatusOpen, "x", "y"),
			newRecord(t, 3, "2025-04-01T10:00:00Z", types.StatusOpen, "y"),
		}
		counts := usecase.LabelCountsForWeek(records, w14)
		view := model.PieView{Week: w14, Counts: counts}
		gt.True(t, view.Total() >= len(records))
		gt.Equal(t, 4, view.Total())
	})

	t.Run("week without records", func(t *testing.T) {
		counts := usecase.LabelCountsForWeek([]*model.Record{
			newRecord(t, 1, "2025-04-01T10:00:00Z", types.StatusOpen, "bug"),
		}, w18)
		gt.V(t, counts).NotNil()
		gt.Equal(t, 0, len(counts))
	})
}
