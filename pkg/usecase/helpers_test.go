package usecase_test

import (
	"testing"
	"time"

	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/domain/types"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", s, err)
	}
	return ts.UTC()
}

func newRecord(t *testing.T, id int, createdAt string, status types.Status, labels ...string) *model.Record {
	t.Helper()
	if labels == nil {
		labels = []string{}
	}
	return &model.Record{
		ID:        types.RecordID(id),
		CreatedAt: mustTime(t, createdAt),
		Status:    status,
		Labels:    labels,
	}
}

var (
	w14 = types.WeekKey{Year: 2025, Week: 14}
	w15 = types.WeekKey{Year: 2025, Week: 15}
	w16 = types.WeekKey{Year: 2025, Week: 16}
	w18 = types.WeekKey{Year: 2025, Week: 18}
)
