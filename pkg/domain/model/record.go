package model

import (
	"log/slog"
	"time"

	"github.com/secmon-lab/prpulse/pkg/domain/types"
)

// Record is one tracked item. Records are never modified after load.
type Record struct {
	ID        types.RecordID `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Status    types.Status   `json:"status"`
	Labels    []string       `json:"labels"`
	ClosedAt  *time.Time     `json:"closed_at,omitempty"`
	MergedAt  *time.Time     `json:"merged_at,omitempty"`
	Author    string         `json:"author,omitempty"`
}

// Week returns the ISO week the record was created in
func (r *Record) Week() types.WeekKey {
	return types.WeekKeyOf(r.CreatedAt)
}

// AnomalyKind classifies a problem found while loading a row
type AnomalyKind string

const (
	AnomalyInvalidCreatedAt AnomalyKind = "invalid_created_at"
	AnomalyInvalidNumber    AnomalyKind = "invalid_number"
	AnomalyDuplicateNumber  AnomalyKind = "duplicate_number"
	AnomalyUnknownState     AnomalyKind = "unknown_state"
	AnomalyInvalidMergedAt  AnomalyKind = "invalid_merged_at"
)

// Anomaly describes a suspicious or rejected input row
type Anomaly struct {
	Line     int         `json:"line"`
	RecordID string      `json:"record_id"`
	Kind     AnomalyKind `json:"kind"`
	Value    string      `json:"value"`
	Dropped  bool        `json:"dropped"`
}

// LogValue returns structured log value
func (a Anomaly) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", a.Line),
		slog.String("record_id", a.RecordID),
		slog.String("kind", string(a.Kind)),
		slog.String("value", a.Value),
		slog.Bool("dropped", a.Dropped),
	)
}

// LoadReport summarizes a load. Dropped counts rows that produced no record.
type LoadReport struct {
	Rows      int       `json:"rows"`
	Dropped   int       `json:"dropped"`
	Anomalies []Anomaly `json:"anomalies"`
}

// Dataset is an immutable snapshot of loaded records
type Dataset struct {
	ID       types.DatasetID `json:"id"`
	Records  []*Record       `json:"-"`
	Report   LoadReport      `json:"report"`
	LoadedAt time.Time       `json:"loaded_at"`
}

// Len returns the number of retained records
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// CreatedBounds returns the earliest and latest creation time. ok is false
// for an empty dataset.
func (d *Dataset) CreatedBounds() (minT, maxT time.Time, ok bool) {
	if d.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	minT, maxT = d.Records[0].CreatedAt, d.Records[0].CreatedAt
	for _, r := range d.Records[1:] {
		if r.CreatedAt.Before(minT) {
			minT = r.CreatedAt
		}
		if r.CreatedAt.After(maxT) {
			maxT = r.CreatedAt
		}
	}
	return minT, maxT, true
}
