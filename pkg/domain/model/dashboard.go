package model

import (
	"sort"
	"time"

	"github.com/secmon-lab/prpulse/pkg/domain/types"
)

// NoLabel is the sentinel label counted for records without labels
const NoLabel = "(no label)"

// WeekBucket holds per-status counts of records created in one ISO week
type WeekBucket struct {
	Key       types.WeekKey `json:"week"`
	WeekStart time.Time     `json:"week_start"`
	Open      int           `json:"open"`
	Closed    int           `json:"closed"`
	Merged    int           `json:"merged"`
}

// Count returns the tally for a single status
func (b WeekBucket) Count(status types.Status) int {
	switch status {
	case types.StatusOpen:
		return b.Open
	case types.StatusClosed:
		return b.Closed
	case types.StatusMerged:
		return b.Merged
	default:
		return 0
	}
}

// Total returns the number of records in the bucket
func (b WeekBucket) Total() int {
	return b.Open + b.Closed + b.Merged
}

// AgePoint places an open record on the weekday/age scatter
type AgePoint struct {
	ID           types.RecordID `json:"id"`
	Week         types.WeekKey  `json:"week"`
	WeekdayIndex int            `json:"weekday"`
	AgeDays      float64        `json:"age_days"`
	CreatedAt    time.Time      `json:"created_at"`
}

// AgeIndex maps ISO weeks to the age points of open records created then
type AgeIndex struct {
	now   time.Time
	weeks map[types.WeekKey][]AgePoint
}

// NewAgeIndex wraps prebuilt per-week points. Each slice must already be
// ordered.
func NewAgeIndex(now time.Time, weeks map[types.WeekKey][]AgePoint) *AgeIndex {
	if weeks == nil {
		weeks = make(map[types.WeekKey][]AgePoint)
	}
	return &AgeIndex{now: now, weeks: weeks}
}

// Now returns the reference time ages were computed against
func (x *AgeIndex) Now() time.Time {
	return x.now
}

// PointsForWeek returns a copy of the week's points; empty when absent
func (x *AgeIndex) PointsForWeek(key types.WeekKey) []AgePoint {
	points := x.weeks[key]
	result := make([]AgePoint, len(points))
	copy(result, points)
	return result
}

// Weeks returns every indexed week in ascending order
func (x *AgeIndex) Weeks() []types.WeekKey {
	keys := make([]types.WeekKey, 0, len(x.weeks))
	for k := range x.weeks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Before(keys[j])
	})
	return keys
}

// Latest returns the most recent indexed week
func (x *AgeIndex) Latest() (types.WeekKey, bool) {
	var latest types.WeekKey
	found := false
	for k := range x.weeks {
		if !found || latest.Before(k) {
			latest = k
			found = true
		}
	}
	return latest, found
}

// Len returns the total number of indexed points
func (x *AgeIndex) Len() int {
	n := 0
	for _, points := range x.weeks {
		n += len(points)
	}
	return n
}

// LabelCount is the number of records carrying a label in one week
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Selection is the shared filter applied to all three views
type Selection struct {
	RangeStart time.Time     `json:"range_start"`
	RangeEnd   time.Time     `json:"range_end"`
	Week       types.WeekKey `json:"week"`
}

// BarView is the stacked weekly bar chart input
type BarView struct {
	Buckets []WeekBucket `json:"buckets"`
	Colors  Palette      `json:"colors"`
}

// IsEmpty reports whether there is nothing to draw
func (v *BarView) IsEmpty() bool {
	return len(v.Buckets) == 0
}

// MaxTotal returns the tallest stack
func (v *BarView) MaxTotal() int {
	highest := 0
	for _, b := range v.Buckets {
		if b.Total() > highest {
			highest = b.Total()
		}
	}
	return highest
}

// ScatterView is the open-item age scatter input for the selected week
type ScatterView struct {
	Week          types.WeekKey `json:"week"`
	Points        []AgePoint    `json:"points"`
	WeekdayDomain [2]int        `json:"weekday_domain"`
	Color         string        `json:"color"`
}

// PointColor returns the point color, falling back to the default open color
func (v *ScatterView) PointColor() string {
	if v.Color == "" {
		return DefaultPalette().Open
	}
	return v.Color
}

// IsEmpty reports whether there is nothing to draw
func (v *ScatterView) IsEmpty() bool {
	return len(v.Points) == 0
}

// PieView is the label distribution input for the selected week
type PieView struct {
	Week   types.WeekKey `json:"week"`
	Counts []LabelCount  `json:"counts"`
}

// IsEmpty reports whether there is nothing to draw
func (v *PieView) IsEmpty() bool {
	return len(v.Counts) == 0
}

// Total returns the sum of all label counts
func (v *PieView) Total() int {
	n := 0
	for _, c := range v.Counts {
		n += c.Count
	}
	return n
}

// Views bundles the three derived views for one selection
type Views struct {
	DatasetID types.DatasetID `json:"dataset_id"`
	Selection Selection       `json:"selection"`
	Bar       BarView         `json:"bar"`
	Scatter   ScatterView     `json:"scatter"`
	Pie       PieView         `json:"pie"`
	// OpenWeeks lists every week with open items, regardless of the range
	OpenWeeks []types.WeekKey `json:"open_weeks"`
}
