package usecase

import (
	"sort"

	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/domain/types"
)

// LabelCountsForWeek tallies labels of the records created in the given
// week. Unlabeled records count once toward model.NoLabel. The result is
// ordered by descending count; equal counts keep the order in which the
// labels were first seen while walking the records.
func LabelCountsForWeek(records []*model.Record, key types.WeekKey) []model.LabelCount {
	counts := []model.LabelCount{}
	index := make(map[string]int)

	add := func(label string) {
		if i, ok := index[label]; ok {
			counts[i].Count++
			return
		}
		index[label] = len(counts)
		counts = append(counts, model.LabelCount{Label: label, Count: 1})
	}

	for _, r := range records {
		if r.Week() != key {
			continue
		}
		if len(r.Labels) == 0 {
			add(model.NoLabel)
			continue
		}
		seen := make(map[string]bool, len(r.Labels))
		for _, label := range r.Labels {
			if seen[label] {
				continue
			}
			seen[label] = true
			add(label)
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	return counts
}
