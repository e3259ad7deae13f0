package domain

import (
	"sort"

	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// Override removes availability: a whole date when Slot is nil, otherwise one slot on that date
type Override struct {
	ID   int64
	Date types.Date
	Slot *Slot
}

// IsWholeDay returns true if the override disables the entire date
func (o Override) IsWholeDay() bool {
	return o.Slot == nil
}

// key identifies an override regardless of its ID
func (o Override) key() string {
	if o.Slot == nil {
		return o.Date.String()
	}
	return o.Date.String() + " " + string(*o.Slot)
}

// DedupOverrides drops repeated (date, slot) pairs keeping the first occurrence
func DedupOverrides(in []Override) []Override {
	seen := make(map[string]struct{}, len(in))
	out := make([]Override, 0, len(in))
	for _, o := range in {
		k := o.key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, o)
	}
	return out
}

// DaySchedule is the admin view of overrides for one date
type DaySchedule struct {
	Date          types.Date
	WholeDay      bool
	DisabledSlots []Slot
}

// BuildSchedule groups overrides by date for the requested dates, slots ordered by the grid
func BuildSchedule(grid SlotGrid, dates []types.Date, overrides []Override) []DaySchedule {
	byDate := make(map[types.Date]*DaySchedule, len(dates))
	out := make([]DaySchedule, len(dates))
	for i, d := range dates {
		out[i] = DaySchedule{Date: d, DisabledSlots: []Slot{}}
		byDate[d] = &out[i]
	}

	for _, o := range overrides {
		day, ok := byDate[o.Date]
		if !ok {
			continue
		}
		if o.IsWholeDay() {
			day.WholeDay = true
			continue
		}
		day.DisabledSlots = append(day.DisabledSlots, *o.Slot)
	}

	for i := range out {
		slots := out[i].DisabledSlots
		sort.Slice(slots, func(a, b int) bool {
			return grid.Index(slots[a]) < grid.Index(slots[b])
		})
	}
	return out
}
