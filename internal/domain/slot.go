package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidSlot возвращается при некорректной метке слота
	ErrInvalidSlot = errors.New("domain: invalid slot label")

	// ErrInvalidSlotGrid возвращается при некорректной сетке слотов
	ErrInvalidSlotGrid = errors.New("domain: invalid slot grid")
)

// Slot is a fixed 30-minute lesson window identified by its "HH:MM-HH:MM" label.
type Slot string

const (
	Slot1400 Slot = "14:00-14:30"
	Slot1430 Slot = "14:30-15:00"
	Slot1500 Slot = "15:00-15:30"
	Slot1530 Slot = "15:30-16:00"
	Slot1600 Slot = "16:00-16:30"
	Slot1630 Slot = "16:30-17:00"
	Slot1700 Slot = "17:00-17:30"
	Slot1730 Slot = "17:30-18:00"
	Slot1800 Slot = "18:00-18:30"
	Slot1830 Slot = "18:30-19:00"
	Slot1900 Slot = "19:00-19:30"
	Slot1930 Slot = "19:30-20:00"
)

// String returns the slot label
func (s Slot) String() string {
	return string(s)
}

// bounds returns the start and end of the slot in minutes since midnight.
func (s Slot) bounds() (int, int, error) {
	if len(s) != len("15:04-15:04") || s[5] != '-' {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlot, string(s))
	}

	start, err := time.Parse(TimeFormat, string(s[:5]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlot, string(s))
	}
	end, err := time.Parse(TimeFormat, string(s[6:]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlot, string(s))
	}

	from := start.Hour()*60 + start.Minute()
	to := end.Hour()*60 + end.Minute()
	if to-from != SlotDurationMinutes {
		return 0, 0, fmt.Errorf("%w: %q must last %d minutes", ErrInvalidSlot, string(s), SlotDurationMinutes)
	}
	return from, to, nil
}

// SlotGrid is the ordered, validated set of slots offered on every bookable day.
// It is built once at startup and passed to the components that need it.
type SlotGrid struct {
	slots []Slot
	index map[Slot]int
}

// NewSlotGrid validates that every slot is well formed, lasts 30 minutes
// and starts exactly where the previous one ends.
func NewSlotGrid(slots ...Slot) (SlotGrid, error) {
	if len(slots) == 0 {
		return SlotGrid{}, fmt.Errorf("%w: empty grid", ErrInvalidSlotGrid)
	}

	grid := SlotGrid{
		slots: make([]Slot, 0, len(slots)),
		index: make(map[Slot]int, len(slots)),
	}

	prevEnd := -1
	for i, s := range slots {
		from, to, err := s.bounds()
		if err != nil {
			return SlotGrid{}, fmt.Errorf("%w: slot #%d: %v", ErrInvalidSlotGrid, i, err)
		}
		if prevEnd >= 0 && from != prevEnd {
			return SlotGrid{}, fmt.Errorf("%w: slot %q does not follow the previous one", ErrInvalidSlotGrid, string(s))
		}
		prevEnd = to

		grid.index[s] = i
		grid.slots = append(grid.slots, s)
	}

	return grid, nil
}

// DefaultSlotGrid returns the business grid 14:00-20:00
func DefaultSlotGrid() SlotGrid {
	grid, err := NewSlotGrid(
		Slot1400, Slot1430, Slot1500, Slot1530, Slot1600, Slot1630,
		Slot1700, Slot1730, Slot1800, Slot1830, Slot1900, Slot1930,
	)
	if err != nil {
		panic(err)
	}
	return grid
}

// Slots returns a copy of the slots in chronological order
func (g SlotGrid) Slots() []Slot {
	out := make([]Slot, len(g.slots))
	copy(out, g.slots)
	return out
}

// Len returns the number of slots per day
func (g SlotGrid) Len() int {
	return len(g.slots)
}

// Contains reports whether the slot belongs to the grid
func (g SlotGrid) Contains(s Slot) bool {
	_, ok := g.index[s]
	return ok
}

// Index returns the position of the slot in the grid, or -1
func (g SlotGrid) Index(s Slot) int {
	if i, ok := g.index[s]; ok {
		return i
	}
	return -1
}

// Parse converts a label into a Slot of this grid
func (g SlotGrid) Parse(label string) (Slot, error) {
	s := Slot(label)
	if !g.Contains(s) {
		return "", fmt.Errorf("%w: %q is not offered", ErrInvalidSlot, label)
	}
	return s, nil
}
