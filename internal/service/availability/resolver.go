package availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// Resolver отвечает на вопрос, свободен ли слот в дату.
// Читает через executor из контекста, поэтому внутри транзакции допуска видит её снимок.
type Resolver struct {
	grid      domain.SlotGrid
	bookings  BookingRepository
	overrides OverrideRepository
}

// NewResolver создает новый экземпляр Resolver
func NewResolver(grid domain.SlotGrid, bookings BookingRepository, overrides OverrideRepository) *Resolver {
	return &Resolver{
		grid:      grid,
		bookings:  bookings,
		overrides: overrides,
	}
}

// Load читает переопределения и активные бронирования за диапазон дат включительно
func (r *Resolver) Load(ctx context.Context, from, to types.Date) (*Snapshot, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, from, to)
	}

	overrides, err := r.overrides.ListInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: Load - list overrides: %w", ErrInternal, err)
	}

	bookings, err := r.bookings.ListActiveInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: Load - list bookings: %w", ErrInternal, err)
	}

	return NewSnapshot(r.grid, overrides, bookings), nil
}

// IsAvailable проверяет один слот в одну дату
func (r *Resolver) IsAvailable(ctx context.Context, date types.Date, slot domain.Slot) (bool, error) {
	snapshot, err := r.Load(ctx, date, date)
	if err != nil {
		return false, err
	}
	return snapshot.IsAvailable(date, slot), nil
}

type slotKey struct {
	date types.Date
	slot domain.Slot
}

// Snapshot неизменяемый срез доступности за диапазон дат
type Snapshot struct {
	grid        domain.SlotGrid
	closedDays  map[types.Date]struct{}
	closedSlots map[slotKey]struct{}
	taken       map[slotKey]struct{}
}

// NewSnapshot строит срез из переопределений и бронирований.
// Неактивные бронирования игнорируются.
func NewSnapshot(grid domain.SlotGrid, overrides []domain.Override, bookings []*domain.Booking) *Snapshot {
	s := &Snapshot{
		grid:        grid,
		closedDays:  make(map[types.Date]struct{}),
		closedSlots: make(map[slotKey]struct{}),
		taken:       make(map[slotKey]struct{}, len(bookings)),
	}

	for _, o := range overrides {
		if o.IsWholeDay() {
			s.closedDays[o.Date] = struct{}{}
			continue
		}
		s.closedSlots[slotKey{date: o.Date, slot: *o.Slot}] = struct{}{}
	}

	for _, b := range bookings {
		if b.IsActive() {
			s.taken[slotKey{date: b.Date, slot: b.Slot}] = struct{}{}
		}
	}

	return s
}

// IsAvailable returns false on Sunday, for a slot outside the grid,
// for a date or slot disabled by an override, and for a slot held by an active booking.
func (s *Snapshot) IsAvailable(date types.Date, slot domain.Slot) bool {
	if !domain.IsBookableDay(date) || !s.grid.Contains(slot) {
		return false
	}
	if _, closed := s.closedDays[date]; closed {
		return false
	}

	key := slotKey{date: date, slot: slot}
	if _, closed := s.closedSlots[key]; closed {
		return false
	}
	_, taken := s.taken[key]
	return !taken
}

// SlotState доступность одного слота
type SlotState struct {
	Slot      domain.Slot
	Available bool
}

// DayState доступность слотов одного дня в порядке сетки
type DayState struct {
	Date  types.Date
	Slots []SlotState
}

// Days раскладывает срез по датам и слотам сетки
func (s *Snapshot) Days(dates []types.Date) []DayState {
	days := make([]DayState, 0, len(dates))
	for _, d := range dates {
		day := DayState{Date: d, Slots: make([]SlotState, 0, s.grid.Len())}
		for _, slot := range s.grid.Slots() {
			day.Slots = append(day.Slots, SlotState{Slot: slot, Available: s.IsAvailable(d, slot)})
		}
		days = append(days, day)
	}
	return days
}
