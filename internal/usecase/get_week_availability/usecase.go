package get_week_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
)

// UseCase use case для получения доступности слотов на неделю
type UseCase struct {
	availability AvailabilityResolver
	clock        Clock
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availability AvailabilityResolver, clock Clock, logger Logger) *UseCase {
	return &UseCase{
		availability: availability,
		clock:        clock,
		logger:       logger,
	}
}

// Execute возвращает доступность шести дней недели (пн-сб).
// В воскресенье показывается следующая неделя.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ref := req.Date
	if ref.IsZero() {
		ref = uc.clock.Today()
	}

	week := domain.CurrentWeek(ref)
	uc.logger.Info("GetWeekAvailability: week %s..%s", week[0], week[len(week)-1])

	snapshot, err := uc.availability.Load(ctx, week[0], week[len(week)-1])
	if err != nil {
		uc.logger.Error("GetWeekAvailability: failed to load availability: %v", err)
		return nil, fmt.Errorf("%w: load availability: %v", ErrInternal, err)
	}

	states := snapshot.Days(week)
	days := make([]Day, 0, len(states))
	for _, st := range states {
		day := Day{Date: st.Date, Slots: make([]Slot, 0, len(st.Slots))}
		for _, s := range st.Slots {
			day.Slots = append(day.Slots, Slot{Slot: s.Slot, Available: s.Available})
		}
		days = append(days, day)
	}

	return &Response{Days: days}, nil
}
