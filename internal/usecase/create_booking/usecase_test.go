package create_booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-LessonBooking/internal/infra/storage/override"
	"github.com/m04kA/SMC-LessonBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-LessonBooking/internal/service/availability"
	"github.com/m04kA/SMC-LessonBooking/pkg/logger"
	"github.com/m04kA/SMC-LessonBooking/pkg/ptr"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

var monday = types.MustParseDate("2026-10-12")

type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (r *outcomeRecorder) ObserveAdmission(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcomes == nil {
		r.outcomes = make(map[string]int)
	}
	r.outcomes[outcome]++
}

type fixture struct {
	uc        *UseCase
	bookings  *booking.Repository
	overrides *override.Repository
	recorder  *outcomeRecorder
}

func newFixture(t *testing.T) *fixture {
	env := storagetest.NewSQLite(t)
	grid := domain.DefaultSlotGrid()
	bookings := booking.NewRepository(env.DB, env.Dialect)
	overrides := override.NewRepository(env.DB, env.Dialect)
	recorder := &outcomeRecorder{}

	uc := NewUseCase(
		grid,
		bookings,
		availability.NewResolver(grid, bookings, overrides),
		env.TxManager,
		domain.NewFixedClock(time.Date(2026, 10, 12, 8, 0, 0, 0, time.UTC)),
		recorder,
		logger.Nop(),
	)

	return &fixture{uc: uc, bookings: bookings, overrides: overrides, recorder: recorder}
}

func req(name, phone string, date types.Date, slot domain.Slot) *Request {
	return &Request{Name: name, Phone: phone, Date: date, Slot: string(slot)}
}

func TestExecute_CreatesConfirmedBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, req("  Ali ", " +998901 ", monday, domain.Slot1400))
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "Ali", resp.Name)
	assert.Equal(t, "+998901", resp.Phone)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Equal(t, domain.Slot1400, resp.Slot)

	stored, err := f.bookings.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
	assert.Equal(t, 1, f.recorder.outcomes[outcomeCreated])
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "empty name", req: req(" ", "+998901", monday, domain.Slot1400)},
		{name: "empty phone", req: req("Ali", "", monday, domain.Slot1400)},
		{name: "zero date", req: req("Ali", "+998901", types.Date{}, domain.Slot1400)},
		{name: "slot outside grid", req: req("Ali", "+998901", monday, "20:00-20:30")},
		{name: "malformed slot", req: req("Ali", "+998901", monday, "afternoon")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Equal(t, len(tests), f.recorder.outcomes[outcomeInvalidInput])
}

func TestExecute_SundayIsNeverAvailable(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), req("Ali", "+998901", monday.AddDays(6), domain.Slot1400))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_DateOutsideCurrentWeekIsAdmitted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	past := types.MustParseDate("2020-01-06")
	resp, err := f.uc.Execute(ctx, req("Ali", "+998901", past, domain.Slot1400))
	require.NoError(t, err)
	assert.Equal(t, past, resp.Date)

	_, err = f.uc.Execute(ctx, req("Vali", "+998902", past, domain.Slot1400))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_RespectsOverrides(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.overrides.ReplaceAll(ctx, []domain.Override{
		{Date: monday},
		{Date: monday.AddDays(1), Slot: ptr.Ptr(domain.Slot1500)},
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, req("Ali", "+998901", monday, domain.Slot1900))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	_, err = f.uc.Execute(ctx, req("Ali", "+998901", monday.AddDays(1), domain.Slot1500))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	_, err = f.uc.Execute(ctx, req("Ali", "+998901", monday.AddDays(1), domain.Slot1530))
	assert.NoError(t, err)
}

func TestExecute_Scenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, req("A", "+1", monday, domain.Slot1400))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, req("B", "+2", monday, domain.Slot1400))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	_, err = f.uc.Execute(ctx, req("A", "+1", monday, domain.Slot1500))
	assert.ErrorIs(t, err, ErrAlreadyBookedToday)

	_, err = f.uc.Execute(ctx, req("A", "+1", monday.AddDays(1), domain.Slot1400))
	require.NoError(t, err)
	_, err = f.uc.Execute(ctx, req("A", "+1", monday.AddDays(2), domain.Slot1400))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, req("A", "+1", monday.AddDays(3), domain.Slot1400))
	assert.ErrorIs(t, err, ErrWeeklyLimitExceeded)

	// следующая неделя считается отдельно
	_, err = f.uc.Execute(ctx, req("A", "+1", monday.AddDays(7), domain.Slot1400))
	assert.NoError(t, err)
}

func TestExecute_CancelledBookingsDoNotCountTowardsQuota(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, req("A", "+1", monday, domain.Slot1400))
	require.NoError(t, err)

	ok, err := f.bookings.UpdateStatusIf(ctx, resp.ID, domain.StatusConfirmed, domain.StatusCancelled)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.uc.Execute(ctx, req("A", "+1", monday, domain.Slot1400))
	assert.NoError(t, err)
}

func TestExecute_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)
	const workers = 8

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(),
				req("Client", fmt.Sprintf("+99890%d", i), monday, domain.Slot1630))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	}
	assert.Equal(t, 1, succeeded)

	active, err := f.bookings.ListActiveInRange(context.Background(), monday, monday)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestExecute_ConcurrentWeeklyQuota(t *testing.T) {
	f := newFixture(t)
	week := domain.CurrentWeek(monday)

	var wg sync.WaitGroup
	errs := make([]error, len(week))
	for i, day := range week {
		wg.Add(1)
		go func(i int, day types.Date) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), req("A", "+1", day, domain.Slot1400))
		}(i, day)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrWeeklyLimitExceeded)
	}
	assert.Equal(t, domain.MaxConfirmedPerWeek, succeeded)

	n, err := f.bookings.CountConfirmedByPhone(context.Background(), "+1", domain.WeekStart(monday), domain.WeekEnd(monday))
	require.NoError(t, err)
	assert.Equal(t, domain.MaxConfirmedPerWeek, n)
}
