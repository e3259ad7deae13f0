package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-LessonBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

var createdAt = time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) *booking.Repository {
	env := storagetest.NewSQLite(t)
	return booking.NewRepository(env.DB, env.Dialect)
}

func mustCreate(t *testing.T, repo *booking.Repository, name, phone, date string, slot domain.Slot, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b, err := repo.Create(context.Background(), &domain.Booking{
		Name:      name,
		Phone:     phone,
		Date:      types.MustParseDate(date),
		Slot:      slot,
		Status:    status,
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
	return b
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	created := mustCreate(t, repo, "Ali", "+998901", "2026-10-14", domain.Slot1600, domain.StatusConfirmed)
	require.NotZero(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ali", got.Name)
	assert.Equal(t, "+998901", got.Phone)
	assert.Equal(t, "2026-10-14", got.Date.String())
	assert.Equal(t, domain.Slot1600, got.Slot)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	assert.Equal(t, domain.AttendanceUnset, got.Attendance)
	assert.True(t, createdAt.Equal(got.CreatedAt))

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}

func TestRepository_CreateWithoutCreatedAt(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	before := time.Now().Add(-time.Second)

	created, err := repo.Create(ctx, &domain.Booking{
		Name:   "Ali",
		Phone:  "+998901",
		Date:   types.MustParseDate("2026-10-14"),
		Slot:   domain.Slot1400,
		Status: domain.StatusConfirmed,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.After(before))
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestRepository_ActiveSlotIsUnique(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	first := mustCreate(t, repo, "Ali", "+998901", "2026-10-14", domain.Slot1600, domain.StatusConfirmed)

	_, err := repo.Create(ctx, &domain.Booking{
		Name: "Bob", Phone: "+998902", Date: types.MustParseDate("2026-10-14"),
		Slot: domain.Slot1600, Status: domain.StatusConfirmed, CreatedAt: createdAt,
	})
	assert.ErrorIs(t, err, booking.ErrSlotNotAvailable)

	// после отмены слот снова свободен
	ok, err := repo.UpdateStatusIf(ctx, first.ID, domain.StatusConfirmed, domain.StatusCancelled)
	require.NoError(t, err)
	require.True(t, ok)

	mustCreate(t, repo, "Bob", "+998902", "2026-10-14", domain.Slot1600, domain.StatusConfirmed)
}

func TestRepository_UpdateStatusIf(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	b := mustCreate(t, repo, "Ali", "+998901", "2026-10-14", domain.Slot1600, domain.StatusConfirmed)

	ok, err := repo.UpdateStatusIf(ctx, b.ID, domain.StatusPendingCancellation, domain.StatusCancelled)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.UpdateStatusIf(ctx, b.ID, domain.StatusConfirmed, domain.StatusPendingCancellation)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UpdateStatusIf(ctx, 404, domain.StatusConfirmed, domain.StatusPendingCancellation)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_Lists(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	mustCreate(t, repo, "Ali", "+998901", "2026-10-15", domain.Slot1400, domain.StatusConfirmed)
	mustCreate(t, repo, "Ali", "+998901", "2026-10-13", domain.Slot1900, domain.StatusConfirmed)
	mustCreate(t, repo, "Ali", "+998901", "2026-10-13", domain.Slot1430, domain.StatusCancelled)
	mustCreate(t, repo, "Ali", "+998901", "2026-10-05", domain.Slot1430, domain.StatusConfirmed)
	mustCreate(t, repo, "Bob", "+998902", "2026-10-13", domain.Slot1500, domain.StatusPendingCancellation)

	mine, err := repo.ListByPhone(ctx, "+998901", types.MustParseDate("2026-10-12"))
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, domain.Slot1430, mine[0].Slot)
	assert.Equal(t, domain.Slot1900, mine[1].Slot)
	assert.Equal(t, "2026-10-15", mine[2].Date.String())

	all, err := repo.ListFrom(ctx, types.MustParseDate("2026-10-12"))
	require.NoError(t, err)
	assert.Len(t, all, 4)

	active, err := repo.ListActiveInRange(ctx, types.MustParseDate("2026-10-12"), types.MustParseDate("2026-10-17"))
	require.NoError(t, err)
	assert.Len(t, active, 3)
	for _, b := range active {
		assert.True(t, b.IsActive())
	}

	n, err := repo.CountConfirmedByPhone(ctx, "+998901", types.MustParseDate("2026-10-12"), types.MustParseDate("2026-10-18"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRepository_SetAttendance(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	b := mustCreate(t, repo, "Ali", "+998901", "2026-10-14", domain.Slot1600, domain.StatusCancelled)

	require.NoError(t, repo.SetAttendance(ctx, b.ID, domain.AttendanceAbsent))
	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AttendanceAbsent, got.Attendance)

	assert.ErrorIs(t, repo.SetAttendance(ctx, 404, domain.AttendancePresent), booking.ErrBookingNotFound)
}

func TestRepository_DeleteResolvedUpTo(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	mustCreate(t, repo, "Ali", "+998901", "2026-10-05", domain.Slot1400, domain.StatusConfirmed)
	mustCreate(t, repo, "Ali", "+998901", "2026-10-11", domain.Slot1400, domain.StatusCancelled)
	pending := mustCreate(t, repo, "Bob", "+998902", "2026-10-06", domain.Slot1400, domain.StatusPendingCancellation)
	future := mustCreate(t, repo, "Bob", "+998902", "2026-10-12", domain.Slot1400, domain.StatusConfirmed)

	deleted, err := repo.DeleteResolvedUpTo(ctx, types.MustParseDate("2026-10-11"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	_, err = repo.GetByID(ctx, pending.ID)
	assert.NoError(t, err)
	_, err = repo.GetByID(ctx, future.ID)
	assert.NoError(t, err)

	deleted, err = repo.DeleteResolvedUpTo(ctx, types.MustParseDate("2026-10-11"))
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestRepository_ReportQueries(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	a := mustCreate(t, repo, "Ali", "+998901", "2026-10-12", domain.Slot1400, domain.StatusConfirmed)
	mustCreate(t, repo, "Ali K.", "+998901", "2026-10-13", domain.Slot1400, domain.StatusPendingCancellation)
	c := mustCreate(t, repo, "Bob", "+998902", "2026-10-12", domain.Slot1430, domain.StatusCancelled)
	mustCreate(t, repo, "Cem", "+998903", "2026-10-12", domain.Slot1500, domain.StatusConfirmed)

	require.NoError(t, repo.SetAttendance(ctx, a.ID, domain.AttendancePresent))
	require.NoError(t, repo.SetAttendance(ctx, c.ID, domain.AttendanceAbsent))

	counts, err := repo.CountActiveByDate(ctx, types.MustParseDate("2026-10-12"), types.MustParseDate("2026-10-18"))
	require.NoError(t, err)
	assert.Equal(t, 2, counts[types.MustParseDate("2026-10-12")])
	assert.Equal(t, 1, counts[types.MustParseDate("2026-10-13")])

	present, absent, err := repo.CountAttendance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, present)
	assert.Equal(t, 1, absent)

	top, err := repo.TopClients(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, booking.ClientStat{Phone: "+998901", Name: "Ali K.", Count: 2}, top[0])
	assert.Equal(t, "+998902", top[1].Phone)
}
