package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-LessonBooking/internal/infra/storage/override"
	"github.com/m04kA/SMC-LessonBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-LessonBooking/internal/service/availability"
	"github.com/m04kA/SMC-LessonBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
	"github.com/m04kA/SMC-LessonBooking/pkg/logger"
	"github.com/m04kA/SMC-LessonBooking/pkg/ptr"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

var wednesday = types.MustParseDate("2026-10-14")

func newGrant(t *testing.T) adminauth.Grant {
	t.Helper()
	hash, err := adminauth.HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	authority, err := adminauth.NewAuthority(hash, "jwt", time.Minute)
	require.NoError(t, err)
	token, err := authority.Login("secret")
	require.NoError(t, err)
	grant, err := authority.Verify(token.Value)
	require.NoError(t, err)
	return grant
}

func newService(t *testing.T) (*Service, *availability.Resolver) {
	env := storagetest.NewSQLite(t)
	overrides := override.NewRepository(env.DB, env.Dialect)
	grid := domain.DefaultSlotGrid()

	svc := NewService(grid, overrides, env.TxManager, logger.Nop())
	resolver := availability.NewResolver(grid, booking.NewRepository(env.DB, env.Dialect), overrides)
	return svc, resolver
}

func TestSetOverrides_WholeDayAndSlot(t *testing.T) {
	svc, resolver := newService(t)
	ctx := context.Background()
	grant := newGrant(t)

	resp, err := svc.SetOverrides(ctx, grant, &models.SetOverridesRequest{Overrides: []models.OverrideInput{
		{Date: wednesday},
		{Date: wednesday.AddDays(1), Slot: ptr.Ptr("18:00-18:30")},
		{Date: wednesday.AddDays(1), Slot: ptr.Ptr(" 18:00-18:30 ")},
	}})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Removed)
	assert.Equal(t, 2, resp.Stored)

	for _, slot := range domain.DefaultSlotGrid().Slots() {
		ok, err := resolver.IsAvailable(ctx, wednesday, slot)
		require.NoError(t, err)
		assert.False(t, ok, slot)
	}

	ok, err := resolver.IsAvailable(ctx, wednesday.AddDays(1), domain.Slot1800)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = resolver.IsAvailable(ctx, wednesday.AddDays(1), domain.Slot1830)
	require.NoError(t, err)
	assert.True(t, ok)

	week, err := svc.GetWeekSchedule(ctx, grant, wednesday)
	require.NoError(t, err)
	require.Len(t, week.Days, domain.BookableDaysPerWeek)
	assert.True(t, week.Days[2].WholeDay)
	assert.Equal(t, []string{"18:00-18:30"}, week.Days[3].DisabledSlots)
	assert.False(t, week.Days[0].WholeDay)
	assert.Empty(t, week.Days[0].DisabledSlots)
}

func TestSetOverrides_EmptySetClearsEverything(t *testing.T) {
	svc, resolver := newService(t)
	ctx := context.Background()
	grant := newGrant(t)

	_, err := svc.SetOverrides(ctx, grant, &models.SetOverridesRequest{Overrides: []models.OverrideInput{
		{Date: wednesday},
		{Date: wednesday.AddDays(-7)},
	}})
	require.NoError(t, err)

	resp, err := svc.SetOverrides(ctx, grant, &models.SetOverridesRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Removed)
	assert.Equal(t, 0, resp.Stored)

	ok, err := resolver.IsAvailable(ctx, wednesday, domain.Slot1400)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSetOverrides_Validation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	grant := newGrant(t)

	_, err := svc.SetOverrides(ctx, grant, &models.SetOverridesRequest{Overrides: []models.OverrideInput{
		{Date: wednesday, Slot: ptr.Ptr("20:00-20:30")},
	}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SetOverrides(ctx, grant, &models.SetOverridesRequest{Overrides: []models.OverrideInput{{}}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SetOverrides(ctx, grant, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSchedule_RequiresGrant(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.SetOverrides(ctx, adminauth.Grant{}, &models.SetOverridesRequest{})
	assert.ErrorIs(t, err, adminauth.ErrUnauthorized)

	_, err = svc.GetWeekSchedule(ctx, adminauth.Grant{}, wednesday)
	assert.ErrorIs(t, err, adminauth.ErrUnauthorized)
}
