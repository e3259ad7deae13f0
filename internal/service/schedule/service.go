package schedule

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// Service сервис управления закрытыми днями и слотами
type Service struct {
	grid         domain.SlotGrid
	overrideRepo OverrideRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	grid domain.SlotGrid,
	overrideRepo OverrideRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		grid:         grid,
		overrideRepo: overrideRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// SetOverrides заменяет весь набор переопределений новым.
// Пустой набор снимает все ограничения, в том числе на прошлые недели.
func (s *Service) SetOverrides(ctx context.Context, grant adminauth.Grant, req *models.SetOverridesRequest) (*models.SetOverridesResponse, error) {
	if err := adminauth.Require(grant); err != nil {
		s.logger.Warn("SetOverrides: %v", err)
		return nil, err
	}

	overrides, err := s.toDomain(req)
	if err != nil {
		s.logger.Warn("SetOverrides: validation failed: %v", err)
		return nil, err
	}
	overrides = domain.DedupOverrides(overrides)

	var removed int64
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		n, err := s.overrideRepo.ReplaceAll(txCtx, overrides)
		if err != nil {
			return err
		}
		removed = n
		return nil
	})
	if err != nil {
		s.logger.Error("SetOverrides: repository error: %v", err)
		return nil, fmt.Errorf("%w: SetOverrides - repository error: %v", ErrInternal, err)
	}

	s.logger.Warn("SetOverrides: replaced override set, removed=%d stored=%d", removed, len(overrides))
	return &models.SetOverridesResponse{Removed: removed, Stored: len(overrides)}, nil
}

// GetWeekSchedule возвращает переопределения на отображаемую неделю, содержащую date
func (s *Service) GetWeekSchedule(ctx context.Context, grant adminauth.Grant, date types.Date) (*models.WeekScheduleResponse, error) {
	if err := adminauth.Require(grant); err != nil {
		s.logger.Warn("GetWeekSchedule: %v", err)
		return nil, err
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	dates := domain.CurrentWeek(date)
	from, to := dates[0], dates[len(dates)-1]

	overrides, err := s.overrideRepo.ListInRange(ctx, from, to)
	if err != nil {
		s.logger.Error("GetWeekSchedule: repository error for %s..%s: %v", from, to, err)
		return nil, fmt.Errorf("%w: GetWeekSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWeekSchedule: %d overrides for %s..%s", len(overrides), from, to)
	return models.FromDomainSchedule(domain.BuildSchedule(s.grid, dates, overrides)), nil
}

func (s *Service) toDomain(req *models.SetOverridesRequest) ([]domain.Override, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	out := make([]domain.Override, 0, len(req.Overrides))
	for i, in := range req.Overrides {
		if in.Date.IsZero() {
			return nil, fmt.Errorf("%w: overrides[%d]: date is required", ErrInvalidInput, i)
		}

		o := domain.Override{Date: in.Date}
		if in.Slot != nil {
			slot, err := s.grid.Parse(strings.TrimSpace(*in.Slot))
			if err != nil {
				return nil, fmt.Errorf("%w: overrides[%d]: %v", ErrInvalidInput, i, err)
			}
			o.Slot = &slot
		}
		out = append(out, o)
	}
	return out, nil
}
