package retention

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// Result итог одной очистки
type Result struct {
	Cutoff  types.Date `json:"cutoff"`
	Deleted int64      `json:"deleted"`
}

// Service удаляет завершенные недели из хранилища
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	clock       Clock
	metrics     MetricsRecorder
	logger      Logger
}

// NewService создает новый экземпляр сервиса очистки
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	clock Clock,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		clock:       clock,
		metrics:     metrics,
		logger:      logger,
	}
}

// Sweep удаляет подтвержденные и отмененные бронирования по последнее завершенное воскресенье
// относительно ref включительно. Записи, ожидающие решения по отмене, остаются.
// Повторный запуск с той же датой ничего не удаляет.
func (s *Service) Sweep(ctx context.Context, ref types.Date) (*Result, error) {
	if ref.IsZero() {
		return nil, fmt.Errorf("%w: reference date is required", ErrInvalidInput)
	}

	cutoff := domain.LastCompletedSunday(ref)
	s.logger.Info("Sweep: deleting resolved bookings up to %s", cutoff)

	var deleted int64
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		n, err := s.bookingRepo.DeleteResolvedUpTo(txCtx, cutoff)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		s.logger.Error("Sweep: repository error for cutoff %s: %v", cutoff, err)
		return nil, fmt.Errorf("%w: Sweep - repository error: %v", ErrInternal, err)
	}

	s.metrics.ObserveSweep(deleted, s.clock.Now())
	s.logger.Info("Sweep: deleted %d bookings up to %s", deleted, cutoff)

	return &Result{Cutoff: cutoff, Deleted: deleted}, nil
}

// SweepNow запуск очистки администратором относительно текущей даты
func (s *Service) SweepNow(ctx context.Context, grant adminauth.Grant) (*Result, error) {
	if err := adminauth.Require(grant); err != nil {
		s.logger.Warn("SweepNow: %v", err)
		return nil, err
	}
	return s.Sweep(ctx, s.clock.Today())
}
