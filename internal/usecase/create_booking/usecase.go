package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-LessonBooking/internal/infra/storage/booking"
)

// UseCase use case допуска: проверка слота и квот клиента и вставка бронирования
type UseCase struct {
	grid         domain.SlotGrid
	bookingRepo  BookingRepository
	availability AvailabilityResolver
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      MetricsRecorder
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	grid domain.SlotGrid,
	bookingRepo BookingRepository,
	availability AvailabilityResolver,
	txManager TransactionManager,
	timeProvider TimeProvider,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		grid:         grid,
		bookingRepo:  bookingRepo,
		availability: availability,
		txManager:    txManager,
		timeProvider: timeProvider,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверки и вставка выполняются в одной сериализуемой транзакции;
// при конфликте сериализации менеджер транзакций повторяет её целиком.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.metrics.ObserveAdmission(outcomeOf(err))
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: phone=%s, date=%s, slot=%s", req.Phone, req.Date, req.Slot)

	// 1. Валидация входных данных
	slot, err := validateRequest(uc.grid, req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	weekStart := domain.WeekStart(req.Date)
	weekEnd := domain.WeekEnd(req.Date)

	var result *domain.Booking

	// 2. Проверки и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Слот свободен и не закрыт администратором
		available, err := uc.availability.IsAvailable(txCtx, req.Date, slot)
		if err != nil {
			return fmt.Errorf("%w: check availability: %w", ErrInternal, err)
		}
		if !available {
			return ErrSlotNotAvailable
		}

		// 2.2. Не больше одной подтвержденной записи в день
		daily, err := uc.bookingRepo.CountConfirmedByPhone(txCtx, req.Phone, req.Date, req.Date)
		if err != nil {
			return fmt.Errorf("%w: count daily bookings: %w", ErrInternal, err)
		}
		if daily >= domain.MaxConfirmedPerDay {
			return ErrAlreadyBookedToday
		}

		// 2.3. Не больше трех подтвержденных записей за неделю пн-вс
		weekly, err := uc.bookingRepo.CountConfirmedByPhone(txCtx, req.Phone, weekStart, weekEnd)
		if err != nil {
			return fmt.Errorf("%w: count weekly bookings: %w", ErrInternal, err)
		}
		if weekly >= domain.MaxConfirmedPerWeek {
			return ErrWeeklyLimitExceeded
		}

		// 2.4. Создаем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			Name:      req.Name,
			Phone:     req.Phone,
			Date:      req.Date,
			Slot:      slot,
			Status:    domain.StatusConfirmed,
			CreatedAt: uc.timeProvider.Now(),
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				return ErrSlotNotAvailable
			}
			return fmt.Errorf("%w: create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable):
			uc.logger.Warn("CreateBooking: slot %s on %s is not available", slot, req.Date)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, ErrAlreadyBookedToday):
			uc.logger.Warn("CreateBooking: phone=%s already booked on %s", req.Phone, req.Date)
			return nil, ErrAlreadyBookedToday
		case errors.Is(err, ErrWeeklyLimitExceeded):
			uc.logger.Warn("CreateBooking: phone=%s reached weekly limit for week of %s", req.Phone, weekStart)
			return nil, ErrWeeklyLimitExceeded
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateBooking: %v", err)
			return nil, err
		default:
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction: %w", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:        result.ID,
		Name:      result.Name,
		Phone:     result.Phone,
		Date:      result.Date,
		Slot:      result.Slot,
		Status:    result.Status,
		CreatedAt: result.CreatedAt,
	}, nil
}
