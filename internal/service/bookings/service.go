package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-LessonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-LessonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// Service сервис жизненного цикла бронирований: отмена, решение администратора, посещаемость
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	metrics     MetricsRecorder
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// ListForPhone возвращает бронирования клиента с даты from по возрастанию даты и слота
func (s *Service) ListForPhone(ctx context.Context, phone string, from types.Date) (*models.BookingListResponse, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if from.IsZero() {
		return nil, fmt.Errorf("%w: from date is required", ErrInvalidInput)
	}

	s.logger.Info("ListForPhone: fetching bookings for phone=%s from %s", phone, from)

	list, err := s.bookingRepo.ListByPhone(ctx, phone, from)
	if err != nil {
		s.logger.Error("ListForPhone: repository error for phone=%s: %v", phone, err)
		return nil, fmt.Errorf("%w: ListForPhone - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(list), nil
}

// ListUpcoming возвращает все бронирования с даты from (только администратор)
func (s *Service) ListUpcoming(ctx context.Context, grant adminauth.Grant, from types.Date) (*models.BookingListResponse, error) {
	if err := adminauth.Require(grant); err != nil {
		s.logger.Warn("ListUpcoming: %v", err)
		return nil, err
	}
	if from.IsZero() {
		return nil, fmt.Errorf("%w: from date is required", ErrInvalidInput)
	}

	list, err := s.bookingRepo.ListFrom(ctx, from)
	if err != nil {
		s.logger.Error("ListUpcoming: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListUpcoming - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListUpcoming: fetched %d bookings from %s", len(list), from)
	return models.FromDomainBookingList(list), nil
}

// RequestCancellation клиентский запрос на отмену: confirmed -> pending_cancellation.
// Повторный запрос по уже ожидающей записи ничего не меняет.
// Отмененную запись вернуть в ожидание нельзя: её слот мог быть занят заново.
func (s *Service) RequestCancellation(ctx context.Context, bookingID int64) error {
	s.logger.Info("RequestCancellation: booking id=%d", bookingID)

	t := domain.TransitionRequestCancellation
	updated, err := s.bookingRepo.UpdateStatusIf(ctx, bookingID, t.From, t.To)
	if err != nil {
		s.logger.Error("RequestCancellation: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: RequestCancellation - repository error: %v", ErrInternal, err)
	}
	if updated {
		s.metrics.ObserveTransition(string(t.From), string(t.To))
		s.logger.Info("RequestCancellation: booking id=%d is pending cancellation", bookingID)
		return nil
	}

	booking, err := s.getBooking(ctx, "RequestCancellation", bookingID)
	if err != nil {
		return err
	}
	if booking.IsPendingCancellation() {
		s.logger.Info("RequestCancellation: booking id=%d already pending", bookingID)
		return nil
	}

	s.logger.Warn("RequestCancellation: booking id=%d has status=%s", bookingID, booking.Status)
	return fmt.Errorf("%w: %v", ErrInvalidTransition, t.Check(booking))
}

// ApproveCancellation решение администратора: pending_cancellation -> cancelled
func (s *Service) ApproveCancellation(ctx context.Context, grant adminauth.Grant, bookingID int64) error {
	if err := adminauth.Require(grant); err != nil {
		s.logger.Warn("ApproveCancellation: %v", err)
		return err
	}

	s.logger.Info("ApproveCancellation: booking id=%d", bookingID)
	return s.transition(ctx, "ApproveCancellation", bookingID, domain.TransitionApproveCancellation)
}

// RejectCancellation решение администратора: pending_cancellation -> confirmed.
// Восстановление проверяет квоты клиента в той же сериализуемой транзакции:
// пока запись ожидала решения, клиент мог подтвердить другую запись на этот день или неделю.
func (s *Service) RejectCancellation(ctx context.Context, grant adminauth.Grant, bookingID int64) error {
	if err := adminauth.Require(grant); err != nil {
		s.logger.Warn("RejectCancellation: %v", err)
		return err
	}

	s.logger.Info("RejectCancellation: booking id=%d", bookingID)
	t := domain.TransitionRejectCancellation

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "RejectCancellation", bookingID)
		if err != nil {
			return err
		}
		if err := t.Check(booking); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		daily, err := s.bookingRepo.CountConfirmedByPhone(txCtx, booking.Phone, booking.Date, booking.Date)
		if err != nil {
			return fmt.Errorf("%w: RejectCancellation - count daily: %w", ErrInternal, err)
		}
		if daily >= domain.MaxConfirmedPerDay {
			return fmt.Errorf("%w: phone already has a confirmed booking on %s", ErrQuotaConflict, booking.Date)
		}

		weekly, err := s.bookingRepo.CountConfirmedByPhone(txCtx, booking.Phone,
			domain.WeekStart(booking.Date), domain.WeekEnd(booking.Date))
		if err != nil {
			return fmt.Errorf("%w: RejectCancellation - count weekly: %w", ErrInternal, err)
		}
		if weekly >= domain.MaxConfirmedPerWeek {
			return fmt.Errorf("%w: phone already has %d confirmed bookings that week", ErrQuotaConflict, weekly)
		}

		updated, err := s.bookingRepo.UpdateStatusIf(txCtx, bookingID, t.From, t.To)
		if err != nil {
			return fmt.Errorf("%w: RejectCancellation - update status: %w", ErrInternal, err)
		}
		if !updated {
			return fmt.Errorf("%w: booking id=%d changed concurrently", ErrInvalidTransition, bookingID)
		}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrQuotaConflict):
			s.logger.Warn("RejectCancellation: booking id=%d: %v", bookingID, err)
		default:
			s.logger.Error("RejectCancellation: booking id=%d: %v", bookingID, err)
			if !errors.Is(err, ErrInternal) {
				err = fmt.Errorf("%w: RejectCancellation - transaction: %v", ErrInternal, err)
			}
		}
		return err
	}

	s.metrics.ObserveTransition(string(t.From), string(t.To))
	s.logger.Info("RejectCancellation: booking id=%d restored to confirmed", bookingID)
	return nil
}

// SetAttendance отметка посещаемости; допустима в любом статусе
func (s *Service) SetAttendance(ctx context.Context, grant adminauth.Grant, bookingID int64, attendance string) error {
	if err := adminauth.Require(grant); err != nil {
		s.logger.Warn("SetAttendance: %v", err)
		return err
	}

	mark, err := domain.ParseAttendance(strings.TrimSpace(attendance))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("SetAttendance: booking id=%d attendance=%s", bookingID, mark)

	if err := s.bookingRepo.SetAttendance(ctx, bookingID, mark); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("SetAttendance: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("SetAttendance: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: SetAttendance - repository error: %v", ErrInternal, err)
	}

	return nil
}

// Вспомогательные методы

// transition выполняет переход одним условным UPDATE; при неудаче перечитывает строку,
// чтобы отличить отсутствующую запись от недопустимого статуса
func (s *Service) transition(ctx context.Context, op string, bookingID int64, t domain.Transition) error {
	updated, err := s.bookingRepo.UpdateStatusIf(ctx, bookingID, t.From, t.To)
	if err != nil {
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	if updated {
		s.metrics.ObserveTransition(string(t.From), string(t.To))
		s.logger.Info("%s: booking id=%d %s -> %s", op, bookingID, t.From, t.To)
		return nil
	}

	booking, err := s.getBooking(ctx, op, bookingID)
	if err != nil {
		return err
	}

	s.logger.Warn("%s: booking id=%d has status=%s", op, bookingID, booking.Status)
	return fmt.Errorf("%w: %v", ErrInvalidTransition, t.Check(booking))
}

func (s *Service) getBooking(ctx context.Context, op string, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return booking, nil
}
