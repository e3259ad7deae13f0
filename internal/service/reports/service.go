package reports

import (
	"context"
	"fmt"
	"math"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/internal/service/reports/models"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// Service сервис отчетов для администратора
type Service struct {
	grid        domain.SlotGrid
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса отчетов
func NewService(grid domain.SlotGrid, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		grid:        grid,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// WeeklyReport строит отчет по календарной неделе пн-вс, содержащей today.
// Загрузка считается по активным бронированиям этой недели,
// посещаемость и топ клиентов по всем хранимым бронированиям.
func (s *Service) WeeklyReport(ctx context.Context, grant adminauth.Grant, today types.Date) (*models.WeeklyReportResponse, error) {
	if err := adminauth.Require(grant); err != nil {
		s.logger.Warn("WeeklyReport: %v", err)
		return nil, err
	}
	if today.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	weekStart := domain.WeekStart(today)
	weekEnd := domain.WeekEnd(today)
	s.logger.Info("WeeklyReport: building report for %s..%s", weekStart, weekEnd)

	perDate, err := s.bookingRepo.CountActiveByDate(ctx, weekStart, weekEnd)
	if err != nil {
		s.logger.Error("WeeklyReport: count bookings: %v", err)
		return nil, fmt.Errorf("%w: WeeklyReport - count bookings: %v", ErrInternal, err)
	}

	present, absent, err := s.bookingRepo.CountAttendance(ctx)
	if err != nil {
		s.logger.Error("WeeklyReport: count attendance: %v", err)
		return nil, fmt.Errorf("%w: WeeklyReport - count attendance: %v", ErrInternal, err)
	}

	top, err := s.bookingRepo.TopClients(ctx, domain.TopClientsLimit)
	if err != nil {
		s.logger.Error("WeeklyReport: top clients: %v", err)
		return nil, fmt.Errorf("%w: WeeklyReport - top clients: %v", ErrInternal, err)
	}

	slotsPerDay := s.grid.Len()
	report := &models.WeeklyReportResponse{
		WeekStart:    weekStart,
		WeekEnd:      weekEnd,
		TotalSlots:   domain.BookableDaysPerWeek * slotsPerDay,
		PresentCount: present,
		AbsentCount:  absent,
		TopClients:   make([]models.ClientResponse, 0, len(top)),
		PerDayLoad:   make([]models.DayLoadResponse, 0, domain.BookableDaysPerWeek),
	}

	for i := 0; i < domain.BookableDaysPerWeek; i++ {
		day := weekStart.AddDays(i)
		booked := perDate[day]
		report.BookedCount += booked
		report.PerDayLoad = append(report.PerDayLoad, models.DayLoadResponse{
			Date:        day,
			Weekday:     day.Weekday().String(),
			Booked:      booked,
			LoadPercent: percent(booked, slotsPerDay),
		})
	}
	report.LoadPercent = percent(report.BookedCount, report.TotalSlots)

	for _, c := range top {
		report.TopClients = append(report.TopClients, models.ClientResponse{
			Phone: c.Phone,
			Name:  c.Name,
			Count: c.Count,
		})
	}

	s.logger.Info("WeeklyReport: booked=%d of %d (%d%%)", report.BookedCount, report.TotalSlots, report.LoadPercent)
	return report, nil
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
