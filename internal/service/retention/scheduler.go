package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// DefaultSchedule воскресенье 10:00 в часовом поясе школы
const DefaultSchedule = "0 10 * * 0"

// Sweeper выполняет очистку относительно текущей даты
type Sweeper interface {
	Sweep(ctx context.Context, ref types.Date) (*Result, error)
}

// Scheduler периодически запускает очистку по cron-расписанию
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	clock   Clock
	timeout time.Duration
	logger  Logger
}

// NewScheduler создает планировщик; расписание в стандартном 5-польном формате cron
func NewScheduler(sweeper Sweeper, clock Clock, schedule string, timeout time.Duration, logger Logger) (*Scheduler, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	adapter := cronLogger{logger: logger}
	c := cron.New(
		cron.WithLocation(clock.Location()),
		cron.WithLogger(adapter),
		cron.WithChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter)),
	)

	s := &Scheduler{
		cron:    c,
		sweeper: sweeper,
		clock:   clock,
		timeout: timeout,
		logger:  logger,
	}

	if _, err := c.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("%w: schedule %q: %v", ErrInvalidInput, schedule, err)
	}

	return s, nil
}

// Start запускает планировщик в фоне
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("RetentionScheduler: started, next run at %s", s.Next().Format(time.RFC3339))
}

// Stop останавливает планировщик и ждет завершения текущего запуска
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("RetentionScheduler: stopped")
	case <-ctx.Done():
		s.logger.Warn("RetentionScheduler: stop interrupted: %v", ctx.Err())
	}
}

// Next время следующего запуска
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *Scheduler) run() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if _, err := s.sweeper.Sweep(ctx, s.clock.Today()); err != nil {
		s.logger.Error("RetentionScheduler: sweep failed: %v", err)
	}
}

// cronLogger адаптер Logger к интерфейсу логгера cron
type cronLogger struct {
	logger Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("RetentionScheduler: %s %v", msg, keysAndValues)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("RetentionScheduler: %s: %v %v", msg, err, keysAndValues)
}
