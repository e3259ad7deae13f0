package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/bcrypt"

	adminLoginHandler "github.com/m04kA/SMC-LessonBooking/internal/api/handlers/admin_login"
	createBookingHandler "github.com/m04kA/SMC-LessonBooking/internal/api/handlers/create_booking"
	getScheduleHandler "github.com/m04kA/SMC-LessonBooking/internal/api/handlers/get_schedule"
	getWeekAvailabilityHandler "github.com/m04kA/SMC-LessonBooking/internal/api/handlers/get_week_availability"
	healthHandler "github.com/m04kA/SMC-LessonBooking/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/SMC-LessonBooking/internal/api/handlers/list_bookings"
	listUpcomingBookingsHandler "github.com/m04kA/SMC-LessonBooking/internal/api/handlers/list_upcoming_bookings"
	requestCancellationHandler "github.com/m04kA/SMC-LessonBooking/internal/api/handlers/request_cancellation"
	resolveCancellationHandler "github.com/m04kA/SMC-LessonBooking/internal/api/handlers/resolve_cancellation"
	runSweepHandler "github.com/m04kA/SMC-LessonBooking/internal/api/handlers/run_sweep"
	setAttendanceHandler "github.com/m04kA/SMC-LessonBooking/internal/api/handlers/set_attendance"
	setOverridesHandler "github.com/m04kA/SMC-LessonBooking/internal/api/handlers/set_overrides"
	weeklyReportHandler "github.com/m04kA/SMC-LessonBooking/internal/api/handlers/weekly_report"
	"github.com/m04kA/SMC-LessonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-LessonBooking/internal/config"
	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-LessonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-LessonBooking/internal/infra/storage/database"
	"github.com/m04kA/SMC-LessonBooking/internal/infra/storage/migrations"
	overrideRepo "github.com/m04kA/SMC-LessonBooking/internal/infra/storage/override"
	"github.com/m04kA/SMC-LessonBooking/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-LessonBooking/internal/service/bookings"
	reportsService "github.com/m04kA/SMC-LessonBooking/internal/service/reports"
	retentionService "github.com/m04kA/SMC-LessonBooking/internal/service/retention"
	scheduleService "github.com/m04kA/SMC-LessonBooking/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-LessonBooking/internal/usecase/create_booking"
	getWeekAvailabilityUC "github.com/m04kA/SMC-LessonBooking/internal/usecase/get_week_availability"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
	"github.com/m04kA/SMC-LessonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-LessonBooking/pkg/logger"
	"github.com/m04kA/SMC-LessonBooking/pkg/metrics"
	"github.com/m04kA/SMC-LessonBooking/pkg/txmanager"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config")
	hashPassword := flag.String("hash-password", "", "print bcrypt hash for admin.password_hash and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := adminauth.HashPassword(*hashPassword, bcrypt.DefaultCost)
		if err != nil {
			fmt.Printf("Failed to hash password: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-LessonBooking...")
	log.Info("Configuration loaded from %s", *configPath)

	loc, err := cfg.Calendar.Location()
	if err != nil {
		log.Fatal("Failed to load time zone: %v", err)
	}
	clock := domain.NewClock(loc)
	grid := domain.DefaultSlotGrid()
	log.Info("Calendar: zone=%s, today=%s, %d slots per day", loc, clock.Today(), grid.Len())

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	dbCfg := cfg.Database.Connection()
	ctx := context.Background()

	db, err := database.Open(ctx, dbCfg)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Successfully connected to database (driver=%s)", dbCfg.Driver)

	dialect, err := dbCfg.Dialect()
	if err != nil {
		log.Fatal("Unsupported database driver: %v", err)
	}

	applied, err := migrations.Apply(ctx, db, dialect, log)
	if err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Migrations applied: %d new", applied)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB,
		txmanager.WithSerializableOptions(dbCfg.SerializableTxOptions()),
		txmanager.WithRetryable(database.IsRetryable),
		txmanager.WithMaxAttempts(cfg.Database.TxMaxAttempts),
		txmanager.WithRetryRecorder(metricsCollector),
	)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB, dialect)
	overrideRepository := overrideRepo.NewRepository(wrappedDB, dialect)

	// Инициализируем сервисы
	resolver := availability.NewResolver(grid, bookingRepository, overrideRepository)
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, metricsCollector, log)
	scheduleSvc := scheduleService.NewService(grid, overrideRepository, txMgr, log)
	retentionSvc := retentionService.NewService(bookingRepository, txMgr, clock, metricsCollector, log)
	reportsSvc := reportsService.NewService(grid, bookingRepository, log)

	authority, err := adminauth.NewAuthority(cfg.Admin.PasswordHash, cfg.Admin.JWTSecret, cfg.Admin.TokenTTL())
	if err != nil {
		log.Fatal("Failed to initialize admin authority: %v", err)
	}

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		grid,
		bookingRepository,
		resolver,
		txMgr,
		clock,
		metricsCollector,
		log,
	)
	getWeekAvailabilityUseCase := getWeekAvailabilityUC.NewUseCase(resolver, clock, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getWeekAvailability := getWeekAvailabilityHandler.NewHandler(getWeekAvailabilityUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, clock, log)
	requestCancellation := requestCancellationHandler.NewHandler(bookingSvc, log)
	adminLogin := adminLoginHandler.NewHandler(authority, log)
	listUpcomingBookings := listUpcomingBookingsHandler.NewHandler(bookingSvc, clock, log)
	resolveCancellation := resolveCancellationHandler.NewHandler(bookingSvc, log)
	setAttendance := setAttendanceHandler.NewHandler(bookingSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, clock, log)
	setOverrides := setOverridesHandler.NewHandler(scheduleSvc, log)
	runSweep := runSweepHandler.NewHandler(retentionSvc, log)
	weeklyReport := weeklyReportHandler.NewHandler(reportsSvc, clock, log)
	health := healthHandler.NewHandler(wrappedDB, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/availability", getWeekAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", requestCancellation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/admin/login", adminLogin.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (Authorization: Bearer <token>)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(authority, log))

	admin.HandleFunc("/bookings", listUpcomingBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/cancellation/approve", resolveCancellation.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}/cancellation/reject", resolveCancellation.Reject).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}/attendance", setAttendance.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/overrides", getSchedule.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/overrides", setOverrides.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/retention/sweep", runSweep.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/reports/weekly", weeklyReport.Handle).Methods(http.MethodGet)

	// Планировщик еженедельной очистки
	var scheduler *retentionService.Scheduler
	if cfg.Retention.Enabled {
		scheduler, err = retentionService.NewScheduler(retentionSvc, clock, cfg.Retention.Schedule, cfg.Retention.Timeout(), log)
		if err != nil {
			log.Fatal("Failed to create retention scheduler: %v", err)
		}
		scheduler.Start()
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
