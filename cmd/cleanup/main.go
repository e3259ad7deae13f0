// Command cleanup выполняет одну очистку завершенных недель и завершается.
// Подходит для запуска из системного cron, когда встроенный планировщик выключен.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/m04kA/SMC-LessonBooking/internal/config"
	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-LessonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-LessonBooking/internal/infra/storage/database"
	"github.com/m04kA/SMC-LessonBooking/internal/infra/storage/migrations"
	retentionService "github.com/m04kA/SMC-LessonBooking/internal/service/retention"
	"github.com/m04kA/SMC-LessonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-LessonBooking/pkg/logger"
	"github.com/m04kA/SMC-LessonBooking/pkg/metrics"
	"github.com/m04kA/SMC-LessonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config")
	refDate := flag.String("date", "", "reference date YYYY-MM-DD (default: today in calendar.timezone)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	loc, err := cfg.Calendar.Location()
	if err != nil {
		log.Fatal("Failed to load time zone: %v", err)
	}
	clock := domain.NewClock(loc)

	ref := clock.Today()
	if *refDate != "" {
		ref, err = types.ParseDate(*refDate)
		if err != nil {
			log.Fatal("Invalid -date: %v", err)
		}
	}

	ctx := context.Background()
	dbCfg := cfg.Database.Connection()

	db, err := database.Open(ctx, dbCfg)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	dialect, err := dbCfg.Dialect()
	if err != nil {
		log.Fatal("Unsupported database driver: %v", err)
	}

	if _, err := migrations.Apply(ctx, db, dialect, log); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}

	wrappedDB := dbmetrics.Wrap(db, nil)
	txMgr := txmanager.NewTransactionManager(wrappedDB,
		txmanager.WithSerializableOptions(dbCfg.SerializableTxOptions()),
		txmanager.WithRetryable(database.IsRetryable),
	)

	// Одноразовый запуск: метрики не экспортируются
	var noMetrics *metrics.Metrics
	svc := retentionService.NewService(bookingRepo.NewRepository(wrappedDB, dialect), txMgr, clock, noMetrics, log)

	result, err := svc.Sweep(ctx, ref)
	if err != nil {
		log.Fatal("Cleanup failed: %v", err)
	}

	log.Info("Cleanup finished: cutoff=%s, deleted=%d", result.Cutoff, result.Deleted)
}
