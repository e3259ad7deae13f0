package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LessonBooking/pkg/sqlbuilder"
)

const migrationTable = "schema_migrations"

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

var (
	// ErrMigration возвращается при ошибке применения миграций
	ErrMigration = errors.New("migrations: failed to apply")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Apply применяет встроенные миграции диалекта, каждую не более одного раза
func Apply(ctx context.Context, db *sql.DB, dialect sqlbuilder.Dialect, logger Logger) (int, error) {
	if db == nil {
		return 0, fmt.Errorf("%w: sql db is required", ErrMigration)
	}

	root := dialect.Name()
	entries, err := fs.ReadDir(files, root)
	if err != nil {
		return 0, fmt.Errorf("%w: read dir %s: %v", ErrMigration, root, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	if _, err := db.ExecContext(ctx, createTableSQL()); err != nil {
		return 0, fmt.Errorf("%w: ensure %s: %v", ErrMigration, migrationTable, err)
	}

	applied := 0
	for _, name := range names {
		done, err := isApplied(ctx, db, dialect, name)
		if err != nil {
			return applied, fmt.Errorf("%w: check %s: %v", ErrMigration, name, err)
		}
		if done {
			continue
		}

		content, err := fs.ReadFile(files, path.Join(root, name))
		if err != nil {
			return applied, fmt.Errorf("%w: read %s: %v", ErrMigration, name, err)
		}

		if err := applyOne(ctx, db, dialect, name, extractUp(string(content))); err != nil {
			return applied, err
		}
		applied++

		if logger != nil {
			logger.Info("Migrations: applied %s/%s", root, name)
		}
	}

	return applied, nil
}

func applyOne(ctx context.Context, db *sql.DB, dialect sqlbuilder.Dialect, name, upSQL string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin %s: %v", ErrMigration, name, err)
	}

	if strings.TrimSpace(upSQL) != "" {
		if _, err := tx.ExecContext(ctx, upSQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: exec %s: %v", ErrMigration, name, err)
		}
	}

	query, args, err := dialect.Insert(migrationTable).
		Columns("name", "applied_at").
		Values(name, time.Now().UTC().UnixMilli()).
		ToSql()
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: build record query: %v", ErrMigration, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: record %s: %v", ErrMigration, name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit %s: %v", ErrMigration, name, err)
	}
	return nil
}

func isApplied(ctx context.Context, db *sql.DB, dialect sqlbuilder.Dialect, name string) (bool, error) {
	query, args, err := dialect.Select("1").
		From(migrationTable).
		Where(squirrel.Eq{"name": name}).
		ToSql()
	if err != nil {
		return false, err
	}

	var found int
	err = db.QueryRowContext(ctx, query, args...).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func createTableSQL() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    name       TEXT PRIMARY KEY,
    applied_at BIGINT NOT NULL
)`, migrationTable)
}

// extractUp возвращает SQL секции Up
func extractUp(content string) string {
	start := strings.Index(content, upMarker)
	if start == -1 {
		return content
	}
	body := content[start+len(upMarker):]
	if end := strings.Index(body, downMarker); end != -1 {
		body = body[:end]
	}
	return body
}
