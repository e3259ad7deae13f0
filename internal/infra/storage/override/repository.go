package override

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-LessonBooking/pkg/sqlbuilder"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

const table = "availability_overrides"

// Repository репозиторий переопределений доступности
type Repository struct {
	db      dbmetrics.DBExecutor
	dialect sqlbuilder.Dialect
}

// NewRepository создает новый экземпляр репозитория переопределений
func NewRepository(db dbmetrics.DBExecutor, dialect sqlbuilder.Dialect) *Repository {
	return &Repository{db: db, dialect: dialect}
}

// ReplaceAll удаляет все переопределения и вставляет новый набор.
// Должен вызываться внутри транзакции, иначе читатели могут увидеть пустую таблицу.
// Возвращает число удаленных строк.
func (r *Repository) ReplaceAll(ctx context.Context, overrides []domain.Override) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Delete(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ReplaceAll - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReplaceAll - execute delete: %w", ErrExecQuery, err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ReplaceAll - get rows affected: %w", ErrExecQuery, err)
	}

	if len(overrides) == 0 {
		return removed, nil
	}

	insert := r.dialect.Insert(table).Columns("override_date", "time_slot")
	for _, o := range overrides {
		insert = insert.Values(o.Date, slotValue(o.Slot))
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ReplaceAll - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("%w: ReplaceAll - execute insert: %w", ErrExecQuery, err)
	}

	return removed, nil
}

// ListInRange возвращает переопределения с датами в диапазоне включительно
func (r *Repository) ListInRange(ctx context.Context, from, to types.Date) ([]domain.Override, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select("id", "override_date", "time_slot").
		From(table).
		Where(squirrel.GtOrEq{"override_date": from}).
		Where(squirrel.LtOrEq{"override_date": to}).
		OrderBy("override_date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]domain.Override, 0)
	for rows.Next() {
		var (
			o    domain.Override
			slot sql.NullString
		)
		if err := rows.Scan(&o.ID, &o.Date, &slot); err != nil {
			return nil, fmt.Errorf("%w: ListInRange - scan row: %w", ErrScanRow, err)
		}
		if slot.Valid {
			s := domain.Slot(slot.String)
			o.Slot = &s
		}
		overrides = append(overrides, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListInRange - rows error: %w", ErrScanRow, err)
	}

	return overrides, nil
}

func slotValue(s *domain.Slot) interface{} {
	if s == nil {
		return nil
	}
	return string(*s)
}
