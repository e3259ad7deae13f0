package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/internal/infra/storage/database"
	"github.com/m04kA/SMC-LessonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-LessonBooking/pkg/sqlbuilder"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

const table = "bookings"

var columns = []string{
	"id",
	"name",
	"phone",
	"booking_date",
	"time_slot",
	"status",
	"attendance",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
//
// Ошибки драйвера заворачиваются через %w вместе с сентинелом репозитория,
// чтобы менеджер транзакций мог распознать конфликт сериализации.
type Repository struct {
	db      DBExecutor
	dialect sqlbuilder.Dialect
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, dialect sqlbuilder.Dialect) *Repository {
	return &Repository{db: db, dialect: dialect}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Нарушение частичного уникального индекса (date, slot) возвращается как ErrSlotNotAvailable.
// Нулевой CreatedAt заменяется текущим временем.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}

	query, args, err := r.dialect.Insert(table).
		Columns(
			"name",
			"phone",
			"booking_date",
			"time_slot",
			"status",
			"created_at",
		).
		Values(
			booking.Name,
			booking.Phone,
			booking.Date,
			booking.Slot,
			booking.Status,
			types.NewTimestamp(booking.CreatedAt),
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s %s", ErrSlotNotAvailable, booking.Date, booking.Slot)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// ListByPhone возвращает бронирования клиента начиная с даты from (по дате и слоту)
func (r *Repository) ListByPhone(ctx context.Context, phone string, from types.Date) ([]*domain.Booking, error) {
	builder := r.dialect.Select(columns...).
		From(table).
		Where(squirrel.Eq{"phone": phone}).
		Where(squirrel.GtOrEq{"booking_date": from}).
		OrderBy("booking_date ASC", "time_slot ASC")

	return r.list(ctx, "ListByPhone", builder)
}

// ListFrom возвращает все бронирования начиная с даты from (по дате и слоту)
func (r *Repository) ListFrom(ctx context.Context, from types.Date) ([]*domain.Booking, error) {
	builder := r.dialect.Select(columns...).
		From(table).
		Where(squirrel.GtOrEq{"booking_date": from}).
		OrderBy("booking_date ASC", "time_slot ASC")

	return r.list(ctx, "ListFrom", builder)
}

// ListActiveInRange возвращает бронирования, занимающие слоты в диапазоне дат включительно.
// Внутри транзакции на PostgreSQL строки блокируются (FOR UPDATE).
func (r *Repository) ListActiveInRange(ctx context.Context, from, to types.Date) ([]*domain.Booking, error) {
	builder := r.dialect.Select(columns...).
		From(table).
		Where(squirrel.GtOrEq{"booking_date": from}).
		Where(squirrel.LtOrEq{"booking_date": to}).
		Where(squirrel.Eq{"status": domain.StatusStrings(domain.ActiveStatuses)}).
		OrderBy("booking_date ASC", "time_slot ASC")

	if dbmetrics.IsInTransaction(ctx) && r.dialect.SupportsRowLocks() {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.list(ctx, "ListActiveInRange", builder)
}

// CountConfirmedByPhone считает подтвержденные бронирования клиента в диапазоне дат включительно
func (r *Repository) CountConfirmedByPhone(ctx context.Context, phone string, from, to types.Date) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"phone": phone}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.GtOrEq{"booking_date": from}).
		Where(squirrel.LtOrEq{"booking_date": to}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedByPhone - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedByPhone - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatusIf переводит бронирование из статуса from в статус to одной условной операцией.
// Возвращает false, если строка не найдена или её статус уже не from.
func (r *Repository) UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Update(table).
		Set("status", to).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatusIf - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return false, fmt.Errorf("%w: UpdateStatusIf - booking id=%d", ErrSlotNotAvailable, id)
		}
		return false, fmt.Errorf("%w: UpdateStatusIf - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatusIf - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// SetAttendance записывает отметку посещаемости
func (r *Repository) SetAttendance(ctx context.Context, id int64, attendance domain.Attendance) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Update(table).
		Set("attendance", string(attendance)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetAttendance - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetAttendance - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetAttendance - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// DeleteResolvedUpTo удаляет подтвержденные и отмененные бронирования с датой не позже upTo.
// Бронирования в статусе pending_cancellation не удаляются.
func (r *Repository) DeleteResolvedUpTo(ctx context.Context, upTo types.Date) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Delete(table).
		Where(squirrel.LtOrEq{"booking_date": upTo}).
		Where(squirrel.Eq{"status": domain.StatusStrings(domain.SweepableStatuses)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteResolvedUpTo - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteResolvedUpTo - execute delete: %w", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteResolvedUpTo - get rows affected: %w", ErrExecQuery, err)
	}

	return deleted, nil
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking    domain.Booking
		attendance sql.NullString
		createdAt  types.Timestamp
	)

	err := row.Scan(
		&booking.ID,
		&booking.Name,
		&booking.Phone,
		&booking.Date,
		&booking.Slot,
		&booking.Status,
		&attendance,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Attendance = domain.Attendance(attendance.String)
	booking.CreatedAt = createdAt.Time

	return &booking, nil
}
