package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// ClientStat количество бронирований клиента
type ClientStat struct {
	Phone string
	Name  string
	Count int
}

// CountActiveByDate считает активные бронирования по датам в диапазоне включительно.
// Даты без бронирований в результат не попадают.
func (r *Repository) CountActiveByDate(ctx context.Context, from, to types.Date) (map[types.Date]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select("booking_date", "COUNT(*)").
		From(table).
		Where(squirrel.GtOrEq{"booking_date": from}).
		Where(squirrel.LtOrEq{"booking_date": to}).
		Where(squirrel.Eq{"status": domain.StatusStrings(domain.ActiveStatuses)}).
		GroupBy("booking_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[types.Date]int)
	for rows.Next() {
		var (
			date  types.Date
			count int
		)
		if err := rows.Scan(&date, &count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveByDate - scan row: %w", ErrScanRow, err)
		}
		counts[date] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDate - rows error: %w", ErrScanRow, err)
	}

	return counts, nil
}

// CountAttendance считает отметки present и absent по всем хранимым бронированиям
func (r *Repository) CountAttendance(ctx context.Context) (present int, absent int, err error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select("attendance", "COUNT(*)").
		From(table).
		Where(squirrel.NotEq{"attendance": nil}).
		GroupBy("attendance").
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: CountAttendance - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: CountAttendance - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			mark  sql.NullString
			count int
		)
		if err := rows.Scan(&mark, &count); err != nil {
			return 0, 0, fmt.Errorf("%w: CountAttendance - scan row: %w", ErrScanRow, err)
		}
		switch domain.Attendance(mark.String) {
		case domain.AttendancePresent:
			present = count
		case domain.AttendanceAbsent:
			absent = count
		}
	}

	if err := rows.Err(); err != nil {
		return 0, 0, fmt.Errorf("%w: CountAttendance - rows error: %w", ErrScanRow, err)
	}

	return present, absent, nil
}

// TopClients возвращает клиентов с наибольшим числом бронирований.
// Имя берется из последнего бронирования клиента.
func (r *Repository) TopClients(ctx context.Context, limit int) ([]ClientStat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	grouped := r.dialect.Select("phone", "COUNT(*) AS cnt").
		From(table).
		GroupBy("phone")

	query, args, err := r.dialect.Select(
		"g.phone",
		"(SELECT n.name FROM bookings n WHERE n.phone = g.phone ORDER BY n.id DESC LIMIT 1) AS name",
		"g.cnt",
	).
		FromSelect(grouped, "g").
		OrderBy("g.cnt DESC", "g.phone ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: TopClients - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: TopClients - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	stats := make([]ClientStat, 0, limit)
	for rows.Next() {
		var stat ClientStat
		if err := rows.Scan(&stat.Phone, &stat.Name, &stat.Count); err != nil {
			return nil, fmt.Errorf("%w: TopClients - scan row: %w", ErrScanRow, err)
		}
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: TopClients - rows error: %w", ErrScanRow, err)
	}

	return stats, nil
}
