package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BookingSlots/internal/availability"
	"github.com/m04kA/SMC-BookingSlots/internal/domain"
	"github.com/m04kA/SMC-BookingSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingSlots/pkg/psqlbuilder"
)

const (
	tableBookings = "bookings"

	// activeSlotIndex частичный уникальный индекс по start_at для held/confirmed
	activeSlotIndex = "bookings_active_slot_idx"

	uniqueViolation = "23505"
)

var bookingColumns = []string{
	"id",
	"reference",
	"status",
	"date_key",
	"window_name",
	"duration",
	"start_at",
	"end_at",
	"buffer_before_minutes",
	"buffer_after_minutes",
	"hold_expires_at",
	"customer_name",
	"customer_phone",
	"customer_email",
	"customer_address",
	"vehicle",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Нарушение уникального индекса активных слотов возвращается как ErrSlotTaken:
// это окончательная проверка конфликта в момент записи.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"reference",
			"status",
			"date_key",
			"window_name",
			"duration",
			"start_at",
			"end_at",
			"buffer_before_minutes",
			"buffer_after_minutes",
			"hold_expires_at",
			"customer_name",
			"customer_phone",
			"customer_email",
			"customer_address",
			"vehicle",
			"notes",
		).
		Values(
			booking.Reference,
			booking.Status,
			booking.DateKey,
			booking.Window,
			booking.Duration,
			booking.StartAt,
			booking.EndAt,
			booking.BufferBeforeMinutes,
			booking.BufferAfterMinutes,
			booking.HoldExpiresAt,
			booking.Customer.Name,
			booking.Customer.Phone,
			booking.Customer.Email,
			booking.Customer.Address,
			booking.Customer.Vehicle,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if isActiveSlotViolation(err) {
			return nil, fmt.Errorf("%w: start_at=%s", ErrSlotTaken, booking.StartAt.Format(time.RFC3339))
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByReference получает бронирование по публичному коду
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByReference", squirrel.Eq{"reference": reference})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(where)

	// Внутри транзакции блокируем строку до смены статуса
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %w", ErrScanRow, op, err)
	}

	return booking, nil
}

// ListBlocking получает бронирования, которые занимают слоты на момент now:
// подтвержденные и неистекшие held, которые еще не закончились с учетом буфера после.
//
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельное
// создание бронирования ждало завершения текущего.
func (r *Repository) ListBlocking(ctx context.Context, now time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listBlockingQuery(now, dbmetrics.IsInTransaction(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocking - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocking - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func listBlockingQuery(now time.Time, forUpdate bool) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"status": domain.BlockingStatuses}).
		Where(squirrel.Or{
			squirrel.NotEq{"status": domain.StatusHeld},
			squirrel.Eq{"hold_expires_at": nil},
			squirrel.Gt{"hold_expires_at": now},
		}).
		Where(squirrel.Expr("end_at + make_interval(mins => buffer_after_minutes) > ?", now)).
		OrderBy("start_at ASC")

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return selectBuilder.ToSql()
}

// ListByDateRange получает бронирования за период (по локальной дате слота)
// Используется администратором для просмотра расписания
func (r *Repository) ListByDateRange(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.GtOrEq{"date_key": filter.FromDateKey}).
		Where(squirrel.LtOrEq{"date_key": filter.ToDateKey}).
		OrderBy("start_at ASC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
// При подтверждении срок жизни hold сбрасывается
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	updateBuilder := psqlbuilder.Update(tableBookings).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if status == domain.StatusConfirmed {
		updateBuilder = updateBuilder.Set("hold_expires_at", nil)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "UpdateStatus", query, args)
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "Cancel", query, args)
}

// ExpireHolds переводит просроченные held бронирования в expired
// Возвращает количество освобожденных слотов
func (r *Repository) ExpireHolds(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", domain.StatusExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusHeld}).
		Where(squirrel.LtOrEq{"hold_expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireHolds - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireHolds - execute update: %w", ErrExecQuery, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireHolds - get rows affected: %w", ErrExecQuery, err)
	}

	return n, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, op, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b        domain.Booking
		dateKey  time.Time
		duration string
	)

	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.Status,
		&dateKey,
		&b.Window,
		&duration,
		&b.StartAt,
		&b.EndAt,
		&b.BufferBeforeMinutes,
		&b.BufferAfterMinutes,
		&b.HoldExpiresAt,
		&b.Customer.Name,
		&b.Customer.Phone,
		&b.Customer.Email,
		&b.Customer.Address,
		&b.Customer.Vehicle,
		&b.Notes,
		&b.CancellationReason,
		&b.CancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.DateKey = dateKey.Format(domain.DateFormat)
	b.Duration = availability.DurationKind(duration)
	b.StartAt = b.StartAt.UTC()
	b.EndAt = b.EndAt.UTC()

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func isActiveSlotViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == uniqueViolation && pqErr.Constraint == activeSlotIndex
}
