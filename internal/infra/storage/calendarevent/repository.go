package calendarevent

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BookingSlots/internal/domain"
	"github.com/m04kA/SMC-BookingSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingSlots/pkg/psqlbuilder"
)

const tableCalendarEvents = "calendar_events"

// Repository кэш занятых интервалов внешнего календаря
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ReplaceWindow заменяет все события календаря, пересекающие [from, to), на events
// Вызывать внутри транзакции, иначе читатели могут увидеть пустое окно
func (r *Repository) ReplaceWindow(ctx context.Context, calendarID string, from, to time.Time, events []domain.CalendarEvent) error {
	if !from.Before(to) {
		return fmt.Errorf("%w: from=%s to=%s", ErrInvalidWindow, from.Format(time.RFC3339), to.Format(time.RFC3339))
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	// 1. Удаляем события, пересекающие окно
	query, args, err := psqlbuilder.Delete(tableCalendarEvents).
		Where(squirrel.Eq{"calendar_id": calendarID}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWindow - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWindow - execute delete: %w", ErrExecQuery, err)
	}

	if len(events) == 0 {
		return nil
	}

	// 2. Вставляем свежие события одним запросом
	insertBuilder := psqlbuilder.Insert(tableCalendarEvents).
		Columns("calendar_id", "external_id", "start_at", "end_at", "summary", "synced_at")
	for _, e := range events {
		insertBuilder = insertBuilder.Values(calendarID, e.ExternalID, e.StartAt, e.EndAt, e.Summary, e.SyncedAt)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWindow - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWindow - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// ListBusy получает закэшированные события, пересекающие [from, to)
func (r *Repository) ListBusy(ctx context.Context, from, to time.Time) ([]*domain.CalendarEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"calendar_id",
		"external_id",
		"start_at",
		"end_at",
		"summary",
		"synced_at",
	).
		From(tableCalendarEvents).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBusy - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBusy - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.CalendarEvent, 0)
	for rows.Next() {
		var e domain.CalendarEvent
		if err := rows.Scan(&e.ID, &e.CalendarID, &e.ExternalID, &e.StartAt, &e.EndAt, &e.Summary, &e.SyncedAt); err != nil {
			return nil, fmt.Errorf("%w: ListBusy - scan event: %w", ErrScanRow, err)
		}
		e.StartAt = e.StartAt.UTC()
		e.EndAt = e.EndAt.UTC()
		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBusy - rows error: %w", ErrScanRow, err)
	}

	return events, nil
}
