package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/calendar"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) calendar.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

func (r *holidayRepositoryImpl) Create(ctx context.Context, holiday calendar.Holiday) (calendar.Holiday, error) {
	q := r.db.QuerierFrom(ctx)

	query := `
		INSERT INTO holidays (id, date, name, description, created_at)
		VALUES (uuidv7(), $1, $2, $3, NOW())
		RETURNING id, created_at
	`
	err := q.QueryRow(ctx, query, holiday.Date, holiday.Name, holiday.Description).
		Scan(&holiday.ID, &holiday.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return calendar.Holiday{}, calendar.ErrHolidayExists
		}
		return calendar.Holiday{}, fmt.Errorf("create holiday: %w", err)
	}
	return holiday, nil
}

func (r *holidayRepositoryImpl) List(ctx context.Context) ([]calendar.Holiday, error) {
	q := r.db.QuerierFrom(ctx)

	query := `SELECT id, date, name, description, created_at FROM holidays ORDER BY date`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	defer rows.Close()

	return scanHolidays(rows)
}

func (r *holidayRepositoryImpl) ListByRange(ctx context.Context, start, end time.Time) ([]calendar.Holiday, error) {
	q := r.db.QuerierFrom(ctx)

	query := `
		SELECT id, date, name, description, created_at
		FROM holidays
		WHERE date >= $1 AND date <= $2
		ORDER BY date
	`
	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list holidays by range: %w", err)
	}
	defer rows.Close()

	return scanHolidays(rows)
}

func scanHolidays(rows pgx.Rows) ([]calendar.Holiday, error) {
	var holidays []calendar.Holiday
	for rows.Next() {
		var h calendar.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.Description, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}
