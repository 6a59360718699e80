package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/exit"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/database"
)

type clearanceRepositoryImpl struct {
	db *database.DB
}

func NewClearanceRepository(db *database.DB) exit.ClearanceRepository {
	return &clearanceRepositoryImpl{db: db}
}

// Items live in a JSONB array; item IDs are generated app-side since the
// row-level uuidv7() default cannot reach inside the document.
func (r *clearanceRepositoryImpl) Create(ctx context.Context, clearance exit.Clearance) (exit.Clearance, error) {
	q := r.db.QuerierFrom(ctx)

	raw, err := json.Marshal(clearance.Items)
	if err != nil {
		return exit.Clearance{}, fmt.Errorf("encode clearance items: %w", err)
	}

	query := `
		INSERT INTO clearances (id, resignation_id, employee_id, items, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err = q.QueryRow(ctx, query, clearance.ResignationID, clearance.EmployeeID, raw).
		Scan(&clearance.ID, &clearance.CreatedAt, &clearance.UpdatedAt)
	if err != nil {
		return exit.Clearance{}, fmt.Errorf("create clearance: %w", err)
	}
	return clearance, nil
}

func (r *clearanceRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (exit.Clearance, error) {
	return r.get(ctx, employeeID, false)
}

func (r *clearanceRepositoryImpl) GetByEmployeeIDForUpdate(ctx context.Context, employeeID string) (exit.Clearance, error) {
	return r.get(ctx, employeeID, true)
}

func (r *clearanceRepositoryImpl) get(ctx context.Context, employeeID string, forUpdate bool) (exit.Clearance, error) {
	q := r.db.QuerierFrom(ctx)

	query := `
		SELECT id, resignation_id, employee_id, items, created_at, updated_at
		FROM clearances
		WHERE employee_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var (
		clearance exit.Clearance
		raw       []byte
	)
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&clearance.ID,
		&clearance.ResignationID,
		&clearance.EmployeeID,
		&raw,
		&clearance.CreatedAt,
		&clearance.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exit.Clearance{}, exit.ErrClearanceNotFound
		}
		return exit.Clearance{}, fmt.Errorf("get clearance: %w", err)
	}
	if err := json.Unmarshal(raw, &clearance.Items); err != nil {
		return exit.Clearance{}, fmt.Errorf("decode clearance items: %w", err)
	}
	return clearance, nil
}

func (r *clearanceRepositoryImpl) UpdateItems(ctx context.Context, clearance exit.Clearance) error {
	q := r.db.QuerierFrom(ctx)

	raw, err := json.Marshal(clearance.Items)
	if err != nil {
		return fmt.Errorf("encode clearance items: %w", err)
	}

	query := `UPDATE clearances SET items = $1, updated_at = NOW() WHERE id = $2`
	tag, err := q.Exec(ctx, query, raw, clearance.ID)
	if err != nil {
		return fmt.Errorf("update clearance items: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return exit.ErrClearanceNotFound
	}
	return nil
}
