package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/leave"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

func (r *leaveTypeRepositoryImpl) GetByCode(ctx context.Context, code string) (leave.LeaveType, error) {
	q := r.db.QuerierFrom(ctx)

	query := `
		SELECT id, code, name, accounting, annual_quota, created_at, updated_at
		FROM leave_types
		WHERE code = $1
	`
	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, code).Scan(
		&lt.ID, &lt.Code, &lt.Name, &lt.Accounting, &lt.AnnualQuota, &lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("get leave type by code: %w", err)
	}
	return lt, nil
}

func (r *leaveTypeRepositoryImpl) List(ctx context.Context) ([]leave.LeaveType, error) {
	q := r.db.QuerierFrom(ctx)

	query := `
		SELECT id, code, name, accounting, annual_quota, created_at, updated_at
		FROM leave_types
		ORDER BY code
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list leave types: %w", err)
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		var lt leave.LeaveType
		if err := rows.Scan(&lt.ID, &lt.Code, &lt.Name, &lt.Accounting, &lt.AnnualQuota, &lt.CreatedAt, &lt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan leave type: %w", err)
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}

func (r *leaveTypeRepositoryImpl) CreateIfAbsent(ctx context.Context, leaveType leave.LeaveType) error {
	q := r.db.QuerierFrom(ctx)

	query := `
		INSERT INTO leave_types (id, code, name, accounting, annual_quota, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (code) DO NOTHING
	`
	_, err := q.Exec(ctx, query, leaveType.Code, leaveType.Name, leaveType.Accounting, leaveType.AnnualQuota)
	if err != nil {
		return fmt.Errorf("seed leave type %s: %w", leaveType.Code, err)
	}
	return nil
}
