package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/exit"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/database"
)

type resignationRepositoryImpl struct {
	db *database.DB
}

func NewResignationRepository(db *database.DB) exit.ResignationRepository {
	return &resignationRepositoryImpl{db: db}
}

const resignationColumns = `
	r.id, r.employee_id, r.type, r.submission_date, r.last_working_date,
	r.notice_period, r.reason, r.remarks, r.department, r.designation,
	r.status, r.pipeline_status, r.submitted_by, r.approver_ids,
	r.decided_by, r.decided_at, r.cancelled_at, r.created_at, r.updated_at,
	e.full_name`

const resignationJoins = `
	FROM resignations r
	INNER JOIN employees e ON e.id = r.employee_id`

func (r *resignationRepositoryImpl) Create(ctx context.Context, resignation exit.Resignation) (exit.Resignation, error) {
	q := r.db.QuerierFrom(ctx)

	query := `
		INSERT INTO resignations (
			id, employee_id, type, submission_date, last_working_date,
			notice_period, reason, department, designation,
			status, pipeline_status, submitted_by, approver_ids,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW()
		)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		resignation.EmployeeID,
		resignation.Type,
		resignation.SubmissionDate,
		resignation.LastWorkingDate,
		resignation.NoticePeriod,
		resignation.Reason,
		resignation.Department,
		resignation.Designation,
		resignation.Status,
		resignation.PipelineStatus,
		resignation.SubmittedBy,
		resignation.ApproverIDs,
	).Scan(&resignation.ID, &resignation.CreatedAt, &resignation.UpdatedAt)
	if err != nil {
		return exit.Resignation{}, fmt.Errorf("create resignation: %w", err)
	}
	return resignation, nil
}

func (r *resignationRepositoryImpl) GetByID(ctx context.Context, id string) (exit.Resignation, error) {
	return r.getByID(ctx, id, false)
}

func (r *resignationRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (exit.Resignation, error) {
	return r.getByID(ctx, id, true)
}

func (r *resignationRepositoryImpl) getByID(ctx context.Context, id string, forUpdate bool) (exit.Resignation, error) {
	q := r.db.QuerierFrom(ctx)

	query := `SELECT ` + resignationColumns + resignationJoins + ` WHERE r.id = $1`
	if forUpdate {
		query += ` FOR UPDATE OF r`
	}

	resignation, err := scanResignation(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exit.Resignation{}, exit.ErrResignationNotFound
		}
		return exit.Resignation{}, fmt.Errorf("get resignation: %w", err)
	}
	return resignation, nil
}

// HasActive locks any live resignation rows of the employee, so two
// concurrent submits inside WithinTx serialize on the same rows.
func (r *resignationRepositoryImpl) HasActive(ctx context.Context, employeeID string) (bool, error) {
	q := r.db.QuerierFrom(ctx)

	query := `
		SELECT r.id FROM resignations r
		WHERE r.employee_id = $1 AND r.pipeline_status IN ($2, $3, $4)
		FOR UPDATE
	`
	rows, err := q.Query(ctx, query, employeeID,
		exit.ResignationPending, exit.ResignationApproved, exit.ResignationInClearance)
	if err != nil {
		return false, fmt.Errorf("check active resignation: %w", err)
	}
	defer rows.Close()

	active := rows.Next()
	return active, rows.Err()
}

func (r *resignationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter exit.ResignationFilter) ([]exit.Resignation, int64, error) {
	return r.list(ctx, &employeeID, filter)
}

func (r *resignationRepositoryImpl) List(ctx context.Context, filter exit.ResignationFilter) ([]exit.Resignation, int64, error) {
	return r.list(ctx, nil, filter)
}

func (r *resignationRepositoryImpl) list(ctx context.Context, employeeID *string, filter exit.ResignationFilter) ([]exit.Resignation, int64, error) {
	q := r.db.QuerierFrom(ctx)

	where := ` WHERE ($1::text IS NULL OR r.employee_id = $1)
		AND ($2::text IS NULL OR r.status = $2)`

	var status *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}

	query := `SELECT ` + resignationColumns + resignationJoins + where + `
		ORDER BY r.submission_date DESC
		LIMIT $3 OFFSET $4`

	limit, offset := pageToLimitOffset(filter.Page, filter.Limit)
	rows, err := q.Query(ctx, query, employeeID, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list resignations: %w", err)
	}
	defer rows.Close()

	var resignations []exit.Resignation
	for rows.Next() {
		resignation, err := scanResignation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan resignation: %w", err)
		}
		resignations = append(resignations, resignation)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*)` + resignationJoins + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, employeeID, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count resignations: %w", err)
	}
	return resignations, total, nil
}

func (r *resignationRepositoryImpl) UpdateState(ctx context.Context, resignation exit.Resignation) error {
	q := r.db.QuerierFrom(ctx)

	query := `
		UPDATE resignations
		SET status = $1, pipeline_status = $2, decided_by = $3, decided_at = $4,
			cancelled_at = $5, remarks = $6, updated_at = NOW()
		WHERE id = $7
	`
	tag, err := q.Exec(ctx, query,
		resignation.Status,
		resignation.PipelineStatus,
		resignation.DecidedBy,
		resignation.DecidedAt,
		resignation.CancelledAt,
		resignation.Remarks,
		resignation.ID,
	)
	if err != nil {
		return fmt.Errorf("update resignation state: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return exit.ErrResignationNotFound
	}
	return nil
}

func scanResignation(row pgx.Row) (exit.Resignation, error) {
	var resignation exit.Resignation
	err := row.Scan(
		&resignation.ID,
		&resignation.EmployeeID,
		&resignation.Type,
		&resignation.SubmissionDate,
		&resignation.LastWorkingDate,
		&resignation.NoticePeriod,
		&resignation.Reason,
		&resignation.Remarks,
		&resignation.Department,
		&resignation.Designation,
		&resignation.Status,
		&resignation.PipelineStatus,
		&resignation.SubmittedBy,
		&resignation.ApproverIDs,
		&resignation.DecidedBy,
		&resignation.DecidedAt,
		&resignation.CancelledAt,
		&resignation.CreatedAt,
		&resignation.UpdatedAt,
		&resignation.EmployeeName,
	)
	return resignation, err
}
