package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/attendance"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/database"
)

type editRequestRepositoryImpl struct {
	db *database.DB
}

func NewEditRequestRepository(db *database.DB) attendance.EditRequestRepository {
	return &editRequestRepositoryImpl{db: db}
}

const editRequestColumns = `
	er.id, er.attendance_id, er.employee_id, er.date, er.current_punch_in,
	er.requested_punch_out, er.reason, er.status, er.submitted_by,
	er.approver_ids, er.decided_by, er.decided_at, er.cancelled_at,
	er.rejection_reason, er.submitted_at, er.created_at, er.updated_at,
	e.full_name`

const editRequestJoins = `
	FROM attendance_edit_requests er
	INNER JOIN employees e ON e.id = er.employee_id`

func (r *editRequestRepositoryImpl) Create(ctx context.Context, request attendance.EditRequest) (attendance.EditRequest, error) {
	q := r.db.QuerierFrom(ctx)

	query := `
		INSERT INTO attendance_edit_requests (
			id, attendance_id, employee_id, date, current_punch_in,
			requested_punch_out, reason, status, submitted_by, approver_ids,
			submitted_at, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW(), NOW()
		)
		RETURNING id, submitted_at, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		request.AttendanceID,
		request.EmployeeID,
		request.Date,
		request.CurrentPunchIn,
		request.RequestedPunchOut,
		request.Reason,
		request.Status,
		request.SubmittedBy,
		request.ApproverIDs,
	).Scan(&request.ID, &request.SubmittedAt, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return attendance.EditRequest{}, fmt.Errorf("create edit request: %w", err)
	}
	return request, nil
}

func (r *editRequestRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.EditRequest, error) {
	return r.getByID(ctx, id, false)
}

func (r *editRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (attendance.EditRequest, error) {
	return r.getByID(ctx, id, true)
}

func (r *editRequestRepositoryImpl) getByID(ctx context.Context, id string, forUpdate bool) (attendance.EditRequest, error) {
	q := r.db.QuerierFrom(ctx)

	query := `SELECT ` + editRequestColumns + editRequestJoins + ` WHERE er.id = $1`
	if forUpdate {
		query += ` FOR UPDATE OF er`
	}

	request, err := scanEditRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.EditRequest{}, attendance.ErrEditRequestNotFound
		}
		return attendance.EditRequest{}, fmt.Errorf("get edit request: %w", err)
	}
	return request, nil
}

func (r *editRequestRepositoryImpl) List(ctx context.Context, filter attendance.EditRequestFilter) ([]attendance.EditRequest, int64, error) {
	return r.list(ctx, nil, filter)
}

func (r *editRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter attendance.EditRequestFilter) ([]attendance.EditRequest, int64, error) {
	return r.list(ctx, &employeeID, filter)
}

func (r *editRequestRepositoryImpl) list(ctx context.Context, employeeID *string, filter attendance.EditRequestFilter) ([]attendance.EditRequest, int64, error) {
	q := r.db.QuerierFrom(ctx)

	where := ` WHERE ($1::text IS NULL OR er.employee_id = $1)
		AND ($2::text IS NULL OR er.status = $2)`

	var status *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}

	query := `SELECT ` + editRequestColumns + editRequestJoins + where + `
		ORDER BY er.submitted_at DESC
		LIMIT $3 OFFSET $4`

	limit, offset := pageToLimitOffset(filter.Page, filter.Limit)
	rows, err := q.Query(ctx, query, employeeID, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list edit requests: %w", err)
	}
	defer rows.Close()

	var requests []attendance.EditRequest
	for rows.Next() {
		request, err := scanEditRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan edit request: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*)` + editRequestJoins + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, employeeID, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count edit requests: %w", err)
	}
	return requests, total, nil
}

func (r *editRequestRepositoryImpl) UpdateState(ctx context.Context, request attendance.EditRequest) error {
	q := r.db.QuerierFrom(ctx)

	query := `
		UPDATE attendance_edit_requests
		SET status = $1, decided_by = $2, decided_at = $3, cancelled_at = $4,
			rejection_reason = $5, updated_at = NOW()
		WHERE id = $6
	`
	tag, err := q.Exec(ctx, query,
		request.Status,
		request.DecidedBy,
		request.DecidedAt,
		request.CancelledAt,
		request.RejectionReason,
		request.ID,
	)
	if err != nil {
		return fmt.Errorf("update edit request state: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return attendance.ErrEditRequestNotFound
	}
	return nil
}

func scanEditRequest(row pgx.Row) (attendance.EditRequest, error) {
	var request attendance.EditRequest
	err := row.Scan(
		&request.ID,
		&request.AttendanceID,
		&request.EmployeeID,
		&request.Date,
		&request.CurrentPunchIn,
		&request.RequestedPunchOut,
		&request.Reason,
		&request.Status,
		&request.SubmittedBy,
		&request.ApproverIDs,
		&request.DecidedBy,
		&request.DecidedAt,
		&request.CancelledAt,
		&request.RejectionReason,
		&request.SubmittedAt,
		&request.CreatedAt,
		&request.UpdatedAt,
		&request.EmployeeName,
	)
	return request, err
}
