package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/leave"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/workflow"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.leave_type_id, lr.start_date, lr.end_date,
	lr.working_days, lr.reason, lr.status, lr.submitted_by, lr.approver_ids,
	lr.decided_by, lr.decided_at, lr.cancelled_at, lr.rejection_reason,
	lr.submitted_at, lr.created_at, lr.updated_at,
	lt.code, lt.name, e.full_name`

const leaveRequestJoins = `
	FROM leave_requests lr
	INNER JOIN leave_types lt ON lt.id = lr.leave_type_id
	INNER JOIN employees e ON e.id = lr.employee_id`

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := r.db.QuerierFrom(ctx)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type_id, start_date, end_date, working_days,
			reason, status, submitted_by, approver_ids,
			submitted_at, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW(), NOW()
		)
		RETURNING id, submitted_at, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		request.EmployeeID,
		request.LeaveTypeID,
		request.StartDate,
		request.EndDate,
		request.WorkingDays,
		request.Reason,
		request.Status,
		request.SubmittedBy,
		request.ApproverIDs,
	).Scan(&request.ID, &request.SubmittedAt, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("create leave request: %w", err)
	}
	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate locks the request row; the status guard and the flip run
// under one lock. Callers must be inside WithinTx.
func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.getByID(ctx, id, true)
}

func (r *leaveRequestRepositoryImpl) getByID(ctx context.Context, id string, forUpdate bool) (leave.LeaveRequest, error) {
	q := r.db.QuerierFrom(ctx)

	query := `SELECT ` + leaveRequestColumns + leaveRequestJoins + ` WHERE lr.id = $1`
	if forUpdate {
		query += ` FOR UPDATE OF lr`
	}

	request, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("get leave request: %w", err)
	}
	return request, nil
}

func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter leave.RequestFilter) ([]leave.LeaveRequest, int64, error) {
	return r.list(ctx, &employeeID, filter)
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.RequestFilter) ([]leave.LeaveRequest, int64, error) {
	return r.list(ctx, nil, filter)
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, employeeID *string, filter leave.RequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := r.db.QuerierFrom(ctx)

	where := ` WHERE ($1::text IS NULL OR lr.employee_id = $1)
		AND ($2::text IS NULL OR lr.status = $2)`

	var status *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}

	query := `SELECT ` + leaveRequestColumns + leaveRequestJoins + where + `
		ORDER BY lr.submitted_at DESC
		LIMIT $3 OFFSET $4`

	limit, offset := pageToLimitOffset(filter.Page, filter.Limit)
	rows, err := q.Query(ctx, query, employeeID, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		request, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan leave request: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*)` + leaveRequestJoins + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, employeeID, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leave requests: %w", err)
	}
	return requests, total, nil
}

func (r *leaveRequestRepositoryImpl) UpdateState(ctx context.Context, request leave.LeaveRequest) error {
	q := r.db.QuerierFrom(ctx)

	query := `
		UPDATE leave_requests
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
		return fmt.Errorf("update leave request state: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// CheckOverlapping reports whether the employee already has a pending or
// approved request intersecting [start, end].
func (r *leaveRequestRepositoryImpl) CheckOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := r.db.QuerierFrom(ctx)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
				AND status IN ($2, $3)
				AND start_date <= $5 AND end_date >= $4
		)
	`
	var exists bool
	err := q.QueryRow(ctx, query, employeeID, workflow.StatusPending, workflow.StatusApproved, start, end).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check overlapping leave: %w", err)
	}
	return exists, nil
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var request leave.LeaveRequest
	err := row.Scan(
		&request.ID,
		&request.EmployeeID,
		&request.LeaveTypeID,
		&request.StartDate,
		&request.EndDate,
		&request.WorkingDays,
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
		&request.LeaveTypeCode,
		&request.LeaveTypeName,
		&request.EmployeeName,
	)
	return request, err
}

func pageToLimitOffset(page, limit int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	return limit, (page - 1) * limit
}
