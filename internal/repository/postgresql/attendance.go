package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/attendance"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.punch_in, a.punch_in_latitude, a.punch_in_longitude,
	a.punch_out, a.punch_out_latitude, a.punch_out_longitude, a.auto_closed,
	a.created_at, a.updated_at`

// CreateIfAbsent relies on the (employee_id, date) unique constraint:
// ON CONFLICT DO NOTHING makes the duplicate check and the insert one
// statement, so two concurrent punch-ins cannot both succeed.
func (r *attendanceRepositoryImpl) CreateIfAbsent(ctx context.Context, record attendance.Attendance) (attendance.Attendance, bool, error) {
	q := r.db.QuerierFrom(ctx)

	query := `
		INSERT INTO attendances (
			id, employee_id, date, punch_in, punch_in_latitude, punch_in_longitude,
			auto_closed, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, FALSE, NOW(), NOW()
		)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		record.EmployeeID,
		record.Date,
		record.PunchIn,
		record.PunchInLatitude,
		record.PunchInLongitude,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, false, nil
		}
		return attendance.Attendance{}, false, fmt.Errorf("create attendance: %w", err)
	}
	return record, true, nil
}

func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := r.db.QuerierFrom(ctx)

	query := `SELECT ` + attendanceColumns + ` FROM attendances a WHERE a.id = $1`
	record, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("get attendance: %w", err)
	}
	return record, nil
}

func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := r.db.QuerierFrom(ctx)

	query := `SELECT ` + attendanceColumns + ` FROM attendances a WHERE a.employee_id = $1 AND a.date = $2`
	record, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("get attendance by employee and date: %w", err)
	}
	return record, nil
}

// ClosePunchOut is guarded by punch_out IS NULL: a second close attempt
// matches no row and reports false instead of overwriting.
func (r *attendanceRepositoryImpl) ClosePunchOut(ctx context.Context, employeeID string, date time.Time, punchOut time.Time, lat, lng *float64, autoClosed bool) (bool, error) {
	q := r.db.QuerierFrom(ctx)

	query := `
		UPDATE attendances
		SET punch_out = $1, punch_out_latitude = $2, punch_out_longitude = $3,
			auto_closed = $4, updated_at = NOW()
		WHERE employee_id = $5 AND date = $6 AND punch_out IS NULL
	`
	tag, err := q.Exec(ctx, query, punchOut, lat, lng, autoClosed, employeeID, date)
	if err != nil {
		return false, fmt.Errorf("close punch out: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *attendanceRepositoryImpl) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := r.db.QuerierFrom(ctx)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1 AND a.date >= $2 AND a.date <= $3
		ORDER BY a.date DESC
	`
	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *attendanceRepositoryImpl) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]attendance.Attendance, error) {
	q := r.db.QuerierFrom(ctx)

	query := `
		SELECT ` + attendanceColumns + `, e.user_id
		FROM attendances a
		INNER JOIN employees e ON e.id = a.employee_id
		WHERE a.punch_out IS NULL AND a.punch_in < $1
		ORDER BY a.punch_in
	`
	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list open attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var record attendance.Attendance
		err := rows.Scan(
			&record.ID,
			&record.EmployeeID,
			&record.Date,
			&record.PunchIn,
			&record.PunchInLatitude,
			&record.PunchInLongitude,
			&record.PunchOut,
			&record.PunchOutLatitude,
			&record.PunchOutLongitude,
			&record.AutoClosed,
			&record.CreatedAt,
			&record.UpdatedAt,
			&record.EmployeeUserID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan open attendance: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var record attendance.Attendance
	err := row.Scan(
		&record.ID,
		&record.EmployeeID,
		&record.Date,
		&record.PunchIn,
		&record.PunchInLatitude,
		&record.PunchInLongitude,
		&record.PunchOut,
		&record.PunchOutLatitude,
		&record.PunchOutLongitude,
		&record.AutoClosed,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	return record, err
}
