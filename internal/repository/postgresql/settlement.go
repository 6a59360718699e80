package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/exit"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/database"
)

type settlementRepositoryImpl struct {
	db *database.DB
}

func NewSettlementRepository(db *database.DB) exit.SettlementRepository {
	return &settlementRepositoryImpl{db: db}
}

// Amounts are NUMERIC columns moved as text so decimal precision survives
// the round trip.
const settlementColumns = `
	id, employee_id,
	basic_salary::text, pending_leaves::text, bonus::text, other_payable::text,
	notice_period_recovery::text, advance_recovery::text, other_deductions::text,
	status, remarks, created_at, updated_at`

func (r *settlementRepositoryImpl) Create(ctx context.Context, settlement exit.Settlement) (exit.Settlement, error) {
	q := r.db.QuerierFrom(ctx)

	query := `
		INSERT INTO settlements (
			id, employee_id,
			basic_salary, pending_leaves, bonus, other_payable,
			notice_period_recovery, advance_recovery, other_deductions,
			status, remarks, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		settlement.EmployeeID,
		settlement.BasicSalary,
		settlement.PendingLeaves,
		settlement.Bonus,
		settlement.OtherPayable,
		settlement.NoticePeriodRecovery,
		settlement.AdvanceRecovery,
		settlement.OtherDeductions,
		settlement.Status,
		settlement.Remarks,
	).Scan(&settlement.ID, &settlement.CreatedAt, &settlement.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return exit.Settlement{}, exit.ErrSettlementExists
		}
		return exit.Settlement{}, fmt.Errorf("create settlement: %w", err)
	}
	return settlement, nil
}

func (r *settlementRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (exit.Settlement, error) {
	return r.get(ctx, employeeID, false)
}

func (r *settlementRepositoryImpl) GetByEmployeeIDForUpdate(ctx context.Context, employeeID string) (exit.Settlement, error) {
	return r.get(ctx, employeeID, true)
}

func (r *settlementRepositoryImpl) get(ctx context.Context, employeeID string, forUpdate bool) (exit.Settlement, error) {
	q := r.db.QuerierFrom(ctx)

	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE employee_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	settlement, err := scanSettlement(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exit.Settlement{}, exit.ErrSettlementNotFound
		}
		return exit.Settlement{}, fmt.Errorf("get settlement: %w", err)
	}
	return settlement, nil
}

func (r *settlementRepositoryImpl) Update(ctx context.Context, settlement exit.Settlement) error {
	q := r.db.QuerierFrom(ctx)

	query := `
		UPDATE settlements
		SET basic_salary = $1, pending_leaves = $2, bonus = $3, other_payable = $4,
			notice_period_recovery = $5, advance_recovery = $6, other_deductions = $7,
			status = $8, remarks = $9, updated_at = NOW()
		WHERE id = $10
	`
	tag, err := q.Exec(ctx, query,
		settlement.BasicSalary,
		settlement.PendingLeaves,
		settlement.Bonus,
		settlement.OtherPayable,
		settlement.NoticePeriodRecovery,
		settlement.AdvanceRecovery,
		settlement.OtherDeductions,
		settlement.Status,
		settlement.Remarks,
		settlement.ID,
	)
	if err != nil {
		return fmt.Errorf("update settlement: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return exit.ErrSettlementNotFound
	}
	return nil
}

func scanSettlement(row pgx.Row) (exit.Settlement, error) {
	var (
		settlement exit.Settlement
		amounts    [7]string
	)
	err := row.Scan(
		&settlement.ID,
		&settlement.EmployeeID,
		&amounts[0], &amounts[1], &amounts[2], &amounts[3],
		&amounts[4], &amounts[5], &amounts[6],
		&settlement.Status,
		&settlement.Remarks,
		&settlement.CreatedAt,
		&settlement.UpdatedAt,
	)
	if err != nil {
		return exit.Settlement{}, err
	}

	targets := []*decimal.Decimal{
		&settlement.BasicSalary, &settlement.PendingLeaves, &settlement.Bonus,
		&settlement.OtherPayable, &settlement.NoticePeriodRecovery,
		&settlement.AdvanceRecovery, &settlement.OtherDeductions,
	}
	for i, target := range targets {
		d, err := decimal.NewFromString(amounts[i])
		if err != nil {
			return exit.Settlement{}, fmt.Errorf("parse settlement amount: %w", err)
		}
		*target = d
	}
	return settlement, nil
}
