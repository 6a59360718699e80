package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/leave"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/database"
)

type balanceRepositoryImpl struct {
	db *database.DB
}

func NewBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &balanceRepositoryImpl{db: db}
}

func (r *balanceRepositoryImpl) Get(ctx context.Context, employeeID string) (leave.Balance, error) {
	return r.get(ctx, employeeID, false)
}

// GetForUpdate locks the balance row so the sufficiency check and the
// decrement happen under one lock. Callers must be inside WithinTx.
func (r *balanceRepositoryImpl) GetForUpdate(ctx context.Context, employeeID string) (leave.Balance, error) {
	return r.get(ctx, employeeID, true)
}

func (r *balanceRepositoryImpl) get(ctx context.Context, employeeID string, forUpdate bool) (leave.Balance, error) {
	q := r.db.QuerierFrom(ctx)

	query := `SELECT employee_id, days, updated_at FROM leave_balances WHERE employee_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var (
		balance leave.Balance
		raw     []byte
	)
	err := q.QueryRow(ctx, query, employeeID).Scan(&balance.EmployeeID, &raw, &balance.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Missing ledger reads as all zeroes.
			return leave.Balance{EmployeeID: employeeID, Days: map[string]float64{}}, nil
		}
		return leave.Balance{}, fmt.Errorf("get leave balance: %w", err)
	}
	if err := json.Unmarshal(raw, &balance.Days); err != nil {
		return leave.Balance{}, fmt.Errorf("decode leave balance: %w", err)
	}
	return balance, nil
}

func (r *balanceRepositoryImpl) Save(ctx context.Context, balance leave.Balance) error {
	q := r.db.QuerierFrom(ctx)

	raw, err := json.Marshal(balance.Days)
	if err != nil {
		return fmt.Errorf("encode leave balance: %w", err)
	}

	query := `
		INSERT INTO leave_balances (employee_id, days, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (employee_id) DO UPDATE SET days = EXCLUDED.days, updated_at = NOW()
	`
	if _, err := q.Exec(ctx, query, balance.EmployeeID, raw); err != nil {
		return fmt.Errorf("save leave balance: %w", err)
	}
	return nil
}
