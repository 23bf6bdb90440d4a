package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/wanderlog/backend/internal/model"
)

const expenseColumns = `id, tour_id, owner_id, title, amount, currency, category, receipt_image, receipt_key, created_at, updated_at`

func scanExpense(row pgx.Row) (*model.Expense, error) {
	var expense model.Expense
	err := row.Scan(
		&expense.ID,
		&expense.TourID,
		&expense.OwnerID,
		&expense.Title,
		&expense.Amount,
		&expense.Currency,
		&expense.Category,
		&expense.ReceiptImage,
		&expense.ReceiptKey,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (db *Postgres) InsertExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error) {
	query := `
		INSERT INTO expenses (id, tour_id, owner_id, title, amount, currency, category, receipt_image, receipt_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING ` + expenseColumns
	return scanExpense(db.Pool.QueryRow(ctx, query,
		expense.ID,
		expense.TourID,
		expense.OwnerID,
		expense.Title,
		expense.Amount,
		expense.Currency,
		expense.Category,
		expense.ReceiptImage,
		expense.ReceiptKey,
	))
}

func (db *Postgres) GetExpenseByID(ctx context.Context, expenseID string) (*model.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	return scanExpense(db.Pool.QueryRow(ctx, query, expenseID))
}

func (db *Postgres) ListExpensesByTour(ctx context.Context, tourID string) ([]model.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE tour_id = $1
		ORDER BY created_at DESC
	`
	rows, err := db.Pool.Query(ctx, query, tourID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if list == nil {
		list = []model.Expense{}
	}
	return list, nil
}

// SumExpensesByTour totals spending server-side rather than in the handler.
func (db *Postgres) SumExpensesByTour(ctx context.Context, tourID string) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE tour_id = $1`
	var total float64
	err := db.Pool.QueryRow(ctx, query, tourID).Scan(&total)
	return total, err
}

func (db *Postgres) DeleteExpense(ctx context.Context, expenseID string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, expenseID)
	return err
}
