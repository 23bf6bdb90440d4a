package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/wanderlog/backend/internal/db"
	"github.com/wanderlog/backend/internal/model"
)

type ExpenseStore interface {
	InsertExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error)
	GetExpenseByID(ctx context.Context, expenseID string) (*model.Expense, error)
	ListExpensesByTour(ctx context.Context, tourID string) ([]model.Expense, error)
	SumExpensesByTour(ctx context.Context, tourID string) (float64, error)
	DeleteExpense(ctx context.Context, expenseID string) error
}

type ExpenseService struct {
	repo  ExpenseStore
	tours TourStore
	media MediaStore
}

func NewExpenseService(repo ExpenseStore, tours TourStore, media MediaStore) *ExpenseService {
	return &ExpenseService{repo: repo, tours: tours, media: media}
}

type AddExpenseParams struct {
	Title    string
	Amount   float64
	Currency string
	Category string
	Receipt  *Upload
}

func (s *ExpenseService) AddExpense(ctx context.Context, principal *model.AuthUser, tourID string, params AddExpenseParams) (*model.Expense, error) {
	if params.Title == "" || params.Category == "" {
		return nil, fmt.Errorf("%w: title, amount and category are required", ErrInvalidInput)
	}
	if params.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	tour, err := s.loadTour(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(principal, tour, RelationWrite); err != nil {
		return nil, err
	}

	receiptURL, receiptKey := "", ""
	if params.Receipt != nil {
		key := mediaKey("receipts", params.Receipt.Filename)
		url, err := s.media.Upload(ctx, key, params.Receipt.ContentType, params.Receipt.Reader, params.Receipt.Size)
		if err != nil {
			return nil, err
		}
		receiptURL, receiptKey = url, key
	}

	currency := params.Currency
	if currency == "" {
		currency = "USD"
	}

	return s.repo.InsertExpense(ctx, &model.Expense{
		ID:           uuid.NewString(),
		TourID:       tourID,
		OwnerID:      principal.ID,
		Title:        params.Title,
		Amount:       params.Amount,
		Currency:     currency,
		Category:     params.Category,
		ReceiptImage: receiptURL,
		ReceiptKey:   receiptKey,
	})
}

// ListExpenses returns the expense list with the tour's budget math.
func (s *ExpenseService) ListExpenses(ctx context.Context, principal *model.AuthUser, tourID string) (*model.ExpenseSummaryResponse, error) {
	tour, err := s.loadTour(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(principal, tour, RelationWrite); err != nil {
		return nil, err
	}

	expenses, err := s.repo.ListExpensesByTour(ctx, tourID)
	if err != nil {
		return nil, err
	}

	totalSpent, err := s.repo.SumExpensesByTour(ctx, tourID)
	if err != nil {
		return nil, err
	}

	return &model.ExpenseSummaryResponse{
		Expenses:        expenses,
		TourBudget:      tour.BudgetLimit,
		TotalSpent:      totalSpent,
		RemainingBudget: tour.BudgetLimit - totalSpent,
	}, nil
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, principal *model.AuthUser, expenseID string) error {
	expense, err := s.repo.GetExpenseByID(ctx, expenseID)
	if err != nil {
		if db.IsNoRows(err) {
			return fmt.Errorf("%w: expense", ErrNotFound)
		}
		return err
	}
	if err := Authorize(principal, expense, RelationWrite); err != nil {
		return err
	}

	if expense.ReceiptKey != "" {
		if err := s.media.Delete(ctx, expense.ReceiptKey); err != nil {
			log.Printf("[Expense] Failed to delete receipt %s: %v", expense.ReceiptKey, err)
		}
	}

	return s.repo.DeleteExpense(ctx, expenseID)
}

func (s *ExpenseService) loadTour(ctx context.Context, tourID string) (*model.Tour, error) {
	tour, err := s.tours.GetTourByID(ctx, tourID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: tour", ErrNotFound)
		}
		return nil, err
	}
	return tour, nil
}
