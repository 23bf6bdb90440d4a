package model

import "time"

type Expense struct {
	ID           string    `json:"id"`
	TourID       string    `json:"tour"`
	OwnerID      int64     `json:"owner"`
	Title        string    `json:"title"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	Category     string    `json:"category"`
	ReceiptImage string    `json:"receiptImage,omitempty"`
	ReceiptKey   string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (e *Expense) OwnedBy() int64 { return e.OwnerID }

// ExpenseSummaryResponse pairs the expense list with the budget math the
// client renders on the tour wallet view.
type ExpenseSummaryResponse struct {
	Expenses        []Expense `json:"expenses"`
	TourBudget      float64   `json:"tourBudget"`
	TotalSpent      float64   `json:"totalSpent"`
	RemainingBudget float64   `json:"remainingBudget"`
}
