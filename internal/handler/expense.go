package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wanderlog/backend/internal/model"
	"github.com/wanderlog/backend/internal/service"
)

type ExpenseHandler struct {
	svc *service.ExpenseService
}

func NewExpenseHandler(svc *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{svc: svc}
}

// AddExpense godoc
// @Summary Add an expense to a tour
// @Description Multipart form: title, amount, category required; currency and a receipt file optional.
// @Tags expenses
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param tourId path string true "Tour ID"
// @Success 201 {object} model.Expense
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/tours/{tourId}/expenses [post]
func (h *ExpenseHandler) AddExpense(c *gin.Context) {
	amount := 0.0
	if raw := c.PostForm("amount"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
			return
		}
		amount = parsed
	}

	receipt, closeReceipt, err := formUpload(c, "receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receipt upload"})
		return
	}
	defer closeReceipt()

	expense, err := h.svc.AddExpense(c.Request.Context(), GetAuthUser(c), c.Param("tourId"), service.AddExpenseParams{
		Title:    c.PostForm("title"),
		Amount:   amount,
		Currency: c.PostForm("currency"),
		Category: c.PostForm("category"),
		Receipt:  receipt,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// GetTourExpenses godoc
// @Summary List a tour's expenses with budget totals
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param tourId path string true "Tour ID"
// @Success 200 {object} model.ExpenseSummaryResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/tours/{tourId}/expenses [get]
func (h *ExpenseHandler) GetTourExpenses(c *gin.Context) {
	summary, err := h.svc.ListExpenses(c.Request.Context(), GetAuthUser(c), c.Param("tourId"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param expenseId path string true "Expense ID"
// @Success 200 {object} model.StatusResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/expenses/{expenseId} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	if err := h.svc.DeleteExpense(c.Request.Context(), GetAuthUser(c), c.Param("expenseId")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.StatusResponse{Status: "deleted"})
}
