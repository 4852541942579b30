package handlers

import (
	"errors"
	"time"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/models"
	"expense-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	txService *service.TransactionService
	logger    *zap.Logger
}

func NewTransactionHandler(txService *service.TransactionService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
		logger:    logger,
	}
}

// AddIncome godoc
// @Summary Add an income
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body dto.AddTransactionRequest true "Income"
// @Security Bearer
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/transactions/add-income [post]
func (h *TransactionHandler) AddIncome(c *fiber.Ctx) error {
	return h.addTransaction(c, models.TransactionTypeIncome)
}

// AddExpense godoc
// @Summary Add an expense
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body dto.AddTransactionRequest true "Expense"
// @Security Bearer
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/transactions/add-expense [post]
func (h *TransactionHandler) AddExpense(c *fiber.Ctx) error {
	return h.addTransaction(c, models.TransactionTypeExpense)
}

func (h *TransactionHandler) addTransaction(c *fiber.Ctx, txType models.TransactionType) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.AddTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	tx, err := h.txService.AddTransaction(c.Context(), userID, &req, txType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTitle),
			errors.Is(err, service.ErrInvalidAmount),
			errors.Is(err, service.ErrInvalidDate):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			h.logger.Error("Failed to add transaction", zap.String("type", string(txType)), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to add transaction",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(tx))
}

// GetIncomes godoc
// @Summary List the user's incomes
// @Tags transactions
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.TransactionResponse
// @Router /api/v1/transactions/get-incomes [get]
func (h *TransactionHandler) GetIncomes(c *fiber.Ctx) error {
	return h.listTransactions(c, models.TransactionTypeIncome)
}

// GetExpenses godoc
// @Summary List the user's expenses
// @Tags transactions
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.TransactionResponse
// @Router /api/v1/transactions/get-expenses [get]
func (h *TransactionHandler) GetExpenses(c *fiber.Ctx) error {
	return h.listTransactions(c, models.TransactionTypeExpense)
}

func (h *TransactionHandler) listTransactions(c *fiber.Ctx, txType models.TransactionType) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	transactions, err := h.txService.ListTransactions(c.Context(), userID, txType)
	if err != nil {
		h.logger.Error("Failed to list transactions", zap.String("type", string(txType)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list transactions",
		})
	}

	return c.JSON(toTransactionResponses(transactions))
}

// DeleteIncome godoc
// @Summary Delete an income
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/transactions/delete-income/{id} [delete]
func (h *TransactionHandler) DeleteIncome(c *fiber.Ctx) error {
	return h.deleteTransaction(c, models.TransactionTypeIncome)
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/transactions/delete-expense/{id} [delete]
func (h *TransactionHandler) DeleteExpense(c *fiber.Ctx) error {
	return h.deleteTransaction(c, models.TransactionTypeExpense)
}

func (h *TransactionHandler) deleteTransaction(c *fiber.Ctx, txType models.TransactionType) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid transaction ID",
		})
	}

	if err := h.txService.DeleteTransaction(c.Context(), userID, id, txType); err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Transaction not found",
			})
		}
		h.logger.Error("Failed to delete transaction", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete transaction",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Summary godoc
// @Summary Aggregated totals for the user
// @Description Total income, total expense and resulting balance
// @Tags transactions
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.SummaryResponse
// @Router /api/v1/transactions/summary [get]
func (h *TransactionHandler) Summary(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	summary, err := h.txService.Summary(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to build summary", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build summary",
		})
	}

	return c.JSON(summary)
}

func toTransactionResponse(tx *models.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          tx.ID.String(),
		Type:        string(tx.Type),
		Title:       tx.Title,
		Amount:      tx.Amount,
		Category:    tx.Category,
		Description: tx.Description,
		Date:        tx.Date.Format(time.RFC3339),
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
	}
}

func toTransactionResponses(transactions []*models.Transaction) []dto.TransactionResponse {
	responses := make([]dto.TransactionResponse, len(transactions))
	for i, tx := range transactions {
		responses[i] = toTransactionResponse(tx)
	}
	return responses
}
