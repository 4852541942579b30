package handlers

import (
	"errors"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BillHandler struct {
	billService *service.BillService
	logger      *zap.Logger
}

func NewBillHandler(billService *service.BillService, logger *zap.Logger) *BillHandler {
	return &BillHandler{
		billService: billService,
		logger:      logger,
	}
}

// UploadBill godoc
// @Summary Upload a bill image
// @Description Extract vendor, amount, date and category from a photographed bill and record it as an expense
// @Tags bills
// @Accept multipart/form-data
// @Produce json
// @Param billImage formData file true "Bill image (jpg, png or pdf)"
// @Security Bearer
// @Success 201 {object} dto.BillUploadResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/bills/upload [post]
func (h *BillHandler) UploadBill(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	fileHeader, err := c.FormFile("billImage")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": service.ErrNoFile.Error(),
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	expense, err := h.billService.IngestBill(c.Context(), userID, src, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFile):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrExtractionService):
			h.logger.Error("Bill extraction unavailable", zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Bill extraction service is unavailable",
			})
		case errors.Is(err, service.ErrMalformedExtraction):
			h.logger.Error("Bill extraction unreadable", zap.Error(err))
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "Could not read expense data from the bill",
			})
		default:
			h.logger.Error("Failed to ingest bill", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to process bill",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(dto.BillUploadResponse{
		Message: "Expense created from bill",
		Expense: toTransactionResponse(expense),
	})
}
