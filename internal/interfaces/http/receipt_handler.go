package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-warehouse/internal/application/inventory"
)

// ReceiptHandler serves release receipts.
type ReceiptHandler struct {
	uc *inventory.ReceiptUseCase
}

// NewReceiptHandler builds the handler.
func NewReceiptHandler(uc *inventory.ReceiptUseCase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc}
}

// Download godoc
// @Summary      Release receipt PDF
// @Tags         receipts
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "receipt id (TX-XXXXXXX)"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *ReceiptHandler) Download(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.uc.RenderReceipt(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+id+`.pdf"`)
	return c.Send(pdf)
}

// Details godoc
// @Summary      Release receipt data
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "receipt id"
// @Success      200  {object}  inventory.Receipt
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/details [get]
func (h *ReceiptHandler) Details(c *fiber.Ctx) error {
	r, err := h.uc.GetReceipt(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(r)
}
