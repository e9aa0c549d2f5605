package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-warehouse/internal/application/dto"
	"github.com/jhoicas/hotel-warehouse/internal/application/usecase"
)

// TransactionHandler serves the movement log.
type TransactionHandler struct {
	uc *usecase.HistoryUseCase
}

// NewTransactionHandler builds the handler.
func NewTransactionHandler(uc *usecase.HistoryUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// List godoc
// @Summary      Transaction history
// @Description  Newest first. "All Departments" disables the department filter.
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        search      query  string  false  "item name, SKU or receiver"
// @Param        department  query  string  false  "department"
// @Param        action      query  string  false  "RECEIVE, ISSUE or TRANSFER"
// @Param        limit       query  int     false  "page size (default 50, max 200)"
// @Param        offset      query  int     false  "offset"
// @Success      200  {object}  dto.HistoryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	in := dto.HistoryRequest{
		PageRequest: dto.PageRequest{
			Limit:  c.QueryInt("limit", 50),
			Offset: c.QueryInt("offset", 0),
		},
		Search:     c.Query("search"),
		Department: c.Query("department"),
		Action:     c.Query("action"),
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
