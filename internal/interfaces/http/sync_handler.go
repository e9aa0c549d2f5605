package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-warehouse/internal/application/mirror"
)

// SyncHandler exposes the remote mirror.
type SyncHandler struct {
	m *mirror.Mirror
}

// NewSyncHandler builds the handler.
func NewSyncHandler(m *mirror.Mirror) *SyncHandler {
	return &SyncHandler{m: m}
}

// Status godoc
// @Summary      Mirror state
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SyncStatusDTO
// @Router       /api/sync/status [get]
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.m.Status())
}

// Push godoc
// @Summary      Push the local snapshot now
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/sync/push [post]
func (h *SyncHandler) Push(c *fiber.Ctx) error {
	n, err := h.m.PushNow(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": n, "status": h.m.Status()})
}

// Pull godoc
// @Summary      Replace the local store with the remote snapshot
// @Description  Refused when the remote holds no items.
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/sync/pull [post]
func (h *SyncHandler) Pull(c *fiber.Ctx) error {
	n, err := h.m.Pull(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": n, "status": h.m.Status()})
}
