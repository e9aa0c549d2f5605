package http

import (
	"bytes"
	"context"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-warehouse/internal/application/export"
)

// ExportHandler serves the CSV reports and the JSON backup as downloads.
type ExportHandler struct {
	uc *export.ExportUseCase
}

// NewExportHandler builds the handler.
func NewExportHandler(uc *export.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// InventoryCSV godoc
// @Summary      Stock report
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  binary
// @Router       /api/export/inventory.csv [get]
func (h *ExportHandler) InventoryCSV(c *fiber.Ctx) error {
	return h.download(c, h.uc.FileName("Inventory", "csv"), "text/csv; charset=utf-8", h.uc.InventoryCSV)
}

// ReleasesCSV godoc
// @Summary      Release report
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  binary
// @Router       /api/export/releases.csv [get]
func (h *ExportHandler) ReleasesCSV(c *fiber.Ctx) error {
	return h.download(c, h.uc.FileName("Releases", "csv"), "text/csv; charset=utf-8", h.uc.ReleasesCSV)
}

// Backup godoc
// @Summary      Full JSON backup
// @Description  Items, transactions, profiles and configuration. The passcode is never included.
// @Tags         export
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  export.Backup
// @Router       /api/export/backup.json [get]
func (h *ExportHandler) Backup(c *fiber.Ctx) error {
	return h.download(c, h.uc.FileName("Warehouse_Backup", "json"), fiber.MIMEApplicationJSONCharsetUTF8, h.uc.BackupJSON)
}

// download renders into memory before any header is written.
func (h *ExportHandler) download(c *fiber.Ctx, name, contentType string, render func(context.Context, io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(c.Context(), &buf); err != nil {
		return writeError(c, err)
	}
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(buf.Bytes())
}
