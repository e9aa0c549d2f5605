package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-warehouse/internal/application/dto"
	"github.com/jhoicas/hotel-warehouse/internal/application/usecase"
)

// SettingsHandler serves zones, categories, departments, profiles and the manager passcode.
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler builds the handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Configured sets
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddEntry godoc
// @Summary      Add a zone, category or department
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        set   path  string           true  "zones, categories or departments"
// @Param        body  body  dto.NameRequest  true  "name"
// @Success      201   {object}  dto.SettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/settings/{set} [post]
func (h *SettingsHandler) AddEntry(c *fiber.Ctx) error {
	var in dto.NameRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddEntry(c.Context(), usecase.SettingSet(c.Params("set")), in.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveEntry godoc
// @Summary      Remove a zone, category or department
// @Description  The last zone cannot be removed.
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        set   path  string  true  "zones, categories or departments"
// @Param        name  path  string  true  "entry (URL-encoded)"
// @Success      200   {object}  dto.SettingsResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/settings/{set}/{name} [delete]
func (h *SettingsHandler) RemoveEntry(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return badBody(c)
	}
	out, err := h.uc.RemoveEntry(c.Context(), usecase.SettingSet(c.Params("set")), name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListUsers godoc
// @Summary      Profiles
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/settings/users [get]
func (h *SettingsHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateUser godoc
// @Summary      Add a profile
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "name, role (Staff|Manager)"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/users [post]
func (h *SettingsHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateUser(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteUser godoc
// @Summary      Remove a profile
// @Description  The active profile and the last profile cannot be removed.
// @Tags         settings
// @Security     Bearer
// @Param        id   path  string  true  "profile id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/settings/users/{id} [delete]
func (h *SettingsHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.uc.DeleteUser(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangePasscode godoc
// @Summary      Change the manager passcode
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.ChangePasscodeRequest  true  "current, new (min 4)"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/settings/passcode [put]
func (h *SettingsHandler) ChangePasscode(c *fiber.Ctx) error {
	var in dto.ChangePasscodeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ChangePasscode(c.Context(), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
