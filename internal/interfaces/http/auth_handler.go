package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-warehouse/internal/application/auth"
	"github.com/jhoicas/hotel-warehouse/internal/application/dto"
	"github.com/jhoicas/hotel-warehouse/internal/application/usecase"
)

// AuthHandler serves the profile selector and session start.
type AuthHandler struct {
	uc       *auth.AuthUseCase
	settings *usecase.SettingsUseCase
}

// NewAuthHandler builds the handler.
func NewAuthHandler(uc *auth.AuthUseCase, settings *usecase.SettingsUseCase) *AuthHandler {
	return &AuthHandler{uc: uc, settings: settings}
}

// ListProfiles godoc
// @Summary      List warehouse profiles
// @Description  Public: feeds the profile selector before a session exists.
// @Tags         auth
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *AuthHandler) ListProfiles(c *fiber.Ctx) error {
	users, err := h.settings.ListUsers(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(users)
}

// StartSession godoc
// @Summary      Select a profile
// @Description  Staff profiles get a token directly. Manager profiles must send the shared passcode.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SessionRequest  true  "user_id, passcode (managers)"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/session [post]
func (h *AuthHandler) StartSession(c *fiber.Ctx) error {
	var in dto.SessionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.StartSession(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
