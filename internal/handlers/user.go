package handlers

import (
	"errors"

	"nushoplah/internal/models"
	"nushoplah/internal/repositories"
	"nushoplah/internal/services/user"
	"nushoplah/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register creates a customer or seller account.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	created, err := h.userService.Create(&input)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return utils.Conflict(c, err.Error())
		}
		return utils.BadRequest(c, err.Error())
	}

	return utils.Created(c, fiber.Map{
		"id":         created.ID,
		"email":      created.Email,
		"first_name": created.FirstName,
		"role":       created.Role,
	})
}

// Profile returns the authenticated user's account view, including the
// derived tier and progress toward the next one.
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	account, err := h.userService.Profile(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return utils.NotFound(c, "user not found")
		}
		return utils.InternalError(c, "failed to load profile")
	}
	return utils.Success(c, account)
}

// IdentityCode returns the payload the customer's identity screen encodes
// into a QR for sellers to scan.
func (h *UserHandler) IdentityCode(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	payload, err := h.userService.IdentityPayload(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "failed to build identity payload")
	}
	return utils.Success(c, payload)
}
