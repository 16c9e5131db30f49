package handlers

import (
	"strconv"

	"nushoplah/internal/models"
	"nushoplah/internal/services/transaction"
	"nushoplah/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// ActivityHandler serves the transaction history screens for both roles.
type ActivityHandler struct {
	txService transaction.Service
}

func NewActivityHandler(txService transaction.Service) *ActivityHandler {
	return &ActivityHandler{txService: txService}
}

// CustomerHistory lists the authenticated customer's transactions, newest
// first, with the lifetime amount total.
func (h *ActivityHandler) CustomerHistory(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	limit, offset := paginationParams(c)
	activity, err := h.txService.CustomerHistory(c.Context(), claims.UserID, limit, offset)
	if err != nil {
		return utils.InternalError(c, "failed to load activity")
	}
	return utils.Success(c, activity)
}

// SellerHistory lists the transactions recorded at the authenticated
// seller's counter.
func (h *ActivityHandler) SellerHistory(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	limit, offset := paginationParams(c)
	activity, err := h.txService.SellerHistory(c.Context(), claims.UserID, limit, offset)
	if err != nil {
		return utils.InternalError(c, "failed to load activity")
	}
	return utils.Success(c, activity)
}

func paginationParams(c *fiber.Ctx) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit", "50"))
	offset, _ = strconv.Atoi(c.Query("offset", "0"))
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
