package handlers

import (
	"errors"
	"strconv"

	"nushoplah/internal/models"
	"nushoplah/internal/services/user"
	"nushoplah/internal/services/voucher"
	"nushoplah/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type VoucherHandler struct {
	voucherService voucher.Service
	userService    user.Service
}

func NewVoucherHandler(voucherService voucher.Service, userService user.Service) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService, userService: userService}
}

// Create issues a new voucher for the authenticated seller.
func (h *VoucherHandler) Create(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input models.CreateVoucherInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	seller, err := h.userService.GetByID(c.Context(), claims.UserID)
	if err != nil {
		return utils.Unauthorized(c, "seller account not found")
	}

	created, err := h.voucherService.Create(c.Context(), seller, &input)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	return utils.Created(c, created)
}

// ListMine returns the vouchers issued by the authenticated seller.
func (h *VoucherHandler) ListMine(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	vouchers, err := h.voucherService.ListBySeller(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "failed to list vouchers")
	}
	return utils.Success(c, fiber.Map{"vouchers": vouchers, "count": len(vouchers)})
}

// Browse returns every active voucher annotated with whether the
// authenticated customer has already used it.
func (h *VoucherHandler) Browse(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	views, err := h.voucherService.ListForCustomer(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "failed to list vouchers")
	}
	return utils.Success(c, fiber.Map{"vouchers": views, "count": len(views)})
}

// Cancel deletes a voucher the authenticated seller issued.
func (h *VoucherHandler) Cancel(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	voucherID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid voucher id")
	}

	if err := h.voucherService.Cancel(c.Context(), claims.UserID, voucherID); err != nil {
		switch {
		case errors.Is(err, voucher.ErrVoucherNotFound):
			return utils.NotFound(c, "voucher not found")
		case errors.Is(err, voucher.ErrNotIssuer):
			return utils.Forbidden(c, "voucher belongs to another seller")
		default:
			return utils.InternalError(c, "failed to cancel voucher")
		}
	}
	return utils.Success(c, fiber.Map{"message": "voucher cancelled"})
}

// RedemptionCode returns the payload the customer encodes into a QR to
// redeem the voucher at its issuing seller.
func (h *VoucherHandler) RedemptionCode(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	voucherID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid voucher id")
	}

	customer, err := h.userService.GetByID(c.Context(), claims.UserID)
	if err != nil {
		return utils.Unauthorized(c, "customer account not found")
	}

	payload, err := h.voucherService.BuildRedemptionPayload(c.Context(), voucherID, customer)
	if err != nil {
		switch {
		case errors.Is(err, voucher.ErrVoucherNotFound):
			return utils.NotFound(c, "voucher not found")
		case errors.Is(err, voucher.ErrAlreadyUsed):
			return utils.Conflict(c, "voucher already used")
		default:
			return utils.InternalError(c, "failed to build redemption payload")
		}
	}
	return utils.Success(c, payload)
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
