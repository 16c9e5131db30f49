package handlers

import (
	"errors"

	domainErrors "nushoplah/internal/errors"
	"nushoplah/internal/models"
	"nushoplah/internal/services/scan"
	"nushoplah/internal/services/user"
	"nushoplah/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// ScanHandler fronts the seller's scanner: classify a scanned payload,
// then run the matching redemption flow.
type ScanHandler struct {
	scanService scan.Service
	userService user.Service
}

func NewScanHandler(scanService scan.Service, userService user.Service) *ScanHandler {
	return &ScanHandler{scanService: scanService, userService: userService}
}

// Classify inspects a raw scanned string and reports which flow it starts.
// Nothing is persisted here; the seller app uses the result to prompt for
// the amount or the redemption confirmation.
func (h *ScanHandler) Classify(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Data string `json:"data"`
	}
	if err := c.BodyParser(&input); err != nil || input.Data == "" {
		return utils.BadRequest(c, "scanned data is required")
	}

	result, err := h.scanService.Classify(input.Data, claims.UserID)
	if err != nil {
		return scanError(c, err)
	}

	if result.IsVoucher() {
		return utils.Success(c, fiber.Map{"type": "voucher", "payload": result.Voucher})
	}
	return utils.Success(c, fiber.Map{"type": "identity", "payload": result.Identity})
}

// AwardPoints runs the points flow for a scanned customer identity.
func (h *ScanHandler) AwardPoints(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Data       string  `json:"data"`
		AmountPaid float64 `json:"amount_paid"`
	}
	if err := c.BodyParser(&input); err != nil || input.Data == "" {
		return utils.BadRequest(c, "scanned data is required")
	}
	if input.AmountPaid <= 0 {
		return utils.BadRequest(c, "amount paid must be positive")
	}

	result, err := h.scanService.Classify(input.Data, claims.UserID)
	if err != nil {
		return scanError(c, err)
	}
	if result.IsVoucher() {
		return utils.BadRequest(c, "scanned payload is a voucher, not a customer identity")
	}

	seller, err := h.userService.GetByID(c.Context(), claims.UserID)
	if err != nil {
		return utils.Unauthorized(c, "seller account not found")
	}

	redemption, err := h.scanService.AwardPoints(c.Context(), seller, result.Identity, input.AmountPaid)
	if err != nil {
		return scanError(c, err)
	}
	return utils.Success(c, redemption)
}

// RedeemVoucher runs the voucher flow for a scanned redemption payload.
func (h *ScanHandler) RedeemVoucher(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Data          string  `json:"data"`
		OriginalPrice float64 `json:"original_price"`
	}
	if err := c.BodyParser(&input); err != nil || input.Data == "" {
		return utils.BadRequest(c, "scanned data is required")
	}
	if input.OriginalPrice < 0 {
		return utils.BadRequest(c, "original price cannot be negative")
	}

	result, err := h.scanService.Classify(input.Data, claims.UserID)
	if err != nil {
		return scanError(c, err)
	}
	if !result.IsVoucher() {
		return utils.BadRequest(c, "scanned payload is a customer identity, not a voucher")
	}

	seller, err := h.userService.GetByID(c.Context(), claims.UserID)
	if err != nil {
		return utils.Unauthorized(c, "seller account not found")
	}

	redemption, err := h.scanService.RedeemVoucher(c.Context(), seller, result.Voucher, input.OriginalPrice)
	if err != nil {
		return scanError(c, err)
	}
	return utils.Success(c, redemption)
}

// scanError maps domain errors to HTTP responses, surfacing the stable
// error code alongside the message.
func scanError(c *fiber.Ctx, err error) error {
	var dErr *domainErrors.DomainError
	if !errors.As(err, &dErr) {
		return utils.InternalError(c, "redemption failed")
	}

	status := fiber.StatusInternalServerError
	switch dErr {
	case domainErrors.ErrMalformedPayload,
		domainErrors.ErrForeignVoucher,
		domainErrors.ErrNegativePoints:
		status = fiber.StatusBadRequest
	case domainErrors.ErrInsufficientPoints:
		status = fiber.StatusConflict
	}
	return utils.Respond(c, status, fiber.Map{"error": dErr.Message, "code": dErr.Code})
}
