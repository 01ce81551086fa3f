package handlers

import (
	"errors"

	"khazina/internal/services/voucher"
	"khazina/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type VoucherHandler struct {
	voucherService voucher.Service
}

func NewVoucherHandler(voucherService voucher.Service) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

func (h *VoucherHandler) Create(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		RecipientName  string  `json:"recipient_name"`
		WhatsappNumber string  `json:"whatsapp_number"`
		AmountQAR      float64 `json:"amount_qar"`
		Message        string  `json:"message"`
		ValidityDays   int     `json:"validity_days"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	v, err := h.voucherService.Create(c.Context(), claims.UserID, claims.Email, voucher.CreateInput{
		RecipientName:  input.RecipientName,
		WhatsappNumber: input.WhatsappNumber,
		AmountQAR:      input.AmountQAR,
		Message:        input.Message,
		ValidityDays:   input.ValidityDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, voucher.ErrInvalidAmount):
			return utils.BadRequest(c, "Amount must be between 50 and 10000 QAR")
		case errors.Is(err, voucher.ErrInvalidValidity):
			return utils.BadRequest(c, "Validity must be between 1 and 365 days")
		default:
			return utils.InternalError(c, "Failed to create voucher")
		}
	}
	return utils.Respond(c, fiber.StatusCreated, fiber.Map{"voucher": v})
}

func (h *VoucherHandler) ListSent(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	vouchers, err := h.voucherService.ListSent(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to load vouchers")
	}
	return utils.Success(c, fiber.Map{"vouchers": vouchers})
}

func (h *VoucherHandler) GetByCode(c *fiber.Ctx) error {
	if _, err := extractUserClaims(c); err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	v, err := h.voucherService.GetByCode(c.Context(), c.Params("code"))
	if err != nil {
		if errors.Is(err, voucher.ErrInvalidCode) {
			return utils.NotFound(c, "Invalid voucher code")
		}
		return utils.InternalError(c, "Failed to load voucher")
	}
	return utils.Success(c, fiber.Map{"voucher": v})
}

func (h *VoucherHandler) Redeem(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	v, tx, err := h.voucherService.Redeem(c.Context(), c.Params("code"), claims.UserID, claims.PublicID)
	if err != nil {
		switch {
		case errors.Is(err, voucher.ErrInvalidCode):
			return utils.NotFound(c, "Invalid voucher code")
		case errors.Is(err, voucher.ErrAlreadyRedeemed):
			return utils.BadRequest(c, "Voucher already redeemed")
		case errors.Is(err, voucher.ErrExpired):
			return utils.BadRequest(c, "Voucher expired")
		default:
			return utils.InternalError(c, "Failed to redeem voucher")
		}
	}
	return utils.Success(c, fiber.Map{
		"message":     "Voucher redeemed",
		"voucher":     v,
		"transaction": tx,
	})
}
