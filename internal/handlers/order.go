package handlers

import (
	"errors"

	"khazina/internal/services/order"
	"khazina/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	orderService order.Service
}

func NewOrderHandler(orderService order.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		PaymentMethod   string `json:"payment_method"`
		CardToken       string `json:"card_token"`
		DeliveryAddress string `json:"delivery_address"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	o, err := h.orderService.Checkout(c.Context(), claims.UserID, claims.PublicID, order.CheckoutInput{
		PaymentMethod:   input.PaymentMethod,
		CardToken:       input.CardToken,
		DeliveryAddress: input.DeliveryAddress,
	})
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			return utils.BadRequest(c, "Cart is empty")
		case errors.Is(err, order.ErrInvalidPaymentMethod):
			return utils.BadRequest(c, "Payment method must be card or cash_on_delivery")
		case errors.Is(err, order.ErrCardTokenRequired):
			return utils.BadRequest(c, "Card token is required for card payments")
		case errors.Is(err, order.ErrOutOfStock):
			return utils.BadRequest(c, "One or more items are out of stock")
		case errors.Is(err, order.ErrPaymentFailed):
			return utils.Respond(c, fiber.StatusPaymentRequired, fiber.Map{"error": "Payment failed"})
		default:
			return utils.InternalError(c, "Checkout failed")
		}
	}
	return utils.Respond(c, fiber.StatusCreated, fiber.Map{"order": o})
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	o, err := h.orderService.Get(c.Context(), claims.UserID, c.Params("orderId"))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return utils.NotFound(c, "Order not found")
		}
		return utils.InternalError(c, "Failed to load order")
	}
	return utils.Success(c, fiber.Map{"order": o})
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	orders, err := h.orderService.List(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to load orders")
	}
	return utils.Success(c, fiber.Map{"orders": orders})
}
