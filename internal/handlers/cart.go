package handlers

import (
	"errors"

	"khazina/internal/services/cart"
	"khazina/internal/services/goldprice"
	"khazina/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	cartService cart.Service
}

func NewCartHandler(cartService cart.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) Get(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	view, err := h.cartService.Get(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to load cart")
	}
	return utils.Success(c, fiber.Map{"cart": view})
}

func (h *CartHandler) AddProduct(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	err = h.cartService.AddProduct(c.Context(), claims.UserID, input.ProductID, input.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrProductNotFound):
			return utils.NotFound(c, "Product not found")
		case errors.Is(err, cart.ErrInvalidQuantity):
			return utils.BadRequest(c, "Quantity must be greater than 0")
		default:
			return utils.InternalError(c, "Failed to add to cart")
		}
	}
	return utils.Success(c, fiber.Map{"message": "Added to cart"})
}

func (h *CartHandler) AddGoldInvestment(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Karat int     `json:"karat"`
		Grams float64 `json:"grams"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	err = h.cartService.AddGoldInvestment(c.Context(), claims.UserID, input.Karat, input.Grams)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrInvalidKarat):
			return utils.BadRequest(c, "Karat must be one of 24, 22, 21, 18")
		case errors.Is(err, cart.ErrInvalidGrams):
			return utils.BadRequest(c, "Grams must be greater than 0")
		case errors.Is(err, goldprice.ErrPricingUnavailable):
			return utils.Respond(c, fiber.StatusServiceUnavailable, fiber.Map{"error": "Pricing unavailable, try again shortly"})
		default:
			return utils.InternalError(c, "Failed to add to cart")
		}
	}
	return utils.Success(c, fiber.Map{"message": "Added to cart"})
}

func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	if err := h.cartService.UpdateQuantity(c.Context(), claims.UserID, input.ProductID, input.Quantity); err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			return utils.NotFound(c, "Item not in cart")
		}
		return utils.InternalError(c, "Failed to update cart")
	}
	return utils.Success(c, fiber.Map{"message": "Cart updated"})
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	if err := h.cartService.Clear(c.Context(), claims.UserID); err != nil {
		return utils.InternalError(c, "Failed to clear cart")
	}
	return utils.Success(c, fiber.Map{"message": "Cart cleared"})
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	if err := h.cartService.RemoveItem(c.Context(), claims.UserID, c.Params("productId")); err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			return utils.NotFound(c, "Item not in cart")
		}
		return utils.InternalError(c, "Failed to remove item")
	}
	return utils.Success(c, fiber.Map{"message": "Item removed"})
}
