package handlers

import (
	"errors"

	"khazina/internal/services/catalog"
	"khazina/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	catalogService catalog.Service
}

func NewProductHandler(catalogService catalog.Service) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.catalogService.ListProducts(c.Context(), c.Query("type"), c.Query("category"))
	if err != nil {
		return utils.InternalError(c, "Failed to load products")
	}
	return utils.Success(c, fiber.Map{"products": products})
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	product, err := h.catalogService.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return utils.NotFound(c, "Product not found")
		}
		return utils.InternalError(c, "Failed to load product")
	}
	return utils.Success(c, fiber.Map{"product": product})
}

func (h *ProductHandler) ListMerchants(c *fiber.Ctx) error {
	merchants, err := h.catalogService.ListMerchants(c.Context())
	if err != nil {
		return utils.InternalError(c, "Failed to load merchants")
	}
	return utils.Success(c, fiber.Map{"merchants": merchants})
}

func (h *ProductHandler) ListDesigners(c *fiber.Ctx) error {
	designers, err := h.catalogService.ListDesigners(c.Context())
	if err != nil {
		return utils.InternalError(c, "Failed to load designers")
	}
	return utils.Success(c, fiber.Map{"designers": designers})
}
