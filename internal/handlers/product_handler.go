package handlers

import (
	"errors"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProductHandler serves the read-only catalog.
type ProductHandler struct {
	service *services.ProductService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the public catalog routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleGetProducts)
	router.Get("/products/:id", h.HandleGetProductByID)
	router.Get("/categories", h.HandleGetCategories)
}

// HandleGetProducts lists products. Query parameters: category, maxPrice, q, featured, new.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	filter := services.ProductFilter{
		Category:     c.Query("category"),
		MaxPrice:     c.QueryFloat("maxPrice", 0),
		Query:        c.Query("q"),
		FeaturedOnly: c.QueryBool("featured", false),
		NewOnly:      c.QueryBool("new", false),
	}
	products, err := h.service.ListProducts(filter)
	if err != nil {
		return internalError(c, h.logger, "list products failed", err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Product not found")
		}
		return internalError(c, h.logger, "get product failed", err)
	}
	return c.JSON(product)
}

// HandleGetCategories lists categories with product counts.
func (h *ProductHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories()
	if err != nil {
		return internalError(c, h.logger, "list categories failed", err)
	}
	return c.JSON(categories)
}
