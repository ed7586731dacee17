package handler

import (
	"net/http"
	"storefront-backend/internal/dto"
	"storefront-backend/internal/model"
	"storefront-backend/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ProductHandler struct {
	catalog service.CatalogService
	log     *zap.Logger
}

func NewProductHandler(catalog service.CatalogService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		log:     log,
	}
}

func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.catalog.List(ctx)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": products,
	})
}

func (h *ProductHandler) Single(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ProductIDRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}

	product, err := h.catalog.Get(ctx, req.ProductID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"product": product,
	})
}

func (h *ProductHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddProductRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}

	product, err := h.catalog.Add(ctx, &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Sizes:       req.Sizes,
		Bestseller:  req.Bestseller,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Product Added",
		"product": product,
	})
}

func (h *ProductHandler) Remove(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RemoveProductRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}

	if err := h.catalog.Remove(ctx, req.ID); err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Product Removed",
	})
}
