package handler

import (
	"net/http"
	"storefront-backend/internal/dto"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CartHandler struct {
	cartService service.CartService
	log         *zap.Logger
}

func NewCartHandler(cartService service.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		log:         log,
	}
}

func (h *CartHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CartAddRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}

	cart, err := h.cartService.Add(ctx, middleware.AccountID(c), req.ItemID, req.Size)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, dto.CartResponse{Success: true, Message: "Added to cart", CartData: cart})
}

func (h *CartHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CartUpdateRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}

	cart, err := h.cartService.Update(ctx, middleware.AccountID(c), req.ItemID, req.Size, req.Quantity)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, dto.CartResponse{Success: true, Message: "Cart updated", CartData: cart})
}

func (h *CartHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	cart, err := h.cartService.Get(ctx, middleware.AccountID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, dto.CartResponse{Success: true, CartData: cart})
}

func (h *CartHandler) Amount(c echo.Context) error {
	ctx := c.Request().Context()

	amount, err := h.cartService.Amount(ctx, middleware.AccountID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"amount":  amount,
	})
}
