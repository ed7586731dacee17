package handler

import (
	"net/http"
	"storefront-backend/internal/dto"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/model"
	"storefront-backend/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orderService service.OrderService
	payments     service.PaymentOrchestrator
	log          *zap.Logger
}

func NewOrderHandler(orderService service.OrderService, payments service.PaymentOrchestrator, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		payments:     payments,
		log:          log,
	}
}

func placeOrderInput(c echo.Context, req *dto.PlaceOrderRequest) service.PlaceOrderInput {
	items := make([]service.OrderLineInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderLineInput{
			ItemID:   item.ID,
			Size:     item.Size,
			Quantity: item.Quantity,
		})
	}
	return service.PlaceOrderInput{
		Items:   items,
		Amount:  req.Amount,
		Address: req.Address,
		Origin:  c.Request().Header.Get(echo.HeaderOrigin),
	}
}

func (h *OrderHandler) PlaceCash(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PlaceOrderRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}

	if _, err := h.orderService.PlaceCash(ctx, middleware.AccountID(c), placeOrderInput(c, &req)); err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Order Placed",
	})
}

func (h *OrderHandler) StartStripe(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PlaceOrderRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}

	checkout, err := h.orderService.PlaceStripe(ctx, middleware.AccountID(c), placeOrderInput(c, &req))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":     true,
		"session_url": checkout.URL,
	})
}

func (h *OrderHandler) VerifyStripe(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.StripeVerifyRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}

	paid, err := h.payments.VerifyStripe(ctx, middleware.AccountID(c), req.OrderID, bool(req.Success))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"success": paid})
}

func (h *OrderHandler) StartRazorpay(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PlaceOrderRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}

	order, err := h.orderService.PlaceRazorpay(ctx, middleware.AccountID(c), placeOrderInput(c, &req))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   order,
	})
}

func (h *OrderHandler) VerifyRazorpay(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RazorpayVerifyRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}

	if err := h.payments.VerifyRazorpay(ctx, req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature); err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Payment Successful",
	})
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListForAccount(ctx, middleware.AccountID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

func (h *OrderHandler) ListAll(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListAll(ctx)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateStatusRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}

	if err := h.orderService.SetStatus(ctx, req.OrderID, model.OrderStatus(req.Status)); err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Status Updated",
	})
}
