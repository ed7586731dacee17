package handler

import (
	"errors"
	"net/http"
	"storefront-backend/internal/model"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const msgInternal = "Something went wrong, please try again"

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// respondError maps domain errors onto status codes. Anything unrecognised is
// logged and reported as a generic failure.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	status, message := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return c.JSON(status, errorResponse{Success: false, Message: message})
}

func classify(err error) (int, string) {
	var vErr *model.ValidationError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, vErr.Message
	case errors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError:
		return httpErr.Code, "Invalid request"
	case errors.Is(err, model.ErrEmailTaken):
		return http.StatusConflict, model.ErrEmailTaken.Error()
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized, model.ErrInvalidCredentials.Error()
	case errors.Is(err, model.ErrAccountNotFound):
		return http.StatusNotFound, "User does not exist"
	case errors.Is(err, model.ErrOrderNotFound):
		return http.StatusNotFound, "Order not found"
	case errors.Is(err, model.ErrProductNotFound):
		return http.StatusNotFound, "Product not found"
	case errors.Is(err, model.ErrInvalidSignature):
		return http.StatusBadRequest, model.ErrInvalidSignature.Error()
	case errors.Is(err, model.ErrPaymentNotConfirmed):
		return http.StatusPaymentRequired, model.ErrPaymentNotConfirmed.Error()
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// bind decodes and validates the request body.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return model.Invalid("Invalid request body")
	}
	if c.Echo().Validator != nil {
		if err := c.Validate(req); err != nil {
			return model.Invalid("Invalid request: " + err.Error())
		}
	}
	return nil
}
