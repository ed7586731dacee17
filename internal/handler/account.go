package handler

import (
	"errors"
	"net/http"
	"storefront-backend/internal/dto"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/model"
	"storefront-backend/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AccountHandler struct {
	accountService service.AccountService
	log            *zap.Logger
}

func NewAccountHandler(accountService service.AccountService, log *zap.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		log:            log,
	}
}

func (h *AccountHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}

	res, err := h.accountService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Message: "Registration successful",
		Token:   res.Token,
		User:    dto.NewUserView(res.Account),
	})
}

func (h *AccountHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}

	res, err := h.accountService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Token:   res.Token,
		User:    dto.NewUserView(res.Account),
	})
}

func (h *AccountHandler) AdminLogin(c echo.Context) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}

	token, err := h.accountService.AdminLogin(req.Email, req.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Token: token})
}

func (h *AccountHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := h.accountService.Profile(ctx, middleware.AccountID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"userData": dto.NewUserView(account),
	})
}

// UpdateProfile takes a multipart form with name, email and an optional image file.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	input := service.UpdateProfileInput{
		Name:  c.FormValue("name"),
		Email: c.FormValue("email"),
	}

	fileHeader, err := c.FormFile("image")
	if err != nil && !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		return respondError(c, h.log, model.Invalid("Invalid image upload"))
	}
	if fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			return respondError(c, h.log, err)
		}
		defer file.Close()
		input.Image = file
	}

	if err := h.accountService.UpdateProfile(ctx, middleware.AccountID(c), input); err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Profile updated",
	})
}
