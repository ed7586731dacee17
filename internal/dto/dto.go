package dto

import (
	"encoding/json"
	"fmt"
	"storefront-backend/internal/model"
	"strings"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Token   string    `json:"token"`
	User    *UserView `json:"user,omitempty"`
}

type UserView struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

func NewUserView(a *model.Account) *UserView {
	return &UserView{ID: a.ID, Name: a.Name, Email: a.Email, Image: a.Image}
}

type CartAddRequest struct {
	ItemID string `json:"itemId"`
	Size   string `json:"size"`
}

type CartUpdateRequest struct {
	ItemID   string `json:"itemId"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"` // zero or less removes the entry
}

type CartResponse struct {
	Success  bool       `json:"success"`
	Message  string     `json:"message,omitempty"`
	CartData model.Cart `json:"cartData"`
}

// OrderItemRequest mirrors the product objects the storefront posts back,
// only the fields used for pricing are read.
type OrderItemRequest struct {
	ID       string `json:"_id" validate:"required"`
	Size     string `json:"size" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

type PlaceOrderRequest struct {
	Items   []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Amount  float64            `json:"amount" validate:"gt=0"`
	Address model.Address      `json:"address"`
}

type StripeVerifyRequest struct {
	OrderID string   `json:"orderId" validate:"required"`
	Success FlexBool `json:"success"`
}

type RazorpayVerifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

type UpdateStatusRequest struct {
	OrderID string `json:"orderId" validate:"required"`
	Status  string `json:"status" validate:"required"`
}

type ProductIDRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

type RemoveProductRequest struct {
	ID string `json:"id" validate:"required"`
}

type AddProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"gt=0"`
	Images      []string `json:"image"`
	Category    string   `json:"category"`
	SubCategory string   `json:"subCategory"`
	Sizes       []string `json:"sizes" validate:"required,min=1"`
	Bestseller  bool     `json:"bestseller"`
}

// FlexBool accepts a JSON boolean or the strings "true" and "false". The
// checkout redirect echoes success back as a query string value.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = FlexBool(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("success must be a boolean: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		*b = true
	case "false", "":
		*b = false
	default:
		return fmt.Errorf("success must be true or false, got %q", s)
	}
	return nil
}
