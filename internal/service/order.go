package service

import (
	"context"
	"fmt"
	"storefront-backend/internal/client"
	"storefront-backend/internal/metrics"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderService interface {
	PlaceCash(ctx context.Context, accountID string, input PlaceOrderInput) (*model.Order, error)
	PlaceStripe(ctx context.Context, accountID string, input PlaceOrderInput) (*StripeCheckout, error)
	PlaceRazorpay(ctx context.Context, accountID string, input PlaceOrderInput) (*client.RazorpayOrder, error)
	ListForAccount(ctx context.Context, accountID string) ([]*model.Order, error)
	ListAll(ctx context.Context) ([]*model.Order, error)
	SetStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}

type OrderLineInput struct {
	ItemID   string
	Size     string
	Quantity int
}

type PlaceOrderInput struct {
	Items   []OrderLineInput
	Amount  float64 // as shown to the buyer, checked against the catalog
	Address model.Address
	Origin  string // frontend origin for provider redirects, optional
}

type orderServiceImpl struct {
	orderRepo   repository.OrderRepository
	accountRepo repository.AccountRepository
	catalog     CatalogService
	payments    PaymentOrchestrator
	settings    CheckoutSettings
	validate    *validator.Validate
	metrics     *metrics.Metrics
	log         *zap.Logger
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	accountRepo repository.AccountRepository,
	catalog CatalogService,
	payments PaymentOrchestrator,
	settings CheckoutSettings,
	m *metrics.Metrics,
	log *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		orderRepo:   orderRepo,
		accountRepo: accountRepo,
		catalog:     catalog,
		payments:    payments,
		settings:    settings,
		validate:    validator.New(),
		metrics:     m,
		log:         log,
	}
}

func (s *orderServiceImpl) PlaceCash(ctx context.Context, accountID string, input PlaceOrderInput) (*model.Order, error) {
	order, err := s.buildOrder(ctx, accountID, input, model.PaymentCOD)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("store order in db: %w", err)
	}
	s.metrics.OrderPlaced(string(model.PaymentCOD))

	if err := s.accountRepo.SaveCart(ctx, accountID, model.Cart{}); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}
	return order, nil
}

func (s *orderServiceImpl) PlaceStripe(ctx context.Context, accountID string, input PlaceOrderInput) (*StripeCheckout, error) {
	order, err := s.buildOrder(ctx, accountID, input, model.PaymentStripe)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("store order in db: %w", err)
	}

	checkout, err := s.payments.OpenStripe(ctx, order, input.Origin)
	if err != nil {
		s.discard(ctx, order.ID)
		return nil, fmt.Errorf("open stripe session: %w", err)
	}
	if err := s.orderRepo.SetProviderOrderID(ctx, order.ID, checkout.SessionID); err != nil {
		s.discard(ctx, order.ID)
		return nil, fmt.Errorf("store stripe session id: %w", err)
	}

	s.metrics.OrderPlaced(string(model.PaymentStripe))
	return checkout, nil
}

func (s *orderServiceImpl) PlaceRazorpay(ctx context.Context, accountID string, input PlaceOrderInput) (*client.RazorpayOrder, error) {
	order, err := s.buildOrder(ctx, accountID, input, model.PaymentRazorpay)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("store order in db: %w", err)
	}

	rzpOrder, err := s.payments.OpenRazorpay(ctx, order)
	if err != nil {
		s.discard(ctx, order.ID)
		return nil, fmt.Errorf("open razorpay order: %w", err)
	}
	if err := s.orderRepo.SetProviderOrderID(ctx, order.ID, rzpOrder.ID); err != nil {
		s.discard(ctx, order.ID)
		return nil, fmt.Errorf("store razorpay order id: %w", err)
	}

	s.metrics.OrderPlaced(string(model.PaymentRazorpay))
	return rzpOrder, nil
}

func (s *orderServiceImpl) ListForAccount(ctx context.Context, accountID string) ([]*model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *orderServiceImpl) ListAll(ctx context.Context) ([]*model.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	return orders, nil
}

func (s *orderServiceImpl) SetStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	if !status.Valid() {
		return model.Invalid(fmt.Sprintf("Unknown order status %q", status))
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	if order.Status == status {
		return nil
	}
	if !order.Status.CanTransitionTo(status) {
		return model.Invalid(fmt.Sprintf("Cannot move order from %q to %q", order.Status, status))
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	return nil
}

// buildOrder validates the request and prices every line from the catalog.
func (s *orderServiceImpl) buildOrder(ctx context.Context, accountID string, input PlaceOrderInput, method model.PaymentMethod) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, model.Invalid("Order has no items")
	}
	if err := s.validate.Struct(input.Address); err != nil {
		return nil, model.Invalid("Delivery address is incomplete")
	}

	if _, err := s.accountRepo.FindByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}

	ids := make([]string, 0, len(input.Items))
	for _, line := range input.Items {
		if line.ItemID == "" || line.Size == "" {
			return nil, model.Invalid("Every item needs an id and a size")
		}
		if line.Quantity <= 0 {
			return nil, model.Invalid("Item quantity must be positive")
		}
		ids = append(ids, line.ItemID)
	}

	products, err := s.catalog.Lookup(ctx, ids)
	if err != nil {
		return nil, err
	}

	total := decimal.NewFromInt(s.settings.DeliveryFee)
	items := make([]model.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		product, ok := products[line.ItemID]
		if !ok {
			return nil, model.Invalid(fmt.Sprintf("Product %s is no longer available", line.ItemID))
		}
		total = total.Add(decimal.NewFromFloat(product.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, model.OrderItem{
			ItemID:   product.ID,
			Name:     product.Name,
			Size:     line.Size,
			Quantity: line.Quantity,
			Price:    product.Price,
		})
	}

	// the storefront sums in floating point, so compare to the cent
	if toMinorUnits(total) != toMinorUnits(decimal.NewFromFloat(input.Amount)) {
		return nil, model.Invalid("Order amount does not match cart total")
	}

	amount, _ := total.Float64()
	return &model.Order{
		ID:            uuid.NewString(),
		UserID:        accountID,
		Items:         items,
		Amount:        amount,
		Address:       input.Address,
		Status:        model.StatusPlaced,
		PaymentMethod: method,
		Payment:       false,
		Date:          time.Now(),
	}, nil
}

// discard removes an order whose provider session could not be opened.
func (s *orderServiceImpl) discard(ctx context.Context, orderID string) {
	if err := s.orderRepo.DeleteUnpaid(ctx, orderID); err != nil {
		s.log.Error("failed to remove orphan order", zap.String("order_id", orderID), zap.Error(err))
	}
}
