package service

import (
	"context"
	"errors"
	"fmt"
	"storefront-backend/internal/client"
	"storefront-backend/internal/metrics"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const deliveryLineName = "Delivery Charges"

var tracer = otel.Tracer("storefront-backend/internal/service")

type PaymentOrchestrator interface {
	OpenStripe(ctx context.Context, order *model.Order, origin string) (*StripeCheckout, error)
	VerifyStripe(ctx context.Context, accountID, orderID string, success bool) (bool, error)
	OpenRazorpay(ctx context.Context, order *model.Order) (*client.RazorpayOrder, error)
	VerifyRazorpay(ctx context.Context, providerOrderID, providerPaymentID, signature string) error
}

type StripeCheckout struct {
	SessionID string
	URL       string
}

// CheckoutSettings are the storefront wide values shared by order pricing and
// provider sessions.
type CheckoutSettings struct {
	FrontendURL string
	Currency    string
	DeliveryFee int64 // major units
}

type paymentOrchestratorImpl struct {
	orderRepo      repository.OrderRepository
	accountRepo    repository.AccountRepository
	stripeClient   client.StripeClient
	razorpayClient client.RazorpayClient
	settings       CheckoutSettings
	metrics        *metrics.Metrics
	log            *zap.Logger
}

func NewPaymentOrchestrator(
	orderRepo repository.OrderRepository,
	accountRepo repository.AccountRepository,
	stripeClient client.StripeClient,
	razorpayClient client.RazorpayClient,
	settings CheckoutSettings,
	m *metrics.Metrics,
	log *zap.Logger,
) PaymentOrchestrator {
	return &paymentOrchestratorImpl{
		orderRepo:      orderRepo,
		accountRepo:    accountRepo,
		stripeClient:   stripeClient,
		razorpayClient: razorpayClient,
		settings:       settings,
		metrics:        m,
		log:            log,
	}
}

func (p *paymentOrchestratorImpl) OpenStripe(ctx context.Context, order *model.Order, origin string) (*StripeCheckout, error) {
	ctx, span := startProviderSpan(ctx, "stripe.CreateCheckoutSession", order.ID)
	defer span.End()

	lines := make([]client.CheckoutLine, 0, len(order.Items)+1)
	for _, item := range order.Items {
		lines = append(lines, client.CheckoutLine{
			Name:       item.Name,
			UnitAmount: toMinorUnits(decimal.NewFromFloat(item.Price)),
			Quantity:   int64(item.Quantity),
		})
	}
	lines = append(lines, client.CheckoutLine{
		Name:       deliveryLineName,
		UnitAmount: toMinorUnits(decimal.NewFromInt(p.settings.DeliveryFee)),
		Quantity:   1,
	})

	base := strings.TrimRight(origin, "/")
	if base == "" {
		base = strings.TrimRight(p.settings.FrontendURL, "/")
	}

	sess, err := p.stripeClient.CreateCheckoutSession(ctx, client.CheckoutSessionRequest{
		OrderID:    order.ID,
		Currency:   strings.ToLower(p.settings.Currency),
		Lines:      lines,
		SuccessURL: fmt.Sprintf("%s/verify?success=true&orderId=%s", base, order.ID),
		CancelURL:  fmt.Sprintf("%s/verify?success=false&orderId=%s", base, order.ID),
	})
	if err != nil {
		failSpan(span, err)
		return nil, err
	}

	return &StripeCheckout{SessionID: sess.ID, URL: sess.URL}, nil
}

// VerifyStripe settles a Stripe order after checkout redirects back. It
// reports whether the order ends up paid.
func (p *paymentOrchestratorImpl) VerifyStripe(ctx context.Context, accountID, orderID string, success bool) (bool, error) {
	order, err := p.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return false, fmt.Errorf("verify stripe: %w", err)
	}
	if order.UserID != accountID {
		return false, fmt.Errorf("verify stripe: %w", model.ErrOrderNotFound)
	}
	if order.PaymentMethod != model.PaymentStripe {
		return false, model.Invalid("Order was not placed with Stripe")
	}

	if order.Payment {
		p.metrics.PaymentVerified("stripe", "already_paid")
		if success {
			if err := p.clearCart(ctx, order.UserID); err != nil {
				return true, err
			}
		}
		return true, nil
	}

	if !success {
		if err := p.orderRepo.DeleteUnpaid(ctx, order.ID); err != nil && !errors.Is(err, model.ErrOrderNotFound) {
			return false, fmt.Errorf("delete failed order: %w", err)
		}
		p.metrics.PaymentVerified("stripe", "failed")
		return false, nil
	}

	if order.ProviderOrderID == nil {
		p.metrics.PaymentVerified("stripe", "unconfirmed")
		return false, model.ErrPaymentNotConfirmed
	}

	sess, err := p.fetchStripeSession(ctx, order.ID, *order.ProviderOrderID)
	if err != nil {
		return false, err
	}
	if !sess.Paid {
		p.metrics.PaymentVerified("stripe", "unconfirmed")
		return false, model.ErrPaymentNotConfirmed
	}

	if _, err := p.orderRepo.MarkPaid(ctx, order.ID, sess.PaymentIntentID); err != nil {
		return false, fmt.Errorf("mark order paid: %w", err)
	}
	p.metrics.PaymentVerified("stripe", "paid")

	if err := p.clearCart(ctx, order.UserID); err != nil {
		return true, err
	}
	return true, nil
}

func (p *paymentOrchestratorImpl) fetchStripeSession(ctx context.Context, orderID, sessionID string) (*client.CheckoutSession, error) {
	ctx, span := startProviderSpan(ctx, "stripe.GetCheckoutSession", orderID)
	defer span.End()

	sess, err := p.stripeClient.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		failSpan(span, err)
		return nil, err
	}
	return sess, nil
}

func (p *paymentOrchestratorImpl) OpenRazorpay(ctx context.Context, order *model.Order) (*client.RazorpayOrder, error) {
	ctx, span := startProviderSpan(ctx, "razorpay.CreateOrder", order.ID)
	defer span.End()

	rzpOrder, err := p.razorpayClient.CreateOrder(ctx, client.RazorpayOrderRequest{
		Amount:   toMinorUnits(decimal.NewFromFloat(order.Amount)),
		Currency: strings.ToUpper(p.settings.Currency),
		Receipt:  order.ID,
	})
	if err != nil {
		failSpan(span, err)
		return nil, err
	}
	return rzpOrder, nil
}

func (p *paymentOrchestratorImpl) VerifyRazorpay(ctx context.Context, providerOrderID, providerPaymentID, signature string) error {
	if providerOrderID == "" || providerPaymentID == "" || signature == "" {
		return model.Invalid("Missing payment details")
	}

	if !p.razorpayClient.VerifyPaymentSignature(providerOrderID, providerPaymentID, signature) {
		p.metrics.PaymentVerified("razorpay", "invalid_signature")
		p.log.Warn("razorpay signature mismatch", zap.String("provider_order_id", providerOrderID))
		return model.ErrInvalidSignature
	}

	order, err := p.orderRepo.MarkPaidByProviderOrderID(ctx, providerOrderID, providerPaymentID)
	if err != nil {
		return fmt.Errorf("verify razorpay: %w", err)
	}
	p.metrics.PaymentVerified("razorpay", "paid")

	return p.clearCart(ctx, order.UserID)
}

func (p *paymentOrchestratorImpl) clearCart(ctx context.Context, accountID string) error {
	if err := p.accountRepo.SaveCart(ctx, accountID, model.Cart{}); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

func startProviderSpan(ctx context.Context, name, orderID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("order.id", orderID)),
	)
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
