package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"storefront-backend/internal/auth"
	"storefront-backend/internal/cache"
	"storefront-backend/internal/client"
	"storefront-backend/internal/metrics"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testRazorpaySecret = "rzp_test_secret"

// fakeStripe implements client.StripeClient and keeps sessions in memory.
type fakeStripe struct {
	mu        sync.RWMutex
	requests  []client.CheckoutSessionRequest
	sessions  map[string]*client.CheckoutSession
	CreateErr error
	GetErr    error
}

func newFakeStripe() *fakeStripe {
	return &fakeStripe{sessions: map[string]*client.CheckoutSession{}}
}

func (f *fakeStripe) CreateCheckoutSession(_ context.Context, req client.CheckoutSessionRequest) (*client.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}

	id := "cs_test_" + req.OrderID
	sess := &client.CheckoutSession{ID: id, URL: "https://checkout.stripe.test/" + id}
	f.sessions[id] = sess
	out := *sess
	return &out, nil
}

func (f *fakeStripe) GetCheckoutSession(_ context.Context, sessionID string) (*client.CheckoutSession, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.GetErr != nil {
		return nil, f.GetErr
	}
	sess, ok := f.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("no such checkout.session: %s", sessionID)
	}
	out := *sess
	return &out, nil
}

func (f *fakeStripe) pay(sessionID, paymentIntentID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[sessionID].Paid = true
	f.sessions[sessionID].PaymentIntentID = paymentIntentID
}

func (f *fakeStripe) lastRequest() client.CheckoutSessionRequest {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.requests[len(f.requests)-1]
}

// fakeRazorpay implements client.RazorpayClient with real signature checks.
type fakeRazorpay struct {
	mu        sync.RWMutex
	requests  []client.RazorpayOrderRequest
	CreateErr error
}

func (f *fakeRazorpay) CreateOrder(_ context.Context, req client.RazorpayOrderRequest) (*client.RazorpayOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	return &client.RazorpayOrder{
		ID:       "order_rzp_" + req.Receipt,
		Entity:   "order",
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}

func (f *fakeRazorpay) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return client.SignRazorpayPayment(testRazorpaySecret, orderID, paymentID) == signature
}

func (f *fakeRazorpay) lastRequest() client.RazorpayOrderRequest {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.requests[len(f.requests)-1]
}

type fakeUploader struct {
	URL   string
	Err   error
	Calls int
}

func (f *fakeUploader) UploadProfileImage(_ context.Context, file io.Reader) (string, error) {
	f.Calls++
	if _, err := io.ReadAll(file); err != nil {
		return "", err
	}
	return f.URL, f.Err
}

type testEnv struct {
	repos    *repository.Repositories
	tokens   *auth.TokenManager
	catalog  CatalogService
	accounts AccountService
	carts    CartService
	orders   OrderService
	payments PaymentOrchestrator
	stripe   *fakeStripe
	razorpay *fakeRazorpay
	uploader *fakeUploader
}

var testSettings = CheckoutSettings{
	FrontendURL: "http://localhost:5173",
	Currency:    "inr",
	DeliveryFee: 10,
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := client.InitGormClient("sqlite", filepath.Join(t.TempDir(), "storefront.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	repos := repository.NewGormRepositories(db)
	require.NoError(t, repos.Products.Seed(context.Background()))

	log := zap.NewNop()
	m := metrics.New(prometheus.NewRegistry())
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	env := &testEnv{
		repos:    repos,
		tokens:   tokens,
		stripe:   newFakeStripe(),
		razorpay: &fakeRazorpay{},
		uploader: &fakeUploader{URL: "https://res.cloudinary.test/user-profile/me.png"},
	}

	env.catalog = NewCatalogService(repos.Products, cache.Noop{}, log)
	env.accounts = NewAccountService(repos.Accounts, tokens, env.uploader, AdminCredentials{
		Email:    "admin@shop.test",
		Password: "admin-password",
	})
	env.carts = NewCartService(repos.Accounts, env.catalog)
	env.payments = NewPaymentOrchestrator(repos.Orders, repos.Accounts, env.stripe, env.razorpay, testSettings, m, log)
	env.orders = NewOrderService(repos.Orders, repos.Accounts, env.catalog, env.payments, testSettings, m, log)

	return env
}

var accountSeq int

func (e *testEnv) newAccount(t *testing.T) string {
	t.Helper()
	accountSeq++

	res, err := e.accounts.Register(context.Background(), "Buyer", fmt.Sprintf("buyer%d@shop.test", accountSeq), "correct-horse")
	require.NoError(t, err)
	return res.Account.ID
}

func (e *testEnv) cart(t *testing.T, accountID string) model.Cart {
	t.Helper()
	cart, err := e.carts.Get(context.Background(), accountID)
	require.NoError(t, err)
	return cart
}

func testAddress() model.Address {
	return model.Address{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@shop.test",
		Street:    "12 MG Road",
		City:      "Bengaluru",
		State:     "KA",
		Zipcode:   "560001",
		Country:   "India",
		Phone:     "9999999999",
	}
}

// twoTops is 2 x "aaaaa" at 100 plus the delivery fee.
func twoTops() PlaceOrderInput {
	return PlaceOrderInput{
		Items:   []OrderLineInput{{ItemID: "aaaaa", Size: "M", Quantity: 2}},
		Amount:  210,
		Address: testAddress(),
	}
}

var errProviderDown = errors.New("provider unavailable")
