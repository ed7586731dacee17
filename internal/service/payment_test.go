package service

import (
	"context"
	"testing"

	"storefront-backend/internal/client"
	"storefront-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// placeStripe fills the cart and starts a Stripe checkout, returning the order id.
func placeStripe(t *testing.T, env *testEnv, accountID string) (string, string) {
	t.Helper()
	ctx := context.Background()

	_, err := env.carts.Add(ctx, accountID, "aaaaa", "M")
	require.NoError(t, err)
	checkout, err := env.orders.PlaceStripe(ctx, accountID, twoTops())
	require.NoError(t, err)

	return env.stripe.lastRequest().OrderID, checkout.SessionID
}

func TestVerifyStripe_PaidSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	accountID := env.newAccount(t)
	orderID, sessionID := placeStripe(t, env, accountID)

	env.stripe.pay(sessionID, "pi_123")

	paid, err := env.payments.VerifyStripe(ctx, accountID, orderID, true)
	require.NoError(t, err)
	assert.True(t, paid)

	order, err := env.repos.Orders.FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, order.Payment)
	assert.Equal(t, "pi_123", order.ProviderPaymentID)
	assert.Empty(t, env.cart(t, accountID))

	// a second confirmation changes nothing
	paid, err = env.payments.VerifyStripe(ctx, accountID, orderID, true)
	require.NoError(t, err)
	assert.True(t, paid)

	paid, err = env.payments.VerifyStripe(ctx, accountID, orderID, false)
	require.NoError(t, err)
	assert.True(t, paid)
	_, err = env.repos.Orders.FindByID(ctx, orderID)
	assert.NoError(t, err)
}

func TestVerifyStripe_UnpaidSessionIsNotTrusted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	accountID := env.newAccount(t)
	orderID, _ := placeStripe(t, env, accountID)

	paid, err := env.payments.VerifyStripe(ctx, accountID, orderID, true)
	assert.ErrorIs(t, err, model.ErrPaymentNotConfirmed)
	assert.False(t, paid)

	order, err := env.repos.Orders.FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.False(t, order.Payment)
	assert.NotEmpty(t, env.cart(t, accountID))
}

func TestVerifyStripe_ProviderError(t *testing.T) {
	env := newTestEnv(t)
	accountID := env.newAccount(t)
	orderID, _ := placeStripe(t, env, accountID)

	env.stripe.GetErr = errProviderDown
	_, err := env.payments.VerifyStripe(context.Background(), accountID, orderID, true)
	assert.ErrorIs(t, err, errProviderDown)
}

func TestVerifyStripe_FailureDeletesOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	accountID := env.newAccount(t)
	orderID, _ := placeStripe(t, env, accountID)

	paid, err := env.payments.VerifyStripe(ctx, accountID, orderID, false)
	require.NoError(t, err)
	assert.False(t, paid)

	_, err = env.repos.Orders.FindByID(ctx, orderID)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
	assert.NotEmpty(t, env.cart(t, accountID))
}

func TestVerifyStripe_OtherAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newAccount(t)
	stranger := env.newAccount(t)
	orderID, _ := placeStripe(t, env, owner)

	_, err := env.payments.VerifyStripe(ctx, stranger, orderID, false)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)

	_, err = env.repos.Orders.FindByID(ctx, orderID)
	assert.NoError(t, err)
}

func TestVerifyStripe_WrongMethod(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	accountID := env.newAccount(t)

	order, err := env.orders.PlaceCash(ctx, accountID, twoTops())
	require.NoError(t, err)

	_, err = env.payments.VerifyStripe(ctx, accountID, order.ID, false)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestVerifyRazorpay_ForgedSignature(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	accountID := env.newAccount(t)

	_, err := env.carts.Add(ctx, accountID, "aaaaa", "M")
	require.NoError(t, err)
	rzpOrder, err := env.orders.PlaceRazorpay(ctx, accountID, twoTops())
	require.NoError(t, err)

	forged := client.SignRazorpayPayment("attacker-secret", rzpOrder.ID, "pay_1")
	err = env.payments.VerifyRazorpay(ctx, rzpOrder.ID, "pay_1", forged)
	assert.ErrorIs(t, err, model.ErrInvalidSignature)

	order, err := env.repos.Orders.FindByID(ctx, rzpOrder.Receipt)
	require.NoError(t, err)
	assert.False(t, order.Payment)
	assert.NotEmpty(t, env.cart(t, accountID))
}

func TestVerifyRazorpay_FlipsOnlyMatchingOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	buyer := env.newAccount(t)
	other := env.newAccount(t)

	_, err := env.carts.Add(ctx, buyer, "aaaaa", "M")
	require.NoError(t, err)
	_, err = env.carts.Add(ctx, other, "aaaab", "L")
	require.NoError(t, err)

	mine, err := env.orders.PlaceRazorpay(ctx, buyer, twoTops())
	require.NoError(t, err)
	theirs, err := env.orders.PlaceRazorpay(ctx, other, twoTops())
	require.NoError(t, err)

	sig := client.SignRazorpayPayment(testRazorpaySecret, mine.ID, "pay_1")
	require.NoError(t, env.payments.VerifyRazorpay(ctx, mine.ID, "pay_1", sig))

	paid, err := env.repos.Orders.FindByID(ctx, mine.Receipt)
	require.NoError(t, err)
	assert.True(t, paid.Payment)
	assert.Equal(t, "pay_1", paid.ProviderPaymentID)

	untouched, err := env.repos.Orders.FindByID(ctx, theirs.Receipt)
	require.NoError(t, err)
	assert.False(t, untouched.Payment)

	assert.Empty(t, env.cart(t, buyer))
	assert.NotEmpty(t, env.cart(t, other))

	// replaying the same callback is harmless
	require.NoError(t, env.payments.VerifyRazorpay(ctx, mine.ID, "pay_1", sig))
}

func TestVerifyRazorpay_Rejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sig := client.SignRazorpayPayment(testRazorpaySecret, "order_unknown", "pay_1")
	assert.ErrorIs(t, env.payments.VerifyRazorpay(ctx, "order_unknown", "pay_1", sig), model.ErrOrderNotFound)
	assert.ErrorIs(t, env.payments.VerifyRazorpay(ctx, "", "pay_1", sig), model.ErrValidation)
}
