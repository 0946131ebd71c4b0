package devserver_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumashop/lumashop/clients/go-storefront/internal/api"
	"github.com/lumashop/lumashop/clients/go-storefront/internal/cart"
	"github.com/lumashop/lumashop/clients/go-storefront/internal/catalog"
	"github.com/lumashop/lumashop/clients/go-storefront/internal/checkout"
	"github.com/lumashop/lumashop/clients/go-storefront/internal/devserver"
	"github.com/lumashop/lumashop/clients/go-storefront/internal/models"
	"github.com/lumashop/lumashop/clients/go-storefront/internal/session"
	"github.com/lumashop/lumashop/clients/go-storefront/internal/storage"
)

// Drives the full client stack against the dev server: login, browse,
// cart, checkout, order listing, logout.
func TestStorefrontRoundTrip(t *testing.T) {
	srv := httptest.NewServer(devserver.New("integration-secret").Router())
	defer srv.Close()

	kv := storage.NewMemory()
	client := api.NewClient(api.Options{BaseURL: srv.URL, RateRPS: 1000, RateBurst: 1000})
	sess := session.New(kv, client)
	client.SetTokenSource(sess)
	sess.Initialize()
	basket := cart.New(kv)
	co := checkout.New(basket, sess, client)
	ctx := context.Background()

	// anonymous browsing works
	products, err := client.Products(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, products)
	assert.NotEmpty(t, catalog.Categories(products))

	// cart fills before login; the cart is per profile, not per session
	require.NoError(t, basket.Add(products[0], 2))

	// checkout refuses while logged out
	_, err = co.PlaceOrder(ctx)
	require.ErrorIs(t, err, checkout.ErrNotAuthenticated)

	require.True(t, sess.Login(ctx, "alice", "alice123"), "login failed: %s", sess.LastError())
	require.True(t, sess.IsAuthenticated())

	order, err := co.PlaceOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CREATED", order.Status)
	assert.Empty(t, basket.Get())

	orders, err := client.Orders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	// refresh keeps the session alive
	require.True(t, sess.RefreshAccessToken(ctx))
	require.True(t, sess.IsAuthenticated())

	sess.Logout(ctx)
	assert.False(t, sess.IsAuthenticated())
	_, err = client.Orders(ctx)
	require.Error(t, err, "protected calls must fail after logout")
}

func TestAdminRoundTrip(t *testing.T) {
	srv := httptest.NewServer(devserver.New("integration-secret").Router())
	defer srv.Close()

	kv := storage.NewMemory()
	client := api.NewClient(api.Options{BaseURL: srv.URL, RateRPS: 1000, RateBurst: 1000})
	sess := session.New(kv, client)
	client.SetTokenSource(sess)
	ctx := context.Background()

	require.True(t, sess.Login(ctx, "admin", "admin123"))
	u := sess.CurrentUser()
	require.NotNil(t, u)
	require.True(t, u.IsAdmin)

	users, err := client.AdminUsers(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(users), 2)

	created, err := client.CreateProduct(ctx, models.Product{Name: "Webcam", Price: 59.9, Category: "peripherals"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.NoError(t, client.DeleteProduct(ctx, created.ID))
}
