package api

import (
	"context"
	"net/http"
	"time"
)

// OrderItem is one purchased line, priced as it was in the cart.
type OrderItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// OrderRequest is the checkout payload. Reference is a client-generated id
// the backend can use to de-duplicate a resubmitted checkout.
type OrderRequest struct {
	Reference string      `json:"reference"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
}

type Order struct {
	ID        string      `json:"id"`
	Reference string      `json:"reference"`
	Status    string      `json:"status"`
	Total     float64     `json:"total"`
	Items     []OrderItem `json:"items,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// PlaceOrder submits a checkout. Protected endpoint.
func (c *Client) PlaceOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	var out Order
	if err := c.doAuthed(ctx, "place_order", http.MethodPost, "/api/orders", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders lists the current user's orders. Protected endpoint.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.doAuthed(ctx, "orders", http.MethodGet, "/api/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
