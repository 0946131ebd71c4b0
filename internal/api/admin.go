package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lumashop/lumashop/clients/go-storefront/internal/models"
)

// AdminUser is a back-office user listing row; Role is the raw server
// string, not the derived isAdmin flag.
type AdminUser struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// AdminUsers lists all users. Requires an ADMIN session.
func (c *Client) AdminUsers(ctx context.Context) ([]AdminUser, error) {
	var out []AdminUser
	if err := c.doAuthed(ctx, "admin_users", http.MethodGet, "/api/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminOrders lists all orders across users. Requires an ADMIN session.
func (c *Client) AdminOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.doAuthed(ctx, "admin_orders", http.MethodGet, "/api/admin/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduct adds a catalog entry. Requires an ADMIN session.
func (c *Client) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	var out models.Product
	if err := c.doAuthed(ctx, "admin_create_product", http.MethodPost, "/api/admin/products", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct removes a catalog entry. Requires an ADMIN session.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/admin/products/%d", id)
	return c.doAuthed(ctx, "admin_delete_product", http.MethodDelete, path, nil, nil)
}
