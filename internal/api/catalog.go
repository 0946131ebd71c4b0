package api

import (
	"context"
	"net/http"

	"github.com/lumashop/lumashop/clients/go-storefront/internal/models"
)

// Products fetches the full catalog. Public endpoint, no auth.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, "products", http.MethodGet, "/api/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
