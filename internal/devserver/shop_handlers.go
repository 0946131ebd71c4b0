package devserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lumashop/lumashop/clients/go-storefront/internal/models"
)

func (s *Server) handleProducts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]models.Product(nil), s.products...)
	c.JSON(http.StatusOK, out)
}

type placeOrderRequest struct {
	Reference string      `json:"reference"`
	Items     []orderItem `json:"items" binding:"required"`
	Total     float64     `json:"total"`
}

func (s *Server) handlePlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order has no items"})
		return
	}
	username := c.GetString("username")

	s.mu.Lock()
	defer s.mu.Unlock()
	// a resubmitted reference returns the order it already created
	if req.Reference != "" {
		for _, o := range s.orders[username] {
			if o.Reference == req.Reference {
				c.JSON(http.StatusOK, o)
				return
			}
		}
	}
	o := order{
		ID:        uuid.NewString(),
		Reference: req.Reference,
		Status:    "CREATED",
		Total:     req.Total,
		Items:     req.Items,
		CreatedAt: time.Now().UTC(),
		username:  username,
	}
	s.orders[username] = append(s.orders[username], o)
	c.JSON(http.StatusCreated, o)
}

func (s *Server) handleListOrders(c *gin.Context) {
	username := c.GetString("username")
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]order(nil), s.orders[username]...)
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleAdminUsers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gin.H, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, gin.H{
			"userId":   a.ID,
			"username": a.Username,
			"email":    a.Email,
			"role":     a.Role,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleAdminOrders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []order{}
	for _, orders := range s.orders {
		out = append(out, orders...)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if p.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product name required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.nextID
		s.nextID++
	}
	s.products = append(s.products, p)
	c.JSON(http.StatusCreated, p)
}

func (s *Server) handleDeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "deleted"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
}
