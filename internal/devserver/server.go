package devserver

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lumashop/lumashop/clients/go-storefront/internal/models"
)

// Server is a self-contained stand-in for the remote storefront backend,
// used for offline development and integration tests. Fixtures only —
// accounts and catalog live in memory and reset on restart.
type Server struct {
	secret   []byte
	tokenTTL time.Duration

	mu       sync.Mutex
	accounts map[string]*account
	refresh  map[string]string // refresh token -> username
	products []models.Product
	orders   map[string][]order
	nextID   int64
	nextUser int64
}

type account struct {
	ID       string
	Username string
	Email    string
	Password string // dev fixture, plaintext on purpose
	Role     string
}

type orderItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

type order struct {
	ID        string      `json:"id"`
	Reference string      `json:"reference"`
	Status    string      `json:"status"`
	Total     float64     `json:"total"`
	Items     []orderItem `json:"items,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	username  string
}

func New(secret string) *Server {
	s := &Server{
		secret:   []byte(secret),
		tokenTTL: 15 * time.Minute,
		accounts: map[string]*account{},
		refresh:  map[string]string{},
		orders:   map[string][]order{},
		nextUser: 1000,
	}
	s.seed()
	return s
}

func (s *Server) seed() {
	s.accounts["admin"] = &account{ID: "u-1", Username: "admin", Email: "admin@lumashop.dev", Password: "admin123", Role: "ADMIN"}
	s.accounts["alice"] = &account{ID: "u-2", Username: "alice", Email: "alice@lumashop.dev", Password: "alice123", Role: "USER"}
	s.products = []models.Product{
		{ID: 1, Name: "Wireless Mouse", Price: 20, Category: "peripherals", Description: "2.4GHz wireless mouse", Stock: 120},
		{ID: 2, Name: "Mechanical Keyboard", Price: 45.5, Category: "peripherals", Description: "Tenkeyless, brown switches", Stock: 45},
		{ID: 3, Name: "27in Monitor", Price: 180, Category: "displays", Description: "1440p IPS panel", Stock: 18},
		{ID: 4, Name: "USB-C Dock", Price: 89.9, Category: "accessories", Description: "Dual display dock", Stock: 33},
		{ID: 5, Name: "Gift Card", Price: 25, Description: "Redeemable store credit", Stock: 9999},
	}
	s.nextID = 6
}

// Router builds the gin engine. Extra middleware (rate limiting) must be
// passed here so it runs ahead of route registration. Metric registration
// is the caller's concern so tests can build many routers in one process.
func (s *Server) Router(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(corsMiddleware(), gin.Recovery())
	r.Use(mw...)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	auth := r.Group("/api/auth")
	auth.POST("/login", s.handleLogin)
	auth.POST("/register", s.handleRegister)
	auth.POST("/refresh-token", s.handleRefresh)
	auth.POST("/logout", s.handleLogout)

	r.GET("/api/products", s.handleProducts)

	protected := r.Group("/api", s.requireAuth())
	protected.GET("/orders", s.handleListOrders)
	protected.POST("/orders", s.handlePlaceOrder)

	admin := r.Group("/api/admin", s.requireAuth(), s.requireAdmin())
	admin.GET("/users", s.handleAdminUsers)
	admin.GET("/orders", s.handleAdminOrders)
	admin.POST("/products", s.handleCreateProduct)
	admin.DELETE("/products/:id", s.handleDeleteProduct)

	return r
}

func (s *Server) mintToken(a *account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      a.ID,
		"username": a.Username,
		"role":     a.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) mintRefresh(username string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	s.refresh[token] = username
	return token, nil
}

func (s *Server) parseToken(raw string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
