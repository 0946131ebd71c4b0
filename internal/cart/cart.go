package cart

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/lumashop/lumashop/clients/go-storefront/internal/models"
	"github.com/lumashop/lumashop/clients/go-storefront/internal/storage"
	"github.com/lumashop/lumashop/clients/go-storefront/pkg/logger"
)

// cartKey is the single persisted key; its value is a JSON array of Line.
const cartKey = "cart"

// ErrInvalidProduct is returned by Add for a product without an id or a
// non-positive quantity.
var ErrInvalidProduct = errors.New("cart: product id and positive qty required")

// Line is one persisted cart entry. Product fields are copied at add time
// and never revalidated — a later catalog edit does not touch an existing
// line.
type Line struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Category    string  `json:"category,omitempty"`
	Qty         int     `json:"qty"`
}

// Subtotal derives price*qty from the line's own stored price.
func (l Line) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Qty)))
}

// Store owns the persisted cart. At most one Line per product id;
// insertion order is preserved.
type Store struct {
	mu sync.Mutex
	kv storage.Store
}

func New(kv storage.Store) *Store {
	return &Store{kv: kv}
}

// Get returns the persisted lines in insertion order. An absent or
// malformed value reads as an empty cart, never an error.
func (s *Store) Get() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() []Line {
	raw, err := s.kv.Get(cartKey)
	if err != nil {
		return []Line{}
	}
	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		logger.Warnf("cart: discarding malformed persisted cart: %v", err)
		return []Line{}
	}
	return lines
}

// Add merges the product into the cart. An existing line with the same id
// keeps its originally stored fields and only gains qty; a new product is
// appended with all of its fields copied.
func (s *Store) Add(p models.Product, qty int) error {
	if p.ID == 0 || qty < 1 {
		return ErrInvalidProduct
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.load()
	merged := false
	for i := range lines {
		if lines[i].ID == p.ID {
			lines[i].Qty += qty
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, Line{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Description: p.Description,
			ImageURL:    p.ImageURL,
			Category:    p.Category,
			Qty:         qty,
		})
	}

	b, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.kv.Set(cartKey, string(b))
}

// Clear removes the persisted cart entirely.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Remove(cartKey); err != nil && err != storage.ErrNotFound {
		return err
	}
	return nil
}

// Total derives the cart total from the stored lines.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Get() {
		total = total.Add(l.Subtotal())
	}
	return total
}
