package models

// Product is a catalog entry as served by the backend. Unknown fields in
// backend payloads are ignored.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Category    string  `json:"category,omitempty"`
	Stock       int     `json:"stock,omitempty"`
}

// User is the normalized record of the authenticated identity. IsAdmin is
// derived from the server role string at login time.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
	UserID   string `json:"userId"`
}
