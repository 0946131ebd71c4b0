package catalog

import (
	"sort"
	"strings"

	"github.com/lumashop/lumashop/clients/go-storefront/internal/models"
)

// Client-side shaping of the product list: the backend serves one flat
// catalog and the views derive categories, filters and orderings from it.
// All functions are pure and leave their input untouched.

// Sort keys accepted by Sort.
const (
	SortName  = "name"
	SortPrice = "price"
)

// Categories returns the distinct non-empty categories, sorted.
func Categories(ps []models.Product) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range ps {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

// FilterByCategory keeps products with the exact category. An empty
// category means no filter.
func FilterByCategory(ps []models.Product, category string) []models.Product {
	if category == "" {
		return append([]models.Product(nil), ps...)
	}
	var out []models.Product
	for _, p := range ps {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Search keeps products whose name or description contains the query,
// case-insensitive. An empty query means no filter.
func Search(ps []models.Product, query string) []models.Product {
	if query == "" {
		return append([]models.Product(nil), ps...)
	}
	q := strings.ToLower(query)
	var out []models.Product
	for _, p := range ps {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

// Sort returns a copy ordered by the given key. Unknown keys fall back to
// name. Equal keys keep catalog order.
func Sort(ps []models.Product, key string, asc bool) []models.Product {
	out := append([]models.Product(nil), ps...)
	less := func(a, b models.Product) bool { return a.Name < b.Name }
	if key == SortPrice {
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	}
	sort.SliceStable(out, func(i, j int) bool {
		if asc {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}
