package catalog

import (
	"testing"

	"github.com/lumashop/lumashop/clients/go-storefront/internal/models"
)

func fixture() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Mouse", Price: 20, Category: "peripherals", Description: "wireless mouse"},
		{ID: 2, Name: "Keyboard", Price: 45.5, Category: "peripherals"},
		{ID: 3, Name: "Monitor", Price: 180, Category: "displays"},
		{ID: 4, Name: "Gift Card", Price: 25},
	}
}

func TestCategories(t *testing.T) {
	got := Categories(fixture())
	want := []string{"displays", "peripherals"}
	if len(got) != len(want) {
		t.Fatalf("Categories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Categories = %v, want %v", got, want)
		}
	}
}

func TestFilterByCategory(t *testing.T) {
	got := FilterByCategory(fixture(), "peripherals")
	if len(got) != 2 {
		t.Fatalf("expected 2 peripherals, got %v", got)
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("catalog order should be preserved: %v", got)
	}
	if all := FilterByCategory(fixture(), ""); len(all) != 4 {
		t.Fatalf("empty category should not filter, got %d", len(all))
	}
}

func TestSearch(t *testing.T) {
	if got := Search(fixture(), "WIRELESS"); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("description search failed: %v", got)
	}
	if got := Search(fixture(), "mo"); len(got) != 2 {
		t.Fatalf("expected Mouse and Monitor, got %v", got)
	}
	if got := Search(fixture(), ""); len(got) != 4 {
		t.Fatalf("empty query should not filter, got %d", len(got))
	}
}

func TestSort(t *testing.T) {
	ps := fixture()

	byPrice := Sort(ps, SortPrice, true)
	if byPrice[0].ID != 1 || byPrice[3].ID != 3 {
		t.Fatalf("price ascending wrong: %v", byPrice)
	}

	byPriceDesc := Sort(ps, SortPrice, false)
	if byPriceDesc[0].ID != 3 {
		t.Fatalf("price descending wrong: %v", byPriceDesc)
	}

	byName := Sort(ps, SortName, true)
	if byName[0].Name != "Gift Card" {
		t.Fatalf("name ascending wrong: %v", byName)
	}

	// input untouched
	if ps[0].ID != 1 {
		t.Fatalf("Sort must not mutate its input: %v", ps)
	}
}
