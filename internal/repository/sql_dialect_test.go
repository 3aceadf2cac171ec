package repository

import (
	"testing"

	"github.com/stationery-next/internal/models"
)

func TestLikeClause(t *testing.T) {
	clause, n := likeClause(false, []string{"name", "category"})
	if n != 2 || clause != `(name LIKE ? ESCAPE '\' OR category LIKE ? ESCAPE '\')` {
		t.Fatalf("sqlite clause mismatch: %s (%d)", clause, n)
	}
	clause, n = likeClause(true, []string{"name", " "})
	if n != 1 || clause != `(name ILIKE ? ESCAPE '\')` {
		t.Fatalf("postgres clause mismatch: %s (%d)", clause, n)
	}
	if clause, n = likeClause(false, nil); clause != "" || n != 0 {
		t.Fatalf("empty columns should yield no clause")
	}
}

func TestContainsFoldEscapesWildcards(t *testing.T) {
	db := setupRepositoryTestDB(t)
	for _, name := range []string{"100% Recycled Paper", "1000 Sheet Ream", "Gel Pen"} {
		if err := db.Create(&models.Product{Name: name, Category: "Paper", IsVisible: true}).Error; err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}

	var found []models.Product
	if err := db.Scopes(containsFold("100%", "name")).Find(&found).Error; err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(found) != 1 || found[0].Name != "100% Recycled Paper" {
		t.Fatalf("literal percent should match one product, got %+v", found)
	}

	found = nil
	if err := db.Scopes(containsFold("gel pen", "name", "category")).Find(&found).Error; err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("case-insensitive match want 1 got %d", len(found))
	}
}

func TestNormalizeStockStatus(t *testing.T) {
	cases := map[string]string{
		"":             "all",
		"ALL":          "all",
		"available":    "available",
		"out_of_stock": "outOfStock",
		"outOfStock":   "outOfStock",
		"low-stock":    "lowStock",
		"bogus":        "all",
	}
	for input, want := range cases {
		if got := NormalizeStockStatus(input); got != want {
			t.Fatalf("NormalizeStockStatus(%q) want %s got %s", input, want, got)
		}
	}
}
