package repository

import (
	"testing"

	"github.com/stationery-next/internal/constants"
	"github.com/stationery-next/internal/models"
)

func TestProductListStockStatusFilters(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)

	createTestProduct(t, db, "Blue Pen", "Pens", "1.50", 20, 5, true)
	createTestProduct(t, db, "Red Pen", "Pens", "1.50", 3, 5, true)
	createTestProduct(t, db, "Black Pen", "Pens", "1.50", 0, 5, true)
	createTestProduct(t, db, "Hidden Pen", "Pens", "1.50", 8, 5, false)
	createTestProduct(t, db, "A4 Notebook", "Notebooks", "4.00", 2, 3, true)

	cases := []struct {
		name   string
		filter ProductListFilter
		want   int64
	}{
		{"all", ProductListFilter{StockStatus: constants.StockFilterAll}, 5},
		{"available", ProductListFilter{StockStatus: constants.StockFilterAvailable}, 3},
		{"available include out of stock", ProductListFilter{StockStatus: constants.StockFilterAvailable, IncludeOutOfStock: true}, 4},
		{"out of stock", ProductListFilter{StockStatus: constants.StockFilterOutOfStock}, 1},
		{"low stock", ProductListFilter{StockStatus: constants.StockFilterLowStock}, 2},
		{"low stock and category", ProductListFilter{StockStatus: constants.StockFilterLowStock, Category: "Pens"}, 1},
		{"low stock and search", ProductListFilter{StockStatus: constants.StockFilterLowStock, Search: "note"}, 1},
		{"search matches category", ProductListFilter{Search: "notebooks"}, 1},
		{"only visible", ProductListFilter{OnlyVisible: true}, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			products, total, err := repo.List(tc.filter)
			if err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if total != tc.want || int64(len(products)) != tc.want {
				t.Fatalf("want %d got total=%d len=%d", tc.want, total, len(products))
			}
		})
	}
}

func TestDecrementStockIsConditional(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)
	product := createTestProduct(t, db, "Stapler", "Office", "7.25", 5, 1, true)

	affected, err := repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("decrement affected want 1 got %d", affected)
	}

	affected, err = repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("second decrement failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("insufficient decrement should affect 0 rows, got %d", affected)
	}

	reloaded, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Stock != 2 {
		t.Fatalf("stock want 2 got %d", reloaded.Stock)
	}
}

func TestIncrementStockSetsThresholdOnlyWhenUnset(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)
	unset := createTestProduct(t, db, "Eraser", "Office", "0.50", 2, 0, true)
	set := createTestProduct(t, db, "Ruler", "Office", "1.00", 2, 4, true)

	if _, err := repo.IncrementStock(unset.ID, 5, 10); err != nil {
		t.Fatalf("increment unset failed: %v", err)
	}
	if _, err := repo.IncrementStock(set.ID, 5, 10); err != nil {
		t.Fatalf("increment set failed: %v", err)
	}

	got, _ := repo.GetByID(unset.ID)
	if got.Stock != 7 || got.LowStockThreshold != 10 {
		t.Fatalf("unset product want stock=7 threshold=10, got stock=%d threshold=%d", got.Stock, got.LowStockThreshold)
	}
	got, _ = repo.GetByID(set.ID)
	if got.Stock != 7 || got.LowStockThreshold != 4 {
		t.Fatalf("set product want stock=7 threshold=4, got stock=%d threshold=%d", got.Stock, got.LowStockThreshold)
	}
}

func TestGetStockAlertStats(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)

	createTestProduct(t, db, "A", "X", "1.00", 10, 5, true)
	createTestProduct(t, db, "B", "X", "1.00", 1, 5, true)
	createTestProduct(t, db, "C", "X", "1.00", 0, 5, true)
	createTestProduct(t, db, "D", "X", "1.00", 4, 5, false)

	stats, err := repo.GetStockAlertStats()
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	want := StockAlertStatsRow{Total: 4, InStock: 1, LowStock: 2, OutOfStock: 1, Critical: 1}
	if stats != want {
		t.Fatalf("stats want %+v got %+v", want, stats)
	}
}

func TestListCategoriesAndNameLookup(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)

	createTestProduct(t, db, "Pen", "Pens", "1.00", 1, 0, true)
	createTestProduct(t, db, "Pencil", "Pens", "1.00", 1, 0, true)
	createTestProduct(t, db, "Glue", "Adhesives", "1.00", 1, 0, true)

	categories, err := repo.ListCategories()
	if err != nil {
		t.Fatalf("list categories failed: %v", err)
	}
	if len(categories) != 2 || categories[0] != "Adhesives" || categories[1] != "Pens" {
		t.Fatalf("unexpected categories: %v", categories)
	}

	found, err := repo.GetByNameFold("  PEN ")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if found == nil || found.Name != "Pen" {
		t.Fatalf("expected case-insensitive match for Pen, got %+v", found)
	}

	missing, err := repo.GetByNameFold("Pe")
	if err != nil {
		t.Fatalf("lookup missing failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("partial name should not match, got %+v", missing)
	}

	list, err := repo.ListByNamesFold([]string{"pencil", "GLUE", "nothing"})
	if err != nil {
		t.Fatalf("list by names failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("want 2 matches got %d", len(list))
	}
}

func TestCountOrderReferences(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)
	product := createTestProduct(t, db, "Tape", "Office", "2.00", 3, 0, true)

	count, err := repo.CountOrderReferences(product.ID)
	if err != nil || count != 0 {
		t.Fatalf("want 0 references got %d err=%v", count, err)
	}
	if err := db.Create(&models.OrderItem{OrderID: 1, ProductID: product.ID, ProductName: "Tape", Quantity: 1, Price: product.Price}).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}
	count, err = repo.CountOrderReferences(product.ID)
	if err != nil || count != 1 {
		t.Fatalf("want 1 reference got %d err=%v", count, err)
	}
}
