package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stationery-next/internal/constants"
	"github.com/stationery-next/internal/models"
	"github.com/stationery-next/internal/repository"

	"github.com/stretchr/testify/require"
)

type failingInventoryRepo struct{}

func (failingInventoryRepo) BulkUpsert(context.Context, []repository.InventoryUpsertItem, int) (int, int, error) {
	return 0, 0, errors.New("bulk routine missing")
}

func reconcileInput() []IngestItem {
	return []IngestItem{{Name: "Pen", Quantity: 10}, {Name: "Pen", Quantity: 5}, {Name: "NewWidget", Quantity: 3}}
}

func TestReconcileAggregatesAndUpserts(t *testing.T) {
	upserters := map[string]func(f *serviceFixture) InventoryUpserter{
		"bulk":   func(f *serviceFixture) InventoryUpserter { return NewBulkInventoryUpserter(f.inventoryRepo) },
		"single": func(f *serviceFixture) InventoryUpserter { return NewSingleInventoryUpserter(f.productRepo) },
		"fallback": func(f *serviceFixture) InventoryUpserter {
			return NewFallbackInventoryUpserter(NewBulkInventoryUpserter(failingInventoryRepo{}), NewSingleInventoryUpserter(f.productRepo))
		},
	}
	for name, build := range upserters {
		t.Run(name, func(t *testing.T) {
			f := newServiceFixture(t)
			pen := f.createProduct(t, "pen", "1.00", 2, 0)
			svc := NewInventoryService(build(f), nil, InventoryOptions{DefaultLowStockThreshold: 5})

			result, err := svc.Reconcile(context.Background(), reconcileInput(), 5)
			require.NoError(t, err)
			require.Equal(t, 1, result.Created)
			require.Equal(t, 1, result.Updated)
			require.Equal(t, 2, result.Items)

			reloaded := f.reloadProduct(t, pen.ID)
			require.Equal(t, 17, reloaded.Stock)
			require.Equal(t, 5, reloaded.LowStockThreshold)

			created, err := f.productRepo.GetByNameFold("newwidget")
			require.NoError(t, err)
			require.NotNil(t, created)
			require.Equal(t, "NewWidget", created.Name)
			require.Equal(t, 3, created.Stock)
			require.Equal(t, constants.IngestDefaultCategory, created.Category)
			require.True(t, created.Price.Decimal.IsZero())
			require.False(t, created.IsVisible)
		})
	}
}

func TestReconcileKeepsExistingThreshold(t *testing.T) {
	f := newServiceFixture(t)
	pen := f.createProduct(t, "Pen", "1.00", 2, 8)
	svc := NewInventoryService(NewDefaultInventoryUpserter(f.inventoryRepo, f.productRepo), nil, InventoryOptions{DefaultLowStockThreshold: 5})

	result, err := svc.Reconcile(context.Background(), []IngestItem{{Name: "PEN", Quantity: 1}, {Name: " ", Quantity: 4}, {Name: "Ghost", Quantity: 0}}, -1)
	require.NoError(t, err)
	require.Equal(t, 0, result.Created)
	require.Equal(t, 1, result.Updated)
	reloaded := f.reloadProduct(t, pen.ID)
	require.Equal(t, 3, reloaded.Stock)
	require.Equal(t, 8, reloaded.LowStockThreshold)

	var count int64
	require.NoError(t, f.db.Model(&models.Product{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestReconcileSkipsOverlongNames(t *testing.T) {
	f := newServiceFixture(t)
	svc := NewInventoryService(NewDefaultInventoryUpserter(f.inventoryRepo, f.productRepo), nil, InventoryOptions{DefaultLowStockThreshold: 5})
	longest := strings.Repeat("纸", 100)

	result, err := svc.Reconcile(context.Background(), []IngestItem{
		{Name: strings.Repeat("x", 101), Quantity: 3},
		{Name: longest, Quantity: 2},
		{Name: "Tape", Quantity: 1},
	}, -1)
	require.NoError(t, err)
	require.Equal(t, 2, result.Items)
	require.Equal(t, 2, result.Created)

	kept, err := f.productRepo.GetByNameFold(longest)
	require.NoError(t, err)
	require.NotNil(t, kept)

	var count int64
	require.NoError(t, f.db.Model(&models.Product{}).Count(&count).Error)
	require.Equal(t, int64(2), count)
}

func TestParseExtractedText(t *testing.T) {
	text := "INVOICE No. A-17\r\n" +
		"Blue Pen, 10\n" +
		"Sticky Notes, Yellow; 4\n" +
		"blue pen 5\n" +
		"A4 Paper\t\t20\n" +
		"12345\n" +
		"Stapler, x\n" +
		"Eraser 0\n"

	items := ParseExtractedText(text)
	require.Equal(t, []IngestItem{
		{Name: "Blue Pen", Quantity: 15},
		{Name: "Sticky Notes, Yellow", Quantity: 4},
		{Name: "A4 Paper", Quantity: 20},
	}, items)
	require.Empty(t, ParseExtractedText("   \n\n"))
}

func TestPlainTextExtractorRules(t *testing.T) {
	ctx := context.Background()
	extractor := NewPlainTextExtractor(false)

	text, err := extractor.Extract(ctx, "bill.csv", "text/csv", []byte("Pen,2"))
	require.NoError(t, err)
	require.Equal(t, "Pen,2", text)

	_, err = extractor.Extract(ctx, "bill.pdf", "application/pdf", []byte("%PDF-1.4"))
	require.ErrorIs(t, err, ErrPDFOCRDisabled)
	_, err = NewPlainTextExtractor(true).Extract(ctx, "bill.pdf", "application/pdf", []byte("%PDF-1.4"))
	require.ErrorIs(t, err, ErrOCRUnavailable)

	_, err = extractor.Extract(ctx, "bill.JPG", "image/jpeg", []byte{0xff, 0xd8, 0xff})
	require.ErrorIs(t, err, ErrOCRUnavailable)

	_, err = extractor.Extract(ctx, "bill.docx", "", []byte("PK"))
	require.ErrorIs(t, err, ErrUnsupportedFileType)

	text, err = extractor.Extract(ctx, "", "", []byte("Pen 3\nPad 1\n"))
	require.NoError(t, err)
	require.Contains(t, text, "Pad 1")

	_, err = extractor.Extract(ctx, "bill.txt", "text/plain", nil)
	require.ErrorIs(t, err, ErrNoFileProvided)
}

func TestImportDocument(t *testing.T) {
	f := newServiceFixture(t)
	svc := NewInventoryService(
		NewDefaultInventoryUpserter(f.inventoryRepo, f.productRepo),
		NewPlainTextExtractor(false),
		InventoryOptions{DefaultLowStockThreshold: 3, MaxUploadBytes: 64},
	)
	ctx := context.Background()

	result, err := svc.ImportDocument(ctx, "delivery.txt", "text/plain", []byte("Pencil, 12\nCrayon 6\n"), -1)
	require.NoError(t, err)
	require.Equal(t, 2, result.Created)

	_, err = svc.ImportDocument(ctx, "delivery.txt", "text/plain", []byte("no quantities here\n"), -1)
	require.ErrorIs(t, err, ErrNoRecognizableItems)

	_, err = svc.ImportDocument(ctx, "delivery.txt", "text/plain", make([]byte, 65), -1)
	require.ErrorIs(t, err, ErrIngestUploadTooLarge)

	_, err = svc.ImportDocument(ctx, "delivery.txt", "text/plain", nil, -1)
	require.ErrorIs(t, err, ErrNoFileProvided)
}
