package inventory

import (
	"fmt"
	"testing"
	"time"

	"pantry-backend/entities"

	"github.com/google/uuid"
)

func TestBuildBatchFromReceiptLine(t *testing.T) {
	factory := NewBatchFactory()

	product := &entities.Product{ID: uuid.New(), Name: "Leite Integral 1L"}
	item := &entities.FiscalReceiptItem{
		ID:         uuid.New(),
		Name:       "LEITE INTEG ITALAC 1L",
		Quantity:   2,
		UnitPrice:  4.50,
		TotalPrice: 9.00,
	}
	receipt := &entities.FiscalReceipt{
		ID:           uuid.New(),
		StoreName:    "Supermercado Central",
		PurchaseDate: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
	}

	batch := factory.BuildBatch(product, item, receipt)

	wantLabel := fmt.Sprintf("RECEIPT_%s_%s", receipt.ID, item.ID)
	if batch.Label != wantLabel {
		t.Fatalf("expected label %q, got %q", wantLabel, batch.Label)
	}
	if batch.ProductID != product.ID {
		t.Fatalf("expected batch for product %s, got %s", product.ID, batch.ProductID)
	}
	if batch.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %v", batch.Quantity)
	}
	if batch.PurchasePrice != 9.00 {
		t.Fatalf("expected purchase price to be the line total 9.00, got %v", batch.PurchasePrice)
	}
	if !batch.PurchaseDate.Equal(receipt.PurchaseDate) {
		t.Fatalf("expected purchase date %v, got %v", receipt.PurchaseDate, batch.PurchaseDate)
	}
	wantExpiry := receipt.PurchaseDate.AddDate(0, estimatedShelfLifeMonths, 0)
	if !batch.ExpiryDate.Equal(wantExpiry) {
		t.Fatalf("expected estimated expiry %v, got %v", wantExpiry, batch.ExpiryDate)
	}
	if !batch.ExpiryEstimated {
		t.Fatal("expected the expiry date to be flagged as estimated")
	}
	if batch.PurchaseLocation != "Supermercado Central" {
		t.Fatalf("expected purchase location from the store name, got %q", batch.PurchaseLocation)
	}
	if batch.ConsumedAt != nil {
		t.Fatal("expected a fresh batch to be unconsumed")
	}
}

func TestBuildBatchPurchaseDateFallback(t *testing.T) {
	fixed := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	factory := &batchFactory{now: func() time.Time { return fixed }}

	product := &entities.Product{ID: uuid.New()}
	item := &entities.FiscalReceiptItem{ID: uuid.New(), Quantity: 1, TotalPrice: 3.20}
	receipt := &entities.FiscalReceipt{ID: uuid.New(), StoreName: "Padaria do Bairro"}

	batch := factory.BuildBatch(product, item, receipt)

	if !batch.PurchaseDate.Equal(fixed) {
		t.Fatalf("expected purchase date to fall back to now, got %v", batch.PurchaseDate)
	}
	if !batch.ExpiryDate.Equal(fixed.AddDate(0, estimatedShelfLifeMonths, 0)) {
		t.Fatalf("expected expiry derived from the fallback date, got %v", batch.ExpiryDate)
	}
}
