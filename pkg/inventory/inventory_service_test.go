package inventory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"pantry-backend/domain"
	"pantry-backend/entities"
	"pantry-backend/pkg/catalog"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&entities.User{},
		&entities.Category{},
		&entities.Brand{},
		&entities.MeasurementUnit{},
		&entities.Product{},
		&entities.ProductBatch{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedProduct(t *testing.T, db *gorm.DB, userID uuid.UUID) *entities.Product {
	t.Helper()
	product := &entities.Product{
		ID:     uuid.New(),
		UserID: userID,
		Name:   "Leite Integral 1L",
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

func newTestInventoryService(t *testing.T) (InventoryService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewInventoryService(NewBatchRepository(db), catalog.NewCatalogRepository(db)), db
}

func TestCreateBatchValidatesExpiryDate(t *testing.T) {
	service, db := newTestInventoryService(t)
	userID := uuid.New()
	product := seedProduct(t, db, userID)

	_, err := service.CreateBatch(context.Background(), domain.CreateBatchRequest{
		ProductID:  product.ID.String(),
		Quantity:   1,
		ExpiryDate: "10/12/2026",
	}, userID.String())
	if !errors.Is(err, domain.ErrInvalidExpiryDate) {
		t.Fatalf("expected ErrInvalidExpiryDate, got %v", err)
	}
}

func TestCreateBatchRejectsForeignProduct(t *testing.T) {
	service, db := newTestInventoryService(t)
	product := seedProduct(t, db, uuid.New())

	_, err := service.CreateBatch(context.Background(), domain.CreateBatchRequest{
		ProductID:  product.ID.String(),
		Quantity:   1,
		ExpiryDate: "2026-12-10",
	}, uuid.New().String())
	if !errors.Is(err, domain.ErrUnauthorizedAccess) {
		t.Fatalf("expected ErrUnauthorizedAccess, got %v", err)
	}
}

func TestConsumeBatchIdempotent(t *testing.T) {
	service, db := newTestInventoryService(t)
	userID := uuid.New()
	product := seedProduct(t, db, userID)

	res, err := service.CreateBatch(context.Background(), domain.CreateBatchRequest{
		ProductID:  product.ID.String(),
		Quantity:   2,
		ExpiryDate: "2026-12-10",
	}, userID.String())
	if err != nil {
		t.Fatalf("failed to create batch: %v", err)
	}

	req := domain.ConsumeBatchRequest{BatchID: res.ID}
	if err := service.ConsumeBatch(context.Background(), req, userID.String()); err != nil {
		t.Fatalf("failed to consume batch: %v", err)
	}

	var first entities.ProductBatch
	if err := db.Where("id = ?", res.ID).First(&first).Error; err != nil {
		t.Fatalf("failed to reload batch: %v", err)
	}
	if first.ConsumedAt == nil {
		t.Fatal("expected the batch to be consumed")
	}

	if err := service.ConsumeBatch(context.Background(), req, userID.String()); err != nil {
		t.Fatalf("second consume should be a no-op, got %v", err)
	}

	var second entities.ProductBatch
	if err := db.Where("id = ?", res.ID).First(&second).Error; err != nil {
		t.Fatalf("failed to reload batch: %v", err)
	}
	if !second.ConsumedAt.Equal(*first.ConsumedAt) {
		t.Fatalf("expected the original consumption time to stick, got %v then %v", first.ConsumedAt, second.ConsumedAt)
	}
}

func TestGetDashboardStats(t *testing.T) {
	service, db := newTestInventoryService(t)
	userID := uuid.New()
	product := seedProduct(t, db, userID)

	now := time.Now()
	consumedAt := now.Add(-24 * time.Hour)
	batches := []*entities.ProductBatch{
		{ID: uuid.New(), ProductID: product.ID, Quantity: 1, ExpiryDate: now.AddDate(1, 0, 0), PurchaseDate: now, PurchasePrice: 10},
		{ID: uuid.New(), ProductID: product.ID, Quantity: 1, ExpiryDate: now.AddDate(0, 0, -1), PurchaseDate: now, PurchasePrice: 5},
		{ID: uuid.New(), ProductID: product.ID, Quantity: 1, ExpiryDate: now.AddDate(1, 0, 0), PurchaseDate: now, PurchasePrice: 7.5, ConsumedAt: &consumedAt},
	}
	for _, batch := range batches {
		if err := db.Create(batch).Error; err != nil {
			t.Fatalf("failed to seed batch: %v", err)
		}
	}

	stats, err := service.GetDashboardStats(context.Background(), userID.String())
	if err != nil {
		t.Fatalf("failed to get dashboard stats: %v", err)
	}

	if stats.TotalBatches != 3 {
		t.Fatalf("expected 3 total batches, got %d", stats.TotalBatches)
	}
	if stats.ConsumedBatches != 1 {
		t.Fatalf("expected 1 consumed batch, got %d", stats.ConsumedBatches)
	}
	if stats.ExpiredBatches != 1 {
		t.Fatalf("expected 1 expired batch, got %d", stats.ExpiredBatches)
	}
	if stats.ActiveBatches != 1 {
		t.Fatalf("expected 1 active batch, got %d", stats.ActiveBatches)
	}
	if stats.TotalSpent != 22.5 {
		t.Fatalf("expected total spent 22.5, got %v", stats.TotalSpent)
	}
}
