package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"pantry-backend/domain"
	"pantry-backend/entities"

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
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func TestResolveCategoryBlankName(t *testing.T) {
	db := setupTestDB(t)
	resolver := NewEntityResolver(NewCatalogRepository(db))
	userID := uuid.New().String()

	if _, err := resolver.ResolveCategory(context.Background(), userID, "   "); !errors.Is(err, domain.ErrBlankEntityName) {
		t.Fatalf("expected ErrBlankEntityName, got %v", err)
	}
	if _, err := resolver.ResolveBrand(context.Background(), userID, ""); !errors.Is(err, domain.ErrBlankEntityName) {
		t.Fatalf("expected ErrBlankEntityName, got %v", err)
	}
	if _, err := resolver.ResolveUnit(context.Background(), userID, "\t"); !errors.Is(err, domain.ErrBlankEntityName) {
		t.Fatalf("expected ErrBlankEntityName, got %v", err)
	}
}

func TestResolveBrandCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	resolver := NewEntityResolver(NewCatalogRepository(db))
	userID := uuid.New().String()

	first, err := resolver.ResolveBrand(context.Background(), userID, "Italac")
	if err != nil {
		t.Fatalf("failed to resolve brand: %v", err)
	}

	second, err := resolver.ResolveBrand(context.Background(), userID, "ITALAC")
	if err != nil {
		t.Fatalf("failed to resolve brand variant: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected same brand for case variants, got %s and %s", first.ID, second.ID)
	}
	if second.Name != "Italac" {
		t.Fatalf("expected original spelling preserved, got %q", second.Name)
	}

	var count int64
	if err := db.Model(&entities.Brand{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count brands: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 brand, got %d", count)
	}
}

func TestResolveCategoryAccentedCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	resolver := NewEntityResolver(NewCatalogRepository(db))
	userID := uuid.New().String()

	first, err := resolver.ResolveCategory(context.Background(), userID, "Laticínios")
	if err != nil {
		t.Fatalf("failed to resolve category: %v", err)
	}

	second, err := resolver.ResolveCategory(context.Background(), userID, "LATICÍNIOS")
	if err != nil {
		t.Fatalf("failed to resolve category variant: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected same category for accented case variants, got %s and %s", first.ID, second.ID)
	}

	var count int64
	if err := db.Model(&entities.Category{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count categories: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 category, got %d", count)
	}
}

func TestResolveUnitDefaults(t *testing.T) {
	db := setupTestDB(t)
	resolver := NewEntityResolver(NewCatalogRepository(db))
	userID := uuid.New().String()

	unit, err := resolver.ResolveUnit(context.Background(), userID, "kg")
	if err != nil {
		t.Fatalf("failed to resolve unit: %v", err)
	}

	if unit.Abbreviation != "kg" {
		t.Fatalf("expected abbreviation to default to the name, got %q", unit.Abbreviation)
	}
	if unit.MultiplyQuantityByPrice {
		t.Fatal("expected MultiplyQuantityByPrice to default to false")
	}
}

func TestResolveCategoryConcurrent(t *testing.T) {
	db := setupTestDB(t)
	resolver := NewEntityResolver(NewCatalogRepository(db))
	userID := uuid.New().String()

	const workers = 8
	ids := make([]uuid.UUID, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			category, err := resolver.ResolveCategory(context.Background(), userID, "Laticínios")
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = category.ID
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d failed: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Fatalf("workers resolved different categories: %s and %s", ids[0], ids[i])
		}
	}

	var count int64
	if err := db.Model(&entities.Category{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count categories: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 category after concurrent resolution, got %d", count)
	}
}

func TestResolveScopedPerUser(t *testing.T) {
	db := setupTestDB(t)
	resolver := NewEntityResolver(NewCatalogRepository(db))

	first, err := resolver.ResolveCategory(context.Background(), uuid.New().String(), "Bebidas")
	if err != nil {
		t.Fatalf("failed to resolve category: %v", err)
	}
	second, err := resolver.ResolveCategory(context.Background(), uuid.New().String(), "Bebidas")
	if err != nil {
		t.Fatalf("failed to resolve category: %v", err)
	}

	if first.ID == second.ID {
		t.Fatal("expected distinct categories for distinct users")
	}
}
