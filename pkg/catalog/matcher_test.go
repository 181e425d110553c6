package catalog

import (
	"context"
	"sync"
	"testing"

	"pantry-backend/entities"

	"github.com/google/uuid"
)

func newTestMatcher(t *testing.T) (ProductMatcher, CatalogRepository) {
	t.Helper()
	repository := NewCatalogRepository(setupTestDB(t))
	return NewProductMatcher(repository, NewEntityResolver(repository)), repository
}

func TestMatchOrPrepareReturnsExistingByEan(t *testing.T) {
	matcher, repository := newTestMatcher(t)
	userUUID := uuid.New()
	ean := "7891000100103"

	existing := &entities.Product{
		ID:       uuid.New(),
		UserID:   userUUID,
		Name:     "Leite Integral 1L",
		Ean:      &ean,
		AvgPrice: 4.50,
	}
	if err := repository.CreateProduct(context.Background(), existing); err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	item := &entities.FiscalReceiptItem{
		Name:      "LEITE INTEG ITALAC 1L",
		Ean:       ean,
		UnitPrice: 5.20,
	}

	result, err := matcher.MatchOrPrepare(context.Background(), userUUID.String(), item)
	if err != nil {
		t.Fatalf("failed to match item: %v", err)
	}

	if result.Existing == nil {
		t.Fatal("expected an existing product match")
	}
	if result.Draft != nil {
		t.Fatal("expected no draft for a matched item")
	}
	if result.Existing.ID != existing.ID {
		t.Fatalf("matched wrong product: %s", result.Existing.ID)
	}
	if result.Existing.Name != "Leite Integral 1L" {
		t.Fatalf("expected catalog data untouched, got name %q", result.Existing.Name)
	}
	if result.Existing.AvgPrice != 4.50 {
		t.Fatalf("expected catalog price untouched, got %v", result.Existing.AvgPrice)
	}
}

func TestMatchOrPreparePreparesDraft(t *testing.T) {
	matcher, repository := newTestMatcher(t)
	userID := uuid.New().String()

	item := &entities.FiscalReceiptItem{
		Name:         "Arroz Branco 5kg",
		Ean:          "7896006711131",
		UnitPrice:    24.90,
		UnitText:     "un",
		CategoryText: "Mercearia",
		BrandText:    "Camil",
	}

	result, err := matcher.MatchOrPrepare(context.Background(), userID, item)
	if err != nil {
		t.Fatalf("failed to prepare draft: %v", err)
	}

	if result.Existing != nil {
		t.Fatal("expected no existing match")
	}
	draft := result.Draft
	if draft == nil {
		t.Fatal("expected a draft product")
	}
	if draft.Name != item.Name {
		t.Fatalf("expected draft name %q, got %q", item.Name, draft.Name)
	}
	if draft.Ean == nil || *draft.Ean != item.Ean {
		t.Fatalf("expected draft ean %q", item.Ean)
	}
	if draft.AvgPrice != item.UnitPrice {
		t.Fatalf("expected draft price %v, got %v", item.UnitPrice, draft.AvgPrice)
	}
	if draft.BrandID == nil || draft.CategoryID == nil || draft.UnitID == nil {
		t.Fatal("expected brand, category and unit to be resolved")
	}

	brand, err := repository.GetBrandByID(context.Background(), draft.BrandID.String())
	if err != nil {
		t.Fatalf("failed to load resolved brand: %v", err)
	}
	if brand.Name != "Camil" {
		t.Fatalf("expected resolved brand Camil, got %q", brand.Name)
	}
}

func TestMatchOrPrepareNoEanAlwaysDrafts(t *testing.T) {
	matcher, _ := newTestMatcher(t)
	userID := uuid.New().String()

	item := &entities.FiscalReceiptItem{Name: "Pão Francês", UnitPrice: 0.80}

	result, err := matcher.MatchOrPrepare(context.Background(), userID, item)
	if err != nil {
		t.Fatalf("failed to prepare draft: %v", err)
	}
	if result.Draft == nil || result.Draft.Ean != nil {
		t.Fatal("expected a draft without ean")
	}
}

func TestCreateProductConcurrentSameEan(t *testing.T) {
	matcher, repository := newTestMatcher(t)
	userUUID := uuid.New()
	ean := "7891000100103"

	const workers = 8
	ids := make([]uuid.UUID, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			eanCopy := ean
			draft := &entities.Product{
				ID:     uuid.New(),
				UserID: userUUID,
				Name:   "Leite Integral 1L",
				Ean:    &eanCopy,
			}
			product, err := matcher.CreateProduct(context.Background(), userUUID.String(), draft)
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = product.ID
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d failed: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Fatalf("workers got different products: %s and %s", ids[0], ids[i])
		}
	}

	product, err := repository.FindProductByEan(context.Background(), userUUID.String(), ean)
	if err != nil {
		t.Fatalf("failed to load product: %v", err)
	}
	if product == nil {
		t.Fatal("expected the product to exist")
	}

	var count int64
	if err := repository.(*catalogRepository).db.Model(&entities.Product{}).
		Where("user_id = ? AND ean = ?", userUUID, ean).Count(&count).Error; err != nil {
		t.Fatalf("failed to count products: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 product for the ean, got %d", count)
	}
}

func TestCreateProductSameEanDifferentUsers(t *testing.T) {
	matcher, _ := newTestMatcher(t)
	ean := "7891000100103"

	firstEan, secondEan := ean, ean
	first := &entities.Product{ID: uuid.New(), UserID: uuid.New(), Name: "Leite", Ean: &firstEan}
	second := &entities.Product{ID: uuid.New(), UserID: uuid.New(), Name: "Leite", Ean: &secondEan}

	if _, err := matcher.CreateProduct(context.Background(), first.UserID.String(), first); err != nil {
		t.Fatalf("failed to create first product: %v", err)
	}

	created, err := matcher.CreateProduct(context.Background(), second.UserID.String(), second)
	if err != nil {
		t.Fatalf("expected the ean to be free for another user, got %v", err)
	}
	if created.ID != second.ID {
		t.Fatalf("expected a fresh product for the second user, got %s", created.ID)
	}
}
