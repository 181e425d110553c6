package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"pantry-backend/domain"
	"pantry-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const importObservation = "created automatically by receipt import"

type (
	// MatchResult carries either an existing product matched by EAN or a
	// draft for a product that does not exist yet. Exactly one field is set.
	MatchResult struct {
		Existing *entities.Product
		Draft    *entities.Product
	}

	// ProductMatcher resolves a receipt line item to a catalog product.
	// A matched product is returned untouched; import never overwrites
	// curated catalog data.
	ProductMatcher interface {
		MatchOrPrepare(ctx context.Context, userID string, item *entities.FiscalReceiptItem) (MatchResult, error)
		CreateProduct(ctx context.Context, userID string, draft *entities.Product) (*entities.Product, error)
	}

	productMatcher struct {
		catalogRepository CatalogRepository
		resolver          EntityResolver

		mu    sync.Mutex
		locks map[string]*sync.Mutex
	}
)

func NewProductMatcher(catalogRepository CatalogRepository, resolver EntityResolver) ProductMatcher {
	return &productMatcher{
		catalogRepository: catalogRepository,
		resolver:          resolver,
		locks:             make(map[string]*sync.Mutex),
	}
}

func (m *productMatcher) MatchOrPrepare(ctx context.Context, userID string, item *entities.FiscalReceiptItem) (MatchResult, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return MatchResult{}, domain.ErrParseUUID
	}

	ean := strings.TrimSpace(item.Ean)
	if ean != "" {
		product, err := m.catalogRepository.FindProductByEan(ctx, userID, ean)
		if err != nil {
			return MatchResult{}, err
		}
		if product != nil {
			return MatchResult{Existing: product}, nil
		}
	}

	draft := &entities.Product{
		ID:          uuid.New(),
		UserID:      userUUID,
		Name:        item.Name,
		Description: item.Name,
		AvgPrice:    item.UnitPrice,
		Observation: importObservation,
	}
	if ean != "" {
		draft.Ean = &ean
	}

	if brandText := strings.TrimSpace(item.BrandText); brandText != "" {
		brand, err := m.resolver.ResolveBrand(ctx, userID, brandText)
		if err != nil {
			return MatchResult{}, err
		}
		draft.BrandID = &brand.ID
	}

	if categoryText := strings.TrimSpace(item.CategoryText); categoryText != "" {
		category, err := m.resolver.ResolveCategory(ctx, userID, categoryText)
		if err != nil {
			return MatchResult{}, err
		}
		draft.CategoryID = &category.ID
	}

	if unitText := strings.TrimSpace(item.UnitText); unitText != "" {
		unit, err := m.resolver.ResolveUnit(ctx, userID, unitText)
		if err != nil {
			return MatchResult{}, err
		}
		draft.UnitID = &unit.ID
	}

	return MatchResult{Draft: draft}, nil
}

// CreateProduct persists a draft. Writes for the same (user, EAN) are
// serialized and rechecked under the lock; if a concurrent writer still wins
// at the database (unique index on user_id, ean), the existing product is
// re-read and returned instead. ErrDuplicateEan surfaces only when that
// reconciliation misses.
func (m *productMatcher) CreateProduct(ctx context.Context, userID string, draft *entities.Product) (*entities.Product, error) {
	if draft.Ean == nil {
		if err := m.catalogRepository.CreateProduct(ctx, draft); err != nil {
			return nil, err
		}
		return draft, nil
	}

	ean := *draft.Ean
	lock := m.lockFor(userID, ean)
	lock.Lock()
	defer lock.Unlock()

	existing, err := m.catalogRepository.FindProductByEan(ctx, userID, ean)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if err := m.catalogRepository.CreateProduct(ctx, draft); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, findErr := m.catalogRepository.FindProductByEan(ctx, userID, ean)
			if findErr == nil && existing != nil {
				return existing, nil
			}
			return nil, domain.ErrDuplicateEan
		}
		return nil, err
	}
	return draft, nil
}

func (m *productMatcher) lockFor(userID, ean string) *sync.Mutex {
	key := fmt.Sprintf("%s|%s", userID, ean)
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[key] = lock
	}
	return lock
}
