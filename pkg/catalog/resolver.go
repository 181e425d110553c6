package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"pantry-backend/domain"
	"pantry-backend/entities"

	"github.com/google/uuid"
)

const (
	kindCategory = "category"
	kindBrand    = "brand"
	kindUnit     = "unit"

	defaultCategoryColor = "#9E9E9E"
	defaultCategoryIcon  = "label"
)

type (
	// EntityResolver finds or creates catalog entities by name. Lookups are
	// case-insensitive; a resolved hit is returned unchanged. Creation of the
	// same new name is serialized per (user, kind, folded name) and rechecked
	// under the lock, so concurrent resolutions never create duplicates.
	EntityResolver interface {
		ResolveCategory(ctx context.Context, userID string, name string) (*entities.Category, error)
		ResolveBrand(ctx context.Context, userID string, name string) (*entities.Brand, error)
		ResolveUnit(ctx context.Context, userID string, name string) (*entities.MeasurementUnit, error)
	}

	entityResolver struct {
		catalogRepository CatalogRepository

		mu    sync.Mutex
		locks map[string]*sync.Mutex
	}
)

func NewEntityResolver(catalogRepository CatalogRepository) EntityResolver {
	return &entityResolver{
		catalogRepository: catalogRepository,
		locks:             make(map[string]*sync.Mutex),
	}
}

func (r *entityResolver) lockFor(userID, kind, name string) *sync.Mutex {
	key := fmt.Sprintf("%s|%s|%s", userID, kind, strings.ToLower(strings.TrimSpace(name)))
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[key] = lock
	}
	return lock
}

func (r *entityResolver) ResolveCategory(ctx context.Context, userID string, name string) (*entities.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrBlankEntityName
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if category, err := r.catalogRepository.FindCategoryByName(ctx, userID, name); err != nil {
		return nil, err
	} else if category != nil {
		return category, nil
	}

	lock := r.lockFor(userID, kindCategory, name)
	lock.Lock()
	defer lock.Unlock()

	// Another resolution may have created the row while we waited.
	if category, err := r.catalogRepository.FindCategoryByName(ctx, userID, name); err != nil {
		return nil, err
	} else if category != nil {
		return category, nil
	}

	category := &entities.Category{
		ID:     uuid.New(),
		UserID: userUUID,
		Name:   name,
		Color:  defaultCategoryColor,
		Icon:   defaultCategoryIcon,
	}
	if err := r.catalogRepository.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (r *entityResolver) ResolveBrand(ctx context.Context, userID string, name string) (*entities.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrBlankEntityName
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if brand, err := r.catalogRepository.FindBrandByName(ctx, userID, name); err != nil {
		return nil, err
	} else if brand != nil {
		return brand, nil
	}

	lock := r.lockFor(userID, kindBrand, name)
	lock.Lock()
	defer lock.Unlock()

	if brand, err := r.catalogRepository.FindBrandByName(ctx, userID, name); err != nil {
		return nil, err
	} else if brand != nil {
		return brand, nil
	}

	brand := &entities.Brand{
		ID:     uuid.New(),
		UserID: userUUID,
		Name:   name,
	}
	if err := r.catalogRepository.CreateBrand(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (r *entityResolver) ResolveUnit(ctx context.Context, userID string, name string) (*entities.MeasurementUnit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrBlankEntityName
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if unit, err := r.catalogRepository.FindUnitByName(ctx, userID, name); err != nil {
		return nil, err
	} else if unit != nil {
		return unit, nil
	}

	lock := r.lockFor(userID, kindUnit, name)
	lock.Lock()
	defer lock.Unlock()

	if unit, err := r.catalogRepository.FindUnitByName(ctx, userID, name); err != nil {
		return nil, err
	} else if unit != nil {
		return unit, nil
	}

	unit := &entities.MeasurementUnit{
		ID:                      uuid.New(),
		UserID:                  userUUID,
		Name:                    name,
		Abbreviation:            name,
		MultiplyQuantityByPrice: false,
	}
	if err := r.catalogRepository.CreateUnit(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}
