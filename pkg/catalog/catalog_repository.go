package catalog

import (
	"context"
	"errors"
	"strings"

	"pantry-backend/entities"

	"gorm.io/gorm"
)

type (
	CatalogRepository interface {
		CreateCategory(ctx context.Context, category *entities.Category) error
		FindCategoryByName(ctx context.Context, userID string, name string) (*entities.Category, error)
		GetCategories(ctx context.Context, userID string) ([]*entities.Category, error)
		GetCategoryByID(ctx context.Context, id string) (*entities.Category, error)

		CreateBrand(ctx context.Context, brand *entities.Brand) error
		FindBrandByName(ctx context.Context, userID string, name string) (*entities.Brand, error)
		GetBrands(ctx context.Context, userID string) ([]*entities.Brand, error)
		GetBrandByID(ctx context.Context, id string) (*entities.Brand, error)

		CreateUnit(ctx context.Context, unit *entities.MeasurementUnit) error
		UpdateUnit(ctx context.Context, unit *entities.MeasurementUnit) error
		FindUnitByName(ctx context.Context, userID string, name string) (*entities.MeasurementUnit, error)
		GetUnits(ctx context.Context, userID string) ([]*entities.MeasurementUnit, error)
		GetUnitByID(ctx context.Context, id string) (*entities.MeasurementUnit, error)

		CreateProduct(ctx context.Context, product *entities.Product) error
		UpdateProduct(ctx context.Context, product *entities.Product) error
		DeleteProduct(ctx context.Context, id string) error
		GetProductByID(ctx context.Context, id string) (*entities.Product, error)
		FindProductByEan(ctx context.Context, userID string, ean string) (*entities.Product, error)
		GetProducts(ctx context.Context, userID string, page, limit int) ([]*entities.Product, int64, error)
	}

	catalogRepository struct {
		db *gorm.DB
	}
)

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreateCategory(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// FindCategoryByName matches the name case-insensitively. The parameter is
// folded in Go because sqlite's LOWER only folds ASCII; accented case variants
// would slip past a LOWER(?) comparison there.
func (r *catalogRepository) FindCategoryByName(ctx context.Context, userID string, name string) (*entities.Category, error) {
	var category entities.Category
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) = ?", userID, strings.ToLower(name)).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *catalogRepository) GetCategories(ctx context.Context, userID string) ([]*entities.Category, error) {
	var categories []*entities.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *catalogRepository) GetCategoryByID(ctx context.Context, id string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *catalogRepository) CreateBrand(ctx context.Context, brand *entities.Brand) error {
	return r.db.WithContext(ctx).Create(brand).Error
}

func (r *catalogRepository) FindBrandByName(ctx context.Context, userID string, name string) (*entities.Brand, error) {
	var brand entities.Brand
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) = ?", userID, strings.ToLower(name)).
		First(&brand).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &brand, nil
}

func (r *catalogRepository) GetBrands(ctx context.Context, userID string) ([]*entities.Brand, error) {
	var brands []*entities.Brand
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").
		Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *catalogRepository) GetBrandByID(ctx context.Context, id string) (*entities.Brand, error) {
	var brand entities.Brand
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *catalogRepository) CreateUnit(ctx context.Context, unit *entities.MeasurementUnit) error {
	return r.db.WithContext(ctx).Create(unit).Error
}

func (r *catalogRepository) UpdateUnit(ctx context.Context, unit *entities.MeasurementUnit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

func (r *catalogRepository) FindUnitByName(ctx context.Context, userID string, name string) (*entities.MeasurementUnit, error) {
	var unit entities.MeasurementUnit
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) = ?", userID, strings.ToLower(name)).
		First(&unit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &unit, nil
}

func (r *catalogRepository) GetUnits(ctx context.Context, userID string) ([]*entities.MeasurementUnit, error) {
	var units []*entities.MeasurementUnit
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").
		Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func (r *catalogRepository) GetUnitByID(ctx context.Context, id string) (*entities.MeasurementUnit, error) {
	var unit entities.MeasurementUnit
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&unit).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *catalogRepository) CreateProduct(ctx context.Context, product *entities.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *catalogRepository) UpdateProduct(ctx context.Context, product *entities.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *catalogRepository) DeleteProduct(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Product{}).Error
}

func (r *catalogRepository) GetProductByID(ctx context.Context, id string) (*entities.Product, error) {
	var product entities.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *catalogRepository) FindProductByEan(ctx context.Context, userID string, ean string) (*entities.Product, error) {
	var product entities.Product
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND ean = ?", userID, ean).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *catalogRepository) GetProducts(ctx context.Context, userID string, page, limit int) ([]*entities.Product, int64, error) {
	var products []*entities.Product
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if err := query.Model(&entities.Product{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("name asc").Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, count, nil
}
