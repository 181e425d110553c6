package catalog

import (
	"context"
	"errors"
	"strings"

	"pantry-backend/domain"
	"pantry-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CatalogService interface {
		CreateProduct(ctx context.Context, req domain.CreateProductRequest, userID string) (domain.ProductResponse, error)
		UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest, userID string) error
		DeleteProduct(ctx context.Context, id string, userID string) error
		GetProducts(ctx context.Context, userID string, page, limit int) ([]domain.ProductResponse, int64, error)
		GetProductByID(ctx context.Context, id string, userID string) (domain.ProductResponse, error)

		CreateCategory(ctx context.Context, req domain.CreateCategoryRequest, userID string) (domain.CategoryResponse, error)
		GetCategories(ctx context.Context, userID string) ([]domain.CategoryResponse, error)
		CreateBrand(ctx context.Context, req domain.CreateBrandRequest, userID string) (domain.BrandResponse, error)
		GetBrands(ctx context.Context, userID string) ([]domain.BrandResponse, error)
		CreateUnit(ctx context.Context, req domain.CreateUnitRequest, userID string) (domain.UnitResponse, error)
		GetUnits(ctx context.Context, userID string) ([]domain.UnitResponse, error)
	}

	catalogService struct {
		catalogRepository CatalogRepository
		resolver          EntityResolver
		matcher           ProductMatcher
	}
)

func NewCatalogService(catalogRepository CatalogRepository, resolver EntityResolver, matcher ProductMatcher) CatalogService {
	return &catalogService{
		catalogRepository: catalogRepository,
		resolver:          resolver,
		matcher:           matcher,
	}
}

func (s *catalogService) CreateProduct(ctx context.Context, req domain.CreateProductRequest, userID string) (domain.ProductResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ProductResponse{}, domain.ErrParseUUID
	}

	product := &entities.Product{
		ID:          uuid.New(),
		UserID:      userUUID,
		Name:        req.Name,
		Description: req.Description,
		AvgPrice:    req.AvgPrice,
		Observation: req.Observation,
	}

	if ean := strings.TrimSpace(req.Ean); ean != "" {
		product.Ean = &ean
	}

	if req.Brand != "" {
		brand, err := s.resolver.ResolveBrand(ctx, userID, req.Brand)
		if err != nil {
			return domain.ProductResponse{}, err
		}
		product.BrandID = &brand.ID
	}
	if req.Category != "" {
		category, err := s.resolver.ResolveCategory(ctx, userID, req.Category)
		if err != nil {
			return domain.ProductResponse{}, err
		}
		product.CategoryID = &category.ID
	}
	if req.Unit != "" {
		unit, err := s.resolver.ResolveUnit(ctx, userID, req.Unit)
		if err != nil {
			return domain.ProductResponse{}, err
		}
		product.UnitID = &unit.ID
	}

	if product.Ean != nil {
		existing, err := s.catalogRepository.FindProductByEan(ctx, userID, *product.Ean)
		if err != nil {
			return domain.ProductResponse{}, err
		}
		if existing != nil {
			return domain.ProductResponse{}, domain.ErrDuplicateEan
		}
	}

	created, err := s.matcher.CreateProduct(ctx, userID, product)
	if err != nil {
		return domain.ProductResponse{}, err
	}

	return s.toProductResponse(ctx, created), nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest, userID string) error {
	product, err := s.catalogRepository.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotFound
		}
		return err
	}

	if product.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.AvgPrice > 0 {
		product.AvgPrice = req.AvgPrice
	}
	if req.Observation != "" {
		product.Observation = req.Observation
	}

	return s.catalogRepository.UpdateProduct(ctx, product)
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string, userID string) error {
	product, err := s.catalogRepository.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotFound
		}
		return err
	}

	if product.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	return s.catalogRepository.DeleteProduct(ctx, id)
}

func (s *catalogService) GetProducts(ctx context.Context, userID string, page, limit int) ([]domain.ProductResponse, int64, error) {
	products, count, err := s.catalogRepository.GetProducts(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var response []domain.ProductResponse
	for _, product := range products {
		response = append(response, s.toProductResponse(ctx, product))
	}
	return response, count, nil
}

func (s *catalogService) GetProductByID(ctx context.Context, id string, userID string) (domain.ProductResponse, error) {
	product, err := s.catalogRepository.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProductResponse{}, domain.ErrProductNotFound
		}
		return domain.ProductResponse{}, err
	}

	if product.UserID.String() != userID {
		return domain.ProductResponse{}, domain.ErrUnauthorizedAccess
	}

	return s.toProductResponse(ctx, product), nil
}

func (s *catalogService) toProductResponse(ctx context.Context, product *entities.Product) domain.ProductResponse {
	response := domain.ProductResponse{
		ID:          product.ID.String(),
		Name:        product.Name,
		Description: product.Description,
		AvgPrice:    product.AvgPrice,
		Observation: product.Observation,
	}
	if product.Ean != nil {
		response.Ean = *product.Ean
	}
	if product.BrandID != nil {
		if brand, err := s.catalogRepository.GetBrandByID(ctx, product.BrandID.String()); err == nil {
			response.Brand = brand.Name
		}
	}
	if product.CategoryID != nil {
		if category, err := s.catalogRepository.GetCategoryByID(ctx, product.CategoryID.String()); err == nil {
			response.Category = category.Name
		}
	}
	if product.UnitID != nil {
		if unit, err := s.catalogRepository.GetUnitByID(ctx, product.UnitID.String()); err == nil {
			response.Unit = unit.Name
		}
	}
	return response
}

func (s *catalogService) CreateCategory(ctx context.Context, req domain.CreateCategoryRequest, userID string) (domain.CategoryResponse, error) {
	category, err := s.resolver.ResolveCategory(ctx, userID, req.Name)
	if err != nil {
		return domain.CategoryResponse{}, err
	}

	return domain.CategoryResponse{
		ID:    category.ID.String(),
		Name:  category.Name,
		Color: category.Color,
		Icon:  category.Icon,
	}, nil
}

func (s *catalogService) GetCategories(ctx context.Context, userID string) ([]domain.CategoryResponse, error) {
	categories, err := s.catalogRepository.GetCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	var response []domain.CategoryResponse
	for _, category := range categories {
		response = append(response, domain.CategoryResponse{
			ID:    category.ID.String(),
			Name:  category.Name,
			Color: category.Color,
			Icon:  category.Icon,
		})
	}
	return response, nil
}

func (s *catalogService) CreateBrand(ctx context.Context, req domain.CreateBrandRequest, userID string) (domain.BrandResponse, error) {
	brand, err := s.resolver.ResolveBrand(ctx, userID, req.Name)
	if err != nil {
		return domain.BrandResponse{}, err
	}

	return domain.BrandResponse{
		ID:   brand.ID.String(),
		Name: brand.Name,
	}, nil
}

func (s *catalogService) GetBrands(ctx context.Context, userID string) ([]domain.BrandResponse, error) {
	brands, err := s.catalogRepository.GetBrands(ctx, userID)
	if err != nil {
		return nil, err
	}

	var response []domain.BrandResponse
	for _, brand := range brands {
		response = append(response, domain.BrandResponse{
			ID:   brand.ID.String(),
			Name: brand.Name,
		})
	}
	return response, nil
}

func (s *catalogService) CreateUnit(ctx context.Context, req domain.CreateUnitRequest, userID string) (domain.UnitResponse, error) {
	unit, err := s.resolver.ResolveUnit(ctx, userID, req.Name)
	if err != nil {
		return domain.UnitResponse{}, err
	}

	changed := false
	if req.Abbreviation != "" && req.Abbreviation != unit.Abbreviation {
		unit.Abbreviation = req.Abbreviation
		changed = true
	}
	if req.MultiplyQuantityByPrice != unit.MultiplyQuantityByPrice {
		unit.MultiplyQuantityByPrice = req.MultiplyQuantityByPrice
		changed = true
	}
	if changed {
		if err := s.catalogRepository.UpdateUnit(ctx, unit); err != nil {
			return domain.UnitResponse{}, err
		}
	}

	return domain.UnitResponse{
		ID:                      unit.ID.String(),
		Name:                    unit.Name,
		Abbreviation:            unit.Abbreviation,
		MultiplyQuantityByPrice: unit.MultiplyQuantityByPrice,
	}, nil
}

func (s *catalogService) GetUnits(ctx context.Context, userID string) ([]domain.UnitResponse, error) {
	units, err := s.catalogRepository.GetUnits(ctx, userID)
	if err != nil {
		return nil, err
	}

	var response []domain.UnitResponse
	for _, unit := range units {
		response = append(response, domain.UnitResponse{
			ID:                      unit.ID.String(),
			Name:                    unit.Name,
			Abbreviation:            unit.Abbreviation,
			MultiplyQuantityByPrice: unit.MultiplyQuantityByPrice,
		})
	}
	return response, nil
}
