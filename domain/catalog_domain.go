package domain

import (
	"errors"
)

var (
	MessageSuccessCreateProduct  = "product created successfully"
	MessageSuccessUpdateProduct  = "product updated successfully"
	MessageSuccessDeleteProduct  = "product deleted successfully"
	MessageSuccessGetProducts    = "products retrieved successfully"
	MessageSuccessCreateCategory = "category created successfully"
	MessageSuccessGetCategories  = "categories retrieved successfully"
	MessageSuccessCreateBrand    = "brand created successfully"
	MessageSuccessGetBrands      = "brands retrieved successfully"
	MessageSuccessCreateUnit     = "measurement unit created successfully"
	MessageSuccessGetUnits       = "measurement units retrieved successfully"

	MessageFailedCreateProduct  = "failed to create product"
	MessageFailedUpdateProduct  = "failed to update product"
	MessageFailedDeleteProduct  = "failed to delete product"
	MessageFailedGetProducts    = "failed to retrieve products"
	MessageFailedCreateCategory = "failed to create category"
	MessageFailedGetCategories  = "failed to retrieve categories"
	MessageFailedCreateBrand    = "failed to create brand"
	MessageFailedGetBrands      = "failed to retrieve brands"
	MessageFailedCreateUnit     = "failed to create measurement unit"
	MessageFailedGetUnits       = "failed to retrieve measurement units"

	ErrBlankEntityName    = errors.New("entity name must not be blank")
	ErrProductNotFound    = errors.New("product not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrBrandNotFound      = errors.New("brand not found")
	ErrUnitNotFound       = errors.New("measurement unit not found")
	ErrDuplicateEan       = errors.New("a product with this EAN already exists")
	ErrUnauthorizedAccess = errors.New("unauthorized access to resource")
)

type (
	CreateProductRequest struct {
		Name        string  `json:"name" validate:"required"`
		Description string  `json:"description" validate:"omitempty"`
		Ean         string  `json:"ean" validate:"omitempty,numeric"`
		Brand       string  `json:"brand" validate:"omitempty"`
		Category    string  `json:"category" validate:"omitempty"`
		Unit        string  `json:"unit" validate:"omitempty"`
		AvgPrice    float64 `json:"avg_price" validate:"omitempty,min=0"`
		Observation string  `json:"observation" validate:"omitempty"`
	}

	UpdateProductRequest struct {
		Name        string  `json:"name" validate:"omitempty"`
		Description string  `json:"description" validate:"omitempty"`
		AvgPrice    float64 `json:"avg_price" validate:"omitempty,min=0"`
		Observation string  `json:"observation" validate:"omitempty"`
	}

	ProductResponse struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Description string  `json:"description,omitempty"`
		Ean         string  `json:"ean,omitempty"`
		Brand       string  `json:"brand,omitempty"`
		Category    string  `json:"category,omitempty"`
		Unit        string  `json:"unit,omitempty"`
		AvgPrice    float64 `json:"avg_price"`
		Observation string  `json:"observation,omitempty"`
	}

	CreateCategoryRequest struct {
		Name string `json:"name" validate:"required"`
	}

	CategoryResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color,omitempty"`
		Icon  string `json:"icon,omitempty"`
	}

	CreateBrandRequest struct {
		Name string `json:"name" validate:"required"`
	}

	BrandResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	CreateUnitRequest struct {
		Name                    string `json:"name" validate:"required"`
		Abbreviation            string `json:"abbreviation" validate:"omitempty"`
		MultiplyQuantityByPrice bool   `json:"multiply_quantity_by_price"`
	}

	UnitResponse struct {
		ID                      string `json:"id"`
		Name                    string `json:"name"`
		Abbreviation            string `json:"abbreviation"`
		MultiplyQuantityByPrice bool   `json:"multiply_quantity_by_price"`
	}
)
