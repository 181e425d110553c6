package entities

import (
	"github.com/google/uuid"
)

type Category struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"index" json:"user_id"`
	Name   string    `json:"name"`
	Color  string    `json:"color,omitempty"`
	Icon   string    `json:"icon,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

type Brand struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"index" json:"user_id"`
	Name   string    `json:"name"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

type MeasurementUnit struct {
	ID                      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID                  uuid.UUID `gorm:"index" json:"user_id"`
	Name                    string    `json:"name"`
	Abbreviation            string    `json:"abbreviation"`
	MultiplyQuantityByPrice bool      `json:"multiply_quantity_by_price"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

type Product struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID  `gorm:"index;uniqueIndex:idx_products_user_ean" json:"user_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Ean         *string    `gorm:"uniqueIndex:idx_products_user_ean" json:"ean,omitempty"`
	BrandID     *uuid.UUID `json:"brand_id,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	UnitID      *uuid.UUID `json:"unit_id,omitempty"`
	AvgPrice    float64    `json:"avg_price"`
	Observation string     `json:"observation,omitempty" gorm:"type:text"`

	User     *User            `gorm:"foreignKey:UserID"`
	Brand    *Brand           `gorm:"foreignKey:BrandID"`
	Category *Category        `gorm:"foreignKey:CategoryID"`
	Unit     *MeasurementUnit `gorm:"foreignKey:UnitID"`
	Timestamp
}
