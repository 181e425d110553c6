package entities

import (
	"time"

	"github.com/google/uuid"
)

type ProductBatch struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ProductID        uuid.UUID  `gorm:"index" json:"product_id"`
	Label            string     `json:"label"`
	Quantity         float64    `json:"quantity"`
	ExpiryDate       time.Time  `json:"expiry_date"`
	ExpiryEstimated  bool       `json:"expiry_estimated"`
	PurchaseDate     time.Time  `json:"purchase_date"`
	PurchasePrice    float64    `json:"purchase_price"`
	PurchaseLocation string     `json:"purchase_location,omitempty"`
	ConsumedAt       *time.Time `json:"consumed_at,omitempty"`

	Product *Product `gorm:"foreignKey:ProductID"`
	Timestamp
}
