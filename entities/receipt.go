package entities

import (
	"time"

	"github.com/google/uuid"
)

type FiscalReceipt struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID `gorm:"index" json:"user_id"`
	StoreName       string    `json:"store_name"`
	StoreTaxID      string    `json:"store_tax_id,omitempty"`
	ReceiptNumber   string    `json:"receipt_number"`
	AccessKey       string    `json:"access_key,omitempty"`
	PurchaseDate    time.Time `json:"purchase_date"`
	TotalAmount     float64   `json:"total_amount"`
	IsProcessed     bool      `gorm:"index" json:"is_processed"`
	ProcessingNotes string    `json:"processing_notes,omitempty" gorm:"type:text"`
	ImageURL        string    `json:"image_url,omitempty"`

	User  *User                `gorm:"foreignKey:UserID"`
	Items []*FiscalReceiptItem `gorm:"foreignKey:ReceiptID"`
	Timestamp
}

type FiscalReceiptItem struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID         uuid.UUID  `gorm:"index" json:"receipt_id"`
	LineNumber        int        `json:"line_number"`
	Name              string     `json:"name"`
	Ean               string     `json:"ean,omitempty"`
	Quantity          float64    `json:"quantity"`
	UnitPrice         float64    `json:"unit_price"`
	TotalPrice        float64    `json:"total_price"`
	UnitText          string     `json:"unit_text,omitempty"`
	CategoryText      string     `json:"category_text,omitempty"`
	BrandText         string     `json:"brand_text,omitempty"`
	IsImported        bool       `json:"is_imported"`
	ImportedProductID *uuid.UUID `json:"imported_product_id,omitempty"`
	ImportNotes       string     `json:"import_notes,omitempty" gorm:"type:text"`

	Receipt         *FiscalReceipt `gorm:"foreignKey:ReceiptID"`
	ImportedProduct *Product       `gorm:"foreignKey:ImportedProductID"`
	Timestamp
}
