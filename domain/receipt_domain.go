package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessRegisterReceipt    = "receipt registered successfully"
	MessageSuccessRegisterFromQr     = "receipt registered from QR payload"
	MessageSuccessGetReceipts        = "receipts retrieved successfully"
	MessageSuccessDeleteReceipt      = "receipt deleted successfully"
	MessageSuccessProcessReceipt     = "receipt processed"
	MessageSuccessImportItems        = "receipt items imported"
	MessageSuccessUploadReceiptImage = "receipt image uploaded successfully"

	MessageFailedRegisterReceipt    = "failed to register receipt"
	MessageFailedRegisterFromQr     = "failed to register receipt from QR payload"
	MessageFailedGetReceipts        = "failed to retrieve receipts"
	MessageFailedDeleteReceipt      = "failed to delete receipt"
	MessageFailedProcessReceipt     = "failed to process receipt"
	MessageFailedImportItems        = "failed to import receipt items"
	MessageFailedUploadReceiptImage = "failed to upload receipt image"

	ErrReceiptNotFound     = errors.New("receipt not found")
	ErrReceiptItemNotFound = errors.New("receipt item not found")
	ErrReceiptEmpty        = errors.New("receipt must have at least one item")
	ErrMalformedQrPayload  = errors.New("malformed fiscal QR payload")
	ErrLineTotalMismatch   = errors.New("item total price does not match quantity times unit price")
	ErrInvalidPurchaseDate = errors.New("invalid purchase date")
	ErrReceiptNotProcessed = errors.New("receipt could not be marked processed")
)

type (
	ReceiptItemRequest struct {
		Name       string  `json:"name" validate:"required"`
		Ean        string  `json:"ean" validate:"omitempty,numeric"`
		Quantity   float64 `json:"quantity" validate:"required,gt=0"`
		UnitPrice  float64 `json:"unit_price" validate:"required,min=0"`
		TotalPrice float64 `json:"total_price" validate:"required,min=0"`
		Unit       string  `json:"unit" validate:"omitempty"`
		Category   string  `json:"category" validate:"omitempty"`
		Brand      string  `json:"brand" validate:"omitempty"`
	}

	RegisterReceiptRequest struct {
		StoreName     string               `json:"store_name" validate:"required"`
		StoreTaxID    string               `json:"store_tax_id" validate:"omitempty"`
		ReceiptNumber string               `json:"receipt_number" validate:"required"`
		AccessKey     string               `json:"access_key" validate:"omitempty"`
		PurchaseDate  string               `json:"purchase_date" validate:"required"`
		TotalAmount   float64              `json:"total_amount" validate:"required,min=0"`
		Items         []ReceiptItemRequest `json:"items" validate:"required,dive"`
	}

	RegisterFromQrRequest struct {
		Payload       string               `json:"payload" validate:"required"`
		StoreName     string               `json:"store_name" validate:"required"`
		ReceiptNumber string               `json:"receipt_number" validate:"required"`
		PurchaseDate  string               `json:"purchase_date" validate:"required"`
		TotalAmount   float64              `json:"total_amount" validate:"required,min=0"`
		Items         []ReceiptItemRequest `json:"items" validate:"required,dive"`
	}

	ReceiptItemResponse struct {
		ID                string  `json:"id"`
		LineNumber        int     `json:"line_number"`
		Name              string  `json:"name"`
		Ean               string  `json:"ean,omitempty"`
		Quantity          float64 `json:"quantity"`
		UnitPrice         float64 `json:"unit_price"`
		TotalPrice        float64 `json:"total_price"`
		Unit              string  `json:"unit,omitempty"`
		Category          string  `json:"category,omitempty"`
		Brand             string  `json:"brand,omitempty"`
		IsImported        bool    `json:"is_imported"`
		ImportedProductID string  `json:"imported_product_id,omitempty"`
		ImportNotes       string  `json:"import_notes,omitempty"`
	}

	ReceiptResponse struct {
		ID              string                `json:"id"`
		StoreName       string                `json:"store_name"`
		StoreTaxID      string                `json:"store_tax_id,omitempty"`
		ReceiptNumber   string                `json:"receipt_number"`
		AccessKey       string                `json:"access_key,omitempty"`
		PurchaseDate    time.Time             `json:"purchase_date"`
		TotalAmount     float64               `json:"total_amount"`
		IsProcessed     bool                  `json:"is_processed"`
		ProcessingNotes string                `json:"processing_notes,omitempty"`
		ImageURL        string                `json:"image_url,omitempty"`
		Items           []ReceiptItemResponse `json:"items,omitempty"`
	}

	UploadReceiptImageRequest struct {
		ReceiptID string                `json:"receipt_id" form:"receipt_id" validate:"required,uuid"`
		Image     *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	ImportItemsRequest struct {
		ItemIDs []string `json:"item_ids" validate:"required,dive,uuid"`
	}

	ImportSummaryResponse struct {
		Imported   int      `json:"imported"`
		Skipped    int      `json:"skipped"`
		Failed     int      `json:"failed"`
		ProductIDs []string `json:"product_ids"`
		Note       string   `json:"note"`
	}
)
