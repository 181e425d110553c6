package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateBatch       = "product batch created successfully"
	MessageSuccessUpdateBatch       = "product batch updated successfully"
	MessageSuccessDeleteBatch       = "product batch deleted successfully"
	MessageSuccessGetBatches        = "product batches retrieved successfully"
	MessageSuccessConsumeBatch      = "product batch marked consumed"
	MessageSuccessGetDashboardStats = "dashboard statistics retrieved successfully"

	MessageFailedCreateBatch       = "failed to create product batch"
	MessageFailedUpdateBatch       = "failed to update product batch"
	MessageFailedDeleteBatch       = "failed to delete product batch"
	MessageFailedGetBatches        = "failed to retrieve product batches"
	MessageFailedConsumeBatch      = "failed to mark product batch consumed"
	MessageFailedGetDashboardStats = "failed to retrieve dashboard statistics"

	ErrBatchNotFound     = errors.New("product batch not found")
	ErrInvalidExpiryDate = errors.New("invalid expiry date")
)

type (
	CreateBatchRequest struct {
		ProductID        string  `json:"product_id" validate:"required,uuid"`
		Label            string  `json:"label" validate:"omitempty"`
		Quantity         float64 `json:"quantity" validate:"required,gt=0"`
		ExpiryDate       string  `json:"expiry_date" validate:"required"`
		PurchaseDate     string  `json:"purchase_date" validate:"omitempty"`
		PurchasePrice    float64 `json:"purchase_price" validate:"omitempty,min=0"`
		PurchaseLocation string  `json:"purchase_location" validate:"omitempty"`
	}

	UpdateBatchRequest struct {
		Quantity   float64 `json:"quantity" validate:"omitempty,gt=0"`
		ExpiryDate string  `json:"expiry_date" validate:"omitempty"`
	}

	BatchResponse struct {
		ID               string     `json:"id"`
		ProductID        string     `json:"product_id"`
		Label            string     `json:"label"`
		Quantity         float64    `json:"quantity"`
		ExpiryDate       time.Time  `json:"expiry_date"`
		ExpiryEstimated  bool       `json:"expiry_estimated"`
		PurchaseDate     time.Time  `json:"purchase_date"`
		PurchasePrice    float64    `json:"purchase_price"`
		PurchaseLocation string     `json:"purchase_location,omitempty"`
		ConsumedAt       *time.Time `json:"consumed_at,omitempty"`
	}

	ConsumeBatchRequest struct {
		BatchID string `json:"batch_id" validate:"required,uuid"`
	}

	DashboardStatsResponse struct {
		TotalBatches    int     `json:"total_batches"`
		ActiveBatches   int     `json:"active_batches"`
		ExpiringBatches int     `json:"expiring_batches"`
		ExpiredBatches  int     `json:"expired_batches"`
		ConsumedBatches int     `json:"consumed_batches"`
		TotalSpent      float64 `json:"total_spent"`
	}
)
