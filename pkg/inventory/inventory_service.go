package inventory

import (
	"context"
	"errors"
	"time"

	"pantry-backend/domain"
	"pantry-backend/entities"
	"pantry-backend/pkg/catalog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	InventoryService interface {
		CreateBatch(ctx context.Context, req domain.CreateBatchRequest, userID string) (domain.BatchResponse, error)
		UpdateBatch(ctx context.Context, id string, req domain.UpdateBatchRequest, userID string) error
		DeleteBatch(ctx context.Context, id string, userID string) error
		GetBatches(ctx context.Context, userID string, page, limit int) ([]domain.BatchResponse, int64, error)
		GetExpiringBatches(ctx context.Context, userID string, days int) ([]domain.BatchResponse, error)
		GetBatchByID(ctx context.Context, id string, userID string) (domain.BatchResponse, error)
		ConsumeBatch(ctx context.Context, req domain.ConsumeBatchRequest, userID string) error
		GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error)
	}

	inventoryService struct {
		batchRepository   BatchRepository
		catalogRepository catalog.CatalogRepository
	}
)

func NewInventoryService(batchRepository BatchRepository, catalogRepository catalog.CatalogRepository) InventoryService {
	return &inventoryService{
		batchRepository:   batchRepository,
		catalogRepository: catalogRepository,
	}
}

func (s *inventoryService) CreateBatch(ctx context.Context, req domain.CreateBatchRequest, userID string) (domain.BatchResponse, error) {
	product, err := s.catalogRepository.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.BatchResponse{}, domain.ErrProductNotFound
		}
		return domain.BatchResponse{}, err
	}

	if product.UserID.String() != userID {
		return domain.BatchResponse{}, domain.ErrUnauthorizedAccess
	}

	expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return domain.BatchResponse{}, domain.ErrInvalidExpiryDate
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != "" {
		purchaseDate, err = time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			return domain.BatchResponse{}, domain.ErrInvalidPurchaseDate
		}
	}

	batch := &entities.ProductBatch{
		ID:               uuid.New(),
		ProductID:        product.ID,
		Label:            req.Label,
		Quantity:         req.Quantity,
		ExpiryDate:       expiryDate,
		ExpiryEstimated:  false,
		PurchaseDate:     purchaseDate,
		PurchasePrice:    req.PurchasePrice,
		PurchaseLocation: req.PurchaseLocation,
	}

	if err := s.batchRepository.CreateBatch(ctx, batch); err != nil {
		return domain.BatchResponse{}, err
	}

	return toBatchResponse(batch), nil
}

func (s *inventoryService) UpdateBatch(ctx context.Context, id string, req domain.UpdateBatchRequest, userID string) error {
	batch, err := s.getOwnedBatch(ctx, id, userID)
	if err != nil {
		return err
	}

	if req.Quantity > 0 {
		batch.Quantity = req.Quantity
	}
	if req.ExpiryDate != "" {
		expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return domain.ErrInvalidExpiryDate
		}
		batch.ExpiryDate = expiryDate
		batch.ExpiryEstimated = false
	}

	return s.batchRepository.UpdateBatch(ctx, batch)
}

func (s *inventoryService) DeleteBatch(ctx context.Context, id string, userID string) error {
	if _, err := s.getOwnedBatch(ctx, id, userID); err != nil {
		return err
	}
	return s.batchRepository.DeleteBatch(ctx, id)
}

func (s *inventoryService) GetBatches(ctx context.Context, userID string, page, limit int) ([]domain.BatchResponse, int64, error) {
	batches, count, err := s.batchRepository.GetBatches(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var response []domain.BatchResponse
	for _, batch := range batches {
		response = append(response, toBatchResponse(batch))
	}
	return response, count, nil
}

func (s *inventoryService) GetExpiringBatches(ctx context.Context, userID string, days int) ([]domain.BatchResponse, error) {
	now := time.Now()
	batches, err := s.batchRepository.GetBatchesByExpiryRange(ctx, userID, now, now.AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}

	var response []domain.BatchResponse
	for _, batch := range batches {
		response = append(response, toBatchResponse(batch))
	}
	return response, nil
}

func (s *inventoryService) GetBatchByID(ctx context.Context, id string, userID string) (domain.BatchResponse, error) {
	batch, err := s.getOwnedBatch(ctx, id, userID)
	if err != nil {
		return domain.BatchResponse{}, err
	}
	return toBatchResponse(batch), nil
}

// ConsumeBatch is idempotent: a batch already consumed keeps its original
// consumption time.
func (s *inventoryService) ConsumeBatch(ctx context.Context, req domain.ConsumeBatchRequest, userID string) error {
	batch, err := s.getOwnedBatch(ctx, req.BatchID, userID)
	if err != nil {
		return err
	}

	if batch.ConsumedAt != nil {
		return nil
	}

	now := time.Now()
	batch.ConsumedAt = &now
	return s.batchRepository.UpdateBatch(ctx, batch)
}

func (s *inventoryService) GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error) {
	stats, err := s.batchRepository.GetDashboardStats(ctx, userID)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	return domain.DashboardStatsResponse{
		TotalBatches:    int(stats["total_batches"].(int64)),
		ActiveBatches:   int(stats["active_batches"].(int64)),
		ExpiringBatches: int(stats["expiring_batches"].(int64)),
		ExpiredBatches:  int(stats["expired_batches"].(int64)),
		ConsumedBatches: int(stats["consumed_batches"].(int64)),
		TotalSpent:      stats["total_spent"].(float64),
	}, nil
}

func (s *inventoryService) getOwnedBatch(ctx context.Context, id string, userID string) (*entities.ProductBatch, error) {
	batch, err := s.batchRepository.GetBatchByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBatchNotFound
		}
		return nil, err
	}

	if batch.Product == nil || batch.Product.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}

	return batch, nil
}

func toBatchResponse(batch *entities.ProductBatch) domain.BatchResponse {
	return domain.BatchResponse{
		ID:               batch.ID.String(),
		ProductID:        batch.ProductID.String(),
		Label:            batch.Label,
		Quantity:         batch.Quantity,
		ExpiryDate:       batch.ExpiryDate,
		ExpiryEstimated:  batch.ExpiryEstimated,
		PurchaseDate:     batch.PurchaseDate,
		PurchasePrice:    batch.PurchasePrice,
		PurchaseLocation: batch.PurchaseLocation,
		ConsumedAt:       batch.ConsumedAt,
	}
}
