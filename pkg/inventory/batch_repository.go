package inventory

import (
	"context"
	"time"

	"pantry-backend/entities"

	"gorm.io/gorm"
)

type (
	BatchRepository interface {
		CreateBatch(ctx context.Context, batch *entities.ProductBatch) error
		GetBatchByID(ctx context.Context, id string) (*entities.ProductBatch, error)
		UpdateBatch(ctx context.Context, batch *entities.ProductBatch) error
		DeleteBatch(ctx context.Context, id string) error
		GetBatches(ctx context.Context, userID string, page, limit int) ([]*entities.ProductBatch, int64, error)
		GetBatchesByExpiryRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]*entities.ProductBatch, error)
		GetDashboardStats(ctx context.Context, userID string) (map[string]interface{}, error)
	}

	batchRepository struct {
		db *gorm.DB
	}
)

func NewBatchRepository(db *gorm.DB) BatchRepository {
	return &batchRepository{db: db}
}

func (r *batchRepository) CreateBatch(ctx context.Context, batch *entities.ProductBatch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *batchRepository) GetBatchByID(ctx context.Context, id string) (*entities.ProductBatch, error) {
	var batch entities.ProductBatch
	if err := r.db.WithContext(ctx).Preload("Product").Where("id = ?", id).First(&batch).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *batchRepository) UpdateBatch(ctx context.Context, batch *entities.ProductBatch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

func (r *batchRepository) DeleteBatch(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.ProductBatch{}).Error
}

func (r *batchRepository) GetBatches(ctx context.Context, userID string, page, limit int) ([]*entities.ProductBatch, int64, error) {
	var batches []*entities.ProductBatch
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = product_batches.product_id").
		Where("products.user_id = ?", userID)

	if err := query.Model(&entities.ProductBatch{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Product").
		Offset(offset).Limit(limit).
		Order("product_batches.expiry_date asc").
		Find(&batches).Error; err != nil {
		return nil, 0, err
	}

	return batches, count, nil
}

func (r *batchRepository) GetBatchesByExpiryRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]*entities.ProductBatch, error) {
	var batches []*entities.ProductBatch
	if err := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = product_batches.product_id").
		Where("products.user_id = ? AND product_batches.expiry_date BETWEEN ? AND ? AND product_batches.consumed_at IS NULL",
			userID, startDate, endDate).
		Order("product_batches.expiry_date asc").
		Preload("Product").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

func (r *batchRepository) GetDashboardStats(ctx context.Context, userID string) (map[string]interface{}, error) {
	var totalBatches, consumedBatches, expiredBatches, expiringBatches int64
	var totalSpent float64

	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&entities.ProductBatch{}).
			Joins("JOIN products ON products.id = product_batches.product_id").
			Where("products.user_id = ?", userID)
	}

	if err := base().Count(&totalBatches).Error; err != nil {
		return nil, err
	}

	if err := base().Where("product_batches.consumed_at IS NOT NULL").
		Count(&consumedBatches).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	if err := base().Where("product_batches.consumed_at IS NULL AND product_batches.expiry_date < ?", now).
		Count(&expiredBatches).Error; err != nil {
		return nil, err
	}

	warningThreshold := now.AddDate(0, 0, 7)
	if err := base().Where("product_batches.consumed_at IS NULL AND product_batches.expiry_date BETWEEN ? AND ?", now, warningThreshold).
		Count(&expiringBatches).Error; err != nil {
		return nil, err
	}

	if err := base().Select("COALESCE(SUM(product_batches.purchase_price), 0)").
		Scan(&totalSpent).Error; err != nil {
		return nil, err
	}

	activeBatches := totalBatches - consumedBatches - expiredBatches

	stats := map[string]interface{}{
		"total_batches":    totalBatches,
		"active_batches":   activeBatches,
		"expiring_batches": expiringBatches,
		"expired_batches":  expiredBatches,
		"consumed_batches": consumedBatches,
		"total_spent":      totalSpent,
	}

	return stats, nil
}
