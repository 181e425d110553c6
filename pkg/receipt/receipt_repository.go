package receipt

import (
	"context"

	"pantry-backend/entities"

	"gorm.io/gorm"
)

type (
	ReceiptRepository interface {
		CreateReceipt(ctx context.Context, receipt *entities.FiscalReceipt) error
		GetReceiptByID(ctx context.Context, id string) (*entities.FiscalReceipt, error)
		UpdateReceipt(ctx context.Context, receipt *entities.FiscalReceipt) error
		GetReceipts(ctx context.Context, userID string, page, limit int) ([]*entities.FiscalReceipt, int64, error)
		GetReceiptsByProcessed(ctx context.Context, userID string, processed bool) ([]*entities.FiscalReceipt, error)
		DeleteReceipt(ctx context.Context, id string) error

		GetItemByID(ctx context.Context, id string) (*entities.FiscalReceiptItem, error)
		GetItemsByReceipt(ctx context.Context, receiptID string) ([]*entities.FiscalReceiptItem, error)
		UpdateItem(ctx context.Context, item *entities.FiscalReceiptItem) error
	}

	receiptRepository struct {
		db *gorm.DB
	}
)

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

// CreateReceipt persists the receipt together with its items. Gorm writes the
// association in the same transaction, so a receipt never appears without its
// lines.
func (r *receiptRepository) CreateReceipt(ctx context.Context, receipt *entities.FiscalReceipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) GetReceiptByID(ctx context.Context, id string) (*entities.FiscalReceipt, error) {
	var receipt entities.FiscalReceipt
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("fiscal_receipt_items.line_number asc")
		}).
		Where("id = ?", id).
		First(&receipt).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) UpdateReceipt(ctx context.Context, receipt *entities.FiscalReceipt) error {
	return r.db.WithContext(ctx).Omit("Items").Save(receipt).Error
}

func (r *receiptRepository) GetReceipts(ctx context.Context, userID string, page, limit int) ([]*entities.FiscalReceipt, int64, error) {
	var receipts []*entities.FiscalReceipt
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if err := query.Model(&entities.FiscalReceipt{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).
		Order("purchase_date desc").
		Find(&receipts).Error; err != nil {
		return nil, 0, err
	}

	return receipts, count, nil
}

func (r *receiptRepository) GetReceiptsByProcessed(ctx context.Context, userID string, processed bool) ([]*entities.FiscalReceipt, error) {
	var receipts []*entities.FiscalReceipt
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_processed = ?", userID, processed).
		Order("purchase_date desc").
		Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

// DeleteReceipt removes the receipt and its items atomically; an abort leaves
// no orphan items behind.
func (r *receiptRepository) DeleteReceipt(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("receipt_id = ?", id).Delete(&entities.FiscalReceiptItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.FiscalReceipt{}).Error
	})
}

func (r *receiptRepository) GetItemByID(ctx context.Context, id string) (*entities.FiscalReceiptItem, error) {
	var item entities.FiscalReceiptItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *receiptRepository) GetItemsByReceipt(ctx context.Context, receiptID string) ([]*entities.FiscalReceiptItem, error) {
	var items []*entities.FiscalReceiptItem
	if err := r.db.WithContext(ctx).
		Where("receipt_id = ?", receiptID).
		Order("line_number asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *receiptRepository) UpdateItem(ctx context.Context, item *entities.FiscalReceiptItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}
