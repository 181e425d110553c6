package inventory

import (
	"fmt"
	"time"

	"pantry-backend/entities"

	"github.com/google/uuid"
)

// estimatedShelfLifeMonths is applied when a receipt carries no expiry
// information. The resulting batch is flagged ExpiryEstimated so the UI can
// present the date as a guess, not ground truth.
const estimatedShelfLifeMonths = 6

type (
	BatchFactory interface {
		BuildBatch(product *entities.Product, item *entities.FiscalReceiptItem, receipt *entities.FiscalReceipt) *entities.ProductBatch
	}

	batchFactory struct {
		now func() time.Time
	}
)

func NewBatchFactory() BatchFactory {
	return &batchFactory{now: time.Now}
}

// BuildBatch derives an inventory batch from an imported receipt line. The
// label is deterministic over receipt and item ids so rerun artifacts stay
// identifiable. Purchase price is the line total, the amount actually paid.
func (f *batchFactory) BuildBatch(product *entities.Product, item *entities.FiscalReceiptItem, receipt *entities.FiscalReceipt) *entities.ProductBatch {
	purchaseDate := receipt.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = f.now()
	}

	return &entities.ProductBatch{
		ID:               uuid.New(),
		ProductID:        product.ID,
		Label:            fmt.Sprintf("RECEIPT_%s_%s", receipt.ID.String(), item.ID.String()),
		Quantity:         item.Quantity,
		ExpiryDate:       purchaseDate.AddDate(0, estimatedShelfLifeMonths, 0),
		ExpiryEstimated:  true,
		PurchaseDate:     purchaseDate,
		PurchasePrice:    item.TotalPrice,
		PurchaseLocation: receipt.StoreName,
	}
}
