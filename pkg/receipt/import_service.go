package receipt

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"pantry-backend/domain"
	"pantry-backend/entities"
	"pantry-backend/pkg/catalog"
	"pantry-backend/pkg/inventory"

	"gorm.io/gorm"
)

type (
	// ImportSummary reports the outcome of an import run. Partial failure is
	// not a pipeline failure: failed items stay pending and become eligible
	// again on the next invocation.
	ImportSummary struct {
		Imported   int
		Skipped    int
		Failed     int
		ProductIDs []string
		Failures   []string
	}

	// ImportCoordinator reconciles receipt items against the catalog and
	// creates inventory batches for them. Item and receipt flags only move
	// forward: isImported and isProcessed never revert, so re-invocation is
	// always safe and resumes from the unimported subset.
	ImportCoordinator interface {
		ImportItems(ctx context.Context, userID string, itemIDs []string) (ImportSummary, error)
		ProcessReceipt(ctx context.Context, userID string, receiptID string) (ImportSummary, error)
	}

	importCoordinator struct {
		receiptRepository ReceiptRepository
		matcher           catalog.ProductMatcher
		batchFactory      inventory.BatchFactory
		batchRepository   inventory.BatchRepository
	}
)

func NewImportCoordinator(
	receiptRepository ReceiptRepository,
	matcher catalog.ProductMatcher,
	batchFactory inventory.BatchFactory,
	batchRepository inventory.BatchRepository,
) ImportCoordinator {
	return &importCoordinator{
		receiptRepository: receiptRepository,
		matcher:           matcher,
		batchFactory:      batchFactory,
		batchRepository:   batchRepository,
	}
}

// ImportItems imports the given items in receipt line order. Items already
// imported are skipped. A failing item aborts only its own remaining
// sub-steps; siblings still run.
func (c *importCoordinator) ImportItems(ctx context.Context, userID string, itemIDs []string) (ImportSummary, error) {
	summary := ImportSummary{}

	receipts := make(map[string]*entities.FiscalReceipt)
	var items []*entities.FiscalReceiptItem

	for _, itemID := range itemIDs {
		item, err := c.receiptRepository.GetItemByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return summary, domain.ErrReceiptItemNotFound
			}
			return summary, err
		}

		receiptID := item.ReceiptID.String()
		receipt, ok := receipts[receiptID]
		if !ok {
			receipt, err = c.receiptRepository.GetReceiptByID(ctx, receiptID)
			if err != nil {
				return summary, err
			}
			receipts[receiptID] = receipt
		}
		if receipt.UserID.String() != userID {
			return summary, domain.ErrUnauthorizedAccess
		}

		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].LineNumber < items[j].LineNumber
	})

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if item.IsImported {
			summary.Skipped++
			continue
		}

		receipt := receipts[item.ReceiptID.String()]
		productID, err := c.importItem(ctx, userID, receipt, item)
		if err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, fmt.Sprintf("line %d (%s): %v", item.LineNumber, item.Name, err))
			continue
		}

		summary.Imported++
		summary.ProductIDs = append(summary.ProductIDs, productID)
	}

	return summary, nil
}

// importItem runs one item's sub-steps strictly in order: match or create the
// product (resolving brand, category and unit along the way), create the
// inventory batch, then flag the item. A failure at any step leaves the item
// pending.
func (c *importCoordinator) importItem(ctx context.Context, userID string, receipt *entities.FiscalReceipt, item *entities.FiscalReceiptItem) (string, error) {
	match, err := c.matcher.MatchOrPrepare(ctx, userID, item)
	if err != nil {
		return "", err
	}

	product := match.Existing
	if product == nil {
		product, err = c.matcher.CreateProduct(ctx, userID, match.Draft)
		if err != nil {
			return "", err
		}
	}

	batch := c.batchFactory.BuildBatch(product, item, receipt)
	if err := c.batchRepository.CreateBatch(ctx, batch); err != nil {
		return "", err
	}

	item.IsImported = true
	item.ImportedProductID = &product.ID
	item.ImportNotes = fmt.Sprintf("imported as product %s, batch %s", product.ID.String(), batch.Label)
	if err := c.receiptRepository.UpdateItem(ctx, item); err != nil {
		return "", err
	}

	return product.ID.String(), nil
}

// ProcessReceipt imports every unimported item of the receipt and then marks
// it processed with a summary note, regardless of individual item outcomes.
// Calling it again on a processed receipt with nothing left to import writes
// nothing.
func (c *importCoordinator) ProcessReceipt(ctx context.Context, userID string, receiptID string) (ImportSummary, error) {
	receipt, err := c.receiptRepository.GetReceiptByID(ctx, receiptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ImportSummary{}, domain.ErrReceiptNotFound
		}
		return ImportSummary{}, err
	}
	if receipt.UserID.String() != userID {
		return ImportSummary{}, domain.ErrUnauthorizedAccess
	}

	// Re-read the items rather than trusting the preloaded association, so a
	// receipt processed concurrently is seen with its current flags.
	items, err := c.receiptRepository.GetItemsByReceipt(ctx, receiptID)
	if err != nil {
		return ImportSummary{}, err
	}

	var pendingIDs []string
	for _, item := range items {
		if !item.IsImported {
			pendingIDs = append(pendingIDs, item.ID.String())
		}
	}
	skippedBefore := len(items) - len(pendingIDs)

	summary, err := c.ImportItems(ctx, userID, pendingIDs)
	if err != nil {
		// Cancellation or a pipeline-level failure: the receipt stays
		// unprocessed so a later retry resumes from the unimported subset.
		return summary, err
	}
	summary.Skipped += skippedBefore

	if receipt.IsProcessed && summary.Imported == 0 {
		return summary, nil
	}

	receipt.IsProcessed = true
	receipt.ProcessingNotes = summary.Note(len(items))
	if err := c.receiptRepository.UpdateReceipt(ctx, receipt); err != nil {
		return summary, fmt.Errorf("%w: %v", domain.ErrReceiptNotProcessed, err)
	}

	return summary, nil
}

// Note renders the human-readable processing summary.
func (s ImportSummary) Note(totalItems int) string {
	note := fmt.Sprintf("imported %d of %d items (%d already imported, %d failed)",
		s.Imported, totalItems, s.Skipped, s.Failed)
	if len(s.Failures) > 0 {
		note += "; failures: " + strings.Join(s.Failures, "; ")
	}
	return note
}
