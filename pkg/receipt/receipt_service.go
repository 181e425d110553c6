package receipt

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"pantry-backend/domain"
	"pantry-backend/entities"
	"pantry-backend/internal/utils/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// lineTotalTolerance absorbs rounding on quantity times unit price.
const lineTotalTolerance = 0.01

type (
	ReceiptService interface {
		RegisterReceipt(ctx context.Context, req domain.RegisterReceiptRequest, userID string) (domain.ReceiptResponse, error)
		RegisterFromQr(ctx context.Context, req domain.RegisterFromQrRequest, userID string) (domain.ReceiptResponse, error)
		GetReceipts(ctx context.Context, userID string, page, limit int) ([]domain.ReceiptResponse, int64, error)
		GetReceiptsByProcessed(ctx context.Context, userID string, processed bool) ([]domain.ReceiptResponse, error)
		GetReceiptByID(ctx context.Context, id string, userID string) (domain.ReceiptResponse, error)
		DeleteReceipt(ctx context.Context, id string, userID string) error
		UploadReceiptImage(ctx context.Context, req domain.UploadReceiptImageRequest, userID string) (string, error)
	}

	receiptService struct {
		receiptRepository ReceiptRepository
		s3                storage.AwsS3
	}
)

func NewReceiptService(receiptRepository ReceiptRepository, s3 storage.AwsS3) ReceiptService {
	return &receiptService{
		receiptRepository: receiptRepository,
		s3:                s3,
	}
}

func (s *receiptService) RegisterReceipt(ctx context.Context, req domain.RegisterReceiptRequest, userID string) (domain.ReceiptResponse, error) {
	return s.register(ctx, userID, req.StoreName, req.StoreTaxID, req.ReceiptNumber, req.AccessKey, req.PurchaseDate, req.TotalAmount, req.Items)
}

// RegisterFromQr validates the QR payload format before anything is written;
// a malformed payload never reaches the store.
func (s *receiptService) RegisterFromQr(ctx context.Context, req domain.RegisterFromQrRequest, userID string) (domain.ReceiptResponse, error) {
	accessKey, err := ParseQrPayload(req.Payload)
	if err != nil {
		return domain.ReceiptResponse{}, err
	}
	return s.register(ctx, userID, req.StoreName, "", req.ReceiptNumber, accessKey, req.PurchaseDate, req.TotalAmount, req.Items)
}

func (s *receiptService) register(ctx context.Context, userID, storeName, storeTaxID, receiptNumber, accessKey, purchaseDate string, totalAmount float64, items []domain.ReceiptItemRequest) (domain.ReceiptResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ReceiptResponse{}, domain.ErrParseUUID
	}

	if len(items) == 0 {
		return domain.ReceiptResponse{}, domain.ErrReceiptEmpty
	}

	purchasedAt, err := time.Parse("2006-01-02", purchaseDate)
	if err != nil {
		return domain.ReceiptResponse{}, domain.ErrInvalidPurchaseDate
	}

	for _, item := range items {
		if math.Abs(item.TotalPrice-item.Quantity*item.UnitPrice) > lineTotalTolerance {
			return domain.ReceiptResponse{}, fmt.Errorf("%w: %s", domain.ErrLineTotalMismatch, item.Name)
		}
	}

	receipt := &entities.FiscalReceipt{
		ID:            uuid.New(),
		UserID:        userUUID,
		StoreName:     storeName,
		StoreTaxID:    storeTaxID,
		ReceiptNumber: receiptNumber,
		AccessKey:     accessKey,
		PurchaseDate:  purchasedAt,
		TotalAmount:   totalAmount,
	}

	for i, item := range items {
		receipt.Items = append(receipt.Items, &entities.FiscalReceiptItem{
			ID:           uuid.New(),
			ReceiptID:    receipt.ID,
			LineNumber:   i + 1,
			Name:         item.Name,
			Ean:          item.Ean,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			TotalPrice:   item.TotalPrice,
			UnitText:     item.Unit,
			CategoryText: item.Category,
			BrandText:    item.Brand,
		})
	}

	if err := s.receiptRepository.CreateReceipt(ctx, receipt); err != nil {
		return domain.ReceiptResponse{}, err
	}

	return toReceiptResponse(receipt), nil
}

func (s *receiptService) GetReceipts(ctx context.Context, userID string, page, limit int) ([]domain.ReceiptResponse, int64, error) {
	receipts, count, err := s.receiptRepository.GetReceipts(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var response []domain.ReceiptResponse
	for _, receipt := range receipts {
		response = append(response, toReceiptResponse(receipt))
	}
	return response, count, nil
}

func (s *receiptService) GetReceiptsByProcessed(ctx context.Context, userID string, processed bool) ([]domain.ReceiptResponse, error) {
	receipts, err := s.receiptRepository.GetReceiptsByProcessed(ctx, userID, processed)
	if err != nil {
		return nil, err
	}

	var response []domain.ReceiptResponse
	for _, receipt := range receipts {
		response = append(response, toReceiptResponse(receipt))
	}
	return response, nil
}

func (s *receiptService) GetReceiptByID(ctx context.Context, id string, userID string) (domain.ReceiptResponse, error) {
	receipt, err := s.getOwnedReceipt(ctx, id, userID)
	if err != nil {
		return domain.ReceiptResponse{}, err
	}
	return toReceiptResponse(receipt), nil
}

func (s *receiptService) DeleteReceipt(ctx context.Context, id string, userID string) error {
	receipt, err := s.getOwnedReceipt(ctx, id, userID)
	if err != nil {
		return err
	}

	if receipt.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(receipt.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.receiptRepository.DeleteReceipt(ctx, id)
}

func (s *receiptService) UploadReceiptImage(ctx context.Context, req domain.UploadReceiptImageRequest, userID string) (string, error) {
	receipt, err := s.getOwnedReceipt(ctx, req.ReceiptID, userID)
	if err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("receipt-%s", receipt.ID.String())
	var objectKey string
	var uploadErr error

	if receipt.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(receipt.ImageURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "receipts", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "receipts", storage.AllowImage...)
	}
	if uploadErr != nil {
		return "", uploadErr
	}

	receipt.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.receiptRepository.UpdateReceipt(ctx, receipt); err != nil {
		return "", err
	}

	return receipt.ImageURL, nil
}

func (s *receiptService) getOwnedReceipt(ctx context.Context, id string, userID string) (*entities.FiscalReceipt, error) {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReceiptNotFound
		}
		return nil, err
	}

	if receipt.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}

	return receipt, nil
}

func toReceiptResponse(receipt *entities.FiscalReceipt) domain.ReceiptResponse {
	response := domain.ReceiptResponse{
		ID:              receipt.ID.String(),
		StoreName:       receipt.StoreName,
		StoreTaxID:      receipt.StoreTaxID,
		ReceiptNumber:   receipt.ReceiptNumber,
		AccessKey:       receipt.AccessKey,
		PurchaseDate:    receipt.PurchaseDate,
		TotalAmount:     receipt.TotalAmount,
		IsProcessed:     receipt.IsProcessed,
		ProcessingNotes: receipt.ProcessingNotes,
		ImageURL:        receipt.ImageURL,
	}

	for _, item := range receipt.Items {
		itemResponse := domain.ReceiptItemResponse{
			ID:          item.ID.String(),
			LineNumber:  item.LineNumber,
			Name:        item.Name,
			Ean:         item.Ean,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			Unit:        item.UnitText,
			Category:    item.CategoryText,
			Brand:       item.BrandText,
			IsImported:  item.IsImported,
			ImportNotes: item.ImportNotes,
		}
		if item.ImportedProductID != nil {
			itemResponse.ImportedProductID = item.ImportedProductID.String()
		}
		response.Items = append(response.Items, itemResponse)
	}

	return response
}
