package receipt

import (
	"context"
	"errors"
	"testing"

	"pantry-backend/domain"

	"github.com/google/uuid"
)

func newTestReceiptService(t *testing.T) (ReceiptService, ReceiptRepository) {
	t.Helper()
	repository := NewReceiptRepository(setupTestDB(t))
	return NewReceiptService(repository, nil), repository
}

func validRegisterRequest() domain.RegisterReceiptRequest {
	return domain.RegisterReceiptRequest{
		StoreName:     "Supermercado Central",
		ReceiptNumber: "001234",
		PurchaseDate:  "2026-08-10",
		TotalAmount:   33.90,
		Items: []domain.ReceiptItemRequest{
			{Name: "Leite Integral 1L", Ean: "7891000100103", Quantity: 2, UnitPrice: 4.50, TotalPrice: 9.00, Unit: "un", Category: "Laticínios", Brand: "Italac"},
			{Name: "Arroz Branco 5kg", Quantity: 1, UnitPrice: 24.90, TotalPrice: 24.90},
		},
	}
}

func TestRegisterReceiptAssignsLineNumbers(t *testing.T) {
	service, repository := newTestReceiptService(t)
	userID := uuid.New().String()

	res, err := service.RegisterReceipt(context.Background(), validRegisterRequest(), userID)
	if err != nil {
		t.Fatalf("failed to register receipt: %v", err)
	}

	if len(res.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(res.Items))
	}
	for i, item := range res.Items {
		if item.LineNumber != i+1 {
			t.Fatalf("expected line number %d, got %d", i+1, item.LineNumber)
		}
		if item.IsImported {
			t.Fatal("expected registered items to start unimported")
		}
	}

	stored, err := repository.GetReceiptByID(context.Background(), res.ID)
	if err != nil {
		t.Fatalf("failed to reload receipt: %v", err)
	}
	if stored.IsProcessed {
		t.Fatal("expected a fresh receipt to be unprocessed")
	}
	if len(stored.Items) != 2 {
		t.Fatalf("expected items persisted with the receipt, got %d", len(stored.Items))
	}
}

func TestRegisterReceiptEmptyItems(t *testing.T) {
	service, _ := newTestReceiptService(t)

	req := validRegisterRequest()
	req.Items = nil

	_, err := service.RegisterReceipt(context.Background(), req, uuid.New().String())
	if !errors.Is(err, domain.ErrReceiptEmpty) {
		t.Fatalf("expected ErrReceiptEmpty, got %v", err)
	}
}

func TestRegisterReceiptLineTotalMismatch(t *testing.T) {
	service, _ := newTestReceiptService(t)

	req := validRegisterRequest()
	req.Items[0].TotalPrice = 10.50

	_, err := service.RegisterReceipt(context.Background(), req, uuid.New().String())
	if !errors.Is(err, domain.ErrLineTotalMismatch) {
		t.Fatalf("expected ErrLineTotalMismatch, got %v", err)
	}
}

func TestRegisterReceiptToleratesRounding(t *testing.T) {
	service, _ := newTestReceiptService(t)

	req := validRegisterRequest()
	req.Items = []domain.ReceiptItemRequest{
		{Name: "Banana Prata", Quantity: 0.755, UnitPrice: 6.60, TotalPrice: 4.98},
	}

	if _, err := service.RegisterReceipt(context.Background(), req, uuid.New().String()); err != nil {
		t.Fatalf("expected rounding within tolerance accepted, got %v", err)
	}
}

func TestRegisterReceiptInvalidPurchaseDate(t *testing.T) {
	service, _ := newTestReceiptService(t)

	req := validRegisterRequest()
	req.PurchaseDate = "10/08/2026"

	_, err := service.RegisterReceipt(context.Background(), req, uuid.New().String())
	if !errors.Is(err, domain.ErrInvalidPurchaseDate) {
		t.Fatalf("expected ErrInvalidPurchaseDate, got %v", err)
	}
}

func TestRegisterFromQrMalformedPayload(t *testing.T) {
	service, repository := newTestReceiptService(t)

	req := domain.RegisterFromQrRequest{
		Payload:       "not-a-fiscal-payload",
		StoreName:     "Supermercado Central",
		ReceiptNumber: "001234",
		PurchaseDate:  "2026-08-10",
		TotalAmount:   9.00,
		Items: []domain.ReceiptItemRequest{
			{Name: "Leite Integral 1L", Quantity: 2, UnitPrice: 4.50, TotalPrice: 9.00},
		},
	}

	_, err := service.RegisterFromQr(context.Background(), req, uuid.New().String())
	if !errors.Is(err, domain.ErrMalformedQrPayload) {
		t.Fatalf("expected ErrMalformedQrPayload, got %v", err)
	}

	receipts, count, err := repository.GetReceipts(context.Background(), uuid.New().String(), 1, 10)
	if err != nil {
		t.Fatalf("failed to list receipts: %v", err)
	}
	if count != 0 || len(receipts) != 0 {
		t.Fatal("a malformed payload must not persist anything")
	}
}

func TestRegisterFromQrStoresAccessKey(t *testing.T) {
	service, _ := newTestReceiptService(t)

	req := domain.RegisterFromQrRequest{
		Payload:       "https://www.fazenda.pr.gov.br/nfce/qrcode?p=" + sampleAccessKey + "|2|1|1|ABCDEF",
		StoreName:     "Supermercado Central",
		ReceiptNumber: "001234",
		PurchaseDate:  "2026-08-10",
		TotalAmount:   9.00,
		Items: []domain.ReceiptItemRequest{
			{Name: "Leite Integral 1L", Quantity: 2, UnitPrice: 4.50, TotalPrice: 9.00},
		},
	}

	res, err := service.RegisterFromQr(context.Background(), req, uuid.New().String())
	if err != nil {
		t.Fatalf("failed to register from qr: %v", err)
	}
	if res.AccessKey != sampleAccessKey {
		t.Fatalf("expected access key %q, got %q", sampleAccessKey, res.AccessKey)
	}
}

func TestDeleteReceiptRemovesItems(t *testing.T) {
	service, repository := newTestReceiptService(t)
	userID := uuid.New().String()

	res, err := service.RegisterReceipt(context.Background(), validRegisterRequest(), userID)
	if err != nil {
		t.Fatalf("failed to register receipt: %v", err)
	}

	if err := service.DeleteReceipt(context.Background(), res.ID, userID); err != nil {
		t.Fatalf("failed to delete receipt: %v", err)
	}

	items, err := repository.GetItemsByReceipt(context.Background(), res.ID)
	if err != nil {
		t.Fatalf("failed to list items: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no orphan items, got %d", len(items))
	}
}

func TestDeleteReceiptRejectsForeignUser(t *testing.T) {
	service, _ := newTestReceiptService(t)
	userID := uuid.New().String()

	res, err := service.RegisterReceipt(context.Background(), validRegisterRequest(), userID)
	if err != nil {
		t.Fatalf("failed to register receipt: %v", err)
	}

	err = service.DeleteReceipt(context.Background(), res.ID, uuid.New().String())
	if !errors.Is(err, domain.ErrUnauthorizedAccess) {
		t.Fatalf("expected ErrUnauthorizedAccess, got %v", err)
	}
}

func TestGetReceiptByIDNotFound(t *testing.T) {
	service, _ := newTestReceiptService(t)

	_, err := service.GetReceiptByID(context.Background(), uuid.New().String(), uuid.New().String())
	if !errors.Is(err, domain.ErrReceiptNotFound) {
		t.Fatalf("expected ErrReceiptNotFound, got %v", err)
	}
}
