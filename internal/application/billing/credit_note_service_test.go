package billing

import (
	"context"
	"testing"
	"time"

	"github.com/gemsuite/backend/internal/domain/billing"
	"github.com/gemsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCreditNoteRepository is a mock implementation of CreditNoteRepository
type MockCreditNoteRepository struct {
	mock.Mock
}

func (m *MockCreditNoteRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.CreditNote, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.CreditNote), args.Error(1)
}

func (m *MockCreditNoteRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.CreditNoteFilter) ([]billing.CreditNote, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]billing.CreditNote), args.Get(1).(int64), args.Error(2)
}

func (m *MockCreditNoteRepository) Save(ctx context.Context, note *billing.CreditNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockCreditNoteRepository) CreditedQuantityForInvoiceItem(ctx context.Context, tenantID, invoiceItemID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, invoiceItemID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCreditNoteRepository) GenerateCreditNoteNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

// Helper to create an intra-state invoice with one ten-unit line
func newTestInvoice(t *testing.T, tenantID uuid.UUID) *billing.Invoice {
	inv, err := billing.NewInvoice(tenantID, "INV/2509/00042", billing.BuyerSnapshot{
		Name:      "Anita Jewellers",
		StateCode: "29",
	}, false, time.Now())
	require.NoError(t, err)

	_, err = inv.AddItem(nil, "22K Gold Chain", "7113",
		decimal.NewFromInt(10), decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(18))
	require.NoError(t, err)

	return inv
}

func TestCreditNoteService_CreateFromInvoice(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("prorates the invoice line and persists the note", func(t *testing.T) {
		noteRepo := new(MockCreditNoteRepository)
		invoiceRepo := new(MockInvoiceRepository)
		service := NewCreditNoteService(noteRepo, invoiceRepo)

		inv := newTestInvoice(t, tenantID)
		invoiceRepo.On("FindByIDForTenant", ctx, tenantID, inv.ID).Return(inv, nil)
		noteRepo.On("GenerateCreditNoteNumber", ctx, tenantID).Return("CN/2509/00001", nil)
		noteRepo.On("CreditedQuantityForInvoiceItem", ctx, tenantID, inv.Items[0].ID).Return(decimal.Zero, nil)
		noteRepo.On("Save", ctx, mock.AnythingOfType("*billing.CreditNote")).Return(nil)

		resp, err := service.CreateFromInvoice(ctx, tenantID, CreateFromInvoiceRequest{
			InvoiceID:    inv.ID,
			ReturnReason: "defective",
			Items: []ReturnLineInput{
				{InvoiceItemID: inv.Items[0].ID, Quantity: decimal.NewFromInt(4)},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "CN/2509/00001", resp.CreditNoteNumber)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "Anita Jewellers", resp.BuyerName)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].TaxableAmount.Equal(decimal.NewFromInt(400)))
		assert.True(t, resp.Items[0].CGSTAmount.Equal(decimal.NewFromInt(36)))
		assert.True(t, resp.Items[0].SGSTAmount.Equal(decimal.NewFromInt(36)))
		assert.True(t, resp.Items[0].TotalAmount.Equal(decimal.NewFromInt(472)))
		assert.True(t, resp.TaxableValue.Equal(decimal.NewFromInt(400)))
		assert.True(t, resp.TotalTax.Equal(decimal.NewFromInt(72)))
		assert.True(t, resp.GrandTotal.Equal(decimal.NewFromInt(472)))
		require.NotNil(t, resp.OriginalInvoiceID)
		assert.Equal(t, inv.ID, *resp.OriginalInvoiceID)

		noteRepo.AssertExpectations(t)
		invoiceRepo.AssertExpectations(t)
	})

	t.Run("rejects over-return across prior credit notes", func(t *testing.T) {
		noteRepo := new(MockCreditNoteRepository)
		invoiceRepo := new(MockInvoiceRepository)
		service := NewCreditNoteService(noteRepo, invoiceRepo)

		inv := newTestInvoice(t, tenantID)
		invoiceRepo.On("FindByIDForTenant", ctx, tenantID, inv.ID).Return(inv, nil)
		noteRepo.On("GenerateCreditNoteNumber", ctx, tenantID).Return("CN/2509/00002", nil)
		// 8 of 10 already credited earlier
		noteRepo.On("CreditedQuantityForInvoiceItem", ctx, tenantID, inv.Items[0].ID).Return(decimal.NewFromInt(8), nil)

		_, err := service.CreateFromInvoice(ctx, tenantID, CreateFromInvoiceRequest{
			InvoiceID:    inv.ID,
			ReturnReason: "defective",
			Items: []ReturnLineInput{
				{InvoiceItemID: inv.Items[0].ID, Quantity: decimal.NewFromInt(3)},
			},
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "QUANTITY_EXCEEDED", domainErr.Code)
		noteRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("fails for unknown invoice item", func(t *testing.T) {
		noteRepo := new(MockCreditNoteRepository)
		invoiceRepo := new(MockInvoiceRepository)
		service := NewCreditNoteService(noteRepo, invoiceRepo)

		inv := newTestInvoice(t, tenantID)
		invoiceRepo.On("FindByIDForTenant", ctx, tenantID, inv.ID).Return(inv, nil)
		noteRepo.On("GenerateCreditNoteNumber", ctx, tenantID).Return("CN/2509/00003", nil)

		_, err := service.CreateFromInvoice(ctx, tenantID, CreateFromInvoiceRequest{
			InvoiceID:    inv.ID,
			ReturnReason: "other",
			Items: []ReturnLineInput{
				{InvoiceItemID: uuid.New(), Quantity: decimal.NewFromInt(1)},
			},
		})
		assert.Error(t, err)
	})

	t.Run("fails when invoice is missing", func(t *testing.T) {
		noteRepo := new(MockCreditNoteRepository)
		invoiceRepo := new(MockInvoiceRepository)
		service := NewCreditNoteService(noteRepo, invoiceRepo)

		missingID := uuid.New()
		invoiceRepo.On("FindByIDForTenant", ctx, tenantID, missingID).Return(nil, shared.ErrNotFound)

		_, err := service.CreateFromInvoice(ctx, tenantID, CreateFromInvoiceRequest{
			InvoiceID:    missingID,
			ReturnReason: "other",
			Items:        []ReturnLineInput{{InvoiceItemID: uuid.New(), Quantity: decimal.NewFromInt(1)}},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCreditNoteService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("builds a manual note with supplied components", func(t *testing.T) {
		noteRepo := new(MockCreditNoteRepository)
		invoiceRepo := new(MockInvoiceRepository)
		service := NewCreditNoteService(noteRepo, invoiceRepo)

		noteRepo.On("GenerateCreditNoteNumber", ctx, tenantID).Return("CN/2509/00010", nil)
		noteRepo.On("Save", ctx, mock.AnythingOfType("*billing.CreditNote")).Return(nil)

		resp, err := service.Create(ctx, tenantID, CreateCreditNoteRequest{
			ReturnReason: "customer_request",
			BuyerName:    "Walk-in Customer",
			Items: []CreateCreditNoteItemInput{
				{
					Description: "Silver Anklet",
					Quantity:    decimal.NewFromInt(1),
					UnitPrice:   decimal.NewFromInt(1000),
					GSTRate:     decimal.NewFromInt(3),
					CGSTAmount:  decimal.NewFromFloat(15),
					SGSTAmount:  decimal.NewFromFloat(15),
				},
			},
		})
		require.NoError(t, err)
		assert.True(t, resp.GrandTotal.Equal(decimal.NewFromInt(1030)))
		assert.Equal(t, "pending", resp.Status)
		noteRepo.AssertExpectations(t)
	})

	t.Run("rejects mixed GST components", func(t *testing.T) {
		noteRepo := new(MockCreditNoteRepository)
		invoiceRepo := new(MockInvoiceRepository)
		service := NewCreditNoteService(noteRepo, invoiceRepo)

		noteRepo.On("GenerateCreditNoteNumber", ctx, tenantID).Return("CN/2509/00011", nil)

		_, err := service.Create(ctx, tenantID, CreateCreditNoteRequest{
			ReturnReason: "other",
			BuyerName:    "Walk-in Customer",
			Items: []CreateCreditNoteItemInput{
				{
					Description: "Silver Anklet",
					Quantity:    decimal.NewFromInt(1),
					UnitPrice:   decimal.NewFromInt(1000),
					CGSTAmount:  decimal.NewFromInt(15),
					IGSTAmount:  decimal.NewFromInt(30),
				},
			},
		})
		assert.Error(t, err)
	})
}

func TestCreditNoteService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	// Helper to create an approved note backed by the mock repo
	approvedNote := func(t *testing.T, noteRepo *MockCreditNoteRepository) *billing.CreditNote {
		inv := newTestInvoice(t, tenantID)
		cn, err := billing.NewCreditNote(tenantID, "CN/2509/00001", billing.ReturnReasonSizeExchange, inv.Buyer, "")
		require.NoError(t, err)
		item, err := billing.NewCreditNoteItemFromInvoiceItem(&inv.Items[0], decimal.NewFromInt(4))
		require.NoError(t, err)
		require.NoError(t, cn.AddItem(item))
		require.NoError(t, cn.Approve())
		cn.ClearDomainEvents()

		noteRepo.On("FindByIDForTenant", ctx, tenantID, cn.ID).Return(cn, nil)
		return cn
	}

	t.Run("approve transitions pending to approved", func(t *testing.T) {
		noteRepo := new(MockCreditNoteRepository)
		service := NewCreditNoteService(noteRepo, new(MockInvoiceRepository))

		inv := newTestInvoice(t, tenantID)
		cn, err := billing.NewCreditNote(tenantID, "CN/2509/00001", billing.ReturnReasonDefective, inv.Buyer, "")
		require.NoError(t, err)
		item, err := billing.NewCreditNoteItemFromInvoiceItem(&inv.Items[0], decimal.NewFromInt(2))
		require.NoError(t, err)
		require.NoError(t, cn.AddItem(item))

		noteRepo.On("FindByIDForTenant", ctx, tenantID, cn.ID).Return(cn, nil)
		noteRepo.On("Save", ctx, cn).Return(nil)

		resp, err := service.Approve(ctx, tenantID, cn.ID)
		require.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
	})

	t.Run("refund records method and reference", func(t *testing.T) {
		noteRepo := new(MockCreditNoteRepository)
		service := NewCreditNoteService(noteRepo, new(MockInvoiceRepository))
		cn := approvedNote(t, noteRepo)
		noteRepo.On("Save", ctx, cn).Return(nil)

		resp, err := service.ProcessRefund(ctx, tenantID, cn.ID, RefundCreditNoteRequest{
			Method:    "upi",
			Reference: "UTR-12345",
		})
		require.NoError(t, err)
		assert.Equal(t, "refunded", resp.Status)
		assert.Equal(t, "upi", resp.RefundMethod)
		assert.NotNil(t, resp.RefundedAt)
	})

	t.Run("refund on a pending note does not save", func(t *testing.T) {
		noteRepo := new(MockCreditNoteRepository)
		service := NewCreditNoteService(noteRepo, new(MockInvoiceRepository))

		inv := newTestInvoice(t, tenantID)
		cn, err := billing.NewCreditNote(tenantID, "CN/2509/00001", billing.ReturnReasonDefective, inv.Buyer, "")
		require.NoError(t, err)
		noteRepo.On("FindByIDForTenant", ctx, tenantID, cn.ID).Return(cn, nil)

		_, err = service.ProcessRefund(ctx, tenantID, cn.ID, RefundCreditNoteRequest{Method: "cash"})
		assert.Error(t, err)
		noteRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("exchange returns settlement figures", func(t *testing.T) {
		noteRepo := new(MockCreditNoteRepository)
		service := NewCreditNoteService(noteRepo, new(MockInvoiceRepository))
		cn := approvedNote(t, noteRepo)
		noteRepo.On("Save", ctx, cn).Return(nil)

		resp, err := service.ProcessExchange(ctx, tenantID, cn.ID, ExchangeCreditNoteRequest{
			Items: []ExchangeItemInput{
				{Description: "18K Gold Pendant", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(600)},
			},
			Notes: "festival exchange",
		})
		require.NoError(t, err)

		assert.Equal(t, "exchanged", resp.CreditNote.Status)
		assert.True(t, resp.Settlement.CreditUsed.Equal(decimal.NewFromInt(472)))
		assert.True(t, resp.Settlement.BalanceDue.Equal(decimal.NewFromInt(128)))
	})

	t.Run("cancel transitions approved to cancelled", func(t *testing.T) {
		noteRepo := new(MockCreditNoteRepository)
		service := NewCreditNoteService(noteRepo, new(MockInvoiceRepository))
		cn := approvedNote(t, noteRepo)
		noteRepo.On("Save", ctx, cn).Return(nil)

		resp, err := service.Cancel(ctx, tenantID, cn.ID)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
	})
}

func TestCreditNoteService_List(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("applies default pagination", func(t *testing.T) {
		noteRepo := new(MockCreditNoteRepository)
		service := NewCreditNoteService(noteRepo, new(MockInvoiceRepository))

		noteRepo.On("FindAllForTenant", ctx, tenantID, mock.MatchedBy(func(f billing.CreditNoteFilter) bool {
			return f.Page == 1 && f.PageSize == 20
		})).Return([]billing.CreditNote{}, int64(0), nil)

		items, total, err := service.List(ctx, tenantID, CreditNoteListFilter{})
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Equal(t, int64(0), total)
		noteRepo.AssertExpectations(t)
	})
}
