package billing

import (
	"context"

	"github.com/gemsuite/backend/internal/domain/billing"
	"github.com/gemsuite/backend/internal/domain/shared"
	"github.com/gemsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CreditNoteService handles credit note business operations
type CreditNoteService struct {
	noteRepo       billing.CreditNoteRepository
	invoiceRepo    billing.InvoiceRepository
	eventPublisher shared.EventPublisher
}

// NewCreditNoteService creates a new CreditNoteService
func NewCreditNoteService(
	noteRepo billing.CreditNoteRepository,
	invoiceRepo billing.InvoiceRepository,
) *CreditNoteService {
	return &CreditNoteService{
		noteRepo:    noteRepo,
		invoiceRepo: invoiceRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CreditNoteService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create builds a credit note from manually entered lines
func (s *CreditNoteService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCreditNoteRequest) (*CreditNoteResponse, error) {
	number, err := s.noteRepo.GenerateCreditNoteNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	buyer := billing.BuyerSnapshot{
		Name:      req.BuyerName,
		Address:   req.BuyerAddress,
		GSTIN:     req.BuyerGSTIN,
		StateCode: req.BuyerStateCode,
	}

	cn, err := billing.NewCreditNote(tenantID, number, billing.ReturnReason(req.ReturnReason), buyer, req.Notes)
	if err != nil {
		return nil, err
	}

	for _, input := range req.Items {
		tax, err := valueobject.NewTaxBreakup(input.CGSTAmount, input.SGSTAmount, input.IGSTAmount)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_TAX", err.Error())
		}

		item, err := billing.NewCreditNoteItem(
			input.VariantID, input.Description, input.HSNCode,
			input.Quantity, input.UnitPrice, input.DiscountAmount, input.GSTRate, tax,
		)
		if err != nil {
			return nil, err
		}
		if err := cn.AddItem(item); err != nil {
			return nil, err
		}
	}

	if req.OriginalSaleID != nil {
		cn.LinkSale(*req.OriginalSaleID)
	}
	if req.CreatedBy != nil {
		cn.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.noteRepo.Save(ctx, cn); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, cn)

	response := ToCreditNoteResponse(cn)
	return &response, nil
}

// CreateFromInvoice builds a credit note by prorating lines of an existing
// invoice. Each requested quantity is checked against the line's remaining
// returnable quantity across all prior non-cancelled credit notes.
func (s *CreditNoteService) CreateFromInvoice(ctx context.Context, tenantID uuid.UUID, req CreateFromInvoiceRequest) (*CreditNoteResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, req.InvoiceID)
	if err != nil {
		return nil, err
	}

	number, err := s.noteRepo.GenerateCreditNoteNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	cn, err := billing.NewCreditNote(tenantID, number, billing.ReturnReason(req.ReturnReason), invoice.Buyer, req.Notes)
	if err != nil {
		return nil, err
	}
	cn.LinkInvoice(invoice.ID)

	for _, line := range req.Items {
		invoiceItem := invoice.GetItem(line.InvoiceItemID)
		if invoiceItem == nil {
			return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Invoice item not found: "+line.InvoiceItemID.String())
		}

		credited, err := s.noteRepo.CreditedQuantityForInvoiceItem(ctx, tenantID, invoiceItem.ID)
		if err != nil {
			return nil, err
		}
		remaining := invoiceItem.Quantity.Sub(credited)
		if line.Quantity.GreaterThan(remaining) {
			return nil, shared.NewDomainError("QUANTITY_EXCEEDED",
				"Return quantity exceeds remaining returnable quantity for "+invoiceItem.Description)
		}

		item, err := billing.NewCreditNoteItemFromInvoiceItem(invoiceItem, line.Quantity)
		if err != nil {
			return nil, err
		}
		if err := cn.AddItem(item); err != nil {
			return nil, err
		}
	}

	if req.CreatedBy != nil {
		cn.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.noteRepo.Save(ctx, cn); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, cn)

	response := ToCreditNoteResponse(cn)
	return &response, nil
}

// GetByID retrieves a credit note with its items
func (s *CreditNoteService) GetByID(ctx context.Context, tenantID, noteID uuid.UUID) (*CreditNoteResponse, error) {
	cn, err := s.noteRepo.FindByIDForTenant(ctx, tenantID, noteID)
	if err != nil {
		return nil, err
	}
	response := ToCreditNoteResponse(cn)
	return &response, nil
}

// List retrieves credit notes with filtering and pagination, newest first
func (s *CreditNoteService) List(ctx context.Context, tenantID uuid.UUID, filter CreditNoteListFilter) ([]CreditNoteListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	notes, total, err := s.noteRepo.FindAllForTenant(ctx, tenantID, billing.CreditNoteFilter{
		Status:    filter.Status,
		From:      filter.From,
		To:        filter.To,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
		Page:      filter.Page,
		PageSize:  filter.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CreditNoteListItemResponse, len(notes))
	for i := range notes {
		responses[i] = ToCreditNoteListItemResponse(&notes[i])
	}

	return responses, total, nil
}

// Approve approves a pending credit note
func (s *CreditNoteService) Approve(ctx context.Context, tenantID, noteID uuid.UUID) (*CreditNoteResponse, error) {
	return s.mutate(ctx, tenantID, noteID, func(cn *billing.CreditNote) error {
		return cn.Approve()
	})
}

// ProcessRefund settles an approved credit note by refunding the customer
func (s *CreditNoteService) ProcessRefund(ctx context.Context, tenantID, noteID uuid.UUID, req RefundCreditNoteRequest) (*CreditNoteResponse, error) {
	return s.mutate(ctx, tenantID, noteID, func(cn *billing.CreditNote) error {
		return cn.ProcessRefund(req.Method, req.Reference)
	})
}

// Cancel cancels a pending or approved credit note
func (s *CreditNoteService) Cancel(ctx context.Context, tenantID, noteID uuid.UUID) (*CreditNoteResponse, error) {
	return s.mutate(ctx, tenantID, noteID, func(cn *billing.CreditNote) error {
		return cn.Cancel()
	})
}

// ProcessExchange settles an approved credit note against replacement items
// and returns the settlement figures alongside the updated note
func (s *CreditNoteService) ProcessExchange(ctx context.Context, tenantID, noteID uuid.UUID, req ExchangeCreditNoteRequest) (*ExchangeResultResponse, error) {
	cn, err := s.noteRepo.FindByIDForTenant(ctx, tenantID, noteID)
	if err != nil {
		return nil, err
	}

	newItems := make([]billing.ExchangeItem, len(req.Items))
	for i, input := range req.Items {
		newItems[i] = billing.ExchangeItem{
			Description: input.Description,
			Quantity:    input.Quantity,
			UnitPrice:   input.UnitPrice,
		}
	}

	settlement, err := cn.ProcessExchange(newItems, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.noteRepo.Save(ctx, cn); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, cn)

	return &ExchangeResultResponse{
		CreditNote: ToCreditNoteResponse(cn),
		Settlement: ToExchangeSettlementResponse(settlement),
	}, nil
}

// mutate loads a note, applies a lifecycle action and saves the result
func (s *CreditNoteService) mutate(ctx context.Context, tenantID, noteID uuid.UUID, action func(*billing.CreditNote) error) (*CreditNoteResponse, error) {
	cn, err := s.noteRepo.FindByIDForTenant(ctx, tenantID, noteID)
	if err != nil {
		return nil, err
	}

	if err := action(cn); err != nil {
		return nil, err
	}

	if err := s.noteRepo.Save(ctx, cn); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, cn)

	response := ToCreditNoteResponse(cn)
	return &response, nil
}

func (s *CreditNoteService) publishEvents(ctx context.Context, cn *billing.CreditNote) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range cn.GetDomainEvents() {
		// Event delivery is best effort; the state change is already saved
		_ = s.eventPublisher.Publish(ctx, event)
	}
	cn.ClearDomainEvents()
}
