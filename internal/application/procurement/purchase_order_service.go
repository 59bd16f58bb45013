package procurement

import (
	"context"

	"github.com/gemsuite/backend/internal/domain/procurement"
	"github.com/gemsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseOrderService handles purchase order business operations
type PurchaseOrderService struct {
	poRepo         procurement.PurchaseOrderRepository
	eventPublisher shared.EventPublisher
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(poRepo procurement.PurchaseOrderRepository) *PurchaseOrderService {
	return &PurchaseOrderService{poRepo: poRepo}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new purchase order in draft status
func (s *PurchaseOrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	poNumber, err := s.poRepo.GeneratePONumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	po, err := procurement.NewPurchaseOrder(tenantID, poNumber, req.VendorID, req.VendorName)
	if err != nil {
		return nil, err
	}

	for _, input := range req.Items {
		_, err := po.AddItem(input.VariantID, input.Description, input.HSNCode, input.Unit,
			input.Quantity, input.UnitPrice, input.GSTRate)
		if err != nil {
			return nil, err
		}
	}

	if req.ShippingCost != nil {
		if err := po.SetShippingCost(*req.ShippingCost); err != nil {
			return nil, err
		}
	}
	if req.DiscountAmount != nil {
		if err := po.SetDiscountAmount(*req.DiscountAmount); err != nil {
			return nil, err
		}
	}
	if req.ExpectedDate != nil {
		po.SetExpectedDate(*req.ExpectedDate)
	}
	if req.ShippingAddress != "" {
		po.SetShippingAddress(req.ShippingAddress)
	}
	if req.Notes != "" {
		po.SetNotes(req.Notes)
	}
	if req.CreatedBy != nil {
		po.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, po)

	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// GetByID retrieves a purchase order with its items
func (s *PurchaseOrderService) GetByID(ctx context.Context, tenantID, poID uuid.UUID) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByIDForTenant(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// List retrieves purchase orders with filtering and pagination, newest first
func (s *PurchaseOrderService) List(ctx context.Context, tenantID uuid.UUID, filter PurchaseOrderListFilter) ([]PurchaseOrderListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	orders, total, err := s.poRepo.FindAllForTenant(ctx, tenantID, procurement.PurchaseOrderFilter{
		Status:    filter.Status,
		VendorID:  filter.VendorID,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
		Page:      filter.Page,
		PageSize:  filter.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PurchaseOrderListItemResponse, len(orders))
	for i := range orders {
		responses[i] = ToPurchaseOrderListItemResponse(&orders[i])
	}

	return responses, total, nil
}

// MarkSent marks a draft purchase order as sent to the vendor
func (s *PurchaseOrderService) MarkSent(ctx context.Context, tenantID, poID uuid.UUID) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByIDForTenant(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}

	if err := po.MarkSent(); err != nil {
		return nil, err
	}

	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, po)

	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// ReceiveGoods records a goods receipt: it creates an immutable GRN,
// increments each line's received quantity and re-derives the order
// status, persisting everything in one transaction
func (s *PurchaseOrderService) ReceiveGoods(ctx context.Context, tenantID, poID uuid.UUID, req ReceiveGoodsRequest) (*ReceiveGoodsResponse, error) {
	po, err := s.poRepo.FindByIDForTenant(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}

	grnNumber, err := s.poRepo.GenerateGRNNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	lines := make([]procurement.ReceiveLine, len(req.Items))
	for i, input := range req.Items {
		lines[i] = procurement.ReceiveLine{
			POItemID:         input.POItemID,
			QuantityReceived: input.QuantityReceived,
			QuantityRejected: input.QuantityRejected,
			RejectionReason:  input.RejectionReason,
		}
	}

	grn, err := po.Receive(grnNumber, lines, req.ReceivedBy, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.poRepo.SaveReceipt(ctx, po, grn); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, po)

	return &ReceiveGoodsResponse{
		GRN:           ToGRNResponse(grn),
		PurchaseOrder: ToPurchaseOrderResponse(po),
	}, nil
}

// Cancel cancels a draft or sent purchase order
func (s *PurchaseOrderService) Cancel(ctx context.Context, tenantID, poID uuid.UUID, req CancelPurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByIDForTenant(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}

	if err := po.Cancel(req.Reason); err != nil {
		return nil, err
	}

	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, po)

	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// ListGRNs lists the goods received notes recorded against an order
func (s *PurchaseOrderService) ListGRNs(ctx context.Context, tenantID, poID uuid.UUID) ([]GRNResponse, error) {
	// Ensure the order exists and belongs to the tenant
	if _, err := s.poRepo.FindByIDForTenant(ctx, tenantID, poID); err != nil {
		return nil, err
	}

	grns, err := s.poRepo.FindGRNsForOrder(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}

	responses := make([]GRNResponse, len(grns))
	for i := range grns {
		responses[i] = ToGRNResponse(&grns[i])
	}

	return responses, nil
}

func (s *PurchaseOrderService) publishEvents(ctx context.Context, po *procurement.PurchaseOrder) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range po.GetDomainEvents() {
		// Event delivery is best effort; the state change is already saved
		_ = s.eventPublisher.Publish(ctx, event)
	}
	po.ClearDomainEvents()
}
