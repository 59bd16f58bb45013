package procurement

import (
	"time"

	"github.com/gemsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GRNItem records the quantities physically received and rejected for one
// purchase order line in a single receipt event
type GRNItem struct {
	ID               uuid.UUID
	GRNID            uuid.UUID
	POItemID         uuid.UUID
	VariantID        *uuid.UUID
	Description      string
	QuantityReceived decimal.Decimal
	QuantityRejected decimal.Decimal
	RejectionReason  string
	CreatedAt        time.Time
}

// GoodsReceivedNote is an immutable receipt event against a purchase order.
// Notes are created once per receiving event and never mutated or deleted;
// they form an append-only ledger from which line received quantities were
// incremented.
type GoodsReceivedNote struct {
	shared.TenantAggregateRoot
	GRNNumber       string
	PurchaseOrderID uuid.UUID
	PONumber        string
	ReceivedBy      *uuid.UUID
	Notes           string
	Items           []GRNItem
}

// NewGoodsReceivedNote creates an empty receipt for a purchase order.
// Lines are added through PurchaseOrder.Receive, which keeps the receipt
// and the order's received quantities consistent.
func NewGoodsReceivedNote(
	tenantID uuid.UUID,
	grnNumber string,
	purchaseOrderID uuid.UUID,
	poNumber string,
	receivedBy *uuid.UUID,
	notes string,
) (*GoodsReceivedNote, error) {
	if grnNumber == "" {
		return nil, shared.NewDomainError("INVALID_GRN_NUMBER", "GRN number cannot be empty")
	}
	if purchaseOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PO", "Purchase order ID cannot be empty")
	}

	return &GoodsReceivedNote{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		GRNNumber:           grnNumber,
		PurchaseOrderID:     purchaseOrderID,
		PONumber:            poNumber,
		ReceivedBy:          receivedBy,
		Notes:               notes,
		Items:               make([]GRNItem, 0),
	}, nil
}

// addItem appends one receipt line; called only from PurchaseOrder.Receive
func (g *GoodsReceivedNote) addItem(poItem *PurchaseOrderItem, line ReceiveLine) error {
	if line.QuantityReceived.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Received quantity cannot be negative")
	}
	if line.QuantityRejected.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Rejected quantity cannot be negative")
	}
	if line.QuantityRejected.IsPositive() && line.RejectionReason == "" {
		return shared.NewDomainError("INVALID_REASON", "Rejection reason is required when rejecting goods")
	}

	g.Items = append(g.Items, GRNItem{
		ID:               uuid.New(),
		GRNID:            g.ID,
		POItemID:         poItem.ID,
		VariantID:        poItem.VariantID,
		Description:      poItem.Description,
		QuantityReceived: line.QuantityReceived,
		QuantityRejected: line.QuantityRejected,
		RejectionReason:  line.RejectionReason,
		CreatedAt:        time.Now(),
	})

	return nil
}

// ItemCount returns the number of receipt lines
func (g *GoodsReceivedNote) ItemCount() int {
	return len(g.Items)
}

// TotalReceivedQuantity returns the sum of received quantities on the receipt
func (g *GoodsReceivedNote) TotalReceivedQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, item := range g.Items {
		total = total.Add(item.QuantityReceived)
	}
	return total
}

// TotalRejectedQuantity returns the sum of rejected quantities on the receipt
func (g *GoodsReceivedNote) TotalRejectedQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, item := range g.Items {
		total = total.Add(item.QuantityRejected)
	}
	return total
}
