package procurement

import (
	"fmt"
	"time"

	"github.com/gemsuite/backend/internal/domain/shared"
	"github.com/gemsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// POStatus represents the status of a purchase order
type POStatus string

const (
	POStatusDraft     POStatus = "draft"
	POStatusSent      POStatus = "sent"     // Sent to vendor, awaiting goods
	POStatusPartial   POStatus = "partial"  // Some lines received, not all
	POStatusReceived  POStatus = "received" // All lines fully received
	POStatusCancelled POStatus = "cancelled"
)

// IsValid checks if the status is a valid POStatus
func (s POStatus) IsValid() bool {
	switch s {
	case POStatusDraft, POStatusSent, POStatusPartial, POStatusReceived, POStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of POStatus
func (s POStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s POStatus) CanTransitionTo(target POStatus) bool {
	switch s {
	case POStatusDraft:
		return target == POStatusSent || target == POStatusCancelled
	case POStatusSent:
		return target == POStatusPartial || target == POStatusReceived || target == POStatusCancelled
	case POStatusPartial:
		return target == POStatusPartial || target == POStatusReceived
	case POStatusReceived, POStatusCancelled:
		return false // Terminal states
	}
	return false
}

// PurchaseOrderItem represents one ordered line
type PurchaseOrderItem struct {
	ID               uuid.UUID
	PurchaseOrderID  uuid.UUID
	VariantID        *uuid.UUID
	Description      string
	HSNCode          string
	QuantityOrdered  decimal.Decimal
	QuantityReceived decimal.Decimal
	Unit             string
	UnitPrice        decimal.Decimal
	GSTRate          decimal.Decimal
	GSTAmount        decimal.Decimal
	TotalPrice       decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewPurchaseOrderItem creates a new purchase order line
func NewPurchaseOrderItem(
	poID uuid.UUID,
	variantID *uuid.UUID,
	description, hsnCode, unit string,
	quantityOrdered, unitPrice, gstRate decimal.Decimal,
) (*PurchaseOrderItem, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if quantityOrdered.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Ordered quantity must be positive")
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if gstRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_GST_RATE", "GST rate cannot be negative")
	}

	now := time.Now()
	lineValue := unitPrice.Mul(quantityOrdered)
	gstAmount := lineValue.Mul(gstRate).Div(decimal.NewFromInt(100))

	return &PurchaseOrderItem{
		ID:               uuid.New(),
		PurchaseOrderID:  poID,
		VariantID:        variantID,
		Description:      description,
		HSNCode:          hsnCode,
		QuantityOrdered:  quantityOrdered,
		QuantityReceived: decimal.Zero,
		Unit:             unit,
		UnitPrice:        unitPrice,
		GSTRate:          gstRate,
		GSTAmount:        gstAmount,
		TotalPrice:       lineValue.Add(gstAmount),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// AddReceivedQuantity increments the received quantity.
// Received quantity never decreases and never exceeds the ordered quantity.
func (i *PurchaseOrderItem) AddReceivedQuantity(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Received quantity cannot be negative")
	}

	newReceived := i.QuantityReceived.Add(quantity)
	if newReceived.GreaterThan(i.QuantityOrdered) {
		return shared.NewDomainError("QUANTITY_EXCEEDED",
			fmt.Sprintf("Received quantity %s would exceed ordered quantity %s", newReceived, i.QuantityOrdered))
	}

	i.QuantityReceived = newReceived
	i.UpdatedAt = time.Now()

	return nil
}

// PendingQuantity returns ordered minus received, clamped to zero
func (i *PurchaseOrderItem) PendingQuantity() decimal.Decimal {
	pending := i.QuantityOrdered.Sub(i.QuantityReceived)
	if pending.IsNegative() {
		return decimal.Zero
	}
	return pending
}

// IsFullyReceived returns true when the whole ordered quantity has arrived
func (i *PurchaseOrderItem) IsFullyReceived() bool {
	return i.QuantityReceived.GreaterThanOrEqual(i.QuantityOrdered)
}

// GetTotalPriceMoney returns the line total as Money
func (i *PurchaseOrderItem) GetTotalPriceMoney() valueobject.Money {
	return valueobject.NewMoneyINR(i.TotalPrice)
}

// ReceiveLine is one line of a goods receipt against a purchase order
type ReceiveLine struct {
	POItemID         uuid.UUID
	QuantityReceived decimal.Decimal
	QuantityRejected decimal.Decimal
	RejectionReason  string
}

// PurchaseOrder represents an order placed with a vendor.
// Its status, apart from explicit cancellation, is derived from the
// received-vs-ordered quantities of its lines.
type PurchaseOrder struct {
	shared.TenantAggregateRoot
	PONumber        string
	VendorID        uuid.UUID
	VendorName      string
	Status          POStatus
	OrderDate       time.Time
	ExpectedDate    *time.Time
	ReceivedDate    *time.Time
	Subtotal        decimal.Decimal
	GSTAmount       decimal.Decimal
	ShippingCost    decimal.Decimal
	DiscountAmount  decimal.Decimal
	Total           decimal.Decimal
	ShippingAddress string
	Notes           string
	SentAt          *time.Time
	CancelledAt     *time.Time
	Items           []PurchaseOrderItem
}

// NewPurchaseOrder creates a new purchase order in draft status
func NewPurchaseOrder(
	tenantID uuid.UUID,
	poNumber string,
	vendorID uuid.UUID,
	vendorName string,
) (*PurchaseOrder, error) {
	if poNumber == "" {
		return nil, shared.NewDomainError("INVALID_PO_NUMBER", "PO number cannot be empty")
	}
	if len(poNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_PO_NUMBER", "PO number cannot exceed 50 characters")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if vendorName == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor name cannot be empty")
	}

	po := &PurchaseOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PONumber:            poNumber,
		VendorID:            vendorID,
		VendorName:          vendorName,
		Status:              POStatusDraft,
		OrderDate:           time.Now(),
		Subtotal:            decimal.Zero,
		GSTAmount:           decimal.Zero,
		ShippingCost:        decimal.Zero,
		DiscountAmount:      decimal.Zero,
		Total:               decimal.Zero,
		Items:               make([]PurchaseOrderItem, 0),
	}

	po.AddDomainEvent(NewPurchaseOrderCreatedEvent(po))

	return po, nil
}

// AddItem adds a new line to the order
// Only allowed in draft status
func (po *PurchaseOrder) AddItem(
	variantID *uuid.UUID,
	description, hsnCode, unit string,
	quantityOrdered, unitPrice, gstRate decimal.Decimal,
) (*PurchaseOrderItem, error) {
	if po.Status != POStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft purchase order")
	}

	item, err := NewPurchaseOrderItem(po.ID, variantID, description, hsnCode, unit, quantityOrdered, unitPrice, gstRate)
	if err != nil {
		return nil, err
	}

	po.Items = append(po.Items, *item)
	po.recalculateTotals()
	po.UpdatedAt = time.Now()

	return item, nil
}

// RemoveItem removes a line from the order
// Only allowed in draft status
func (po *PurchaseOrder) RemoveItem(itemID uuid.UUID) error {
	if po.Status != POStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-draft purchase order")
	}

	for idx, item := range po.Items {
		if item.ID == itemID {
			po.Items = append(po.Items[:idx], po.Items[idx+1:]...)
			po.recalculateTotals()
			po.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Purchase order item not found")
}

// SetShippingCost sets the shipping cost and recalculates the total
// Only allowed in draft status
func (po *PurchaseOrder) SetShippingCost(cost decimal.Decimal) error {
	if po.Status != POStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot change shipping cost of a non-draft purchase order")
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Shipping cost cannot be negative")
	}

	po.ShippingCost = cost
	po.recalculateTotals()
	po.UpdatedAt = time.Now()

	return nil
}

// SetDiscountAmount sets the order-level discount and recalculates the total
// Only allowed in draft status
func (po *PurchaseOrder) SetDiscountAmount(amount decimal.Decimal) error {
	if po.Status != POStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot change discount of a non-draft purchase order")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Discount amount cannot be negative")
	}

	po.DiscountAmount = amount
	po.recalculateTotals()
	po.UpdatedAt = time.Now()

	return nil
}

// SetExpectedDate sets the expected delivery date
func (po *PurchaseOrder) SetExpectedDate(date time.Time) {
	po.ExpectedDate = &date
	po.UpdatedAt = time.Now()
}

// SetShippingAddress sets the delivery address
func (po *PurchaseOrder) SetShippingAddress(address string) {
	po.ShippingAddress = address
	po.UpdatedAt = time.Now()
}

// SetNotes sets the order notes
func (po *PurchaseOrder) SetNotes(notes string) {
	po.Notes = notes
	po.UpdatedAt = time.Now()
}

// MarkSent marks the order as sent to the vendor
// Transitions from draft to sent
func (po *PurchaseOrder) MarkSent() error {
	if !po.Status.CanTransitionTo(POStatusSent) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send purchase order in %s status", po.Status))
	}
	if len(po.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot send purchase order without items")
	}

	now := time.Now()
	po.Status = POStatusSent
	po.SentAt = &now
	po.UpdatedAt = now

	po.AddDomainEvent(NewPurchaseOrderSentEvent(po))

	return nil
}

// Receive records a goods receipt against the order. It creates an
// immutable goods received note, increments each referenced line's
// received quantity, and re-derives the order status: received when every
// line is complete, partial when anything has arrived, otherwise the
// status is left unchanged.
func (po *PurchaseOrder) Receive(
	grnNumber string,
	lines []ReceiveLine,
	receivedBy *uuid.UUID,
	notes string,
) (*GoodsReceivedNote, error) {
	if po.Status != POStatusSent && po.Status != POStatusPartial {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot receive goods for purchase order in %s status", po.Status))
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Goods receipt requires at least one line")
	}

	grn, err := NewGoodsReceivedNote(po.TenantID, grnNumber, po.ID, po.PONumber, receivedBy, notes)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		item := po.GetItem(line.POItemID)
		if item == nil {
			return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Purchase order item not found")
		}
		if err := item.AddReceivedQuantity(line.QuantityReceived); err != nil {
			return nil, err
		}
		if err := grn.addItem(item, line); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	if po.allItemsFullyReceived() {
		po.Status = POStatusReceived
		po.ReceivedDate = &now
	} else if po.hasReceivedAnyGoods() {
		po.Status = POStatusPartial
	}
	po.UpdatedAt = now

	po.AddDomainEvent(NewPurchaseOrderGoodsReceivedEvent(po, grn))
	if po.Status == POStatusReceived {
		po.AddDomainEvent(NewPurchaseOrderReceivedEvent(po))
	}

	return grn, nil
}

// Cancel cancels the purchase order
// Allowed only before any goods have been received (draft or sent)
func (po *PurchaseOrder) Cancel(reason string) error {
	if !po.Status.CanTransitionTo(POStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel purchase order in %s status", po.Status))
	}
	if po.hasReceivedAnyGoods() {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel purchase order with received goods")
	}

	now := time.Now()
	po.Status = POStatusCancelled
	po.CancelledAt = &now
	if reason != "" {
		po.Notes = appendNote(po.Notes, "Cancelled: "+reason)
	}
	po.UpdatedAt = now

	po.AddDomainEvent(NewPurchaseOrderCancelledEvent(po, reason))

	return nil
}

// GetItem returns a line by its ID
func (po *PurchaseOrder) GetItem(itemID uuid.UUID) *PurchaseOrderItem {
	for idx := range po.Items {
		if po.Items[idx].ID == itemID {
			return &po.Items[idx]
		}
	}
	return nil
}

// ItemCount returns the number of lines on the order
func (po *PurchaseOrder) ItemCount() int {
	return len(po.Items)
}

// GetTotalMoney returns the order total as Money
func (po *PurchaseOrder) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyINR(po.Total)
}

// IsDraft returns true if the order is in draft status
func (po *PurchaseOrder) IsDraft() bool {
	return po.Status == POStatusDraft
}

// IsSent returns true if the order has been sent to the vendor
func (po *PurchaseOrder) IsSent() bool {
	return po.Status == POStatusSent
}

// IsPartiallyReceived returns true if some but not all goods have arrived
func (po *PurchaseOrder) IsPartiallyReceived() bool {
	return po.Status == POStatusPartial
}

// IsReceived returns true if all goods have arrived
func (po *PurchaseOrder) IsReceived() bool {
	return po.Status == POStatusReceived
}

// IsCancelled returns true if the order is cancelled
func (po *PurchaseOrder) IsCancelled() bool {
	return po.Status == POStatusCancelled
}

// IsTerminal returns true if the order is in a terminal state
func (po *PurchaseOrder) IsTerminal() bool {
	return po.IsReceived() || po.IsCancelled()
}

// allItemsFullyReceived returns true when every line is complete
func (po *PurchaseOrder) allItemsFullyReceived() bool {
	if len(po.Items) == 0 {
		return false
	}
	for idx := range po.Items {
		if !po.Items[idx].IsFullyReceived() {
			return false
		}
	}
	return true
}

// hasReceivedAnyGoods returns true when any line has a received quantity
func (po *PurchaseOrder) hasReceivedAnyGoods() bool {
	for idx := range po.Items {
		if po.Items[idx].QuantityReceived.IsPositive() {
			return true
		}
	}
	return false
}

// recalculateTotals recalculates order-level amounts from the lines
func (po *PurchaseOrder) recalculateTotals() {
	subtotal := decimal.Zero
	gst := decimal.Zero
	for _, item := range po.Items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(item.QuantityOrdered))
		gst = gst.Add(item.GSTAmount)
	}
	po.Subtotal = subtotal
	po.GSTAmount = gst
	po.Total = subtotal.Add(gst).Add(po.ShippingCost).Sub(po.DiscountAmount)
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + "\n" + note
}
