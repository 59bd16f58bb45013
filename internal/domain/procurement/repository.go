package procurement

import (
	"context"

	"github.com/google/uuid"
)

// PurchaseOrderFilter holds the list filters for purchase orders.
// All set filters compose with logical AND; results are newest first.
type PurchaseOrderFilter struct {
	Status    *POStatus
	VendorID  *uuid.UUID
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// PurchaseOrderRepository is the storage port for purchase orders and
// their goods received notes
type PurchaseOrderRepository interface {
	// FindByIDForTenant loads a purchase order with its items
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrder, error)

	// FindAllForTenant lists purchase orders matching the filter, newest
	// first, returning the page and the total match count
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter PurchaseOrderFilter) ([]PurchaseOrder, int64, error)

	// Save persists the purchase order and its items in one transaction
	Save(ctx context.Context, po *PurchaseOrder) error

	// SaveReceipt persists a goods receipt: the GRN, the incremented item
	// quantities and the recomputed order status, all in one transaction
	SaveReceipt(ctx context.Context, po *PurchaseOrder, grn *GoodsReceivedNote) error

	// FindGRNsForOrder lists the receipts recorded against an order,
	// oldest first
	FindGRNsForOrder(ctx context.Context, tenantID, poID uuid.UUID) ([]GoodsReceivedNote, error)

	// GeneratePONumber atomically allocates the next PO/YYMM/NNNNN number
	GeneratePONumber(ctx context.Context, tenantID uuid.UUID) (string, error)

	// GenerateGRNNumber atomically allocates the next GRN/YYMM/NNNNN number
	GenerateGRNNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}
