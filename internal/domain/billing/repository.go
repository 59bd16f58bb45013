package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditNoteFilter holds the list filters for credit notes.
// All set filters compose with logical AND; results are newest first.
type CreditNoteFilter struct {
	Status    *CreditNoteStatus
	From      *time.Time
	To        *time.Time
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// CreditNoteRepository is the storage port for credit notes
type CreditNoteRepository interface {
	// FindByIDForTenant loads a credit note with its items
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*CreditNote, error)

	// FindAllForTenant lists credit notes matching the filter, newest first,
	// returning the page and the total match count
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter CreditNoteFilter) ([]CreditNote, int64, error)

	// Save persists the credit note and its items in one transaction
	Save(ctx context.Context, note *CreditNote) error

	// CreditedQuantityForInvoiceItem returns the quantity already credited
	// against an invoice line across all non-cancelled credit notes
	CreditedQuantityForInvoiceItem(ctx context.Context, tenantID, invoiceItemID uuid.UUID) (decimal.Decimal, error)

	// GenerateCreditNoteNumber atomically allocates the next CN/YYMM/NNNNN
	// number for the tenant
	GenerateCreditNoteNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}

// InvoiceRepository is the read-side storage port for invoices
type InvoiceRepository interface {
	// FindByIDForTenant loads an invoice with its items
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)

	// Save persists the invoice and its items
	Save(ctx context.Context, invoice *Invoice) error
}
