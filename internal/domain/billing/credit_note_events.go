package billing

import (
	"github.com/gemsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for CreditNote
const AggregateTypeCreditNote = "CreditNote"

// Event type constants for CreditNote
const (
	EventTypeCreditNoteCreated   = "CreditNoteCreated"
	EventTypeCreditNoteApproved  = "CreditNoteApproved"
	EventTypeCreditNoteRefunded  = "CreditNoteRefunded"
	EventTypeCreditNoteExchanged = "CreditNoteExchanged"
	EventTypeCreditNoteCancelled = "CreditNoteCancelled"
)

// CreditNoteCreatedEvent is raised when a new credit note is created
type CreditNoteCreatedEvent struct {
	shared.BaseDomainEvent
	CreditNoteID      uuid.UUID    `json:"credit_note_id"`
	CreditNoteNumber  string       `json:"credit_note_number"`
	OriginalInvoiceID *uuid.UUID   `json:"original_invoice_id,omitempty"`
	ReturnReason      ReturnReason `json:"return_reason"`
	BuyerName         string       `json:"buyer_name"`
}

// NewCreditNoteCreatedEvent creates a new CreditNoteCreatedEvent
func NewCreditNoteCreatedEvent(cn *CreditNote) *CreditNoteCreatedEvent {
	return &CreditNoteCreatedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeCreditNoteCreated, AggregateTypeCreditNote, cn.ID, cn.TenantID),
		CreditNoteID:      cn.ID,
		CreditNoteNumber:  cn.CreditNoteNumber,
		OriginalInvoiceID: cn.OriginalInvoiceID,
		ReturnReason:      cn.ReturnReason,
		BuyerName:         cn.Buyer.Name,
	}
}

// EventType returns the event type name
func (e *CreditNoteCreatedEvent) EventType() string {
	return EventTypeCreditNoteCreated
}

// CreditNoteApprovedEvent is raised when a credit note is approved
type CreditNoteApprovedEvent struct {
	shared.BaseDomainEvent
	CreditNoteID     uuid.UUID       `json:"credit_note_id"`
	CreditNoteNumber string          `json:"credit_note_number"`
	GrandTotal       decimal.Decimal `json:"grand_total"`
}

// NewCreditNoteApprovedEvent creates a new CreditNoteApprovedEvent
func NewCreditNoteApprovedEvent(cn *CreditNote) *CreditNoteApprovedEvent {
	return &CreditNoteApprovedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeCreditNoteApproved, AggregateTypeCreditNote, cn.ID, cn.TenantID),
		CreditNoteID:     cn.ID,
		CreditNoteNumber: cn.CreditNoteNumber,
		GrandTotal:       cn.GrandTotal,
	}
}

// EventType returns the event type name
func (e *CreditNoteApprovedEvent) EventType() string {
	return EventTypeCreditNoteApproved
}

// CreditNoteRefundedEvent is raised when a credit note is refunded
type CreditNoteRefundedEvent struct {
	shared.BaseDomainEvent
	CreditNoteID     uuid.UUID       `json:"credit_note_id"`
	CreditNoteNumber string          `json:"credit_note_number"`
	GrandTotal       decimal.Decimal `json:"grand_total"`
	RefundMethod     string          `json:"refund_method"`
	RefundReference  string          `json:"refund_reference"`
}

// NewCreditNoteRefundedEvent creates a new CreditNoteRefundedEvent
func NewCreditNoteRefundedEvent(cn *CreditNote) *CreditNoteRefundedEvent {
	return &CreditNoteRefundedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeCreditNoteRefunded, AggregateTypeCreditNote, cn.ID, cn.TenantID),
		CreditNoteID:     cn.ID,
		CreditNoteNumber: cn.CreditNoteNumber,
		GrandTotal:       cn.GrandTotal,
		RefundMethod:     cn.RefundMethod,
		RefundReference:  cn.RefundReference,
	}
}

// EventType returns the event type name
func (e *CreditNoteRefundedEvent) EventType() string {
	return EventTypeCreditNoteRefunded
}

// CreditNoteExchangedEvent is raised when a credit note is settled by exchange
type CreditNoteExchangedEvent struct {
	shared.BaseDomainEvent
	CreditNoteID     uuid.UUID       `json:"credit_note_id"`
	CreditNoteNumber string          `json:"credit_note_number"`
	GrandTotal       decimal.Decimal `json:"grand_total"`
	NewItemsTotal    decimal.Decimal `json:"new_items_total"`
	CreditUsed       decimal.Decimal `json:"credit_used"`
	BalanceDue       decimal.Decimal `json:"balance_due"`
}

// NewCreditNoteExchangedEvent creates a new CreditNoteExchangedEvent
func NewCreditNoteExchangedEvent(cn *CreditNote, settlement ExchangeSettlement) *CreditNoteExchangedEvent {
	return &CreditNoteExchangedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeCreditNoteExchanged, AggregateTypeCreditNote, cn.ID, cn.TenantID),
		CreditNoteID:     cn.ID,
		CreditNoteNumber: cn.CreditNoteNumber,
		GrandTotal:       cn.GrandTotal,
		NewItemsTotal:    settlement.NewItemsTotal,
		CreditUsed:       settlement.CreditUsed,
		BalanceDue:       settlement.BalanceDue,
	}
}

// EventType returns the event type name
func (e *CreditNoteExchangedEvent) EventType() string {
	return EventTypeCreditNoteExchanged
}

// CreditNoteCancelledEvent is raised when a credit note is cancelled
type CreditNoteCancelledEvent struct {
	shared.BaseDomainEvent
	CreditNoteID     uuid.UUID `json:"credit_note_id"`
	CreditNoteNumber string    `json:"credit_note_number"`
	WasApproved      bool      `json:"was_approved"`
}

// NewCreditNoteCancelledEvent creates a new CreditNoteCancelledEvent
func NewCreditNoteCancelledEvent(cn *CreditNote) *CreditNoteCancelledEvent {
	return &CreditNoteCancelledEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeCreditNoteCancelled, AggregateTypeCreditNote, cn.ID, cn.TenantID),
		CreditNoteID:     cn.ID,
		CreditNoteNumber: cn.CreditNoteNumber,
		WasApproved:      cn.ApprovedAt != nil,
	}
}

// EventType returns the event type name
func (e *CreditNoteCancelledEvent) EventType() string {
	return EventTypeCreditNoteCancelled
}
