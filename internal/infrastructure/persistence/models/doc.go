// Package models contains GORM-specific persistence models that map to
// database tables. They are kept separate from domain entities so the
// domain layer stays free of ORM concerns.
//
// Each aggregate has a model pair: the model carries the GORM tags and
// TableName, and FromDomain/ToDomain converters translate between the
// model and the domain type.
//
// Structure:
// - base.go: BaseModel and TenantAggregateModel shared by all aggregates
// - billing.go: invoices, invoice_items, credit_notes, credit_note_items
// - procurement.go: purchase_orders, purchase_order_items, goods_received_notes, grn_items
// - number_series.go: document_number_series counters
package models
