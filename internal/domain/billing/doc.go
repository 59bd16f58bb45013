// Package billing provides the domain model for sales-side documents in a
// multi-tenant jewelry retail backend: GST invoices and the credit notes
// raised against them for returns, refunds and exchanges.
//
// Key aggregates:
//   - Invoice: a finalized sales document with per-line GST breakup, read
//     by the return flow to prorate amounts
//   - CreditNote: the return document with a guarded lifecycle
//     (pending, approved, refunded, exchanged, cancelled)
//
// Monetary amounts use shopspring/decimal throughout. Tax components are
// modeled with valueobject.TaxBreakup, which enforces that CGST+SGST and
// IGST are mutually exclusive per document.
package billing
