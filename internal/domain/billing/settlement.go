package billing

import (
	"github.com/gemsuite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExchangeItem describes one replacement line offered against a credit note
type ExchangeItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// LineTotal returns quantity * unit price
func (e ExchangeItem) LineTotal() decimal.Decimal {
	return e.UnitPrice.Mul(e.Quantity)
}

// ExchangeSettlement holds the financial outcome of applying a credit note
// against replacement merchandise. BalanceDue is positive when the customer
// owes more, negative or zero when the credit covers the new items.
type ExchangeSettlement struct {
	NewItemsTotal decimal.Decimal `json:"new_items_total"`
	CreditUsed    decimal.Decimal `json:"credit_used"`
	BalanceDue    decimal.Decimal `json:"balance_due"`
}

// CalculateExchangeSettlement computes the settlement for exchanging a
// credit of grandTotal against the given replacement items.
// It only settles the money side; sale creation and stock movement for the
// new items belong to the caller.
func CalculateExchangeSettlement(grandTotal decimal.Decimal, newItems []ExchangeItem) (ExchangeSettlement, error) {
	if len(newItems) == 0 {
		return ExchangeSettlement{}, shared.NewDomainError("NO_ITEMS", "Exchange requires at least one replacement item")
	}

	total := decimal.Zero
	for _, item := range newItems {
		if item.Description == "" {
			return ExchangeSettlement{}, shared.NewDomainError("INVALID_DESCRIPTION", "Exchange item description cannot be empty")
		}
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return ExchangeSettlement{}, shared.NewDomainError("INVALID_QUANTITY", "Exchange item quantity must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return ExchangeSettlement{}, shared.NewDomainError("INVALID_PRICE", "Exchange item unit price cannot be negative")
		}
		total = total.Add(item.LineTotal())
	}

	creditUsed := decimal.Min(grandTotal, total)

	return ExchangeSettlement{
		NewItemsTotal: total,
		CreditUsed:    creditUsed,
		BalanceDue:    total.Sub(grandTotal),
	}, nil
}
