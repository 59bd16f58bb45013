package valueobject

import (
	"errors"

	"github.com/shopspring/decimal"
)

// TaxBreakup holds the GST components of a line amount.
// Intra-state supplies carry CGST+SGST, inter-state supplies carry IGST.
// The two sets are mutually exclusive.
type TaxBreakup struct {
	CGST decimal.Decimal `json:"cgst"`
	SGST decimal.Decimal `json:"sgst"`
	IGST decimal.Decimal `json:"igst"`
}

// ZeroTaxBreakup returns an all-zero tax breakup
func ZeroTaxBreakup() TaxBreakup {
	return TaxBreakup{
		CGST: decimal.Zero,
		SGST: decimal.Zero,
		IGST: decimal.Zero,
	}
}

// NewTaxBreakup creates a tax breakup and validates component exclusivity
func NewTaxBreakup(cgst, sgst, igst decimal.Decimal) (TaxBreakup, error) {
	t := TaxBreakup{CGST: cgst, SGST: sgst, IGST: igst}
	if err := t.Validate(); err != nil {
		return TaxBreakup{}, err
	}
	return t, nil
}

// SplitGST computes the tax breakup for a taxable amount at the given rate.
// Inter-state supplies get the full rate as IGST; intra-state supplies get
// the rate split evenly between CGST and SGST.
func SplitGST(taxable, ratePercent decimal.Decimal, interState bool) TaxBreakup {
	hundred := decimal.NewFromInt(100)
	tax := taxable.Mul(ratePercent).Div(hundred)
	if interState {
		return TaxBreakup{CGST: decimal.Zero, SGST: decimal.Zero, IGST: tax}
	}
	half := tax.Div(decimal.NewFromInt(2))
	return TaxBreakup{CGST: half, SGST: half, IGST: decimal.Zero}
}

// Validate checks that CGST/SGST and IGST are not mixed and no component is negative
func (t TaxBreakup) Validate() error {
	if t.CGST.IsNegative() || t.SGST.IsNegative() || t.IGST.IsNegative() {
		return errors.New("tax components cannot be negative")
	}
	if t.IGST.IsPositive() && (t.CGST.IsPositive() || t.SGST.IsPositive()) {
		return errors.New("IGST cannot be combined with CGST or SGST")
	}
	return nil
}

// Total returns the sum of all tax components
func (t TaxBreakup) Total() decimal.Decimal {
	return t.CGST.Add(t.SGST).Add(t.IGST)
}

// IsInterState reports whether the breakup represents an inter-state supply
func (t TaxBreakup) IsInterState() bool {
	return t.IGST.IsPositive()
}

// IsZero returns true when all components are zero
func (t TaxBreakup) IsZero() bool {
	return t.CGST.IsZero() && t.SGST.IsZero() && t.IGST.IsZero()
}

// Add returns the component-wise sum of two breakups
func (t TaxBreakup) Add(other TaxBreakup) TaxBreakup {
	return TaxBreakup{
		CGST: t.CGST.Add(other.CGST),
		SGST: t.SGST.Add(other.SGST),
		IGST: t.IGST.Add(other.IGST),
	}
}

// Prorate scales each tax component by returnedQty/originalQty.
// Each component is prorated independently so the split of the original
// line is preserved exactly.
func (t TaxBreakup) Prorate(originalQty, returnedQty decimal.Decimal) (TaxBreakup, error) {
	if !originalQty.IsPositive() {
		return TaxBreakup{}, errors.New("original quantity must be positive")
	}
	if returnedQty.IsNegative() {
		return TaxBreakup{}, errors.New("returned quantity cannot be negative")
	}
	return TaxBreakup{
		CGST: t.CGST.Div(originalQty).Mul(returnedQty),
		SGST: t.SGST.Div(originalQty).Mul(returnedQty),
		IGST: t.IGST.Div(originalQty).Mul(returnedQty),
	}, nil
}

// ProrateAmount scales an arbitrary amount by returnedQty/originalQty
func ProrateAmount(amount, originalQty, returnedQty decimal.Decimal) (decimal.Decimal, error) {
	if !originalQty.IsPositive() {
		return decimal.Zero, errors.New("original quantity must be positive")
	}
	if returnedQty.IsNegative() {
		return decimal.Zero, errors.New("returned quantity cannot be negative")
	}
	return amount.Div(originalQty).Mul(returnedQty), nil
}
