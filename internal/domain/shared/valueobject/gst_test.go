package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitGST(t *testing.T) {
	t.Run("intra-state split evenly between CGST and SGST", func(t *testing.T) {
		breakup := SplitGST(decimal.NewFromInt(1000), decimal.NewFromInt(18), false)

		assert.True(t, breakup.CGST.Equal(decimal.NewFromInt(90)), "CGST = %s", breakup.CGST)
		assert.True(t, breakup.SGST.Equal(decimal.NewFromInt(90)), "SGST = %s", breakup.SGST)
		assert.True(t, breakup.IGST.IsZero())
		assert.False(t, breakup.IsInterState())
	})

	t.Run("inter-state carries full rate as IGST", func(t *testing.T) {
		breakup := SplitGST(decimal.NewFromInt(1000), decimal.NewFromInt(3), true)

		assert.True(t, breakup.CGST.IsZero())
		assert.True(t, breakup.SGST.IsZero())
		assert.True(t, breakup.IGST.Equal(decimal.NewFromInt(30)), "IGST = %s", breakup.IGST)
		assert.True(t, breakup.IsInterState())
	})
}

func TestTaxBreakup_Validate(t *testing.T) {
	t.Run("rejects IGST mixed with CGST", func(t *testing.T) {
		_, err := NewTaxBreakup(decimal.NewFromInt(10), decimal.Zero, decimal.NewFromInt(20))
		assert.Error(t, err)
	})

	t.Run("rejects negative components", func(t *testing.T) {
		_, err := NewTaxBreakup(decimal.NewFromInt(-1), decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("accepts CGST with SGST", func(t *testing.T) {
		b, err := NewTaxBreakup(decimal.NewFromInt(9), decimal.NewFromInt(9), decimal.Zero)
		require.NoError(t, err)
		assert.True(t, b.Total().Equal(decimal.NewFromInt(18)))
	})

	t.Run("accepts all-zero breakup", func(t *testing.T) {
		b, err := NewTaxBreakup(decimal.Zero, decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		assert.True(t, b.IsZero())
	})
}

func TestTaxBreakup_Prorate(t *testing.T) {
	t.Run("scales each component by returned over original quantity", func(t *testing.T) {
		original := TaxBreakup{
			CGST: decimal.NewFromInt(90),
			SGST: decimal.NewFromInt(90),
			IGST: decimal.Zero,
		}

		prorated, err := original.Prorate(decimal.NewFromInt(10), decimal.NewFromInt(4))
		require.NoError(t, err)

		assert.True(t, prorated.CGST.Equal(decimal.NewFromInt(36)), "CGST = %s", prorated.CGST)
		assert.True(t, prorated.SGST.Equal(decimal.NewFromInt(36)), "SGST = %s", prorated.SGST)
		assert.True(t, prorated.IGST.IsZero())
	})

	t.Run("full return reproduces the original breakup", func(t *testing.T) {
		original := TaxBreakup{
			CGST: decimal.Zero,
			SGST: decimal.Zero,
			IGST: decimal.NewFromFloat(52.5),
		}

		prorated, err := original.Prorate(decimal.NewFromInt(7), decimal.NewFromInt(7))
		require.NoError(t, err)
		assert.True(t, prorated.IGST.Equal(original.IGST))
	})

	t.Run("rejects zero original quantity", func(t *testing.T) {
		_, err := ZeroTaxBreakup().Prorate(decimal.Zero, decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("rejects negative returned quantity", func(t *testing.T) {
		_, err := ZeroTaxBreakup().Prorate(decimal.NewFromInt(5), decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestProrateAmount(t *testing.T) {
	result, err := ProrateAmount(decimal.NewFromInt(1000), decimal.NewFromInt(10), decimal.NewFromInt(4))
	require.NoError(t, err)
	assert.True(t, result.Equal(decimal.NewFromInt(400)), "prorated = %s", result)
}

func TestTaxBreakup_Add(t *testing.T) {
	a := TaxBreakup{CGST: decimal.NewFromInt(36), SGST: decimal.NewFromInt(36), IGST: decimal.Zero}
	b := TaxBreakup{CGST: decimal.NewFromInt(9), SGST: decimal.NewFromInt(9), IGST: decimal.Zero}

	sum := a.Add(b)
	assert.True(t, sum.CGST.Equal(decimal.NewFromInt(45)))
	assert.True(t, sum.SGST.Equal(decimal.NewFromInt(45)))
	assert.True(t, sum.Total().Equal(decimal.NewFromInt(90)))
}
