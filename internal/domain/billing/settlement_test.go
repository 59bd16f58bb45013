package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateExchangeSettlement(t *testing.T) {
	credit := decimal.NewFromInt(472)

	t.Run("customer owes the difference when new items cost more", func(t *testing.T) {
		settlement, err := CalculateExchangeSettlement(credit, []ExchangeItem{
			{Description: "18K Gold Pendant", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(600)},
		})
		require.NoError(t, err)

		assert.True(t, settlement.NewItemsTotal.Equal(decimal.NewFromInt(600)))
		assert.True(t, settlement.CreditUsed.Equal(decimal.NewFromInt(472)))
		assert.True(t, settlement.BalanceDue.Equal(decimal.NewFromInt(128)))
	})

	t.Run("credit remainder shows as negative balance", func(t *testing.T) {
		settlement, err := CalculateExchangeSettlement(credit, []ExchangeItem{
			{Description: "Silver Toe Ring", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(150)},
		})
		require.NoError(t, err)

		assert.True(t, settlement.NewItemsTotal.Equal(decimal.NewFromInt(300)))
		assert.True(t, settlement.CreditUsed.Equal(decimal.NewFromInt(300)))
		assert.True(t, settlement.BalanceDue.Equal(decimal.NewFromInt(-172)))
	})

	t.Run("exact exchange zeroes the balance", func(t *testing.T) {
		settlement, err := CalculateExchangeSettlement(credit, []ExchangeItem{
			{Description: "Gold Nose Pin", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(472)},
		})
		require.NoError(t, err)

		assert.True(t, settlement.CreditUsed.Equal(credit))
		assert.True(t, settlement.BalanceDue.IsZero())
	})

	t.Run("sums multiple replacement lines", func(t *testing.T) {
		settlement, err := CalculateExchangeSettlement(credit, []ExchangeItem{
			{Description: "Bangle", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(200)},
			{Description: "Earrings", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(250)},
		})
		require.NoError(t, err)
		assert.True(t, settlement.NewItemsTotal.Equal(decimal.NewFromInt(650)))
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		_, err := CalculateExchangeSettlement(credit, nil)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		_, err := CalculateExchangeSettlement(credit, []ExchangeItem{
			{Description: "Bangle", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(200)},
		})
		assert.Error(t, err)
	})

	t.Run("rejects negative prices", func(t *testing.T) {
		_, err := CalculateExchangeSettlement(credit, []ExchangeItem{
			{Description: "Bangle", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(-5)},
		})
		assert.Error(t, err)
	})
}
