package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/burgershop-backend/pkg/config"
)

func TestFormatterDefaults(t *testing.T) {
	f := Default()

	assert.Equal(t, "₹415.00", f.Amount(decimal.NewFromInt(415)))
	assert.Equal(t, "₹440.00 Rupees", f.Total(decimal.NewFromInt(440)))
	assert.Equal(t, "₹0.10", f.Amount(decimal.RequireFromString("0.1")))
}

func TestFormatterFromConfig(t *testing.T) {
	f := FromConfig(config.PricingConfig{CurrencySymbol: " $ ", CurrencyUnit: "", DecimalPlaces: 1})

	assert.Equal(t, "$2.5", f.Amount(decimal.RequireFromString("2.50")))
	assert.Equal(t, "$2.5", f.Total(decimal.RequireFromString("2.50")), "empty unit is omitted")

	negative := FromConfig(config.PricingConfig{CurrencySymbol: "€", DecimalPlaces: -3})
	assert.Equal(t, int32(DefaultPlaces), negative.Places)
}

func TestSumAvoidsFloatDrift(t *testing.T) {
	tenth := decimal.RequireFromString("0.1")
	total := Sum(tenth, tenth, tenth)

	require.True(t, total.Equal(decimal.RequireFromString("0.3")), "got %s", total)
	assert.True(t, Sum().IsZero())
}
