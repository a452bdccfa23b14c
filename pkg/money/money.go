// Package money renders decimal amounts with a configurable currency symbol and unit.
package money

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/burgershop-backend/pkg/config"
)

const (
	DefaultSymbol = "₹"
	DefaultUnit   = "Rupees"
	DefaultPlaces = 2
)

type Formatter struct {
	Symbol string
	Unit   string
	Places int32
}

// Default returns the formatter used when no pricing config is supplied.
func Default() Formatter {
	return Formatter{Symbol: DefaultSymbol, Unit: DefaultUnit, Places: DefaultPlaces}
}

func FromConfig(cfg config.PricingConfig) Formatter {
	f := Formatter{
		Symbol: strings.TrimSpace(cfg.CurrencySymbol),
		Unit:   strings.TrimSpace(cfg.CurrencyUnit),
		Places: cfg.DecimalPlaces,
	}
	if f.Places < 0 {
		f.Places = DefaultPlaces
	}
	return f
}

// Amount renders "₹415.00".
func (f Formatter) Amount(d decimal.Decimal) string {
	return f.Symbol + d.StringFixed(f.Places)
}

// Total renders "₹440.00 Rupees"; the unit is dropped when empty.
func (f Formatter) Total(d decimal.Decimal) string {
	if f.Unit == "" {
		return f.Amount(d)
	}
	return f.Amount(d) + " " + f.Unit
}

// Sum adds amounts without losing precision.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
