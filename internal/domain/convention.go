package domain

import (
	"strconv"
	"strings"
)

// QuoteConvention is the display convention for an instrument class:
// how many decimals to print and how large one pip/point is in price units.
type QuoteConvention struct {
	Decimals int
	PipSize  float64
}

// DefaultConvention applies to any instrument not matched below:
// four decimals, 0.0001 pip (standard forex quoting).
var DefaultConvention = QuoteConvention{Decimals: 4, PipSize: 0.0001}

var conventionByInstrument = map[string]QuoteConvention{
	"XAUUSD": {Decimals: 2, PipSize: 0.1},
	"XAGUSD": {Decimals: 3, PipSize: 0.01},
	"BTCUSD": {Decimals: 2, PipSize: 1},
	"ETHUSD": {Decimals: 2, PipSize: 1},
	"US30":   {Decimals: 1, PipSize: 1},
	"NAS100": {Decimals: 1, PipSize: 1},
	"SPX500": {Decimals: 1, PipSize: 1},
	"GER40":  {Decimals: 1, PipSize: 1},
}

// ConventionFor resolves the quoting convention for an instrument. JPY
// crosses quote with two decimals and a 0.01 pip; anything unknown falls
// back to DefaultConvention.
func ConventionFor(instrument string) QuoteConvention {
	symbol := strings.ToUpper(strings.TrimSpace(instrument))
	if conv, ok := conventionByInstrument[symbol]; ok {
		return conv
	}
	if strings.HasSuffix(symbol, "JPY") {
		return QuoteConvention{Decimals: 2, PipSize: 0.01}
	}
	return DefaultConvention
}

// FormatPrice renders a price with the instrument's decimal convention.
func FormatPrice(instrument string, price float64) string {
	return strconv.FormatFloat(price, 'f', ConventionFor(instrument).Decimals, 64)
}
