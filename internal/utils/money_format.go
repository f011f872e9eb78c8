package utils

import (
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with two decimal places, the display
// precision used across CSV exports and PDFs.
// Example: 12.3456 returns "12.35", 5 returns "5.00".
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatMoneyWithSymbol prefixes the formatted amount with a currency
// symbol, e.g. "$1250.00".
func FormatMoneyWithSymbol(symbol string, amount decimal.Decimal) string {
	return symbol + FormatMoney(amount)
}
