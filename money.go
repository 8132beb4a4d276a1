package cardvault

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount in the currency's conventional format
// ("$12.30", "€4.50"). Used for totals in reports; all arithmetic stays in
// decimals.
func FormatMoney(amount decimal.Decimal, currency string) string {
	// calling the constructor is the only way to get a never-nil currency
	cur := money.New(0, currency).Currency()
	dec := amount.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}
