package cardvault

import (
	"github.com/cardvault/cardvault/scryfall"
	"github.com/shopspring/decimal"
)

// Rate is a point-in-time EUR/USD exchange rate pair.
type Rate struct {
	EURToUSD decimal.Decimal
	USDToEUR decimal.Decimal
}

// RateSource provides the current exchange rates. The rates package
// implements it with a file-cached provider; tests use a fixed rate.
type RateSource interface {
	Rate() (Rate, error)
}

// FixedRate returns a RateSource that always yields the given EUR→USD rate.
func FixedRate(eurToUSD float64) RateSource { return fixedRate(eurToUSD) }

type fixedRate float64

func (r fixedRate) Rate() (Rate, error) {
	eur2usd := decimal.NewFromFloat(float64(r))
	return Rate{EURToUSD: eur2usd, USDToEUR: decimal.NewFromInt(1).Div(eur2usd)}, nil
}

// SelectPrices picks the USD/EUR price pair matching a finish from a catalog
// price listing. When only one currency is listed, the other is derived
// through the exchange rate; etched printings have no EUR listing at all, so
// their EUR price is always derived. Prices are rounded to 2 decimals. ok is
// false when the printing carries no usable price for that finish.
func SelectPrices(p scryfall.Prices, finish Finish, rate Rate) (usd, eur decimal.Decimal, ok bool) {
	var u, e *decimal.Decimal
	switch finish {
	case Etched:
		u = p.USDEtched
		if u != nil {
			derived := u.Mul(rate.USDToEUR)
			e = &derived
		}
	case Foil:
		u, e = p.USDFoil, p.EURFoil
	default:
		u, e = p.USD, p.EUR
	}

	if u == nil && e != nil {
		derived := e.Mul(rate.EURToUSD)
		u = &derived
	}
	if e == nil && u != nil {
		derived := u.Mul(rate.USDToEUR)
		e = &derived
	}
	if u == nil && e == nil {
		return decimal.Decimal{}, decimal.Decimal{}, false
	}
	return u.Round(2), e.Round(2), true
}

// FillPrices refreshes a card's trend prices from a catalog listing.
// A listing with no usable price for the card's finish clears the trend
// columns rather than keeping a stale value.
func FillPrices(c *Card, p scryfall.Prices, rate Rate) {
	usd, eur, ok := SelectPrices(p, c.Finish, rate)
	if !ok {
		c.PriceUSD, c.PriceEUR = decimal.Decimal{}, decimal.Decimal{}
		return
	}
	c.PriceUSD, c.PriceEUR = usd, eur
}
