package cardvault

import (
	"testing"

	"github.com/cardvault/cardvault/scryfall"
	"github.com/shopspring/decimal"
)

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func testRate(t *testing.T) Rate {
	t.Helper()
	r, err := FixedRate(1.25).Rate()
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestSelectPrices(t *testing.T) {
	rate := testRate(t)

	tests := []struct {
		name    string
		prices  scryfall.Prices
		finish  Finish
		wantUSD string
		wantEUR string
		wantOK  bool
	}{
		{
			name:   "non-foil both listed",
			prices: scryfall.Prices{USD: decp("2.50"), EUR: decp("2.20")},
			finish: NonFoil, wantUSD: "2.5", wantEUR: "2.2", wantOK: true,
		},
		{
			name:   "foil picks foil columns",
			prices: scryfall.Prices{USD: decp("2.50"), USDFoil: decp("10"), EURFoil: decp("9")},
			finish: Foil, wantUSD: "10", wantEUR: "9", wantOK: true,
		},
		{
			name:   "missing eur derived from usd",
			prices: scryfall.Prices{USD: decp("10")},
			finish: NonFoil, wantUSD: "10", wantEUR: "8", wantOK: true,
		},
		{
			name:   "missing usd derived from eur",
			prices: scryfall.Prices{EUR: decp("8")},
			finish: NonFoil, wantUSD: "10", wantEUR: "8", wantOK: true,
		},
		{
			name:   "etched eur always derived",
			prices: scryfall.Prices{USDEtched: decp("20"), EUR: decp("1")},
			finish: Etched, wantUSD: "20", wantEUR: "16", wantOK: true,
		},
		{
			name:   "no usable price",
			prices: scryfall.Prices{USD: decp("2.50")},
			finish: Etched, wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usd, eur, ok := SelectPrices(tt.prices, tt.finish, rate)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if usd.String() != tt.wantUSD {
				t.Errorf("usd = %s, want %s", usd, tt.wantUSD)
			}
			if eur.String() != tt.wantEUR {
				t.Errorf("eur = %s, want %s", eur, tt.wantEUR)
			}
		})
	}
}

func TestFillPricesClearsStaleValues(t *testing.T) {
	rate := testRate(t)
	c := Card{
		Finish:   Etched,
		PriceUSD: decimal.RequireFromString("5"),
		PriceEUR: decimal.RequireFromString("4"),
	}
	FillPrices(&c, scryfall.Prices{USD: decp("2.50")}, rate)
	if !c.PriceUSD.IsZero() || !c.PriceEUR.IsZero() {
		t.Errorf("stale prices kept: %s / %s", c.PriceUSD, c.PriceEUR)
	}
}
