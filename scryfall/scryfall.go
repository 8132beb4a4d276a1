// Package scryfall implements the card-catalog lookup collaborator.
//
// The catalog is consumed synchronously by a single interactive operator.
// The client keeps a fixed ~100ms delay between requests and does not retry:
// a failed lookup is surfaced to the caller, which either retries with a new
// query (interactive search) or aborts the whole operation (batch
// registration).
package scryfall

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Card is one catalog record: a single printing of a card in a set.
type Card struct {
	ID              string `json:"id"` // catalog UUID
	Name            string `json:"name"`
	Lang            string `json:"lang"`
	Set             string `json:"set"` // short set code, e.g. "mh2"
	SetName         string `json:"set_name"`
	PrintsSearchURI string `json:"prints_search_uri"`
	Prices          Prices `json:"prices"`
}

// Prices holds the catalog's listed prices for one printing. A nil entry
// means the printing is not listed in that currency/finish.
type Prices struct {
	USD       *decimal.Decimal
	USDFoil   *decimal.Decimal
	USDEtched *decimal.Decimal
	EUR       *decimal.Decimal
	EURFoil   *decimal.Decimal
}

// UnmarshalJSON decodes the catalog's price object, where every price is a
// decimal string or null. Comma decimal marks are tolerated and unparsable
// values are treated as unlisted.
func (p *Prices) UnmarshalJSON(b []byte) error {
	var raw map[string]*string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	p.USD = parsePrice(raw["usd"])
	p.USDFoil = parsePrice(raw["usd_foil"])
	p.USDEtched = parsePrice(raw["usd_etched"])
	p.EUR = parsePrice(raw["eur"])
	p.EURFoil = parsePrice(raw["eur_foil"])
	return nil
}

func parsePrice(s *string) *decimal.Decimal {
	if s == nil {
		return nil
	}
	clean := strings.ReplaceAll(strings.TrimSpace(*s), ",", ".")
	if clean == "" {
		return nil
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return nil
	}
	return &d
}
