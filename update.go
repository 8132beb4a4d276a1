package cardvault

import (
	"fmt"
	"log"

	"github.com/cardvault/cardvault/date"
	"github.com/cardvault/cardvault/scryfall"
)

// BatchFetcher fetches catalog records for a list of catalog ids. Unknown
// ids are reported, not fatal.
type BatchFetcher interface {
	Batch(ids []string) (cards []scryfall.Card, notFound []string, err error)
}

// RefreshPrices refreshes the trend prices of every registered row in the
// given collections from the catalog. Catalog records are fetched once per
// distinct id; rows sharing an id (several copies of the same printing) are
// priced from the same record, each for its own finish. Rows whose id the
// catalog does not know keep their current prices, with a warning.
func RefreshPrices(catalog BatchFetcher, rates RateSource, collections ...*Collection) error {
	rate, err := rates.Rate()
	if err != nil {
		return fmt.Errorf("fetching exchange rates: %w", err)
	}

	var ids []string
	seen := make(map[string]bool)
	for _, c := range collections {
		for _, card := range c.Cards() {
			if card.ID == "" || seen[card.ID] {
				continue
			}
			seen[card.ID] = true
			ids = append(ids, card.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	log.Printf("fetching %d catalog record(s)", len(ids))

	records, notFound, err := catalog.Batch(ids)
	if err != nil {
		return err
	}
	for _, id := range notFound {
		log.Printf("warning, catalog does not know %q, keeping current prices", id)
	}

	byID := make(map[string]scryfall.Card, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}

	for _, c := range collections {
		for i := range c.Cards() {
			card := c.At(i)
			rec, ok := byID[card.ID]
			if !ok {
				continue
			}
			FillPrices(&card, rec.Prices, rate)
			c.Set(i, card)
		}
	}
	return nil
}

// RecordSnapshot samples today's vault valuation into the timeline: distinct
// card count and total trend value in both currencies. Running it twice on
// the same day overwrites the first snapshot.
func (r *Registry) RecordSnapshot() TimelineEntry {
	usd, eur := r.Vault.TotalValue()
	r.Timeline.Record(date.Today(), r.Vault.CountDistinct(), usd, eur)
	last, _ := r.Timeline.Last()
	return last
}
