package cardvault

import (
	"errors"
	"fmt"
	"log"

	"github.com/cardvault/cardvault/scryfall"
)

// Resolver resolves a card name to a single catalog record. The scryfall
// client backs it in the tool; tests substitute a canned catalog.
type Resolver interface {
	Resolve(name string) (scryfall.Card, error)
}

// ErrNoMatch is returned by resolvers when the catalog knows no card by that
// name. It aborts the whole registration pass like any other resolution
// failure.
var ErrNoMatch = errors.New("no catalog match")

// RegisterNewCards promotes the vault's unregistered placeholder rows (a name
// but no pid) into full records: each name is resolved against the catalog,
// assigned the next free pid, and priced for its finish.
//
// Registration is all or nothing. Every pending name must resolve before any
// row is touched; one failure aborts the pass and leaves the vault exactly as
// it was. It returns the pids minted, in row order, or (nil, nil) when no row
// was pending.
func (r *Registry) RegisterNewCards(catalog Resolver, rates RateSource) ([]string, error) {
	var pending []int
	for i, c := range r.Vault.Cards() {
		if c.Name != "" && !c.Registered() {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return nil, nil
	}

	rate, err := rates.Rate()
	if err != nil {
		return nil, fmt.Errorf("fetching exchange rates: %w", err)
	}

	known := r.AllPIDs()
	staged := make(map[int]Card, len(pending))
	var minted []string
	for _, i := range pending {
		row := r.Vault.At(i)
		hit, err := catalog.Resolve(row.Name)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", row.Name, err)
		}

		row.PID = NextID(known, "p")
		known = append(known, row.PID)
		row.ID = hit.ID
		row.Name = hit.Name
		row.SetName = hit.SetName
		if row.Language == "" {
			row.Language = hit.Lang
		}
		FillPrices(&row, hit.Prices, rate)

		staged[i] = row
		minted = append(minted, row.PID)
	}

	for _, i := range pending {
		row := staged[i]
		r.Vault.Set(i, row)
		log.Printf("registered %s as %q (%s)", row.PID, row.Name, row.SetName)
	}
	return minted, nil
}
