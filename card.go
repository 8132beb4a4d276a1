package cardvault

import (
	"strings"

	"github.com/cardvault/cardvault/date"
	"github.com/shopspring/decimal"
)

// Finish is the printing variant of a card.
type Finish string

const (
	NonFoil Finish = "non-foil"
	Foil    Finish = "foil"
	Etched  Finish = "etched"
)

// ParseFinish coerces a raw finish value. Anything that is not a known
// finish, the empty string included, becomes NonFoil.
func ParseFinish(s string) Finish {
	switch Finish(s) {
	case Foil, Etched:
		return Finish(s)
	default:
		return NonFoil
	}
}

// Card is a single physical card record.
//
// PID is the persistent identifier ("p" + 5-digit sequence). It is unique
// across vault and archive. ID is the catalog UUID the card resolves to; a
// row with a name but no PID is an unregistered placeholder waiting for the
// new-card registrar.
type Card struct {
	PID       string
	ID        string
	Name      string
	SetName   string
	Finish    Finish
	Language  string
	Condition string
	Comment   string
	InDate    date.Date
	OutDate   date.Date
	PriceUSD  decimal.Decimal // "price trend usd" column
	PriceEUR  decimal.Decimal // "price trend eur" column
}

// Registered reports whether the card has been assigned a pid.
func (c Card) Registered() bool { return c.PID != "" }

// Collection is an ordered table of card records: the vault or the archive.
type Collection struct {
	cards []Card
}

// NewCollection creates a collection holding the given cards.
func NewCollection(cards ...Card) *Collection {
	return &Collection{cards: cards}
}

// Len returns the number of rows.
func (c *Collection) Len() int { return len(c.cards) }

// Cards returns the backing slice, in table order. Callers must not grow it.
func (c *Collection) Cards() []Card { return c.cards }

// At returns the i-th row.
func (c *Collection) At(i int) Card { return c.cards[i] }

// Set replaces the i-th row.
func (c *Collection) Set(i int, card Card) { c.cards[i] = card }

// Append adds rows at the end of the table.
func (c *Collection) Append(cards ...Card) { c.cards = append(c.cards, cards...) }

// Get returns the first row with this pid.
func (c *Collection) Get(pid string) (Card, bool) {
	for _, card := range c.cards {
		if card.PID == pid {
			return card, true
		}
	}
	return Card{}, false
}

// Contains reports whether a row with this pid exists.
func (c *Collection) Contains(pid string) bool {
	_, ok := c.Get(pid)
	return ok
}

// Update applies fn to every row with this pid and reports whether any row
// matched.
func (c *Collection) Update(pid string, fn func(*Card)) bool {
	found := false
	for i := range c.cards {
		if c.cards[i].PID == pid {
			fn(&c.cards[i])
			found = true
		}
	}
	return found
}

// PIDs returns all pids in table order, including empty placeholders.
func (c *Collection) PIDs() []string {
	pids := make([]string, len(c.cards))
	for i, card := range c.cards {
		pids[i] = card.PID
	}
	return pids
}

// Search returns the rows whose name contains query, case-insensitively.
func (c *Collection) Search(query string) []Card {
	q := strings.ToLower(query)
	var hits []Card
	for _, card := range c.cards {
		if strings.Contains(strings.ToLower(card.Name), q) {
			hits = append(hits, card)
		}
	}
	return hits
}

// CountDistinct returns the number of distinct registered pids.
func (c *Collection) CountDistinct() int {
	seen := make(map[string]struct{}, len(c.cards))
	for _, card := range c.cards {
		if card.PID == "" {
			continue
		}
		seen[card.PID] = struct{}{}
	}
	return len(seen)
}

// TotalValue sums the trend prices over all rows.
func (c *Collection) TotalValue() (usd, eur decimal.Decimal) {
	for _, card := range c.cards {
		usd = usd.Add(card.PriceUSD)
		eur = eur.Add(card.PriceEUR)
	}
	return usd.Round(2), eur.Round(2)
}

// Transfer moves the rows with the given pids from src to dst, preserving
// their order. Fields that have no column in dst's schema are dropped so
// that source-only data does not leak into the destination file. It returns
// the pids actually moved.
func Transfer(src, dst *Collection, pids []string, dstSchema *Schema) []string {
	want := make(map[string]bool, len(pids))
	for _, pid := range pids {
		want[pid] = true
	}

	var kept []Card
	var moved []string
	for _, card := range src.cards {
		if !want[card.PID] {
			kept = append(kept, card)
			continue
		}
		dst.Append(dstSchema.strip(card))
		moved = append(moved, card.PID)
	}
	src.cards = kept
	return moved
}
