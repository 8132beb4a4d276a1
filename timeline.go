package cardvault

import (
	"github.com/cardvault/cardvault/date"
	"github.com/shopspring/decimal"
)

// TimelineEntry is one sample of the collection's size and value.
type TimelineEntry struct {
	Date         date.Date
	CardCount    int
	PriceUSD     decimal.Decimal
	PriceEUR     decimal.Decimal
	ChangePctUSD decimal.Decimal
	ChangePctEUR decimal.Decimal
	Comment      string
}

// Timeline is the history of the collection's total size and value, sampled
// by the update command.
type Timeline struct {
	entries []TimelineEntry
}

// NewTimeline creates a timeline holding the given entries.
func NewTimeline(entries ...TimelineEntry) *Timeline {
	return &Timeline{entries: entries}
}

// Len returns the number of entries.
func (t *Timeline) Len() int { return len(t.entries) }

// Entries returns the backing slice, oldest first. Callers must not grow it.
func (t *Timeline) Entries() []TimelineEntry { return t.entries }

// Append adds an entry at the end of the timeline.
func (t *Timeline) Append(e TimelineEntry) { t.entries = append(t.entries, e) }

// Last returns the most recent entry.
func (t *Timeline) Last() (TimelineEntry, bool) {
	if len(t.entries) == 0 {
		return TimelineEntry{}, false
	}
	return t.entries[len(t.entries)-1], true
}

// Record samples the collection at the given date. A second sample on the
// same day overwrites the first instead of appending. The percentage change
// columns compare against the preceding entry, and are only computed when
// the preceding value is positive.
func (t *Timeline) Record(on date.Date, cardCount int, usd, eur decimal.Decimal) {
	entry := TimelineEntry{
		Date:      on,
		CardCount: cardCount,
		PriceUSD:  usd,
		PriceEUR:  eur,
	}

	if last, ok := t.Last(); ok && last.Date == on {
		t.entries[len(t.entries)-1] = entry
	} else {
		t.Append(entry)
	}

	if len(t.entries) < 2 {
		return
	}
	prev := t.entries[len(t.entries)-2]
	cur := &t.entries[len(t.entries)-1]
	if prev.PriceUSD.IsPositive() {
		cur.ChangePctUSD = changePct(prev.PriceUSD, cur.PriceUSD)
	}
	if prev.PriceEUR.IsPositive() {
		cur.ChangePctEUR = changePct(prev.PriceEUR, cur.PriceEUR)
	}
}

func changePct(prev, cur decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)
	return cur.Div(prev).Sub(one).Mul(hundred).Round(2)
}
