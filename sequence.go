package cardvault

import (
	"errors"
	"fmt"
)

// ErrAlreadySelected is returned by SequenceBuilder.Add when a card's pid is
// already part of the sequence being built.
var ErrAlreadySelected = errors.New("card has already been selected")

// ErrUnregistered is returned by SequenceBuilder.Add for a pending row with
// no pid: the ledger references cards by pid, so an event cannot claim a card
// before the registrar names it.
var ErrUnregistered = errors.New("card has no pid yet")

// SequenceBuilder accumulates an ordered sequence of distinct pids
// representing one direction of an event. It is a pure engine: the
// interactive loop (prompting, sentinel handling, index selection) lives in
// the driver, which feeds resolved choices back in through Add.
type SequenceBuilder struct {
	sources []*Collection
	pids    []string
	cards   []Card
}

// NewSequenceBuilder creates a builder searching the given source tables.
func NewSequenceBuilder(sources ...*Collection) *SequenceBuilder {
	return &SequenceBuilder{sources: sources}
}

// Query returns the candidate cards matching the query across all sources.
func (b *SequenceBuilder) Query(query string) []Card {
	return SearchAll(b.sources, query)
}

// Add appends a chosen card to the sequence. A pid already in the sequence
// is rejected with ErrAlreadySelected and the sequence is left unchanged;
// the first source-table match for a pid is the one that sticks.
func (b *SequenceBuilder) Add(card Card) error {
	if !card.Registered() {
		return ErrUnregistered
	}
	for _, pid := range b.pids {
		if pid == card.PID {
			return ErrAlreadySelected
		}
	}
	b.pids = append(b.pids, card.PID)
	b.cards = append(b.cards, card)
	return nil
}

// AddAt adds the i-th card of a hit list, for drivers working from an
// indexed selection.
func (b *SequenceBuilder) AddAt(hits []Card, i int) error {
	if i < 0 || i >= len(hits) {
		return fmt.Errorf("index %d out of range", i+1)
	}
	return b.Add(hits[i])
}

// Len returns the number of selected cards.
func (b *SequenceBuilder) Len() int { return len(b.pids) }

// PIDs returns the selected pids in selection order.
func (b *SequenceBuilder) PIDs() []string { return b.pids }

// Cards returns the selected rows, one per pid, in selection order.
func (b *SequenceBuilder) Cards() []Card { return b.cards }

// Joined returns the space-joined pid string, or the event placeholder when
// nothing was selected.
func (b *SequenceBuilder) Joined() string { return JoinPIDs(b.pids) }
