package cmd

import (
	"errors"
	"fmt"

	"github.com/cardvault/cardvault"
	"github.com/cardvault/cardvault/renderer"
)

// buildSequence drives the interactive selection loop for one direction of
// an event: repeated name searches over the source tables until the user
// submits an empty query or the quit sentinel. The returned cards are in
// selection order.
func (p *prompter) buildSequence(label string, sources ...*cardvault.Collection) ([]cardvault.Card, error) {
	b := cardvault.NewSequenceBuilder(sources...)
	for {
		query, err := p.String(fmt.Sprintf("Search %s card by name (empty or %s to finish)", label, quitSentinel), "")
		if err != nil {
			return nil, err
		}
		if query == "" || query == quitSentinel {
			return b.Cards(), nil
		}

		hits := b.Query(query)
		switch len(hits) {
		case 0:
			fmt.Fprintln(p.out, "No hits.")
		case 1:
			p.add(b, hits[0])
		default:
			printMarkdown(renderer.Cards(fmt.Sprintf("%d hits", len(hits)), hits))
			sel, err := p.String("Select rows (all, a-b, or a space/comma separated list)", "")
			if err != nil {
				return nil, err
			}
			for _, i := range cardvault.ParseSelection(sel, len(hits)) {
				p.add(b, hits[i])
			}
		}
		fmt.Fprintf(p.out, "%d card(s) selected: %s\n", b.Len(), b.Joined())
	}
}

func (p *prompter) add(b *cardvault.SequenceBuilder, card cardvault.Card) {
	switch err := b.Add(card); {
	case errors.Is(err, cardvault.ErrAlreadySelected):
		fmt.Fprintf(p.out, "%s (%s) is already selected.\n", card.Name, card.PID)
	case errors.Is(err, cardvault.ErrUnregistered):
		fmt.Fprintf(p.out, "%s has no pid yet, register it first.\n", card.Name)
	}
}
