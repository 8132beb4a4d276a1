package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/cardvault/cardvault"
	"github.com/cardvault/cardvault/renderer"
	"github.com/cardvault/cardvault/scryfall"
	"github.com/google/subcommands"
)

type registerCmd struct{}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "register new cards and their acquisition events" }
func (*registerCmd) Usage() string {
	return `register

Resolve the vault rows that have a name but no pid against the card catalog,
then record acquisition events for the cards no event references yet. With
no unassigned cards left the event is outbound-only, searching the vault. At
a search prompt --q (or nothing) ends the search; at the comment prompt --q
discards the event under construction.
`
}
func (c *registerCmd) SetFlags(f *flag.FlagSet) {}

func (c *registerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reg, err := openRegistry()
	if err != nil {
		return fail(err)
	}

	p := newPrompter(os.Stdin, os.Stdout)
	resolver := &interactiveResolver{p: p, client: scryfall.NewClient()}

	minted, err := reg.RegisterNewCards(resolver, rateProvider())
	if errors.Is(err, errQuit) {
		fmt.Println("Session aborted, nothing saved.")
		return subcommands.ExitSuccess
	}
	if err != nil {
		return fail(err)
	}
	if len(minted) == 0 {
		fmt.Println("No pending card rows.")
	} else {
		fmt.Printf("Registered %d new card(s).\n", len(minted))
	}

	if err := runAssignmentSession(p, reg); err != nil {
		if errors.Is(err, errQuit) {
			fmt.Println("Session aborted, nothing saved.")
			return subcommands.ExitSuccess
		}
		return fail(err)
	}
	return subcommands.ExitSuccess
}

// interactiveResolver resolves a card name against the catalog, delegating
// ambiguity to the human: first the ranked name search, then the exact
// printing among the card's prints.
type interactiveResolver struct {
	p      *prompter
	client *scryfall.Client
}

func (r *interactiveResolver) Resolve(name string) (scryfall.Card, error) {
	hits, err := r.client.SearchByName(name)
	if err != nil {
		return scryfall.Card{}, err
	}
	if len(hits) == 0 {
		return scryfall.Card{}, fmt.Errorf("%w for %q", cardvault.ErrNoMatch, name)
	}

	prints, err := r.client.PrintsByURI(hits[0].PrintsSearchURI, "")
	if err != nil {
		return scryfall.Card{}, err
	}
	if len(prints) == 0 {
		return hits[0], nil
	}
	if len(prints) == 1 {
		return prints[0], nil
	}
	return r.pickPrint(name, prints)
}

func (r *interactiveResolver) pickPrint(name string, prints []scryfall.Card) (scryfall.Card, error) {
	fmt.Fprintf(r.p.out, "%d printings of %q:\n", len(prints), name)
	for i, pr := range prints {
		fmt.Fprintf(r.p.out, "%3d. %s (%s, %s)\n", i+1, pr.Name, pr.SetName, pr.Lang)
	}
	for {
		answer, err := r.p.String("Pick the printing", "1")
		if err != nil {
			return scryfall.Card{}, err
		}
		idx, err := strconv.Atoi(answer)
		if err == nil && idx >= 1 && idx <= len(prints) {
			return prints[idx-1], nil
		}
		fmt.Fprintf(r.p.out, "Want a number between 1 and %d.\n", len(prints))
	}
}

// unassigned returns the vault cards no inbound event references yet, the
// pool the assignment session draws from.
func unassigned(reg *cardvault.Registry) []cardvault.Card {
	var pool []cardvault.Card
	for _, card := range reg.Vault.Cards() {
		if !card.Registered() {
			continue
		}
		referenced := false
		for _, e := range reg.Activity.Events() {
			if e.References(cardvault.In, card.PID) {
				referenced = true
				break
			}
		}
		if !referenced {
			pool = append(pool, card)
		}
	}
	return pool
}

func runAssignmentSession(p *prompter, reg *cardvault.Registry) error {
	for {
		pool := unassigned(reg)
		draft := reg.NewEventDraft()

		if len(pool) == 0 {
			fmt.Fprintln(p.out, "No unassigned cards, recording an outbound-only event.")
		} else {
			printMarkdown(renderer.Cards(fmt.Sprintf("%d unassigned card(s)", len(pool)), pool))
			sel, err := p.String("Select rows for one acquisition event (all, a-b, a list; empty to stop)", "")
			if err != nil {
				return err
			}
			if sel == "" || sel == quitSentinel {
				break
			}
			indices := cardvault.ParseSelection(sel, len(pool))
			if len(indices) == 0 {
				fmt.Fprintln(p.out, "Nothing selected.")
				continue
			}
			for _, i := range indices {
				draft.Inbound = append(draft.Inbound, pool[i])
			}
		}

		outbound, err := p.buildSequence("outbound", reg.Vault)
		if err != nil {
			return err
		}
		draft.Outbound = outbound

		if draft.Empty() {
			fmt.Fprintln(p.out, "Nothing selected, no event recorded.")
		} else if err := previewAndCommit(p, reg, draft); err != nil {
			return err
		}

		again, err := p.YesNo("Record another event?", true)
		if err != nil {
			return err
		}
		if !again {
			break
		}
	}

	return saveAll(p, reg)
}

// saveAll is the register command's end-of-session prompt: new pids and
// price back-fills touch every table, so a yes writes them all.
func saveAll(p *prompter, reg *cardvault.Registry) error {
	if removed := reg.Activity.Cleanup(); removed > 0 {
		fmt.Fprintf(p.out, "Dropped %d ghost event(s).\n", removed)
	}
	save, err := p.YesNo("Save the session?", false)
	if err != nil {
		return err
	}
	if !save {
		fmt.Fprintln(p.out, "Session discarded.")
		return nil
	}
	if err := reg.Save(); err != nil {
		return err
	}
	fmt.Fprintln(p.out, "Saved.")
	return nil
}
