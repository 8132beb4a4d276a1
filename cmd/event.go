package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/cardvault/cardvault"
	"github.com/cardvault/cardvault/date"
	"github.com/cardvault/cardvault/renderer"
	"github.com/google/subcommands"
)

type eventCmd struct{}

func (*eventCmd) Name() string     { return "event" }
func (*eventCmd) Synopsis() string { return "record card movements in the activity ledger" }
func (*eventCmd) Usage() string {
	return `event

Interactively record movement events: cards coming in, cards going out, or
both. At a search prompt --q (or nothing) ends the search; at the comment
prompt --q discards the event under construction.
`
}
func (c *eventCmd) SetFlags(f *flag.FlagSet) {}

func (c *eventCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reg, err := openRegistry()
	if err != nil {
		return fail(err)
	}

	p := newPrompter(os.Stdin, os.Stdout)
	if err := runEventSession(p, reg); err != nil {
		if errors.Is(err, errQuit) {
			fmt.Println("Session aborted, nothing saved.")
			return subcommands.ExitSuccess
		}
		return fail(err)
	}
	return subcommands.ExitSuccess
}

func runEventSession(p *prompter, reg *cardvault.Registry) error {
	for {
		if err := buildAndCommitEvent(p, reg); err != nil {
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
	return saveSession(p, reg)
}

func buildAndCommitEvent(p *prompter, reg *cardvault.Registry) error {
	draft := reg.NewEventDraft()

	inbound, err := p.buildSequence("inbound", reg.Vault, reg.Archive)
	if err != nil {
		return err
	}
	draft.Inbound = inbound

	outbound, err := p.buildSequence("outbound", reg.Archive)
	if err != nil {
		return err
	}
	draft.Outbound = outbound

	if draft.Empty() {
		fmt.Fprintln(p.out, "Nothing selected, no event recorded.")
		return nil
	}
	return previewAndCommit(p, reg, draft)
}

// previewAndCommit resolves the event date, shows the preview and the prior
// events a commit would rewrite, then asks for the comment. The quit sentinel
// discards the draft without touching any table; any other answer, the empty
// string included, is the comment and the event commits.
func previewAndCommit(p *prompter, reg *cardvault.Registry, draft *cardvault.EventDraft) error {
	var err error
	if on, ok := draft.ResolveDate(); ok {
		draft.Date = on
	} else {
		draft.Date, err = p.Date("Event date", date.Today())
		if err != nil {
			return err
		}
	}

	printMarkdown(renderer.EventPreview(draft))
	if refs := reg.PriorEvents(draft); len(refs) > 0 {
		printMarkdown(renderer.PriorEvents(refs))
	}

	comment, err := p.String(fmt.Sprintf("Comment for event %s (%s discards it)", draft.ID, quitSentinel), "")
	if err != nil {
		return err
	}
	if comment == quitSentinel {
		fmt.Fprintf(p.out, "Event %s discarded.\n", draft.ID)
		return nil
	}
	draft.Comment = comment

	if err := reg.CommitEvent(draft); err != nil {
		return err
	}
	fmt.Fprintf(p.out, "Event %s recorded.\n", draft.ID)
	return nil
}

// saveSession runs the ledger cleanup and asks before writing anything to
// disk; the default is to discard the session.
func saveSession(p *prompter, reg *cardvault.Registry) error {
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
	if err := reg.SaveCollections(); err != nil {
		return err
	}
	if err := reg.SaveActivity(); err != nil {
		return err
	}
	fmt.Fprintln(p.out, "Saved.")
	return nil
}
