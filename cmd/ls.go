package cmd

import (
	"context"
	"flag"

	"github.com/cardvault/cardvault"
	"github.com/cardvault/cardvault/renderer"
	"github.com/google/subcommands"
)

type lsCmd struct {
	archive  bool
	timeline bool
	query    string
	n        int
	tail     bool
}

func (*lsCmd) Name() string     { return "ls" }
func (*lsCmd) Synopsis() string { return "browse the vault or the archive" }
func (*lsCmd) Usage() string {
	return `ls [-archive|-timeline] [-q <query>] [-n <count>] [-tail]

Print the vault (or the archive) as a table, with the distinct card count
and the total trend value. With -timeline, print the valuation history
sampled by the update command instead.
`
}

func (c *lsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.archive, "archive", false, "browse the archive instead of the vault")
	f.BoolVar(&c.timeline, "timeline", false, "print the valuation history instead of a card table")
	f.StringVar(&c.query, "q", "", "keep only rows whose name contains this query")
	f.IntVar(&c.n, "n", 0, "keep only this many rows (0 keeps all)")
	f.BoolVar(&c.tail, "tail", false, "with -n, keep the last rows instead of the first")
}

func (c *lsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reg, err := openRegistry()
	if err != nil {
		return fail(err)
	}

	if c.timeline {
		printMarkdown(renderer.Timeline(reg.Timeline))
		return subcommands.ExitSuccess
	}

	table, title := reg.Vault, "Vault"
	if c.archive {
		table, title = reg.Archive, "Archive"
	}

	cards := table.Cards()
	if c.query != "" {
		cards = table.Search(c.query)
	}
	if c.n > 0 && c.n < len(cards) {
		if c.tail {
			cards = cards[len(cards)-c.n:]
		} else {
			cards = cards[:c.n]
		}
	}

	printMarkdown(renderer.Cards(title, cards))
	printMarkdown(renderer.CollectionSummary(title, cardvault.NewCollection(cards...)))
	return subcommands.ExitSuccess
}
