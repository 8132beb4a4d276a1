package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/cardvault/cardvault"
	"github.com/cardvault/cardvault/scryfall"
	"github.com/google/subcommands"
)

type updateCmd struct{}

func (*updateCmd) Name() string { return "update" }
func (*updateCmd) Synopsis() string {
	return "refresh card prices from the catalog and snapshot the timeline"
}
func (*updateCmd) Usage() string              { return "update\n" }
func (c *updateCmd) SetFlags(f *flag.FlagSet) {}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Println("no arguments expected")
		return subcommands.ExitUsageError
	}

	reg, err := openRegistry()
	if err != nil {
		return fail(err)
	}

	if err := cardvault.RefreshPrices(scryfall.NewClient(), rateProvider(), reg.Vault, reg.Archive); err != nil {
		return fail(err)
	}

	entry := reg.RecordSnapshot()
	fmt.Printf("%s: %d cards, %s / %s\n", entry.Date,
		entry.CardCount,
		cardvault.FormatMoney(entry.PriceUSD, "USD"),
		cardvault.FormatMoney(entry.PriceEUR, "EUR"))

	if err := reg.Save(); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
