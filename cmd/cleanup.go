package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type cleanupCmd struct{}

func (*cleanupCmd) Name() string     { return "cleanup" }
func (*cleanupCmd) Synopsis() string { return "drop ghost events and sort the activity ledger" }
func (*cleanupCmd) Usage() string    { return "cleanup\n" }

func (c *cleanupCmd) SetFlags(f *flag.FlagSet) {}

func (c *cleanupCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reg, err := openRegistry()
	if err != nil {
		return fail(err)
	}

	removed := reg.Activity.Cleanup()
	fmt.Printf("Dropped %d ghost event(s), %d event(s) kept.\n", removed, reg.Activity.Len())

	if err := reg.SaveActivity(); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
