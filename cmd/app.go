// Package cmd implements the CLI application to manage a card registry.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cardvault/cardvault"
	"github.com/cardvault/cardvault/rates"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"golang.org/x/term"
)

// Commands lists every subcommand of the tool; the main package registers
// them all.
var Commands = []subcommands.Command{
	&registerCmd{},
	&eventCmd{},
	&updateCmd{},
	&cleanupCmd{},
	&lsCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config-file", "config.json", "Path to the registry config file (JSON)")

// openRegistry loads the registry named by the -config-file flag.
func openRegistry() (*cardvault.Registry, error) {
	return cardvault.OpenRegistry(*configFile)
}

// rateProvider returns the exchange-rate source, caching next to the
// registry config.
func rateProvider() cardvault.RateSource {
	return rates.NewProvider(filepath.Join(filepath.Dir(*configFile), ".rates.json"))
}

// fail prints an error to stderr and returns the failure exit status, the
// single way every command reports a fatal error.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}

// printMarkdown renders markdown to stdout. On a terminal it goes through
// glamour with the auto style; piped output stays plain so that it remains
// grep-able.
func printMarkdown(md string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(md)
		return
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		w = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(w),
	)
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
