package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cardvault/cardvault/date"
)

// quitSentinel ends the current interactive loop: a search prompt finishes
// its sequence, the comment prompt discards the event under construction.
// Each prompt site decides what the checkpoint means; the session goes on.
const quitSentinel = "--q"

// errQuit is returned by every prompt when the input stream ends before the
// session is done.
var errQuit = errors.New("session aborted")

// prompter reads typed answers from an interactive session. The reader and
// writer are injectable so that command flows are testable with scripted
// input.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// line reads one trimmed line. EOF after some input returns the partial
// line; a bare EOF aborts like the quit sentinel.
func (p *prompter) line() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			// fall through with the partial line
		} else if errors.Is(err, io.EOF) {
			return "", errQuit
		} else {
			return "", err
		}
	}
	return strings.TrimSpace(line), nil
}

// String prompts for a free-text answer. An empty answer yields def.
func (p *prompter) String(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]\n> ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s\n> ", label)
	}
	line, err := p.line()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// YesNo prompts for a yes/no answer, re-asking on anything else. An empty
// answer yields def.
func (p *prompter) YesNo(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(p.out, "%s [%s]\n> ", label, hint)
		line, err := p.line()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}

// Date prompts for a date, re-asking until it parses. An empty answer yields
// def.
func (p *prompter) Date(label string, def date.Date) (date.Date, error) {
	for {
		line, err := p.String(label, def.String())
		if err != nil {
			return date.Date{}, err
		}
		if line == "" {
			return def, nil
		}
		d, err := date.Parse(line)
		if err == nil {
			return d, nil
		}
		fmt.Fprintf(p.out, "Cannot read %q as a date, want e.g. %s.\n", line, date.DateFormat)
	}
}
