package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/cardvault/cardvault/date"
)

func scripted(input string) (*prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return newPrompter(strings.NewReader(input), &out), &out
}

func TestPromptString(t *testing.T) {
	p, _ := scripted("hello\n")
	got, err := p.String("Say something", "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Errorf("got %q", got)
	}
}

func TestPromptStringDefault(t *testing.T) {
	p, _ := scripted("\n")
	got, err := p.String("Say something", "fallback")
	if err != nil {
		t.Fatal(err)
	}
	if got != "fallback" {
		t.Errorf("got %q, want the default", got)
	}
}

func TestPromptSentinelPassesThrough(t *testing.T) {
	p, _ := scripted("--q\n")
	got, err := p.String("Say something", "")
	if err != nil {
		t.Fatal(err)
	}
	if got != quitSentinel {
		t.Errorf("got %q, want the sentinel for the prompt site to handle", got)
	}
}

func TestPromptEOFQuits(t *testing.T) {
	p, _ := scripted("")
	if _, err := p.String("Say something", ""); !errors.Is(err, errQuit) {
		t.Fatalf("err = %v, want errQuit on EOF", err)
	}
}

func TestPromptYesNo(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"yes\n", false, true},
		{"n\n", true, false},
		{"no\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"maybe\ny\n", false, true}, // re-asks on garbage
	}
	for _, tt := range tests {
		p, _ := scripted(tt.input)
		got, err := p.YesNo("Sure?", tt.def)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("YesNo(%q, %v) = %v, want %v", tt.input, tt.def, got, tt.want)
		}
	}
}

func TestPromptDate(t *testing.T) {
	p, out := scripted("not-a-date\n2024-5-17\n")
	got, err := p.Date("Event date", date.New(2024, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if got != date.New(2024, 5, 17) {
		t.Errorf("got %v", got)
	}
	if !strings.Contains(out.String(), "Cannot read") {
		t.Error("missing re-ask message")
	}
}

func TestPromptDateDefault(t *testing.T) {
	def := date.New(2024, 1, 1)
	p, _ := scripted("\n")
	got, err := p.Date("Event date", def)
	if err != nil {
		t.Fatal(err)
	}
	if got != def {
		t.Errorf("got %v, want the default", got)
	}
}
