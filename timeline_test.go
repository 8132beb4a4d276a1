package cardvault

import (
	"testing"

	"github.com/cardvault/cardvault/date"
	"github.com/shopspring/decimal"
)

func TestTimelineRecord(t *testing.T) {
	tl := NewTimeline()
	d1 := date.New(2024, 5, 16)
	d2 := date.New(2024, 5, 17)

	tl.Record(d1, 10, decimal.RequireFromString("100"), decimal.RequireFromString("80"))
	if tl.Len() != 1 {
		t.Fatalf("Len = %d, want 1", tl.Len())
	}
	first, _ := tl.Last()
	if !first.ChangePctUSD.IsZero() {
		t.Errorf("first entry has a change pct: %s", first.ChangePctUSD)
	}

	tl.Record(d2, 11, decimal.RequireFromString("110"), decimal.RequireFromString("84"))
	last, _ := tl.Last()
	if got := last.ChangePctUSD.String(); got != "10" {
		t.Errorf("usd change = %s, want 10", got)
	}
	if got := last.ChangePctEUR.String(); got != "5" {
		t.Errorf("eur change = %s, want 5", got)
	}
}

func TestTimelineSameDayOverwrites(t *testing.T) {
	tl := NewTimeline()
	d := date.New(2024, 5, 17)

	tl.Record(d, 10, decimal.RequireFromString("100"), decimal.RequireFromString("80"))
	tl.Record(d, 12, decimal.RequireFromString("120"), decimal.RequireFromString("96"))

	if tl.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (same-day overwrite)", tl.Len())
	}
	last, _ := tl.Last()
	if last.CardCount != 12 {
		t.Errorf("card count = %d, want 12", last.CardCount)
	}
}

func TestTimelineNoChangeOnZeroPrevious(t *testing.T) {
	tl := NewTimeline()
	tl.Record(date.New(2024, 5, 16), 0, decimal.Decimal{}, decimal.Decimal{})
	tl.Record(date.New(2024, 5, 17), 5, decimal.RequireFromString("50"), decimal.RequireFromString("40"))

	last, _ := tl.Last()
	if !last.ChangePctUSD.IsZero() || !last.ChangePctEUR.IsZero() {
		t.Errorf("change computed against a zero previous value: %s / %s",
			last.ChangePctUSD, last.ChangePctEUR)
	}
}
