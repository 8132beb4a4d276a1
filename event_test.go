package cardvault

import (
	"testing"

	"github.com/cardvault/cardvault/date"
)

func TestEventReferencesWholeTokens(t *testing.T) {
	e := Event{In: "p00012 p00120", Out: "-"}

	if !e.References(In, "p00012") {
		t.Error("p00012 should be referenced")
	}
	if !e.References(In, "p00120") {
		t.Error("p00120 should be referenced")
	}
	if e.References(In, "p0012") {
		t.Error("p0012 must not match inside p00120 or p00012")
	}
	if e.References(Out, "p00012") {
		t.Error("out column is empty")
	}
}

func TestRemovePID(t *testing.T) {
	a := NewActivity(
		Event{ID: "e00001", In: "p00001 p00002 p00003", Out: "-"},
		Event{ID: "e00002", In: "p00002", Out: "p00009"},
	)

	a.RemovePID(In, "p00002")

	if got := a.Events()[0].In; got != "p00001 p00003" {
		t.Errorf("e00001 in = %q, want %q", got, "p00001 p00003")
	}
	if got := a.Events()[1].In; got != "-" {
		t.Errorf("e00002 in = %q, want %q (emptied column becomes the placeholder)", got, "-")
	}
	if got := a.Events()[1].Out; got != "p00009" {
		t.Errorf("e00002 out = %q, want untouched %q", got, "p00009")
	}
}

func TestRemovePIDWholeTokenOnly(t *testing.T) {
	a := NewActivity(Event{ID: "e00001", In: "p00012 p00120", Out: "-"})
	a.RemovePID(In, "p00012")
	if got := a.Events()[0].In; got != "p00120" {
		t.Errorf("in = %q, want %q", got, "p00120")
	}
}

func TestCleanup(t *testing.T) {
	a := NewActivity(
		Event{ID: "e00001", In: "-", Out: "-", Date: date.New(2024, 1, 1)}, // ghost
		Event{ID: "e00002", In: "p00001", Out: "-", Date: date.New(2024, 3, 1)},
		Event{ID: "e00003", In: "p00002", Out: "-"}, // unknown date
		Event{ID: "e00004", In: "p00003", Out: "-", Date: date.New(2024, 1, 15)},
	)

	removed := a.Cleanup()
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	want := []string{"e00004", "e00002", "e00003"}
	for i, e := range a.Events() {
		if e.ID != want[i] {
			t.Errorf("event %d = %s, want %s", i, e.ID, want[i])
		}
	}

	// idempotent
	if removed := a.Cleanup(); removed != 0 {
		t.Errorf("second Cleanup removed %d events, want 0", removed)
	}
	for i, e := range a.Events() {
		if e.ID != want[i] {
			t.Errorf("after second Cleanup event %d = %s, want %s", i, e.ID, want[i])
		}
	}
}

func TestJoinPIDs(t *testing.T) {
	if got := JoinPIDs(nil); got != "-" {
		t.Errorf("JoinPIDs(nil) = %q, want %q", got, "-")
	}
	if got := JoinPIDs([]string{"p00001", "p00002"}); got != "p00001 p00002" {
		t.Errorf("JoinPIDs = %q, want %q", got, "p00001 p00002")
	}
}

func TestPriorEvents(t *testing.T) {
	a := NewActivity(
		Event{ID: "e00001", In: "p00001 p00002", Out: "-", Date: date.New(2024, 1, 1)},
		Event{ID: "e00002", In: "-", Out: "p00001", Date: date.New(2024, 2, 1)},
	)
	refs := a.PriorEvents(In, []Card{{PID: "p00001", Name: "Brainstorm"}})
	if len(refs) != 1 {
		t.Fatalf("got %d refs, want 1", len(refs))
	}
	if refs[0].ID != "e00001" || refs[0].SubjectName != "Brainstorm" || refs[0].Direction != In {
		t.Errorf("unexpected ref: %+v", refs[0])
	}
}
