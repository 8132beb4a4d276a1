package cardvault

import (
	"sort"
	"strings"

	"github.com/cardvault/cardvault/date"
)

// Placeholder marks an empty direction column in an event record.
const Placeholder = "-"

// Direction names one side of a movement event.
type Direction string

const (
	In  Direction = "in"
	Out Direction = "out"
)

// Event is a single activity-ledger entry: the cards that moved in and out
// on a given date. In and Out hold space-separated pids, or Placeholder when
// the side is empty.
type Event struct {
	ID      string
	In      string
	Out     string
	Date    date.Date
	Comment string
}

// Side returns the event's column for the given direction.
func (e Event) Side(d Direction) string {
	if d == In {
		return e.In
	}
	return e.Out
}

// References reports whether the event's direction column contains pid as a
// whole token. A substring match is not enough: "p00012" must not be found
// inside "p000120".
func (e Event) References(d Direction, pid string) bool {
	for _, tok := range strings.Fields(e.Side(d)) {
		if tok == pid {
			return true
		}
	}
	return false
}

// Ghost reports whether both direction columns are empty placeholders.
// Ghost events are dropped by Cleanup.
func (e Event) Ghost() bool { return e.In == Placeholder && e.Out == Placeholder }

// JoinPIDs renders a pid list as an event column value: space-joined, or
// Placeholder when the list is empty.
func JoinPIDs(pids []string) string {
	if len(pids) == 0 {
		return Placeholder
	}
	return strings.Join(pids, " ")
}

// Activity is the ordered ledger of movement events. It is append-mostly:
// events are only mutated when a pid's history is reclaimed by a newer
// event, and only removed when they become ghosts.
type Activity struct {
	events []Event
}

// NewActivity creates a ledger holding the given events.
func NewActivity(events ...Event) *Activity {
	return &Activity{events: events}
}

// Len returns the number of events.
func (a *Activity) Len() int { return len(a.events) }

// Events returns the backing slice, in ledger order. Callers must not grow it.
func (a *Activity) Events() []Event { return a.events }

// Append adds an event at the end of the ledger.
func (a *Activity) Append(e Event) { a.events = append(a.events, e) }

// IDs returns all event ids, in ledger order.
func (a *Activity) IDs() []string {
	ids := make([]string, len(a.events))
	for i, e := range a.events {
		ids[i] = e.ID
	}
	return ids
}

// RemovePID strips every whole-token occurrence of pid from the direction
// column of all events. Remaining tokens are re-joined with single spaces; a
// column left empty becomes Placeholder. This runs before a new event claims
// a pid, so that each pid is referenced by at most one ledger entry per
// direction.
func (a *Activity) RemovePID(d Direction, pid string) {
	for i := range a.events {
		side := &a.events[i].In
		if d == Out {
			side = &a.events[i].Out
		}
		toks := strings.Fields(*side)
		kept := toks[:0]
		for _, tok := range toks {
			if tok != pid && tok != Placeholder {
				kept = append(kept, tok)
			}
		}
		*side = JoinPIDs(kept)
	}
}

// Cleanup drops ghost events and stable-sorts the ledger ascending by date.
// Events with an unknown (zero) date sort after all dated events. Running
// Cleanup twice yields the same ledger as running it once.
func (a *Activity) Cleanup() (removed int) {
	kept := a.events[:0]
	for _, e := range a.events {
		if e.Ghost() {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	a.events = kept

	sort.SliceStable(a.events, func(i, j int) bool {
		di, dj := a.events[i].Date, a.events[j].Date
		if di.IsZero() {
			return false
		}
		if dj.IsZero() {
			return true
		}
		return di.Before(dj)
	})
	return removed
}

// EventRef ties a prior event to the card whose pid matched it, for the
// pre-commit preview of history that a new event is about to rewrite.
type EventRef struct {
	Event
	Direction   Direction
	SubjectPID  string
	SubjectName string
}

// PriorEvents returns, for each given card, the events whose direction
// column references its pid. One EventRef per (card, event) pair, in card
// order then ledger order.
func (a *Activity) PriorEvents(d Direction, cards []Card) []EventRef {
	var refs []EventRef
	for _, card := range cards {
		for _, e := range a.events {
			if e.References(d, card.PID) {
				refs = append(refs, EventRef{
					Event:       e,
					Direction:   d,
					SubjectPID:  card.PID,
					SubjectName: card.Name,
				})
			}
		}
	}
	return refs
}
