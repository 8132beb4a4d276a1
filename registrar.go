package cardvault

import (
	"errors"

	"github.com/cardvault/cardvault/date"
)

// ErrEmptyEvent is returned by CommitEvent when both directions are empty.
// Such an event would be a ghost from birth and is discarded without a
// prompt.
var ErrEmptyEvent = errors.New("both inbound and outbound are empty")

// EventDraft is an event under construction: both card sequences are
// resolved, the date and comment may still be pending. Discarding a draft
// mutates nothing.
type EventDraft struct {
	ID       string
	Date     date.Date
	Comment  string
	Inbound  []Card
	Outbound []Card
}

// NewEventDraft allocates a draft with the next free event id.
func (r *Registry) NewEventDraft() *EventDraft {
	return &EventDraft{ID: r.NewEventID()}
}

// Empty reports whether the draft has no cards on either side.
func (d *EventDraft) Empty() bool { return len(d.Inbound) == 0 && len(d.Outbound) == 0 }

// InboundPIDs returns the inbound pids in selection order.
func (d *EventDraft) InboundPIDs() []string { return pidsOf(d.Inbound) }

// OutboundPIDs returns the outbound pids in selection order.
func (d *EventDraft) OutboundPIDs() []string { return pidsOf(d.Outbound) }

func pidsOf(cards []Card) []string {
	pids := make([]string, len(cards))
	for i, c := range cards {
		pids[i] = c.PID
	}
	return pids
}

// ResolveDate computes the event date from the cards' own date metadata: the
// mode of the inbound rows' in dates, overridden by the mode of the outbound
// rows' out dates when one exists. ok is false when neither side carries a
// date, in which case the driver prompts the human with today as default.
func (d *EventDraft) ResolveDate() (on date.Date, ok bool) {
	inDates := make([]date.Date, len(d.Inbound))
	for i, c := range d.Inbound {
		inDates[i] = c.InDate
	}
	on, ok = date.Mode(inDates)

	outDates := make([]date.Date, len(d.Outbound))
	for i, c := range d.Outbound {
		outDates[i] = c.OutDate
	}
	if m, outOK := date.Mode(outDates); outOK {
		return m, true
	}
	return on, ok
}

// CommitEvent applies a confirmed draft to the registry:
//
//   - prior ledger references to the draft's pids are stripped, so each pid
//     stays attributable to exactly one event per direction;
//   - inbound rows get their in date stamped, outbound rows their out date;
//   - outbound cards still in the vault move to the archive, dropping any
//     field the archive schema does not carry;
//   - the event is appended to the ledger.
//
// The registry is only mutated in memory; persisting is the caller's
// end-of-session decision.
func (r *Registry) CommitEvent(d *EventDraft) error {
	if d.Empty() {
		return ErrEmptyEvent
	}

	inbound := d.InboundPIDs()
	outbound := d.OutboundPIDs()

	for _, pid := range inbound {
		r.Activity.RemovePID(In, pid)
	}
	for _, pid := range outbound {
		r.Activity.RemovePID(Out, pid)
	}

	for _, pid := range inbound {
		stamp := func(c *Card) { c.InDate = d.Date }
		if !r.Vault.Update(pid, stamp) {
			r.Archive.Update(pid, stamp)
		}
	}
	for _, pid := range outbound {
		stamp := func(c *Card) { c.OutDate = d.Date }
		if !r.Vault.Update(pid, stamp) {
			r.Archive.Update(pid, stamp)
		}
	}

	Transfer(r.Vault, r.Archive, outbound, r.archiveSchema)

	r.Activity.Append(Event{
		ID:      d.ID,
		In:      JoinPIDs(inbound),
		Out:     JoinPIDs(outbound),
		Date:    d.Date,
		Comment: d.Comment,
	})
	return nil
}

// PriorEvents returns the ledger entries that the draft would rewrite on
// commit: every event referencing one of the draft's pids in the matching
// direction.
func (r *Registry) PriorEvents(d *EventDraft) []EventRef {
	refs := r.Activity.PriorEvents(In, d.Inbound)
	return append(refs, r.Activity.PriorEvents(Out, d.Outbound)...)
}
