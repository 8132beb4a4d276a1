package renderer

import (
	"bytes"

	"github.com/cardvault/cardvault"
	md "github.com/nao1215/markdown"
)

// EventPreview renders a draft event as the human sees it just before
// confirming: the header line, then one row per card with its direction.
func EventPreview(d *cardvault.EventDraft) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Event " + d.ID)
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft},
		Header:    []string{md.Bold("date"), d.Date.String()},
		Rows: [][]string{
			{"comment", truncate(d.Comment)},
		},
	})

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"direction", "pid", "name", "set"},
	}
	for _, c := range d.Inbound {
		table.Rows = append(table.Rows, []string{string(cardvault.In), c.PID, truncate(c.Name), truncate(c.SetName)})
	}
	for _, c := range d.Outbound {
		table.Rows = append(table.Rows, []string{string(cardvault.Out), c.PID, truncate(c.Name), truncate(c.SetName)})
	}
	doc.Table(table)
	return doc.String()
}

// PriorEvents renders the ledger entries a draft is about to rewrite. An
// empty list renders nothing.
func PriorEvents(refs []cardvault.EventRef) string {
	if len(refs) == 0 {
		return ""
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Prior events to be rewritten")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"card", "direction", "event", "date", "comment"},
	}
	for _, ref := range refs {
		table.Rows = append(table.Rows, []string{
			truncate(ref.SubjectName),
			string(ref.Direction),
			ref.ID,
			ref.Date.String(),
			truncate(ref.Comment),
		})
	}
	doc.Table(table)
	return doc.String()
}
