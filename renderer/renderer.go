// Package renderer produces the markdown views of the interactive session:
// card hit lists, event previews, prior-event warnings and the timeline.
// Views are plain markdown strings; printing them through a terminal renderer
// is the caller's concern.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/cardvault/cardvault"
	md "github.com/nao1215/markdown"
)

// cellWidth caps every free-text cell so that one verbose comment cannot
// wreck the table layout.
const cellWidth = 20

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= cellWidth {
		return s
	}
	return string(r[:cellWidth-1]) + "…"
}

// Cards renders a numbered hit list, one row per card. Row numbers start at
// 1 and match the selection grammar.
func Cards(title string, cards []cardvault.Card) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if title != "" {
		doc.H2(title)
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"#", "pid", "name", "set", "finish", "lang", "cond", "comment", "in date"},
	}
	for i, c := range cards {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", i+1),
			c.PID,
			truncate(c.Name),
			truncate(c.SetName),
			string(c.Finish),
			c.Language,
			c.Condition,
			truncate(c.Comment),
			c.InDate.String(),
		})
	}
	doc.Table(table)
	return doc.String()
}

// CollectionSummary renders a one-line valuation of a collection.
func CollectionSummary(name string, c *cardvault.Collection) string {
	usd, eur := c.TotalValue()
	return fmt.Sprintf("**%s**: %d cards, %s / %s\n", name, c.CountDistinct(),
		cardvault.FormatMoney(usd, "USD"), cardvault.FormatMoney(eur, "EUR"))
}
