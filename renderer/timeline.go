package renderer

import (
	"bytes"
	"strconv"

	"github.com/cardvault/cardvault"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

func itoa(i int) string { return strconv.Itoa(i) }

func pct(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.StringFixed(2) + "%"
}

// Timeline renders the valuation history, oldest first.
func Timeline(t *cardvault.Timeline) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Timeline")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"date", "cards", "value usd", "value eur", "Δ usd %", "Δ eur %"},
	}
	for _, e := range t.Entries() {
		table.Rows = append(table.Rows, []string{
			e.Date.String(),
			itoa(e.CardCount),
			cardvault.FormatMoney(e.PriceUSD, "USD"),
			cardvault.FormatMoney(e.PriceEUR, "EUR"),
			pct(e.ChangePctUSD),
			pct(e.ChangePctEUR),
		})
	}
	doc.Table(table)
	return doc.String()
}
