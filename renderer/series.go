package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/tradepnl"
	md "github.com/nao1215/markdown"
)

// SeriesMarkdown renders a profit series as a table, one row per bucket.
func SeriesMarkdown(s *tradepnl.Series) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	cur := s.FiatCurrency

	doc.H1(fmt.Sprintf("Realized Profit per %s %s", title(s.Period.Name()), pair(s.Asset, cur)))
	doc.PlainText(fmt.Sprintf("Method: %s", s.Method.Label()))
	doc.PlainText("")

	if len(s.Points) == 0 {
		doc.PlainText("No trades.")
	} else {
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
			Header:    []string{title(s.Period.Name()), "Profit", "Cumulative", "Inventory", "Avg Cost"},
		}
		for _, p := range s.Points {
			table.Rows = append(table.Rows, []string{
				p.Bucket,
				signed(p.PeriodProfit, cur),
				money(p.CumulativeProfit, cur),
				quantity(p.Inventory),
				money(p.AvgCost, cur),
			})
		}
		doc.Table(table)
	}
	doc.Build()

	skippedSection(&buf, s.Skipped)
	return buf.String()
}

// MethodsMarkdown renders the supported profit methods.
func MethodsMarkdown() string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Profit Methods")
	table := md.TableSet{
		Header: []string{"Method", "Name"},
	}
	for _, m := range tradepnl.Methods() {
		table.Rows = append(table.Rows, []string{m.String(), m.Label()})
	}
	doc.Table(table)
	doc.Build()
	return buf.String()
}
