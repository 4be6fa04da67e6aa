package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/etnz/tradepnl"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders a realized profit summary.
func SummaryMarkdown(s *tradepnl.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	cur := s.FiatCurrency

	doc.H1(fmt.Sprintf("Realized Profit %s", pair(s.Asset, cur)))
	doc.PlainText(fmt.Sprintf("Method: %s", s.Method.Label()))
	doc.PlainText("")

	rows := [][]string{
		{"Realized Profit", signed(s.RealizedProfit, cur)},
		{"Total Bought", money(s.TotalBuyFiat, cur)},
		{"Total Sold", money(s.TotalSellFiat, cur)},
		{"Amount Bought", quantity(s.TotalBuyAmount)},
		{"Amount Sold", quantity(s.TotalSellAmount)},
		{"Average Buy Price", money(s.AvgBuyPrice, cur)},
		{"Average Sell Price", money(s.AvgSellPrice, cur)},
		{"Inventory", quantity(s.InventoryRemaining)},
		{"Fees", money(s.TotalFees, cur)},
	}
	if !s.UnmatchedSellAmount.IsZero() {
		rows = append(rows, []string{"Unmatched Sell Amount", quantity(s.UnmatchedSellAmount)})
	}
	rows = append(rows, []string{"Trades", strconv.Itoa(s.Trades)})

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", "Value"},
		Rows:      rows,
	})
	doc.Build()

	skippedSection(&buf, s.Skipped)
	return buf.String()
}

// skippedSection lists the trades left out, if any.
func skippedSection(w io.Writer, skipped []tradepnl.SkippedTrade) {
	ConditionalBlock(w, func(w io.Writer) bool {
		doc := md.NewMarkdown(w)
		doc.PlainText("")
		doc.H2("Skipped Trades")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignLeft},
			Header:    []string{"#", "ID", "Reason"},
		}
		for _, t := range skipped {
			table.Rows = append(table.Rows, []string{strconv.Itoa(t.Index), t.ID, t.Reason})
		}
		doc.Table(table)
		doc.Build()
		return len(skipped) > 0
	})
}
