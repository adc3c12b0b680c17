// Package renderer formats quotes, indicators and portfolio reports as
// markdown strings, ready to be printed raw or through a terminal renderer.
package renderer

import (
	"bytes"
	"fmt"

	papertrade "github.com/etnz/papertrade"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the global index basket as a markdown table.
func SummaryMarkdown(quotes []papertrade.Quote) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Market Summary")

	table := md.TableSet{
		Header: []string{"Index", "Symbol", "Price", "Change", "Change %"},
	}
	for _, q := range quotes {
		table.Rows = append(table.Rows, []string{
			q.Name,
			q.Symbol,
			q.Price.Round().String(),
			q.Change.Round().SignedString(),
			q.ChangePercent.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}

// QuoteMarkdown renders one quote as a markdown section.
func QuoteMarkdown(q papertrade.Quote) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s (%s)", q.Name, q.Symbol))
	doc.PlainText(fmt.Sprintf("Price: %s (%s, %s)", q.Price.Round(), q.Change.Round().SignedString(), q.ChangePercent.SignedString()))

	table := md.TableSet{
		Header: []string{"Previous Close", "Day Low", "Day High", "Volume"},
		Rows: [][]string{{
			q.PreviousClose.Round().String(),
			q.DayLow.Round().String(),
			q.DayHigh.Round().String(),
			fmt.Sprint(q.Volume),
		}},
	}
	doc.Table(table)

	return doc.String()
}

// IndicatorsMarkdown renders the technical indicators of one symbol.
func IndicatorsMarkdown(symbol string, ind papertrade.Indicators) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Technical Indicators for %s", symbol))
	table := md.TableSet{
		Header: []string{"Indicator", "Value"},
		Rows: [][]string{
			{"SMA 20", ind.SMA20.Round(2).String()},
			{"RSI 14", ind.RSI14.Round(2).String()},
			{"Signal", string(ind.Signal)},
		},
	}
	doc.Table(table)

	return doc.String()
}

// PortfolioMarkdown renders a valued portfolio: wallet, positions and totals.
// Positions valued at cost basis because their quote failed are marked stale.
func PortfolioMarkdown(view *papertrade.PortfolioView) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio")
	doc.PlainText(fmt.Sprintf("Cash Balance: %s", view.Balance.Round()))

	if len(view.Positions) > 0 {
		doc.H2("Positions")
		table := md.TableSet{
			Header: []string{"Symbol", "Quantity", "Avg Price", "Price", "Value", "P/L", "P/L %"},
		}
		for _, pv := range view.Positions {
			price := pv.CurrentPrice.Round().String()
			if !pv.Live {
				price += " (stale)"
			}
			table.Rows = append(table.Rows, []string{
				pv.Symbol,
				fmt.Sprint(pv.Quantity),
				pv.AvgPrice.Round().String(),
				price,
				pv.CurrentValue.Round().String(),
				pv.PL.Round().SignedString(),
				pv.PLPercent.SignedString(),
			})
		}
		doc.Table(table)
		doc.PlainText(fmt.Sprintf("Positions Value: %s", view.TotalValue.Round()))
	}

	doc.PlainText(fmt.Sprintf("Total Account Value: %s", view.TotalAccountValue.Round()))

	return doc.String()
}

// TransactionsMarkdown renders the trade log, most recent last.
func TransactionsMarkdown(txs []papertrade.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transactions")
	if len(txs) == 0 {
		doc.PlainText("No trades yet.")
		return doc.String()
	}

	table := md.TableSet{
		Header: []string{"Date", "Type", "Symbol", "Quantity", "Price", "Total"},
	}
	for _, tx := range txs {
		table.Rows = append(table.Rows, []string{
			tx.Date.Format("2006-01-02 15:04"),
			string(tx.Type),
			tx.Symbol,
			fmt.Sprint(tx.Quantity),
			tx.Price.Round().String(),
			tx.Total.Round().String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
