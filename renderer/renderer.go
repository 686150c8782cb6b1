// Package renderer turns portfolio data into markdown reports.
//
// The renderers are pure: they take fully computed values and only format
// them, so they are trivial to test against expected strings.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/coinfolio"
)

// HoldingMarkdown renders the holdings snapshot as a markdown report:
// the total value, one table row per position, and the allocation.
// Ledger inconsistencies, if any, get their own section so the user can
// fix the offending entries.
func HoldingMarkdown(on coinfolio.Date, holdings coinfolio.Holdings, faults []coinfolio.Inconsistency) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings on %s\n\n", on)
	fmt.Fprintf(&b, "Total Value: **%s**\n\n", holdings.TotalValue())

	if len(holdings) == 0 {
		fmt.Fprintf(&b, "No open positions.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Name | Quantity | Price | Value | Cost Basis | Gain | 24h |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|")
	for _, h := range holdings {
		symbol := h.Symbol
		if h.Favorite {
			symbol = "★ " + symbol
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			symbol,
			h.Name,
			h.Quantity,
			h.CurrentPrice,
			h.CurrentValue(),
			h.CostBasis,
			h.UnrealizedGain().SignedString(),
			h.DailyChange.SignedString(),
		)
	}

	fmt.Fprintf(&b, "\n## Allocation\n\n")
	fmt.Fprintln(&b, "| Symbol | Share |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, slice := range holdings.Allocation() {
		fmt.Fprintf(&b, "| %s | %s |\n", slice.Symbol, slice.Percent)
	}

	if len(faults) > 0 {
		fmt.Fprintf(&b, "\n## Ledger Inconsistencies\n\n")
		for _, fault := range faults {
			fmt.Fprintf(&b, "- %v\n", fault)
		}
	}
	return b.String()
}

// TransactionsMarkdown renders the transaction log as a markdown table,
// chronological order.
func TransactionsMarkdown(txs []coinfolio.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Transactions\n\n")
	if len(txs) == 0 {
		fmt.Fprintf(&b, "No transactions recorded.\n")
		return b.String()
	}
	fmt.Fprintln(&b, "| Date | Side | Symbol | Quantity | Price | Origin | ID |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|:---|:---|")
	for _, tx := range txs {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			tx.Date, tx.Side, tx.Symbol, tx.Quantity, tx.Price, tx.Origin, tx.ID)
	}
	return b.String()
}

// Transaction renders a transaction to a one-line string for logs and
// command feedback.
func Transaction(tx coinfolio.Transaction) string {
	switch tx.Side {
	case coinfolio.Buy:
		return fmt.Sprintf("Bought %s %s at %s on %s", tx.Quantity, tx.Symbol, tx.Price, tx.Date)
	case coinfolio.Sell:
		return fmt.Sprintf("Sold %s %s at %s on %s", tx.Quantity, tx.Symbol, tx.Price, tx.Date)
	default:
		return fmt.Sprintf("%s %s %s on %s", tx.Side, tx.Quantity, tx.Symbol, tx.Date)
	}
}

// HistoryMarkdown renders the portfolio value samples as a markdown table,
// oldest first.
func HistoryMarkdown(points []coinfolio.ValuePoint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio Value\n\n")
	if len(points) == 0 {
		fmt.Fprintf(&b, "No history recorded yet.\n")
		return b.String()
	}
	fmt.Fprintln(&b, "| Date | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, p := range points {
		fmt.Fprintf(&b, "| %s | %s |\n", p.Date, p.Value)
	}
	return b.String()
}

// NewsMarkdown renders a list of news articles as a markdown bullet list.
func NewsMarkdown(articles []coinfolio.Article) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Crypto News\n\n")
	if len(articles) == 0 {
		fmt.Fprintf(&b, "No news available.\n")
		return b.String()
	}
	for _, a := range articles {
		fmt.Fprintf(&b, "- [%s](%s) (%s)\n", a.Title, a.URL, a.Source)
	}
	return b.String()
}
