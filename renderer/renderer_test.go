package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/coinfolio"
)

func day(s string) coinfolio.Date { return coinfolio.MustParse(s) }

func holdings(t *testing.T, txs ...coinfolio.Transaction) (coinfolio.Holdings, []coinfolio.Inconsistency) {
	t.Helper()
	return coinfolio.Reconcile(txs)
}

func TestHoldingMarkdown(t *testing.T) {
	hs, faults := holdings(t,
		coinfolio.NewBuy(day("2025-01-10"), "BTC", coinfolio.Q(1), coinfolio.USD(20000)),
		coinfolio.NewBuy(day("2025-01-15"), "ETH", coinfolio.Q(2), coinfolio.USD(1000)),
	)

	md := HoldingMarkdown(day("2025-02-01"), hs, faults)

	for _, want := range []string{
		"# Holdings on 2025-02-01",
		"Total Value: **$22,000.00**",
		"| BTC |",
		"| ETH |",
		"## Allocation",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report misses %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "Inconsistencies") {
		t.Error("a clean ledger must not render an inconsistency section")
	}
}

func TestHoldingMarkdown_Inconsistencies(t *testing.T) {
	hs, faults := holdings(t,
		coinfolio.NewSell(day("2025-01-10"), "BTC", coinfolio.Q(1), coinfolio.USD(20000)),
	)

	md := HoldingMarkdown(day("2025-02-01"), hs, faults)
	if !strings.Contains(md, "## Ledger Inconsistencies") {
		t.Errorf("report misses the inconsistency section:\n%s", md)
	}
	if !strings.Contains(md, "sell-before-buy") {
		t.Errorf("report misses the fault detail:\n%s", md)
	}
}

func TestHoldingMarkdown_Empty(t *testing.T) {
	md := HoldingMarkdown(day("2025-02-01"), nil, nil)
	if !strings.Contains(md, "No open positions.") {
		t.Errorf("empty report should say so:\n%s", md)
	}
}

func TestTransactionsMarkdown(t *testing.T) {
	tx := coinfolio.NewBuy(day("2025-01-10"), "BTC", coinfolio.Q(1), coinfolio.USD(20000))
	md := TransactionsMarkdown([]coinfolio.Transaction{tx})

	for _, want := range []string{"| 2025-01-10 |", "| buy |", "| BTC |", tx.ID} {
		if !strings.Contains(md, want) {
			t.Errorf("table misses %q:\n%s", want, md)
		}
	}
}

func TestTransaction(t *testing.T) {
	buy := coinfolio.NewBuy(day("2025-01-10"), "BTC", coinfolio.Q(1), coinfolio.USD(20000))
	if got := Transaction(buy); got != "Bought 1 BTC at $20,000.00 on 2025-01-10" {
		t.Errorf("Transaction() = %q", got)
	}
	sell := coinfolio.NewSell(day("2025-01-10"), "BTC", coinfolio.Q(1), coinfolio.USD(20000))
	if got := Transaction(sell); got != "Sold 1 BTC at $20,000.00 on 2025-01-10" {
		t.Errorf("Transaction() = %q", got)
	}
}

func TestNewsMarkdown(t *testing.T) {
	md := NewsMarkdown([]coinfolio.Article{
		{Title: "Bitcoin rallies", Source: "CoinDesk", URL: "https://example.com/a"},
	})
	if !strings.Contains(md, "[Bitcoin rallies](https://example.com/a)") {
		t.Errorf("list misses the linked article:\n%s", md)
	}
}

func TestHistoryMarkdown(t *testing.T) {
	md := HistoryMarkdown([]coinfolio.ValuePoint{
		{Date: day("2025-01-10"), Value: coinfolio.USD(22000)},
	})
	if !strings.Contains(md, "| 2025-01-10 | $22,000.00 |") {
		t.Errorf("table misses the sample:\n%s", md)
	}
}
