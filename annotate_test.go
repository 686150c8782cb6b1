package coinfolio

import (
	"reflect"
	"testing"
)

func TestAnnotate(t *testing.T) {
	holdings, _ := Reconcile([]Transaction{
		buy("2025-01-10", "BTC", 1, 20000),
		buy("2025-01-15", "ETH", 2, 1000),
	})

	quotes := QuoteMap{
		"BTC": {Price: USD(60000), Change24h: Percent(2.5)},
	}
	annotated := Annotate(holdings, quotes)

	btc, _ := annotated.BySymbol("BTC")
	if !btc.CurrentPrice.Equal(USD(60000)) {
		t.Errorf("BTC price = %s, want %s", btc.CurrentPrice, USD(60000))
	}
	if !btc.DailyChange.Equal(Percent(2.5)) {
		t.Errorf("BTC change = %s, want +2.5%%", btc.DailyChange)
	}
	if !btc.CostBasis.Equal(USD(20000)) {
		t.Errorf("annotation must not touch the cost basis, got %s", btc.CostBasis)
	}

	// ETH has no quote: its prior price stays, stale is better than blank.
	eth, _ := annotated.BySymbol("ETH")
	if !eth.CurrentPrice.Equal(USD(1000)) {
		t.Errorf("ETH price = %s, want the prior %s", eth.CurrentPrice, USD(1000))
	}
}

func TestAnnotate_Idempotent(t *testing.T) {
	holdings, _ := Reconcile([]Transaction{buy("2025-01-10", "BTC", 1, 20000)})
	quotes := QuoteMap{"BTC": {Price: USD(60000), Change24h: Percent(1)}}

	once := Annotate(holdings, quotes)
	twice := Annotate(once, quotes)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("annotating twice with the same quotes changed the holdings")
	}
}

func TestAnnotate_DoesNotMutateInput(t *testing.T) {
	holdings, _ := Reconcile([]Transaction{buy("2025-01-10", "BTC", 1, 20000)})
	before := make(Holdings, len(holdings))
	copy(before, holdings)

	Annotate(holdings, QuoteMap{"BTC": {Price: USD(60000)}})

	if !reflect.DeepEqual(holdings, before) {
		t.Error("Annotate modified its input")
	}
}

func TestHoldings_Valuation(t *testing.T) {
	holdings, _ := Reconcile([]Transaction{
		buy("2025-01-10", "BTC", 2, 20000),
	})
	holdings = Annotate(holdings, QuoteMap{"BTC": {Price: USD(25000)}})

	btc, _ := holdings.BySymbol("BTC")
	if want := USD(50000); !btc.CurrentValue().Equal(want) {
		t.Errorf("value = %s, want %s", btc.CurrentValue(), want)
	}
	if want := USD(10000); !btc.UnrealizedGain().Equal(want) {
		t.Errorf("gain = %s, want %s", btc.UnrealizedGain(), want)
	}
}

func TestHoldings_Allocation(t *testing.T) {
	holdings, _ := Reconcile([]Transaction{
		buy("2025-01-10", "BTC", 1, 30000),
		buy("2025-01-10", "ETH", 10, 1000),
	})

	slices := holdings.Allocation()
	if len(slices) != 2 {
		t.Fatalf("got %d slices, want 2", len(slices))
	}
	var total Percent
	for _, s := range slices {
		total += s.Percent
	}
	if !total.Equal(Percent(100)) {
		t.Errorf("allocation sums to %s, want 100%%", total)
	}
	btc := slices[0]
	if btc.Symbol != "BTC" || !btc.Percent.Equal(Percent(75)) {
		t.Errorf("BTC slice = %+v, want 75%%", btc)
	}
}

func TestAnnotate_IgnoresQuoteInAnotherCurrency(t *testing.T) {
	holdings := Holdings{
		{Symbol: "BTC", Quantity: Q(1), CostBasis: M(100, "EUR"), CurrentPrice: M(110, "EUR")},
	}

	out := Annotate(holdings, QuoteMap{"BTC": {Price: USD(200), Change24h: 1.5}})

	if !out[0].CurrentPrice.Equal(M(110, "EUR")) {
		t.Errorf("current price = %s, want the 110 EUR trade price kept", out[0].CurrentPrice)
	}
	if !out[0].DailyChange.Equal(0) {
		t.Errorf("daily change = %s, want 0", out[0].DailyChange)
	}
}

func TestHoldings_TotalValueMixedCurrencies(t *testing.T) {
	holdings := Holdings{
		{Symbol: "ADA", Quantity: Q(100), CurrentPrice: M(2, "EUR")},
		{Symbol: "BTC", Quantity: Q(1), CurrentPrice: USD(20000)},
	}

	// no exchange rate is known: the total carries the first currency and
	// leaves the other holding out instead of failing
	if total := holdings.TotalValue(); !total.Equal(M(200, "EUR")) {
		t.Errorf("total = %s, want 200 EUR", total)
	}
}
