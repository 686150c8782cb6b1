package coinfolio

// Quote is a live price observation for one asset.
type Quote struct {
	Price     Money   // price per unit
	Change24h Percent // 24h price change
}

// QuoteMap maps asset symbols to their latest quote.
type QuoteMap map[string]Quote

// Annotate overlays live quotes onto a holdings snapshot and returns a new
// snapshot. A holding whose symbol has a quote gets its current price and
// daily change overwritten; a holding without a quote keeps its previous
// price, stale but present, never reset to zero. A quote in a different
// currency than the position is ignored the same way, there is no exchange
// rate to apply it with.
//
// Annotate never mutates its input and is idempotent for a fixed quote map.
func Annotate(holdings Holdings, quotes QuoteMap) Holdings {
	out := make(Holdings, len(holdings))
	for i, h := range holdings {
		if q, ok := quotes[h.Symbol]; ok && sameCurrency(h.CostBasis, q.Price) {
			h.CurrentPrice = q.Price
			h.DailyChange = q.Change24h
		}
		out[i] = h
	}
	return out
}
