package coinfolio

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

const coingecko_api_key = "COINGECKO_API_KEY"

var coingeckoApiFlag = flag.String("coingecko-api-key", "", "CoinGecko API key to use for fetching live prices.\n If missing it will read the environment variable \""+coingecko_api_key+"\". Free keys work, see https://www.coingecko.com/en/api")

func coingeckoApiKey() string {
	// If the flag is not set, we try to read it from the environment variable.
	if *coingeckoApiFlag == "" {
		*coingeckoApiFlag = os.Getenv(coingecko_api_key)
	}
	return *coingeckoApiFlag
}

// QuoteProvider yields the latest quotes for a set of asset symbols.
// A failed call returns an error and no quotes; callers treat that as
// "no update this tick" and keep their previous prices.
type QuoteProvider interface {
	Quotes(ctx context.Context, symbols []string) (QuoteMap, error)
}

// coinIDs maps common ticker symbols to CoinGecko coin ids. The simple
// price endpoint is keyed by id, not symbol.
var coinIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"ADA":   "cardano",
	"XRP":   "ripple",
	"DOGE":  "dogecoin",
	"DOT":   "polkadot",
	"LTC":   "litecoin",
	"LINK":  "chainlink",
	"MATIC": "matic-network",
	"BNB":   "binancecoin",
	"AVAX":  "avalanche-2",
	"USDT":  "tether",
	"USDC":  "usd-coin",
}

// CoinGecko fetches live USD quotes from the CoinGecko simple price API.
type CoinGecko struct {
	client  *http.Client
	baseURL string
	// extra symbol→id entries, taking precedence over the builtin table.
	IDs map[string]string
}

// NewCoinGecko creates a CoinGecko quote provider using a plain HTTP
// client: live ticks must not be served from the daily disk cache.
func NewCoinGecko() *CoinGecko {
	return &CoinGecko{client: new(http.Client), baseURL: "https://api.coingecko.com/api/v3"}
}

func (g *CoinGecko) id(symbol string) (string, bool) {
	symbol = strings.ToUpper(symbol)
	if id, ok := g.IDs[symbol]; ok {
		return id, true
	}
	id, ok := coinIDs[symbol]
	return id, ok
}

// Quotes fetches the latest USD price and 24h change for the given symbols.
// Symbols with no known CoinGecko id are silently absent from the result,
// like any symbol the API has no quote for.
func (g *CoinGecko) Quotes(ctx context.Context, symbols []string) (QuoteMap, error) {
	ids := make([]string, 0, len(symbols))
	bySymbol := make(map[string]string, len(symbols)) // id → symbol
	for _, s := range symbols {
		id, ok := g.id(s)
		if !ok {
			continue
		}
		ids = append(ids, id)
		bySymbol[id] = strings.ToUpper(s)
	}
	if len(ids) == 0 {
		return QuoteMap{}, nil
	}

	v := url.Values{}
	v.Set("ids", strings.Join(ids, ","))
	v.Set("vs_currencies", "usd")
	v.Set("include_24hr_change", "true")
	if key := coingeckoApiKey(); key != "" {
		v.Set("x_cg_demo_api_key", key)
	}
	addr := g.baseURL + "/simple/price?" + v.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch quotes: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot fetch quotes: %v", resp.Status)
	}

	// The response is an object keyed by coin id, so it is decoded
	// generically and picked apart with jsonpath.
	var jobj any
	if err := jsonDecode(resp.Body, &jobj); err != nil {
		return nil, fmt.Errorf("cannot decode quotes: %w", err)
	}

	quotes := make(QuoteMap, len(ids))
	for _, id := range ids {
		jval, err := jsonpath.Get(fmt.Sprintf("$[%q].usd", id), jobj)
		if err != nil {
			continue // no quote for this coin, skip it
		}
		price, ok := jval.(float64)
		if !ok {
			continue
		}
		var change Percent
		if jchange, err := jsonpath.Get(fmt.Sprintf("$[%q].usd_24h_change", id), jobj); err == nil {
			if c, ok := jchange.(float64); ok {
				change = Percent(c)
			}
		}
		quotes[bySymbol[id]] = Quote{Price: USD(price), Change24h: change}
	}
	return quotes, nil
}
