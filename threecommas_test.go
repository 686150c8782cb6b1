package coinfolio

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestThreeCommas(url string) *ThreeCommas {
	return &ThreeCommas{
		client:  new(http.Client),
		baseURL: url,
		key:     "test-key",
		secret:  "test-secret",
	}
}

func TestThreeCommas_SignedRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("APIKEY"); got != "test-key" {
			t.Errorf("APIKEY header = %q, want test-key", got)
		}
		mac := hmac.New(sha256.New, []byte("test-secret"))
		mac.Write([]byte(r.URL.Path))
		if want, got := hex.EncodeToString(mac.Sum(nil)), r.Header.Get("Signature"); got != want {
			t.Errorf("Signature header = %q, want %q", got, want)
		}
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	c := newTestThreeCommas(server.URL)
	if _, err := c.ListAccounts(context.Background()); err != nil {
		t.Fatalf("ListAccounts() error = %v", err)
	}
}

func TestThreeCommas_SyncTransactions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/public/api/ver1/accounts":
			fmt.Fprint(w, `[
				{"id": 1, "name": "Binance Spot", "exchange_name": "Binance"},
				{"id": 2, "name": "Kraken", "exchange_name": "Kraken"}
			]`)
		case "/public/api/ver1/accounts/1/account_table_data":
			fmt.Fprint(w, `[
				{"currency_code": "btc", "amount": 0.5, "usd_value": 30000},
				{"currency_code": "DUST", "amount": 0, "usd_value": 0}
			]`)
		case "/public/api/ver1/accounts/2/account_table_data":
			fmt.Fprint(w, `[
				{"currency_code": "BTC", "amount": 0.5, "usd_value": 30000},
				{"currency_code": "SHITCOIN", "amount": 100, "usd_value": 0}
			]`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := newTestThreeCommas(server.URL)
	txs, err := c.SyncTransactions(context.Background())
	if err != nil {
		t.Fatalf("SyncTransactions() error = %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}

	bySymbol := make(map[string]Transaction)
	for _, tx := range txs {
		if tx.Origin != Synced {
			t.Errorf("%s origin = %v, want synced", tx.Symbol, tx.Origin)
		}
		if tx.Side != Buy {
			t.Errorf("%s side = %v, want buy", tx.Symbol, tx.Side)
		}
		if tx.Date != Today() {
			t.Errorf("%s date = %s, want today", tx.Symbol, tx.Date)
		}
		bySymbol[tx.Symbol] = tx
	}

	// the two BTC balances are aggregated into one position
	btc := bySymbol["BTC"]
	if !btc.Quantity.Equal(Q(1)) {
		t.Errorf("BTC quantity = %s, want 1", btc.Quantity)
	}
	// price per unit derives from the total reported USD value
	if !btc.Price.Equal(USD(60000)) {
		t.Errorf("BTC price = %s, want 60000", btc.Price)
	}

	// a balance with no USD value still syncs, at price zero
	junk := bySymbol["SHITCOIN"]
	if !junk.Price.Equal(USD(0)) {
		t.Errorf("SHITCOIN price = %s, want 0", junk.Price)
	}
}

func TestThreeCommas_MissingCredentials(t *testing.T) {
	c := &ThreeCommas{client: new(http.Client), baseURL: "http://127.0.0.1:0"}
	_, err := c.ListAccounts(context.Background())
	if err == nil {
		t.Fatal("ListAccounts() without credentials did not fail")
	}
	if !strings.Contains(err.Error(), "credentials") {
		t.Errorf("error = %v, want a credentials hint", err)
	}
}

func TestThreeCommas_BalanceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/public/api/ver1/accounts" {
			fmt.Fprint(w, `[{"id": 1, "name": "Binance", "exchange_name": "Binance"}]`)
			return
		}
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	c := newTestThreeCommas(server.URL)
	if _, err := c.SyncTransactions(context.Background()); err == nil {
		t.Error("SyncTransactions() swallowed the balance fetch error")
	}
}
