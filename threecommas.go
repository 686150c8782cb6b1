package coinfolio

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const (
	threecommas_api_key    = "THREECOMMAS_API_KEY"
	threecommas_api_secret = "THREECOMMAS_API_SECRET"
)

var (
	threecommasKeyFlag    = flag.String("3commas-api-key", "", "3Commas API key used to sync exchange balances.\n If missing it will read the environment variable \""+threecommas_api_key+"\".")
	threecommasSecretFlag = flag.String("3commas-api-secret", "", "3Commas API secret used to sign sync requests.\n If missing it will read the environment variable \""+threecommas_api_secret+"\".")
)

func threecommasCredentials() (key, secret string) {
	if *threecommasKeyFlag == "" {
		*threecommasKeyFlag = os.Getenv(threecommas_api_key)
	}
	if *threecommasSecretFlag == "" {
		*threecommasSecretFlag = os.Getenv(threecommas_api_secret)
	}
	return *threecommasKeyFlag, *threecommasSecretFlag
}

// Account is one exchange account connected on 3Commas.
type Account struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Exchange string `json:"exchange_name"`
}

// Balance is one asset position reported by an exchange account.
type Balance struct {
	Currency string  `json:"currency_code"`
	Amount   float64 `json:"amount"`
	USDValue float64 `json:"usd_value"`
}

// ThreeCommas is a client for the 3Commas account API, used to mirror
// exchange balances into the ledger as synced transactions.
type ThreeCommas struct {
	client  *http.Client
	baseURL string
	key     string
	secret  string
}

// NewThreeCommas creates a 3Commas client. Credentials come from flags or
// the environment; an empty key yields a client whose calls fail cleanly,
// which the sync tick logs and ignores.
func NewThreeCommas() *ThreeCommas {
	key, secret := threecommasCredentials()
	return &ThreeCommas{
		client:  new(http.Client),
		baseURL: "https://api.3commas.io",
		key:     key,
		secret:  secret,
	}
}

// get performs a signed GET request against the 3Commas API.
func (c *ThreeCommas) get(ctx context.Context, path string, data interface{}) error {
	if c.key == "" || c.secret == "" {
		return fmt.Errorf("3commas credentials are not set. Use -3commas-api-key and -3commas-api-secret flags or the %s/%s environment variables", threecommas_api_key, threecommas_api_secret)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	// The signature is an HMAC-SHA256 of the request path with the secret.
	mac := hmac.New(sha256.New, []byte(c.secret))
	mac.Write([]byte(path))
	req.Header.Set("APIKEY", c.key)
	req.Header.Set("Signature", hex.EncodeToString(mac.Sum(nil)))

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("cannot http GET %v: %v %s", path, resp.Status, strings.TrimSpace(string(body)))
	}
	return jsonDecode(resp.Body, data)
}

// ListAccounts returns all exchange accounts connected on 3Commas.
func (c *ThreeCommas) ListAccounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	if err := c.get(ctx, "/public/api/ver1/accounts", &accounts); err != nil {
		return nil, fmt.Errorf("could not list 3commas accounts: %w", err)
	}
	return accounts, nil
}

// LoadBalances returns the asset balances of one exchange account.
func (c *ThreeCommas) LoadBalances(ctx context.Context, accountID int64) ([]Balance, error) {
	var balances []Balance
	path := fmt.Sprintf("/public/api/ver1/accounts/%d/account_table_data", accountID)
	if err := c.get(ctx, path, &balances); err != nil {
		return nil, fmt.Errorf("could not load balances for account %d: %w", accountID, err)
	}
	return balances, nil
}

// SyncTransactions converts the balances of every connected account into
// exchange-synced buy transactions, one per non-empty asset. Exchanges
// report positions, not trade history, so the price per unit is derived
// from the reported USD value and stands in for a true cost basis.
func (c *ThreeCommas) SyncTransactions(ctx context.Context) ([]Transaction, error) {
	accounts, err := c.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	today := Today()
	totals := make(map[string]*Balance)
	for _, account := range accounts {
		balances, err := c.LoadBalances(ctx, account.ID)
		if err != nil {
			return nil, err
		}
		for _, b := range balances {
			if b.Amount <= 0 {
				continue
			}
			symbol := strings.ToUpper(b.Currency)
			if t, ok := totals[symbol]; ok {
				t.Amount += b.Amount
				t.USDValue += b.USDValue
			} else {
				bb := b
				totals[symbol] = &bb
			}
		}
	}

	txs := make([]Transaction, 0, len(totals))
	for symbol, b := range totals {
		price := USD(0)
		if b.USDValue > 0 {
			price = USD(b.USDValue).Div(Q(b.Amount))
		}
		txs = append(txs, NewSyncedBuy(today, symbol, Q(b.Amount), price))
	}
	return txs, nil
}
