package coinfolio

import (
	"strings"
	"testing"
)

func TestEncodeDecodeLedger_RoundTrip(t *testing.T) {
	ledger := NewLedger()
	tx1, _ := ledger.Add(buy("2025-01-10", "BTC", 0.5, 42000))
	tx2, _ := ledger.Add(sell("2025-02-01", "BTC", 0.25, 65000))
	tx3, _ := ledger.Add(synced("2025-02-02", "ETH", 2, 1000))

	var b strings.Builder
	if err := EncodeLedger(&b, ledger); err != nil {
		t.Fatalf("EncodeLedger() error = %v", err)
	}

	decoded, err := DecodeLedger(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}
	if decoded.Len() != 3 {
		t.Fatalf("decoded %d transactions, want 3", decoded.Len())
	}
	for _, want := range []Transaction{tx1, tx2, tx3} {
		got, err := decoded.Get(want.ID)
		if err != nil {
			t.Fatalf("decoded ledger misses %s: %v", want.ID, err)
		}
		if !got.Equal(want) {
			t.Errorf("round trip changed the transaction:\ngot  %+v\nwant %+v", got, want)
		}
	}
}

func TestEncodeTransaction_Canonical(t *testing.T) {
	tx := buy("2025-01-10", "BTC", 0.5, 42000)
	tx.ID = "tx-1"
	tx.Name = "Bitcoin"

	var b strings.Builder
	if err := EncodeTransaction(&b, tx); err != nil {
		t.Fatalf("EncodeTransaction() error = %v", err)
	}

	want := `{"id":"tx-1","side":"buy","origin":"manual","date":"2025-01-10","symbol":"BTC","name":"Bitcoin","quantity":0.5,"price":42000,"currency":"USD"}` + "\n"
	if b.String() != want {
		t.Errorf("got  %s\nwant %s", b.String(), want)
	}
}

func TestDecodeLedger(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantLen int
		wantErr bool
	}{
		{
			name:    "empty input",
			input:   "",
			wantLen: 0,
		},
		{
			name: "blank lines are skipped",
			input: `{"id":"a","side":"buy","origin":"manual","date":"2025-01-10","symbol":"BTC","quantity":1,"price":20000,"currency":"USD"}

{"id":"b","side":"buy","origin":"manual","date":"2025-01-11","symbol":"ETH","quantity":1,"price":1000,"currency":"USD"}
`,
			wantLen: 2,
		},
		{
			name:    "corrupt line fails with context",
			input:   `{"id":"a","side":`,
			wantErr: true,
		},
		{
			name: "duplicate ids are rejected",
			input: `{"id":"a","side":"buy","origin":"manual","date":"2025-01-10","symbol":"BTC","quantity":1,"price":20000,"currency":"USD"}
{"id":"a","side":"buy","origin":"manual","date":"2025-01-11","symbol":"ETH","quantity":1,"price":1000,"currency":"USD"}
`,
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ledger, err := DecodeLedger(strings.NewReader(tc.input))
			if (err != nil) != tc.wantErr {
				t.Fatalf("DecodeLedger() error = %v, wantErr %v", err, tc.wantErr)
			}
			if !tc.wantErr && ledger.Len() != tc.wantLen {
				t.Errorf("Len() = %d, want %d", ledger.Len(), tc.wantLen)
			}
		})
	}
}
