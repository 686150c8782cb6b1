package coinfolio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLedger_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.jsonl")

	ledger, err := LoadLedger(path)
	if err != nil {
		t.Fatalf("a missing ledger file is not an error, got %v", err)
	}
	if ledger.Len() != 0 {
		t.Errorf("Len() = %d, want an empty ledger", ledger.Len())
	}
}

func TestLoadLedger_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.jsonl")
	if err := os.WriteFile(path, []byte("not json\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ledger, err := LoadLedger(path)
	if err == nil {
		t.Error("a corrupt ledger file should surface an error")
	}
	// the app still gets a usable (empty) ledger
	if ledger == nil || ledger.Len() != 0 {
		t.Errorf("got %v, want an empty ledger alongside the error", ledger)
	}
}

func TestSaveLoadLedger_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "transactions.jsonl")

	ledger := NewLedger()
	tx, _ := ledger.Add(buy("2025-01-10", "BTC", 1, 20000))

	if err := SaveLedger(path, ledger); err != nil {
		t.Fatalf("SaveLedger() error = %v", err)
	}
	loaded, err := LoadLedger(path)
	if err != nil {
		t.Fatalf("LoadLedger() error = %v", err)
	}
	got, err := loaded.Get(tx.ID)
	if err != nil {
		t.Fatalf("loaded ledger misses the transaction: %v", err)
	}
	if !got.Equal(tx) {
		t.Errorf("round trip changed the transaction:\ngot  %+v\nwant %+v", got, tx)
	}
}
