package coinfolio

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// LoadLedger reads a ledger from a JSONL file. A missing or unreadable file
// is not a hard error: the ledger starts empty and a warning is logged, so
// a fresh install behaves like an empty portfolio.
func LoadLedger(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("ledger file %q does not exist, starting with an empty ledger", path)
		return NewLedger(), nil
	}
	if err != nil {
		log.Printf("warning: could not open ledger file %q: %v, starting with an empty ledger", path, err)
		return NewLedger(), nil
	}
	defer f.Close()

	ledger, err := DecodeLedger(f)
	if err != nil {
		log.Printf("warning: could not decode ledger file %q: %v, starting with an empty ledger", path, err)
		return NewLedger(), fmt.Errorf("could not decode ledger file %q: %w", path, err)
	}
	return ledger, nil
}

// SaveLedger writes the ledger to a JSONL file atomically (temp file then
// rename), so a crash mid-write never corrupts the previous log. A write
// failure here is surfaced: the mutation succeeded in memory but is not
// durable.
func SaveLedger(path string, ledger *Ledger) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory for ledger %q: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("could not create temp ledger file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodeLedger(tmp, ledger); err != nil {
		tmp.Close()
		return fmt.Errorf("could not encode ledger to %q: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close temp ledger file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("could not replace ledger file %q: %w", path, err)
	}
	return nil
}
