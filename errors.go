package coinfolio

import "errors"

var (
	// ErrNotFound is returned when a transaction id does not exist in the ledger.
	ErrNotFound = errors.New("transaction not found")

	// ErrInvalidOperation is returned when trying to edit or delete a
	// transaction that did not originate from a manual entry.
	ErrInvalidOperation = errors.New("only manual transactions can be edited or deleted")

	// ErrInconsistentLedger marks a sell that exceeds, or precedes, any
	// recorded position for its symbol. Reconciliation reports it, it never
	// fails a replay pass.
	ErrInconsistentLedger = errors.New("inconsistent ledger")
)
