// Package coinfolio computes a client-local view of a crypto portfolio
// from a ledger of buy and sell transactions.
//
// The ledger is the source of truth: an ordered log of manual entries and
// exchange-synced balances, persisted as JSONL. Holdings are a pure
// projection of that log, rebuilt by full replay on every mutation, then
// annotated with live price quotes. The Tracker ties the pieces together
// into a single-writer service with periodic quote refresh and exchange
// sync.
package coinfolio
