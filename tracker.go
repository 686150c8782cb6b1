package coinfolio

import (
	"context"
	"log"
	"sync"
	"time"
)

// ExchangeSyncer mirrors the balances of connected exchange accounts into
// synced transactions. A failed sync returns an error; the prior synced
// entries stay in place for that tick.
type ExchangeSyncer interface {
	SyncTransactions(ctx context.Context) ([]Transaction, error)
}

// Tracker maintains the live portfolio: it owns the ledger, replays it into
// a holdings snapshot on every mutation, annotates the snapshot with the
// latest quotes, and publishes it to subscribers.
//
// All ledger mutations are serialized: a mutation in flight completes
// (append, reconcile, persist, publish) before the next is accepted.
// Readers never see a partial state; every rebuild constructs a fresh
// snapshot and swaps it in.
//
// A Tracker is an explicitly constructed service, passed by reference to
// its consumers; there is no package-level shared instance.
type Tracker struct {
	// QuoteInterval is the cadence of the price refresh tick.
	QuoteInterval time.Duration
	// SyncInterval is the cadence of the exchange sync tick.
	SyncInterval time.Duration

	mu     sync.Mutex // serializes all ledger mutations
	ledger *Ledger
	path   string // ledger file; empty disables persistence

	quotes QuoteProvider
	syncer ExchangeSyncer // nil when no exchange is connected
	mode   ViewMode

	stateMu    sync.RWMutex
	holdings   Holdings
	faults     []Inconsistency
	lastQuotes QuoteMap
	favorites  map[string]bool
	history    []ValuePoint

	subMu   sync.Mutex
	subs    map[int]chan Holdings
	nextSub int
}

// ValuePoint is one sample of the total portfolio value, for charting.
type ValuePoint struct {
	Date  Date
	Value Money
}

// historyDays bounds the in-memory value history, matching the 30-day
// chart of the holdings view.
const historyDays = 30

// NewTracker loads the ledger from path and builds the initial snapshot.
// A missing ledger file starts empty; a corrupt one is logged and also
// starts empty rather than refusing to run.
func NewTracker(path string, quotes QuoteProvider, syncer ExchangeSyncer, mode ViewMode) *Tracker {
	ledger, err := LoadLedger(path)
	if err != nil {
		log.Printf("warning: %v", err)
	}
	t := &Tracker{
		QuoteInterval: 60 * time.Second,
		SyncInterval:  60 * time.Second,
		ledger:        ledger,
		path:          path,
		quotes:        quotes,
		syncer:        syncer,
		mode:          mode,
		lastQuotes:    make(QuoteMap),
		favorites:     make(map[string]bool),
		subs:          make(map[int]chan Holdings),
	}
	t.rebuild()
	return t
}

// AddTransaction validates and appends a manual transaction, rebuilds the
// holdings and persists the ledger. The ledger is unchanged on error.
func (t *Tracker) AddTransaction(tx Transaction) (Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	tx, err := t.ledger.Add(tx)
	if err != nil {
		return tx, err
	}
	t.rebuild()
	return tx, t.persist()
}

// UpdateTransaction replaces a manual transaction by id, rebuilds and
// persists. Editing a synced transaction fails with ErrInvalidOperation.
func (t *Tracker) UpdateTransaction(id string, tx Transaction) (Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	tx, err := t.ledger.Update(id, tx)
	if err != nil {
		return tx, err
	}
	t.rebuild()
	return tx, t.persist()
}

// DeleteTransaction removes a manual transaction by id, rebuilds and
// persists. Deleting a synced transaction fails with ErrInvalidOperation.
func (t *Tracker) DeleteTransaction(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ledger.Delete(id); err != nil {
		return err
	}
	t.rebuild()
	return t.persist()
}

// ToggleFavorite flips the favorite flag of a holding. Favorites are a
// display preference, not ledger data, so they survive rebuilds but not
// restarts.
func (t *Tracker) ToggleFavorite(symbol string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stateMu.Lock()
	t.favorites[symbol] = !t.favorites[symbol]
	t.stateMu.Unlock()
	t.rebuild()
}

// Transactions returns a copy of the current transaction log.
func (t *Tracker) Transactions() []Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.All()
}

// Snapshot returns the current holdings. The slice is never mutated after
// publication; callers may read it concurrently with writes in progress
// and will observe either the pre- or post-mutation snapshot.
func (t *Tracker) Snapshot() Holdings {
	t.stateMu.RLock()
	defer t.stateMu.RUnlock()
	return t.holdings
}

// Inconsistencies returns the ledger defects found by the last replay.
func (t *Tracker) Inconsistencies() []Inconsistency {
	t.stateMu.RLock()
	defer t.stateMu.RUnlock()
	return t.faults
}

// History returns the daily total-value samples collected so far, oldest
// first.
func (t *Tracker) History() []ValuePoint {
	t.stateMu.RLock()
	defer t.stateMu.RUnlock()
	out := make([]ValuePoint, len(t.history))
	copy(out, t.history)
	return out
}

// Subscribe registers a listener for holdings snapshots. The returned
// cancel function must be called on teardown. A slow subscriber only ever
// misses intermediate snapshots, never the latest one.
func (t *Tracker) Subscribe() (<-chan Holdings, func()) {
	t.subMu.Lock()
	defer t.subMu.Unlock()
	id := t.nextSub
	t.nextSub++
	ch := make(chan Holdings, 1)
	t.subs[id] = ch
	return ch, func() {
		t.subMu.Lock()
		defer t.subMu.Unlock()
		if _, ok := t.subs[id]; ok {
			delete(t.subs, id)
			close(ch)
		}
	}
}

// RefreshQuotes fetches the latest quotes for all held symbols and
// re-annotates the snapshot. A fetch failure keeps the previous prices.
func (t *Tracker) RefreshQuotes(ctx context.Context) error {
	symbols := t.Snapshot().Symbols()
	if len(symbols) == 0 {
		return nil
	}
	quotes, err := t.quotes.Quotes(ctx, symbols)
	if err != nil {
		return err
	}
	if len(quotes) == 0 {
		return nil // no update this tick
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.stateMu.Lock()
	for symbol, q := range quotes {
		t.lastQuotes[symbol] = q
	}
	t.stateMu.Unlock()
	t.rebuild()
	return nil
}

// SyncExchange replaces all synced transactions with the exchange's
// current balances, rebuilds and persists. A failed sync leaves the prior
// holdings unchanged.
func (t *Tracker) SyncExchange(ctx context.Context) error {
	if t.syncer == nil {
		return nil
	}
	txs, err := t.syncer.SyncTransactions(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ledger.ReplaceSynced(txs); err != nil {
		return err
	}
	t.rebuild()
	return t.persist()
}

// Run drives the periodic refresh loop until ctx is cancelled. Each tick
// is independent: a slow or failed tick is logged and simply skips to the
// next scheduled one, there is no backpressure queue.
func (t *Tracker) Run(ctx context.Context) error {
	quoteTicker := time.NewTicker(t.QuoteInterval)
	defer quoteTicker.Stop()
	syncTicker := time.NewTicker(t.SyncInterval)
	defer syncTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-quoteTicker.C:
			if err := t.RefreshQuotes(ctx); err != nil {
				log.Printf("quote refresh failed, retrying next tick: %v", err)
			}
		case <-syncTicker.C:
			if err := t.SyncExchange(ctx); err != nil {
				log.Printf("exchange sync failed, retrying next tick: %v", err)
			}
		}
	}
}

// rebuild replays the ledger into a fresh holdings snapshot, annotates it
// with the latest quotes and swaps it in. Callers must hold t.mu.
func (t *Tracker) rebuild() {
	holdings, faults := Reconcile(t.mode.Filter(t.ledger.All()))

	t.stateMu.Lock()
	holdings = Annotate(holdings, t.lastQuotes)
	for i, h := range holdings {
		holdings[i].Favorite = t.favorites[h.Symbol]
	}
	t.holdings = holdings
	t.faults = faults
	t.recordValue(holdings.TotalValue())
	t.stateMu.Unlock()

	for _, fault := range faults {
		log.Printf("ledger inconsistency: %v", fault)
	}
	t.publish(holdings)
}

// recordValue appends today's total value to the history, replacing an
// existing same-day sample. Callers must hold t.stateMu.
func (t *Tracker) recordValue(total Money) {
	today := Today()
	if n := len(t.history); n > 0 && t.history[n-1].Date == today {
		t.history[n-1].Value = total
		return
	}
	t.history = append(t.history, ValuePoint{Date: today, Value: total})
	if len(t.history) > historyDays {
		t.history = t.history[len(t.history)-historyDays:]
	}
}

// publish delivers the snapshot to all subscribers without blocking:
// a full subscriber channel is drained of its stale snapshot first.
func (t *Tracker) publish(holdings Holdings) {
	t.subMu.Lock()
	defer t.subMu.Unlock()
	for _, ch := range t.subs {
		select {
		case ch <- holdings:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- holdings:
			default:
			}
		}
	}
}

func (t *Tracker) persist() error {
	if t.path == "" {
		return nil
	}
	return SaveLedger(t.path, t.ledger)
}
