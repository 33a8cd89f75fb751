package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/theirongolddev/budgetbuddy/internal/logging"
	"github.com/theirongolddev/budgetbuddy/internal/model"
)

// ErrPersist wraps a failure to write ledger state to the store. The
// in-memory state has already changed when it is returned.
var ErrPersist = errors.New("persisting ledger")

// Store is the key-value persistence the ledger mirrors its state into.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Load reads ledger state from st. Each key falls back to its default on its
// own when missing or unreadable; failures are logged, never returned.
func Load(ctx context.Context, st Store, log *logging.Logger) model.LedgerState {
	if log == nil {
		log = logging.Discard()
	}
	state := model.DefaultLedgerState()

	if raw, ok, err := st.Get(ctx, KeyTransactions); err != nil {
		log.Warn("reading stored transactions", "error", err)
	} else if ok {
		txs, err := DecodeTransactions(raw)
		if err != nil {
			log.Warn("stored transactions are malformed, using empty list", "error", err)
		} else {
			state.Transactions = txs
		}
	}

	if raw, ok, err := st.Get(ctx, KeyBalance); err != nil {
		log.Warn("reading stored balance", "error", err)
	} else if ok {
		b, err := DecodeBalance(raw)
		if err != nil {
			log.Warn("stored balance is malformed, using default", "error", err)
		} else {
			state.Balance = b
		}
	}

	return state
}

type subscriber struct {
	id int
	fn func(model.LedgerState)
}

// Ledger holds the current state and is the only place it changes.
type Ledger struct {
	// writeMu serializes mutations from transition through persist and
	// notify, so the store and subscribers see states in order.
	writeMu sync.Mutex

	mu     sync.Mutex
	store  Store
	log    *logging.Logger
	state  model.LedgerState
	nextID int64
	subs   []subscriber
	subSeq int
}

// New loads state from st and returns a ready ledger.
func New(ctx context.Context, st Store, log *logging.Logger) *Ledger {
	if log == nil {
		log = logging.Discard()
	}
	state := Load(ctx, st, log)
	log.Debug("ledger loaded", "transactions", len(state.Transactions), "balance", state.Balance.String())
	return &Ledger{
		store:  st,
		log:    log,
		state:  state,
		nextID: NextID(state.Transactions),
	}
}

// State returns a copy of the current state.
func (l *Ledger) State() model.LedgerState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Clone()
}

// Add records a new transaction and returns it. A non-nil error wrapping
// ErrPersist still comes with the recorded transaction.
func (l *Ledger) Add(ctx context.Context, in model.TransactionInput) (model.Transaction, error) {
	if err := in.Validate(); err != nil {
		return model.Transaction{}, err
	}

	var tx model.Transaction
	err := l.apply(ctx, func(s model.LedgerState) model.LedgerState {
		tx = NewTransaction(in, l.nextID)
		l.nextID++
		return Add(s, tx)
	})
	l.log.Info("transaction added", "id", tx.ID, "category", string(tx.Category), "amount", tx.Amount.String())
	return tx, err
}

// Reset clears all transactions and restores the default balance.
func (l *Ledger) Reset(ctx context.Context) error {
	err := l.apply(ctx, func(model.LedgerState) model.LedgerState {
		l.nextID = 1
		return Reset()
	})
	l.log.Info("ledger reset")
	return err
}

// Subscribe registers fn to receive the state after every change. Calls are
// synchronous and in registration order, and fn must not call Add or Reset.
// The returned func unsubscribes.
func (l *Ledger) Subscribe(fn func(model.LedgerState)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subSeq++
	id := l.subSeq
	l.subs = append(l.subs, subscriber{id: id, fn: fn})

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, s := range l.subs {
			if s.id == id {
				l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

// apply runs transition on the current state, persists the result and
// notifies subscribers. Concurrent calls run one at a time; only the
// transition itself holds mu, so State stays readable while persisting.
func (l *Ledger) apply(ctx context.Context, transition func(model.LedgerState) model.LedgerState) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	l.mu.Lock()
	next := transition(l.state)
	l.state = next
	subs := make([]subscriber, len(l.subs))
	copy(subs, l.subs)
	l.mu.Unlock()

	err := l.persist(ctx, next)
	if err != nil {
		l.log.Error("ledger state not saved", "error", err)
	}

	for _, s := range subs {
		s.fn(next.Clone())
	}
	return err
}

func (l *Ledger) persist(ctx context.Context, s model.LedgerState) error {
	var errs []error

	txs, err := EncodeTransactions(s.Transactions)
	if err == nil {
		err = l.store.Set(ctx, KeyTransactions, txs)
	}
	if err != nil {
		errs = append(errs, err)
	}

	bal, err := EncodeBalance(s.Balance)
	if err == nil {
		err = l.store.Set(ctx, KeyBalance, bal)
	}
	if err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrPersist, errors.Join(errs...))
	}
	return nil
}
