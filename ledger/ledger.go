// Package ledger stores the transaction history used to validate dispute,
// resolve, and chargeback requests.
//
// The ledger is a pure fact store: it enforces transaction id uniqueness and
// nothing else. Business validation of status transitions belongs to the
// caller. Entries are never deleted for the life of the run; the dispute
// status is the only mutable field.
package ledger

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

// Kind identifies the funds movement a transaction performed.
type Kind string

const (
	// KindDeposit credits funds to a client's available balance.
	KindDeposit Kind = "deposit"
	// KindWithdrawal debits funds from a client's available balance.
	KindWithdrawal Kind = "withdrawal"
)

// Status is the dispute lifecycle state of a recorded transaction.
//
// Transitions:
//
//	Normal → Disputed → {Resolved, ChargedBack}
//
// Resolved and ChargedBack are terminal. Disputed is reachable only once,
// only from Normal, and only for deposits.
type Status string

const (
	// StatusNormal marks a transaction that has never been disputed.
	StatusNormal Status = "NORMAL"
	// StatusDisputed marks a transaction whose funds are held pending resolution.
	StatusDisputed Status = "DISPUTED"
	// StatusResolved marks a dispute settled in the client's favor; terminal.
	StatusResolved Status = "RESOLVED"
	// StatusChargedBack marks a dispute settled by reversal; terminal.
	StatusChargedBack Status = "CHARGED_BACK"
)

// ErrDuplicateTx is returned when recording a transaction id that already exists.
var ErrDuplicateTx = errors.New("transaction id already recorded")

// ErrTxNotFound is returned when marking a transaction id that was never recorded.
var ErrTxNotFound = errors.New("transaction not found")

// Entry is one recorded transaction.
type Entry struct {
	ID     uint32
	Client uint16
	Kind   Kind
	Amount decimal.Decimal
	Status Status
}

// Ledger is an append-mostly fact store keyed by transaction id.
type Ledger struct {
	mu      sync.Mutex
	entries map[uint32]*Entry
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{entries: make(map[uint32]*Entry)}
}

// Record inserts a new entry. Returns ErrDuplicateTx if the id is taken.
func (l *Ledger) Record(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.entries[e.ID]; exists {
		return ErrDuplicateTx
	}

	stored := e
	l.entries[e.ID] = &stored

	return nil
}

// Get returns a copy of the stored entry and whether it exists.
func (l *Ledger) Get(id uint32) (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[id]
	if !ok {
		return Entry{}, false
	}

	return *e, true
}

// Mark transitions the entry's dispute status. The caller is responsible for
// validating that the transition is legal; Mark only verifies identity.
func (l *Ledger) Mark(id uint32, status Status) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[id]
	if !ok {
		return ErrTxNotFound
	}

	e.Status = status

	return nil
}
