// Package engine applies the transaction state machine over the ledger and
// account stores.
//
// Core flow:
//   - Process applies one record's full effect as a single uninterruptible
//     unit, or rejects it with a typed domain error and zero state change.
//   - Run drains a record source, reporting rejections on the diagnostic
//     logger and stopping only on source errors or cancellation.
//
// Records are processed strictly in arrival order: dispute, resolve, and
// chargeback correctness depends on the referenced transaction having been
// recorded first.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/TaoVonQi/tx-engine/account"
	"github.com/TaoVonQi/tx-engine/ledger"
)

// Source yields transaction records in arrival order. Next returns io.EOF
// when the stream is exhausted; any other error is fatal for the run.
type Source interface {
	Next() (Record, error)
}

// Engine consumes records one at a time and mutates the ledger and account
// stores under a single mutual-exclusion scope.
type Engine struct {
	mu       sync.Mutex
	ledger   *ledger.Ledger
	accounts *account.Store
	log      *zap.Logger
}

// New creates an engine over the given stores. The logger receives one
// diagnostic entry per rejected record, tagged with a run-scoped id; pass
// nil to discard diagnostics.
func New(l *ledger.Ledger, accounts *account.Store, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}

	return &Engine{
		ledger:   l,
		accounts: accounts,
		log:      log.With(zap.String("run_id", uuid.NewString())),
	}
}

// Run processes records from src until io.EOF. Logical rejections are logged
// and skipped; a source error aborts the run with no further processing.
func (e *Engine) Run(ctx context.Context, src Source) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("read record: %w", err)
		}

		if err := e.Process(rec); err != nil {
			e.log.Warn("record rejected",
				zap.String("kind", string(rec.Kind)),
				zap.Uint32("tx", rec.Tx),
				zap.Uint16("client", rec.Client),
				zap.Error(err),
			)
		}
	}
}

// Process applies one record. On rejection it returns a DomainError and
// leaves the ledger and account stores exactly as they were.
func (e *Engine) Process(rec Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Peek without creating: a rejected record must leave no trace, not
	// even an empty account row in the report.
	if acct, ok := e.accounts.Get(rec.Client); ok && acct.Locked {
		return NewDomainError(ErrorAccountLocked, "client", "account is frozen")
	}

	switch rec.Kind {
	case KindDeposit:
		return e.deposit(rec)
	case KindWithdrawal:
		return e.withdraw(rec)
	case KindDispute:
		return e.dispute(rec)
	case KindResolve:
		return e.resolve(rec)
	case KindChargeback:
		return e.chargeback(rec)
	default:
		return NewDomainError(ErrorInvalidRecord, "kind", fmt.Sprintf("unsupported kind %q", rec.Kind))
	}
}

// Snapshot returns the final account states in deterministic order.
func (e *Engine) Snapshot() []account.Account {
	return e.accounts.Snapshot()
}

func (e *Engine) deposit(rec Record) error {
	if rec.Amount == nil {
		return NewDomainError(ErrorInvalidRecord, "amount", "deposit requires an amount")
	}

	entry := ledger.Entry{
		ID:     rec.Tx,
		Client: rec.Client,
		Kind:   ledger.KindDeposit,
		Amount: *rec.Amount,
		Status: ledger.StatusNormal,
	}
	if err := e.ledger.Record(entry); err != nil {
		return NewDomainError(ErrorDuplicateTransaction, "tx", err.Error())
	}

	e.accounts.ApplyDelta(rec.Client, *rec.Amount, decimal.Zero)

	return nil
}

func (e *Engine) withdraw(rec Record) error {
	if rec.Amount == nil {
		return NewDomainError(ErrorInvalidRecord, "amount", "withdrawal requires an amount")
	}

	acct, _ := e.accounts.Get(rec.Client)
	if acct.Available.LessThan(*rec.Amount) {
		return NewDomainError(ErrorInsufficientFunds, "amount", "withdrawal exceeds available balance")
	}

	entry := ledger.Entry{
		ID:     rec.Tx,
		Client: rec.Client,
		Kind:   ledger.KindWithdrawal,
		Amount: *rec.Amount,
		Status: ledger.StatusNormal,
	}
	if err := e.ledger.Record(entry); err != nil {
		return NewDomainError(ErrorDuplicateTransaction, "tx", err.Error())
	}

	e.accounts.ApplyDelta(rec.Client, rec.Amount.Neg(), decimal.Zero)

	return nil
}

func (e *Engine) dispute(rec Record) error {
	entry, err := e.lookup(rec)
	if err != nil {
		return err
	}

	if entry.Kind != ledger.KindDeposit {
		return NewDomainError(ErrorNotDisputable, "tx", "only deposits can be disputed")
	}

	// A transaction may be disputed at most once, ever, even after resolution.
	if entry.Status != ledger.StatusNormal {
		return NewDomainError(ErrorInvalidStatus, "tx",
			fmt.Sprintf("cannot dispute: status is %s", entry.Status))
	}

	if err := e.ledger.Mark(rec.Tx, ledger.StatusDisputed); err != nil {
		return NewDomainError(ErrorTransactionNotFound, "tx", err.Error())
	}

	// Available may legitimately go negative here when intervening
	// withdrawals already spent the disputed funds.
	e.accounts.ApplyDelta(rec.Client, entry.Amount.Neg(), entry.Amount)

	return nil
}

func (e *Engine) resolve(rec Record) error {
	entry, err := e.lookup(rec)
	if err != nil {
		return err
	}

	if entry.Status != ledger.StatusDisputed {
		return NewDomainError(ErrorInvalidStatus, "tx",
			fmt.Sprintf("cannot resolve: status is %s", entry.Status))
	}

	if err := e.ledger.Mark(rec.Tx, ledger.StatusResolved); err != nil {
		return NewDomainError(ErrorTransactionNotFound, "tx", err.Error())
	}

	e.accounts.ApplyDelta(rec.Client, entry.Amount, entry.Amount.Neg())

	return nil
}

func (e *Engine) chargeback(rec Record) error {
	entry, err := e.lookup(rec)
	if err != nil {
		return err
	}

	if entry.Status != ledger.StatusDisputed {
		return NewDomainError(ErrorInvalidStatus, "tx",
			fmt.Sprintf("cannot charge back: status is %s", entry.Status))
	}

	if err := e.ledger.Mark(rec.Tx, ledger.StatusChargedBack); err != nil {
		return NewDomainError(ErrorTransactionNotFound, "tx", err.Error())
	}

	e.accounts.ApplyDelta(rec.Client, decimal.Zero, entry.Amount.Neg())
	e.accounts.Lock(rec.Client)

	return nil
}

// lookup fetches the transaction referenced by a dispute-family record and
// verifies ownership.
func (e *Engine) lookup(rec Record) (ledger.Entry, error) {
	entry, ok := e.ledger.Get(rec.Tx)
	if !ok {
		return ledger.Entry{}, NewDomainError(ErrorTransactionNotFound, "tx", "referenced transaction does not exist")
	}

	if entry.Client != rec.Client {
		return ledger.Entry{}, NewDomainError(ErrorClientMismatch, "client", "referenced transaction belongs to another client")
	}

	return entry, nil
}
