package engine

import "github.com/shopspring/decimal"

// Kind identifies the operation a record requests.
type Kind string

const (
	// KindDeposit credits funds to the client's available balance.
	KindDeposit Kind = "deposit"
	// KindWithdrawal debits funds from the client's available balance.
	KindWithdrawal Kind = "withdrawal"
	// KindDispute contests a prior deposit, holding its funds.
	KindDispute Kind = "dispute"
	// KindResolve settles a dispute, releasing held funds.
	KindResolve Kind = "resolve"
	// KindChargeback settles a dispute by reversal, freezing the account.
	KindChargeback Kind = "chargeback"
)

// Record is one well-typed transaction record from the stream.
//
// Amount is present only for deposits and withdrawals; dispute, resolve, and
// chargeback records reference a prior transaction's amount via Tx.
type Record struct {
	Kind   Kind
	Client uint16
	Tx     uint32
	Amount *decimal.Decimal
}
