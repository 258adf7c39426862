package engine

import "fmt"

// ErrorCode is a domain error code used by transaction processing rejections.
type ErrorCode string

const (
	// ErrorAccountLocked indicates the client's account is frozen.
	ErrorAccountLocked ErrorCode = "ACCOUNT_LOCKED"
	// ErrorDuplicateTransaction indicates the transaction id was already recorded.
	ErrorDuplicateTransaction ErrorCode = "DUPLICATE_TRANSACTION"
	// ErrorInsufficientFunds indicates the available balance cannot cover the amount.
	ErrorInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	// ErrorTransactionNotFound indicates the referenced transaction id was never recorded.
	ErrorTransactionNotFound ErrorCode = "TRANSACTION_NOT_FOUND"
	// ErrorClientMismatch indicates the referenced transaction belongs to another client.
	ErrorClientMismatch ErrorCode = "CLIENT_MISMATCH"
	// ErrorNotDisputable indicates the referenced transaction kind cannot be disputed.
	ErrorNotDisputable ErrorCode = "NOT_DISPUTABLE"
	// ErrorInvalidStatus indicates the referenced transaction is not in the
	// dispute status the operation requires.
	ErrorInvalidStatus ErrorCode = "INVALID_STATUS"
	// ErrorInvalidRecord indicates the record cannot be processed as given.
	ErrorInvalidRecord ErrorCode = "INVALID_RECORD"
)

// DomainError represents a structured processing rejection.
type DomainError struct {
	Code    ErrorCode
	Field   string
	Message string
}

// Error returns the formatted domain error string.
func (e DomainError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}

	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
}

// NewDomainError creates a domain error with code, field, and message.
func NewDomainError(code ErrorCode, field, message string) error {
	return DomainError{Code: code, Field: field, Message: message}
}
