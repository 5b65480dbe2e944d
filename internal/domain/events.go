package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeTransactionApplied  = "transaction.applied"
	EventTypeTransactionDenied   = "transaction.denied"
	EventTypeTransactionRejected = "transaction.rejected"
	EventTypeAccountCreated      = "account.created"
)

// OutcomeEvent describes what happened to one input record.
type OutcomeEvent struct {
	EventType string

	// Sequence is the 1-based position of the record in the input stream.
	Sequence uint64

	// TransactionType is empty when the record could not be parsed.
	TransactionType TransactionType
	ClientID        ClientID
	TransactionID   TransactionID
	Amount          decimal.NullDecimal
	Err             error
}

// Cause returns the human-readable failure cause, or "" on success.
func (e OutcomeEvent) Cause() string {
	if e.Err == nil {
		return ""
	}
	var txErr *TransactionError
	if errors.As(e.Err, &txErr) {
		return txErr.Err.Error()
	}
	return e.Err.Error()
}

// AccountCreatedEvent is emitted when a deposit opens a new account.
type AccountCreatedEvent struct {
	ClientID ClientID
	Sequence uint64
}
