package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/iho/txengine/internal/domain"
)

// AccountRepository defines access to the ledger's accounts.
type AccountRepository interface {
	// Get returns an existing account or domain.ErrAccountNotFound.
	Get(clientID domain.ClientID) (*domain.Account, error)
	// GetOrCreate returns the account, creating an empty one on first reference.
	GetOrCreate(clientID domain.ClientID) (account *domain.Account, created bool)
	// List returns all accounts in creation order.
	List() []*domain.Account
	Len() int
}

// OutcomeObserver receives one event per processed record.
type OutcomeObserver interface {
	OnOutcome(event domain.OutcomeEvent)
	OnAccountCreated(event domain.AccountCreatedEvent)
}

// RecordSource yields input records in order.
type RecordSource interface {
	// Next returns the next record. A row that failed to parse is returned as
	// a non-nil *RecordError and the source remains usable. io.EOF marks the
	// end of input; any other error is fatal.
	Next() (Record, error)
}

// Record is one input row.
type Record struct {
	Type   string
	Client domain.ClientID
	Tx     domain.TransactionID
	Amount decimal.NullDecimal
}

// RecordError reports a row that could not be parsed.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return e.Err.Error()
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
