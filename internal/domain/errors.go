package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrFrozenAccount     = errors.New("not allowed on a frozen account")
	ErrInsufficientFunds = errors.New("available funds are not sufficient")

	// Transfer errors
	ErrTransferNotFound     = errors.New("corresponding transfer not found")
	ErrDuplicateTransaction = errors.New("duplicated transaction id")
	ErrAlreadyDisputed      = errors.New("corresponding transfer already disputed")
	ErrNotDisputed          = errors.New("corresponding transfer not disputed")

	// Record errors
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrUnparseableRecord      = errors.New("unparseable record")
)

// ErrorKind classifies why a transaction did not apply.
type ErrorKind int

const (
	// KindDenied means the request is valid but policy forbids it right now.
	KindDenied ErrorKind = iota + 1
	// KindRejected means the request is invalid or references unknown state.
	KindRejected
)

func (k ErrorKind) String() string {
	switch k {
	case KindDenied:
		return "denied"
	case KindRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// TransactionError is a classified, non-fatal transaction failure.
type TransactionError struct {
	Kind ErrorKind
	Err  error
}

func (e *TransactionError) Error() string {
	return "transaction " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// Deny classifies err as Denied.
func Deny(err error) error {
	return &TransactionError{Kind: KindDenied, Err: err}
}

// Reject classifies err as Rejected.
func Reject(err error) error {
	return &TransactionError{Kind: KindRejected, Err: err}
}

// KindOf returns the classification of err. Unclassified non-nil errors
// are treated as Rejected.
func KindOf(err error) (ErrorKind, bool) {
	if err == nil {
		return 0, false
	}
	var txErr *TransactionError
	if errors.As(err, &txErr) {
		return txErr.Kind, true
	}
	return KindRejected, true
}

func IsDenied(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindDenied
}

func IsRejected(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindRejected
}
