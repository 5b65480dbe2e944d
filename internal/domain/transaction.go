package domain

import "github.com/shopspring/decimal"

// TransactionType is the record-level name of a transaction variant.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeDispute    TransactionType = "dispute"
	TransactionTypeResolve    TransactionType = "resolve"
	TransactionTypeChargeback TransactionType = "chargeback"
)

// Valid reports whether t names one of the known variants. Matching is case-sensitive.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeDispute,
		TransactionTypeResolve, TransactionTypeChargeback:
		return true
	}
	return false
}

// RequiresAmount reports whether records of this type must carry an amount.
func (t TransactionType) RequiresAmount() bool {
	return t == TransactionTypeDeposit || t == TransactionTypeWithdrawal
}

// Transaction is one of Deposit, Withdrawal, Dispute, Resolve or Chargeback.
// The set is closed: only types in this package implement it.
//
// Execute either mutates the account and returns nil, or returns a classified
// error and leaves the account untouched.
type Transaction interface {
	Type() TransactionType
	TransactionID() TransactionID
	Execute(account *Account) error
	AllowsAccountCreation() bool
	AllowedOnFrozenAccount() bool

	sealed()
}

var (
	_ Transaction = Deposit{}
	_ Transaction = Withdrawal{}
	_ Transaction = Dispute{}
	_ Transaction = Resolve{}
	_ Transaction = Chargeback{}
)

// Deposit credits an account and records a disputable transfer.
type Deposit struct {
	ID     TransactionID
	Amount decimal.Decimal
}

func (Deposit) Type() TransactionType          { return TransactionTypeDeposit }
func (d Deposit) TransactionID() TransactionID { return d.ID }
func (Deposit) AllowsAccountCreation() bool    { return true }
func (Deposit) AllowedOnFrozenAccount() bool   { return true }
func (Deposit) sealed()                        {}

func (d Deposit) Execute(account *Account) error {
	if account.ContainsTransfer(d.ID) {
		return Reject(ErrDuplicateTransaction)
	}

	account.Total = account.Total.Add(d.Amount)
	account.InsertTransfer(d.ID, Transfer{Amount: d.Amount})
	return nil
}

// Withdrawal debits available funds.
type Withdrawal struct {
	ID     TransactionID
	Amount decimal.Decimal
}

func (Withdrawal) Type() TransactionType          { return TransactionTypeWithdrawal }
func (w Withdrawal) TransactionID() TransactionID { return w.ID }
func (Withdrawal) AllowsAccountCreation() bool    { return false }
func (Withdrawal) AllowedOnFrozenAccount() bool   { return false }
func (Withdrawal) sealed()                        {}

func (w Withdrawal) Execute(account *Account) error {
	if account.Available().LessThan(w.Amount) {
		return Deny(ErrInsufficientFunds)
	}

	account.Total = account.Total.Sub(w.Amount)
	return nil
}

// Dispute holds the funds of a previous deposit.
//
// The disputed amount must be fully available; a dispute on funds that were
// already withdrawn is denied rather than partially held.
type Dispute struct {
	ID TransactionID
}

func (Dispute) Type() TransactionType          { return TransactionTypeDispute }
func (d Dispute) TransactionID() TransactionID { return d.ID }
func (Dispute) AllowsAccountCreation() bool    { return false }
func (Dispute) AllowedOnFrozenAccount() bool   { return false }
func (Dispute) sealed()                        {}

func (d Dispute) Execute(account *Account) error {
	transfer, err := account.GetTransferForUpdate(d.ID)
	if err != nil {
		return Reject(err)
	}
	if transfer.Disputed {
		return Deny(ErrAlreadyDisputed)
	}
	if account.Available().LessThan(transfer.Amount) {
		return Deny(ErrInsufficientFunds)
	}

	transfer.Disputed = true
	account.Held = account.Held.Add(transfer.Amount)
	return nil
}

// Resolve releases the funds held by a dispute.
type Resolve struct {
	ID TransactionID
}

func (Resolve) Type() TransactionType          { return TransactionTypeResolve }
func (r Resolve) TransactionID() TransactionID { return r.ID }
func (Resolve) AllowsAccountCreation() bool    { return false }
func (Resolve) AllowedOnFrozenAccount() bool   { return false }
func (Resolve) sealed()                        {}

func (r Resolve) Execute(account *Account) error {
	transfer, err := account.GetTransferForUpdate(r.ID)
	if err != nil {
		return Reject(err)
	}
	if !transfer.Disputed {
		return Deny(ErrNotDisputed)
	}

	transfer.Disputed = false
	account.Held = account.Held.Sub(transfer.Amount)
	return nil
}

// Chargeback reverses a disputed deposit and freezes the account.
type Chargeback struct {
	ID TransactionID
}

func (Chargeback) Type() TransactionType          { return TransactionTypeChargeback }
func (c Chargeback) TransactionID() TransactionID { return c.ID }
func (Chargeback) AllowsAccountCreation() bool    { return false }
func (Chargeback) AllowedOnFrozenAccount() bool   { return false }
func (Chargeback) sealed()                        {}

func (c Chargeback) Execute(account *Account) error {
	transfer, err := account.GetTransferForUpdate(c.ID)
	if err != nil {
		return Reject(err)
	}
	if !transfer.Disputed {
		return Deny(ErrNotDisputed)
	}

	account.Held = account.Held.Sub(transfer.Amount)
	account.Total = account.Total.Sub(transfer.Amount)
	account.RemoveTransfer(c.ID)
	account.Locked = true
	return nil
}

// NewTransaction builds the variant named by txType. amount is only consulted
// for types that require one and must already be validated.
func NewTransaction(txType TransactionType, id TransactionID, amount decimal.Decimal) (Transaction, error) {
	switch txType {
	case TransactionTypeDeposit:
		return Deposit{ID: id, Amount: amount}, nil
	case TransactionTypeWithdrawal:
		return Withdrawal{ID: id, Amount: amount}, nil
	case TransactionTypeDispute:
		return Dispute{ID: id}, nil
	case TransactionTypeResolve:
		return Resolve{ID: id}, nil
	case TransactionTypeChargeback:
		return Chargeback{ID: id}, nil
	default:
		return nil, ErrInvalidTransactionType
	}
}
