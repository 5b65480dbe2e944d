package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ClientID identifies one account.
type ClientID uint16

var (
	ErrNegativeHeld     = errors.New("held amount is negative")
	ErrHeldExceedsTotal = errors.New("held amount exceeds total")
)

// Account holds one client's balances and the deposits that can still be disputed.
type Account struct {
	ClientID ClientID
	Total    decimal.Decimal
	Held     decimal.Decimal
	Locked   bool

	transfers map[TransactionID]*Transfer
}

// NewAccount creates a zero-balance, unlocked account.
func NewAccount(clientID ClientID) *Account {
	return &Account{
		ClientID:  clientID,
		Total:     decimal.Zero,
		Held:      decimal.Zero,
		transfers: make(map[TransactionID]*Transfer),
	}
}

// Available returns funds not tied up in a dispute.
func (a *Account) Available() decimal.Decimal {
	return a.Total.Sub(a.Held)
}

// InsertTransfer stores transfer under id, overwriting any previous one.
// Callers must check ContainsTransfer to detect duplicates.
func (a *Account) InsertTransfer(id TransactionID, transfer Transfer) {
	if a.transfers == nil {
		a.transfers = make(map[TransactionID]*Transfer)
	}
	a.transfers[id] = &transfer
}

// RemoveTransfer deletes id. Removing an absent id is a no-op.
func (a *Account) RemoveTransfer(id TransactionID) {
	delete(a.transfers, id)
}

func (a *Account) ContainsTransfer(id TransactionID) bool {
	_, ok := a.transfers[id]
	return ok
}

// GetTransferForUpdate returns the stored transfer for in-place mutation.
func (a *Account) GetTransferForUpdate(id TransactionID) (*Transfer, error) {
	transfer, ok := a.transfers[id]
	if !ok {
		return nil, ErrTransferNotFound
	}
	return transfer, nil
}

// Transfers returns a copy of the account's transfers.
func (a *Account) Transfers() map[TransactionID]Transfer {
	out := make(map[TransactionID]Transfer, len(a.transfers))
	for id, t := range a.transfers {
		out[id] = *t
	}
	return out
}

// DisputedAmount sums the amounts of all currently disputed transfers.
func (a *Account) DisputedAmount() decimal.Decimal {
	sum := decimal.Zero
	for _, t := range a.transfers {
		if t.Disputed {
			sum = sum.Add(t.Amount)
		}
	}
	return sum
}

// Validate checks the balance invariants.
func (a *Account) Validate() error {
	if a.Held.IsNegative() {
		return fmt.Errorf("%w: client %d held %s", ErrNegativeHeld, a.ClientID, a.Held)
	}
	if a.Total.LessThan(a.Held) {
		return fmt.Errorf("%w: client %d held %s total %s", ErrHeldExceedsTotal, a.ClientID, a.Held, a.Total)
	}
	return nil
}
