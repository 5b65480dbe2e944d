package memory

import (
	"fmt"

	"github.com/iho/txengine/internal/domain"
)

// Ledger implements usecase.AccountRepository in memory. Accounts are kept
// in creation order so exports are deterministic.
type Ledger struct {
	accounts map[domain.ClientID]*domain.Account
	order    []domain.ClientID
}

// NewLedger creates an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{
		accounts: make(map[domain.ClientID]*domain.Account),
	}
}

// Get returns the account for clientID.
func (l *Ledger) Get(clientID domain.ClientID) (*domain.Account, error) {
	account, ok := l.accounts[clientID]
	if !ok {
		return nil, fmt.Errorf("%w: client %d", domain.ErrAccountNotFound, clientID)
	}
	return account, nil
}

// GetOrCreate returns the account for clientID, creating it if absent.
func (l *Ledger) GetOrCreate(clientID domain.ClientID) (*domain.Account, bool) {
	if account, ok := l.accounts[clientID]; ok {
		return account, false
	}

	account := domain.NewAccount(clientID)
	l.accounts[clientID] = account
	l.order = append(l.order, clientID)
	return account, true
}

// List returns all accounts in creation order.
func (l *Ledger) List() []*domain.Account {
	accounts := make([]*domain.Account, 0, len(l.order))
	for _, id := range l.order {
		accounts = append(accounts, l.accounts[id])
	}
	return accounts
}

// Len returns the number of accounts.
func (l *Ledger) Len() int {
	return len(l.accounts)
}
