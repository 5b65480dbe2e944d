package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/txengine/internal/domain"
)

// ReconciliationUseCase checks ledger balances against the transfers backing them.
type ReconciliationUseCase struct {
	accounts AccountRepository
	now      func() time.Time
}

// NewReconciliationUseCase creates a new reconciliation use case.
func NewReconciliationUseCase(accounts AccountRepository) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accounts: accounts,
		now:      time.Now,
	}
}

// ReconciliationResult represents the result of a reconciliation check
type ReconciliationResult struct {
	ClientID       domain.ClientID
	RecordedHeld   decimal.Decimal
	CalculatedHeld decimal.Decimal
	Difference     decimal.Decimal
	BalanceErr     error
	IsReconciled   bool
}

// ReconcileAccount compares the account's held amount with the sum of its
// disputed transfers and checks its balance invariants.
func (uc *ReconciliationUseCase) ReconcileAccount(clientID domain.ClientID) (*ReconciliationResult, error) {
	account, err := uc.accounts.Get(clientID)
	if err != nil {
		return nil, err
	}

	return reconcile(account), nil
}

func reconcile(account *domain.Account) *ReconciliationResult {
	calculated := account.DisputedAmount()
	result := &ReconciliationResult{
		ClientID:       account.ClientID,
		RecordedHeld:   account.Held,
		CalculatedHeld: calculated,
		Difference:     account.Held.Sub(calculated),
		BalanceErr:     account.Validate(),
	}
	result.IsReconciled = result.Difference.IsZero() && result.BalanceErr == nil

	return result
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	TotalAccounts      int
	ReconciledAccounts int
	LockedAccounts     int
	Discrepancies      []*ReconciliationResult
	CheckedAt          time.Time
}

// Consistent reports whether every account reconciled.
func (r *ReconciliationReport) Consistent() bool {
	return len(r.Discrepancies) == 0
}

// GenerateReconciliationReport reconciles every account in the ledger.
func (uc *ReconciliationUseCase) GenerateReconciliationReport() *ReconciliationReport {
	accounts := uc.accounts.List()

	report := &ReconciliationReport{
		TotalAccounts: len(accounts),
		Discrepancies: make([]*ReconciliationResult, 0),
		CheckedAt:     uc.now().UTC(),
	}

	for _, account := range accounts {
		if account.Locked {
			report.LockedAccounts++
		}

		result := reconcile(account)
		if result.IsReconciled {
			report.ReconciledAccounts++
		} else {
			report.Discrepancies = append(report.Discrepancies, result)
		}
	}

	return report
}
