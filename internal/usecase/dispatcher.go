package usecase

import (
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/iho/txengine/internal/domain"
)

// RunSummary counts record outcomes.
type RunSummary struct {
	Processed int
	Applied   int
	Denied    int
	Rejected  int
}

// Dispatcher validates input records and applies them to the ledger in order.
// It is not safe for concurrent use.
type Dispatcher struct {
	accounts AccountRepository
	observer OutcomeObserver
	sequence uint64
	summary  RunSummary
}

// NewDispatcher creates a new Dispatcher. A nil observer discards events.
func NewDispatcher(accounts AccountRepository, observer OutcomeObserver) *Dispatcher {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Dispatcher{
		accounts: accounts,
		observer: observer,
	}
}

// Run dispatches every record from source until io.EOF. Record outcomes never
// stop the run; only a fatal source error is returned.
func (d *Dispatcher) Run(source RecordSource) (RunSummary, error) {
	for {
		rec, err := source.Next()
		if errors.Is(err, io.EOF) {
			return d.summary, nil
		}

		var recErr *RecordError
		if err != nil && !errors.As(err, &recErr) {
			return d.summary, fmt.Errorf("read record: %w", err)
		}

		d.Dispatch(rec, err)
	}
}

// Dispatch processes one record, or the parse error that replaced it, and
// reports exactly one outcome. The returned error is nil on success and a
// *domain.TransactionError otherwise.
func (d *Dispatcher) Dispatch(rec Record, parseErr error) error {
	d.sequence++

	err := d.dispatch(rec, parseErr)
	d.report(rec, parseErr, err)
	return err
}

// Summary returns the outcome counts so far.
func (d *Dispatcher) Summary() RunSummary {
	return d.summary
}

func (d *Dispatcher) dispatch(rec Record, parseErr error) error {
	if parseErr != nil {
		return domain.Reject(fmt.Errorf("%w: %v", domain.ErrUnparseableRecord, parseErr))
	}

	txType := domain.TransactionType(rec.Type)
	if !txType.Valid() {
		return domain.Reject(fmt.Errorf("%w: %q", domain.ErrInvalidTransactionType, rec.Type))
	}

	amount := decimal.Zero
	if txType.RequiresAmount() {
		validated, err := domain.ValidateAmount(rec.Amount)
		if err != nil {
			return domain.Reject(err)
		}
		amount = validated
	}

	tx, err := domain.NewTransaction(txType, rec.Tx, amount)
	if err != nil {
		return domain.Reject(err)
	}

	return d.process(rec.Client, tx)
}

func (d *Dispatcher) process(clientID domain.ClientID, tx domain.Transaction) error {
	var account *domain.Account
	if tx.AllowsAccountCreation() {
		acc, created := d.accounts.GetOrCreate(clientID)
		if created {
			d.observer.OnAccountCreated(domain.AccountCreatedEvent{
				ClientID: clientID,
				Sequence: d.sequence,
			})
		}
		account = acc
	} else {
		acc, err := d.accounts.Get(clientID)
		if err != nil {
			return domain.Reject(err)
		}
		account = acc
	}

	if account.Locked && !tx.AllowedOnFrozenAccount() {
		return domain.Deny(domain.ErrFrozenAccount)
	}

	return tx.Execute(account)
}

func (d *Dispatcher) report(rec Record, parseErr, err error) {
	event := domain.OutcomeEvent{
		Sequence: d.sequence,
		Err:      err,
	}
	if parseErr == nil {
		event.TransactionType = domain.TransactionType(rec.Type)
		event.ClientID = rec.Client
		event.TransactionID = rec.Tx
		event.Amount = rec.Amount
	}

	d.summary.Processed++
	switch {
	case err == nil:
		event.EventType = domain.EventTypeTransactionApplied
		d.summary.Applied++
	case domain.IsDenied(err):
		event.EventType = domain.EventTypeTransactionDenied
		d.summary.Denied++
	default:
		event.EventType = domain.EventTypeTransactionRejected
		d.summary.Rejected++
	}

	d.observer.OnOutcome(event)
}

type nopObserver struct{}

func (nopObserver) OnOutcome(domain.OutcomeEvent)               {}
func (nopObserver) OnAccountCreated(domain.AccountCreatedEvent) {}
