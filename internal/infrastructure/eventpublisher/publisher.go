package eventpublisher

import (
	"github.com/rs/zerolog"

	"github.com/iho/txengine/internal/domain"
	"github.com/iho/txengine/internal/infrastructure/metrics"
	"github.com/iho/txengine/internal/usecase"
)

var (
	_ usecase.OutcomeObserver = (*LogPublisher)(nil)
	_ usecase.OutcomeObserver = (*MetricsPublisher)(nil)
	_ usecase.OutcomeObserver = Fanout(nil)
)

// LogPublisher logs outcome events: info for applied records, warn for
// denied and error for rejected ones.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// OnOutcome logs one record outcome.
func (p *LogPublisher) OnOutcome(event domain.OutcomeEvent) {
	var e *zerolog.Event
	switch event.EventType {
	case domain.EventTypeTransactionApplied:
		e = p.logger.Info()
	case domain.EventTypeTransactionDenied:
		e = p.logger.Warn()
	default:
		e = p.logger.Error()
	}

	e = e.Str("event_type", event.EventType).
		Uint64("seq", event.Sequence)

	if event.TransactionType != "" {
		e = e.Str("type", string(event.TransactionType)).
			Uint16("client", uint16(event.ClientID)).
			Uint32("tx", uint32(event.TransactionID))
		if event.Amount.Valid {
			e = e.Str("amount", event.Amount.Decimal.String())
		}
	}

	switch event.EventType {
	case domain.EventTypeTransactionApplied:
		e.Msg("transaction successfully completed")
	case domain.EventTypeTransactionDenied:
		e.Str("cause", event.Cause()).Msg("transaction denied")
	default:
		e.Str("cause", event.Cause()).Msg("transaction rejected")
	}
}

// OnAccountCreated logs account creation at debug level.
func (p *LogPublisher) OnAccountCreated(event domain.AccountCreatedEvent) {
	p.logger.Debug().
		Str("event_type", domain.EventTypeAccountCreated).
		Uint64("seq", event.Sequence).
		Uint16("client", uint16(event.ClientID)).
		Msg("account created")
}

// MetricsPublisher records outcome events as Prometheus metrics.
type MetricsPublisher struct {
	metrics *metrics.Metrics
}

// NewMetricsPublisher creates a new MetricsPublisher.
func NewMetricsPublisher(m *metrics.Metrics) *MetricsPublisher {
	return &MetricsPublisher{metrics: m}
}

// OnOutcome counts the outcome and observes applied amounts.
func (p *MetricsPublisher) OnOutcome(event domain.OutcomeEvent) {
	outcome := "applied"
	switch event.EventType {
	case domain.EventTypeTransactionDenied:
		outcome = "denied"
	case domain.EventTypeTransactionRejected:
		outcome = "rejected"
	}

	if event.TransactionType == "" {
		p.metrics.RecordsUnparseable.Inc()
	}
	txType := string(event.TransactionType)
	if !event.TransactionType.Valid() {
		txType = "unknown"
	}
	p.metrics.TransactionsProcessed.WithLabelValues(txType, outcome).Inc()

	if outcome == "applied" && event.TransactionType.RequiresAmount() && event.Amount.Valid {
		amount := domain.TruncateAmount(event.Amount.Decimal).InexactFloat64()
		p.metrics.TransactionAmount.WithLabelValues(txType).Observe(amount)
	}
}

// OnAccountCreated counts created accounts.
func (p *MetricsPublisher) OnAccountCreated(domain.AccountCreatedEvent) {
	p.metrics.AccountsCreated.Inc()
}

// Fanout forwards every event to each observer in order.
type Fanout []usecase.OutcomeObserver

func (f Fanout) OnOutcome(event domain.OutcomeEvent) {
	for _, o := range f {
		o.OnOutcome(event)
	}
}

func (f Fanout) OnAccountCreated(event domain.AccountCreatedEvent) {
	for _, o := range f {
		o.OnAccountCreated(event)
	}
}
