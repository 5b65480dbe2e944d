package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsProcessed *prometheus.CounterVec
	TransactionAmount     *prometheus.HistogramVec
	RecordsUnparseable    prometheus.Counter

	// Account metrics
	AccountsCreated prometheus.Counter
	AccountsLocked  prometheus.Gauge

	// Reconciliation metrics
	ReconciliationDiscrepancies prometheus.Gauge
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Transaction metrics
		TransactionsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txengine_transactions_processed_total",
				Help: "Total number of processed records by transaction type and outcome",
			},
			[]string{"type", "outcome"},
		),
		TransactionAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "txengine_transaction_amount",
				Help:    "Amounts of applied deposits and withdrawals",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"type"},
		),
		RecordsUnparseable: factory.NewCounter(prometheus.CounterOpts{
			Name: "txengine_records_unparseable_total",
			Help: "Total number of input rows that could not be parsed",
		}),

		// Account metrics
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "txengine_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsLocked: factory.NewGauge(prometheus.GaugeOpts{
			Name: "txengine_accounts_locked",
			Help: "Number of accounts frozen by a chargeback",
		}),

		// Reconciliation metrics
		ReconciliationDiscrepancies: factory.NewGauge(prometheus.GaugeOpts{
			Name: "txengine_reconciliation_discrepancies",
			Help: "Number of accounts that failed reconciliation",
		}),
	}
}

// WriteTextfile writes every metric gathered by g to filename in the text
// exposition format.
func WriteTextfile(filename string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(filename, g)
}
