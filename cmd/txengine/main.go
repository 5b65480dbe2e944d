package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/txengine/internal/adapter/csvio"
	"github.com/iho/txengine/internal/adapter/repository/memory"
	"github.com/iho/txengine/internal/domain"
	"github.com/iho/txengine/internal/infrastructure/config"
	"github.com/iho/txengine/internal/infrastructure/eventpublisher"
	"github.com/iho/txengine/internal/infrastructure/idgen"
	"github.com/iho/txengine/internal/infrastructure/logger"
	"github.com/iho/txengine/internal/infrastructure/metrics"
	"github.com/iho/txengine/internal/usecase"
)

var errReconciliationFailed = errors.New("ledger reconciliation failed")

type app struct {
	cfg    *config.Config
	ids    usecase.IDGenerator
	stdout io.Writer
	stderr io.Writer
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	a := &app{
		cfg:    cfg,
		ids:    idgen.NewRunIDGenerator(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "txengine [flags] <transactions.csv>",
		Short: "Simple banking transaction engine",
		Long: `Reads deposits, withdrawals, disputes, resolves and chargebacks from a CSV
file, applies them to client accounts in order and writes the final
balances as CSV to stdout.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(args[0])
		},
	}
	cmd.SetOut(a.stderr)
	cmd.SetErr(a.stderr)

	// Flag defaults come from the environment, so flags win.
	flags := cmd.Flags()
	flags.BoolVarP(&a.cfg.LogEnabled, "log", "l", a.cfg.LogEnabled, "Provide log messages on stderr")
	flags.BoolVarP(&a.cfg.PrintDB, "printdb", "p", a.cfg.PrintDB, "Print the ledger to stderr for debugging purposes")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.StringVar(&a.cfg.LogFormat, "log-format", a.cfg.LogFormat, "Log format (console, json)")
	flags.StringVar(&a.cfg.MetricsFile, "metrics-file", a.cfg.MetricsFile, "Write Prometheus metrics to this file")
	flags.BoolVar(&a.cfg.Reconcile, "reconcile", a.cfg.Reconcile, "Fail when account balances do not reconcile")

	return cmd
}

func (a *app) run(path string) error {
	log := logger.New(logger.Config{
		Enabled: a.cfg.LogEnabled,
		Level:   a.cfg.LogLevel,
		Format:  a.cfg.LogFormat,
		Output:  a.stderr,
	}).With().Str("run_id", a.ids.Generate()).Logger()

	log.Info().Str("file", path).Msg("processing transactions file")

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open transactions file: %w", err)
	}
	defer file.Close()

	importer, err := csvio.NewImporter(bufio.NewReader(file))
	if err != nil {
		return fmt.Errorf("read transactions file: %w", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	observer := eventpublisher.Fanout{
		eventpublisher.NewLogPublisher(log),
		eventpublisher.NewMetricsPublisher(m),
	}

	ledger := memory.NewLedger()
	summary, err := usecase.NewDispatcher(ledger, observer).Run(importer)
	if err != nil {
		return err
	}

	log.Info().
		Int("processed", summary.Processed).
		Int("applied", summary.Applied).
		Int("denied", summary.Denied).
		Int("rejected", summary.Rejected).
		Int("accounts", ledger.Len()).
		Msg("transactions processed")

	out := bufio.NewWriter(a.stdout)
	if err := csvio.NewExporter(out).Export(ledger.List()); err != nil {
		return fmt.Errorf("export accounts: %w", err)
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("export accounts: %w", err)
	}

	if a.cfg.PrintDB {
		if err := printDB(a.stderr, ledger.List()); err != nil {
			return fmt.Errorf("print ledger: %w", err)
		}
	}

	reconcileErr := reconcileLedger(log, ledger, m, a.cfg.Reconcile)

	if a.cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(a.cfg.MetricsFile, registry); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		log.Debug().Str("path", a.cfg.MetricsFile).Msg("metrics written")
	}

	return reconcileErr
}

// reconcileLedger checks every account, records the result in m and, when
// strict is set, turns discrepancies into an error.
func reconcileLedger(log zerolog.Logger, accounts usecase.AccountRepository, m *metrics.Metrics, strict bool) error {
	report := usecase.NewReconciliationUseCase(accounts).GenerateReconciliationReport()

	m.AccountsLocked.Set(float64(report.LockedAccounts))
	m.ReconciliationDiscrepancies.Set(float64(len(report.Discrepancies)))

	for _, d := range report.Discrepancies {
		e := log.Error().
			Uint16("client", uint16(d.ClientID)).
			Str("recorded_held", d.RecordedHeld.String()).
			Str("calculated_held", d.CalculatedHeld.String()).
			Str("difference", d.Difference.String())
		if d.BalanceErr != nil {
			e = e.AnErr("balance_error", d.BalanceErr)
		}
		e.Msg("account does not reconcile")
	}

	log.Info().
		Int("total_accounts", report.TotalAccounts).
		Int("reconciled_accounts", report.ReconciledAccounts).
		Int("locked_accounts", report.LockedAccounts).
		Time("checked_at", report.CheckedAt).
		Msg("reconciliation finished")

	if strict && !report.Consistent() {
		return fmt.Errorf("%w: %d of %d accounts", errReconciliationFailed,
			len(report.Discrepancies), report.TotalAccounts)
	}
	return nil
}

type accountDump struct {
	Client    domain.ClientID                          `json:"client"`
	Available decimal.Decimal                          `json:"available"`
	Held      decimal.Decimal                          `json:"held"`
	Total     decimal.Decimal                          `json:"total"`
	Locked    bool                                     `json:"locked"`
	Transfers map[domain.TransactionID]domain.Transfer `json:"transfers"`
}

func printDB(w io.Writer, accounts []*domain.Account) error {
	dump := make([]accountDump, 0, len(accounts))
	for _, a := range accounts {
		dump = append(dump, accountDump{
			Client:    a.ClientID,
			Available: a.Available(),
			Held:      a.Held,
			Total:     a.Total,
			Locked:    a.Locked,
			Transfers: a.Transfers(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dump)
}
