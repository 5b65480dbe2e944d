package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iho/txengine/internal/domain"
)

var exportHeader = []string{"client", "available", "held", "total", "locked"}

// Exporter writes final account balances as CSV.
type Exporter struct {
	writer *csv.Writer
}

// NewExporter creates a new Exporter writing to w.
func NewExporter(w io.Writer) *Exporter {
	return &Exporter{writer: csv.NewWriter(w)}
}

// AccountRow converts an account to its output columns.
func AccountRow(a *domain.Account) []string {
	return []string{
		strconv.FormatUint(uint64(a.ClientID), 10),
		a.Available().String(),
		a.Held.String(),
		a.Total.String(),
		strconv.FormatBool(a.Locked),
	}
}

// Export writes the header and one row per account, in the given order.
func (e *Exporter) Export(accounts []*domain.Account) error {
	if err := e.writer.Write(exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, account := range accounts {
		if err := e.writer.Write(AccountRow(account)); err != nil {
			return fmt.Errorf("write client %d: %w", account.ClientID, err)
		}
	}

	e.writer.Flush()
	return e.writer.Error()
}
