package csvio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iho/txengine/internal/domain"
	"github.com/iho/txengine/internal/usecase"
)

// Input column names.
const (
	ColumnType   = "type"
	ColumnClient = "client"
	ColumnTx     = "tx"
	ColumnAmount = "amount"
)

var ErrMissingColumn = errors.New("missing required column")

// Importer reads transaction records from comma-separated lines with a
// header row. Columns are matched by header name; amount may be absent.
// Quotes have no special meaning, so every input line is exactly one record.
type Importer struct {
	scanner *bufio.Scanner
	columns map[string]int
	line    int
}

var _ usecase.RecordSource = (*Importer)(nil)

// NewImporter reads the header from r and returns an Importer positioned at
// the first record.
func NewImporter(r io.Reader) (*Importer, error) {
	im := &Importer{
		scanner: bufio.NewScanner(r),
		columns: make(map[string]int),
	}

	header, ok := im.nextLine()
	if !ok {
		if err := im.scanner.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return im, nil
	}

	for i, name := range splitFields(header) {
		im.columns[name] = i
	}
	for _, name := range []string{ColumnType, ColumnClient, ColumnTx} {
		if _, ok := im.columns[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	return im, nil
}

// Next implements usecase.RecordSource.
func (im *Importer) Next() (usecase.Record, error) {
	text, ok := im.nextLine()
	if !ok {
		if err := im.scanner.Err(); err != nil {
			return usecase.Record{}, err
		}
		return usecase.Record{}, io.EOF
	}

	rec, err := im.parse(splitFields(text))
	if err != nil {
		return usecase.Record{}, &usecase.RecordError{
			Line: im.line,
			Err:  fmt.Errorf("line %d: %w", im.line, err),
		}
	}

	return rec, nil
}

// nextLine returns the next non-blank line and tracks its 1-based number.
func (im *Importer) nextLine() (string, bool) {
	for im.scanner.Scan() {
		im.line++
		text := strings.TrimSuffix(im.scanner.Text(), "\r")
		if strings.TrimSpace(text) != "" {
			return text, true
		}
	}
	return "", false
}

func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

func (im *Importer) parse(fields []string) (usecase.Record, error) {
	client, err := strconv.ParseUint(im.field(fields, ColumnClient), 10, 16)
	if err != nil {
		return usecase.Record{}, fmt.Errorf("invalid client: %w", err)
	}

	tx, err := strconv.ParseUint(im.field(fields, ColumnTx), 10, 32)
	if err != nil {
		return usecase.Record{}, fmt.Errorf("invalid tx: %w", err)
	}

	amount, err := domain.ParseAmount(im.field(fields, ColumnAmount))
	if err != nil {
		return usecase.Record{}, fmt.Errorf("invalid amount: %w", err)
	}

	return usecase.Record{
		Type:   im.field(fields, ColumnType),
		Client: domain.ClientID(client),
		Tx:     domain.TransactionID(tx),
		Amount: amount,
	}, nil
}

func (im *Importer) field(fields []string, name string) string {
	i, ok := im.columns[name]
	if !ok || i >= len(fields) {
		return ""
	}
	return fields[i]
}
