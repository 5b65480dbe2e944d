package csvio

import (
	"bytes"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/txengine/internal/domain"
)

func TestExporter_Export(t *testing.T) {
	first := domain.NewAccount(2)
	first.Total = decimal.RequireFromString("1.5000")
	first.Held = decimal.RequireFromString("0.25")

	second := domain.NewAccount(1)
	second.Total = decimal.NewFromInt(100)
	second.Locked = true

	var buf bytes.Buffer
	err := NewExporter(&buf).Export([]*domain.Account{first, second})
	require.NoError(t, err)

	expected := "client,available,held,total,locked\n" +
		"2,1.25,0.25,1.5,false\n" +
		"1,100,0,100,true\n"
	assert.Equal(t, expected, buf.String())
}

func TestExporter_EmptyLedger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExporter(&buf).Export(nil))
	assert.Equal(t, "client,available,held,total,locked\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestExporter_WriteError(t *testing.T) {
	err := NewExporter(failingWriter{}).Export([]*domain.Account{domain.NewAccount(1)})
	assert.Error(t, err)
}
