package idgen

import (
	"io"
	"time"

	"github.com/oklog/ulid/v2"
)

// RunIDGenerator produces time-sortable ULIDs identifying one engine run.
type RunIDGenerator struct {
	now     func() time.Time
	entropy io.Reader
}

// NewRunIDGenerator creates a generator backed by the wall clock.
func NewRunIDGenerator() *RunIDGenerator {
	return &RunIDGenerator{
		now:     time.Now,
		entropy: ulid.DefaultEntropy(),
	}
}

// Generate implements usecase.IDGenerator.
func (g *RunIDGenerator) Generate() string {
	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String()
}
