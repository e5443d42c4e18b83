// Package id generates identifiers for messages, tasks and runs.
package id

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// IDGenerator produces unique identifiers.
type IDGenerator interface {
	Generate() string
}

// NewIDGenerator returns a sequential generator whose first emitted ID is
// prefix+"1". Every run owns its generator, so IDs repeat across runs and stay
// deterministic within one.
func NewIDGenerator(prefix string) IDGenerator {
	return &sequentialIDGenerator{prefix: prefix}
}

type sequentialIDGenerator struct {
	prefix string
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1)

	return g.prefix + strconv.FormatUint(idNumber, 10)
}

// NewXIDGenerator returns a generator of globally unique, sortable IDs. It is
// used where IDs have to stay unique across runs executed in parallel, such as
// the run IDs of a batch.
func NewXIDGenerator() IDGenerator {
	return xidGenerator{}
}

type xidGenerator struct{}

func (xidGenerator) Generate() string {
	return xid.New().String()
}
