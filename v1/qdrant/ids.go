package qdrant

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Point id layout for a configured node: 41 bits of milliseconds since
// idEpoch, 10 bits of node id, 12 bits of per-millisecond sequence.
const (
	idEpoch   = int64(1704067200000) // 2024-01-01T00:00:00Z in ms
	nodeBits  = 10
	seqBits   = 12
	maxNodeID = 1<<nodeBits - 1
	seqMask   = 1<<seqBits - 1

	randomMask = uint64(1<<63 - 1)

	// schemaPointID is reserved for the schema marker point and never generated.
	schemaPointID = uint64(0)
)

// idGenerator hands out point ids that are never zero.
//
// With a node id in 1..1023 ids are strictly increasing and never repeat
// within a process, even if the wall clock moves backwards; uniqueness across
// processes relies on every writer having its own node id. Node 0 means no
// node id was assigned: each id is then 63 random bits taken from a version 4
// UUID, so unrelated writers do not collide.
type idGenerator struct {
	mu      sync.Mutex
	node    uint64
	random  bool
	lastMs  int64
	seq     uint64
	now     func() time.Time
	newUUID func() uuid.UUID
}

func newIDGenerator(node int) *idGenerator {
	if node < 0 || node > maxNodeID {
		node &= maxNodeID
	}
	return &idGenerator{
		node:    uint64(node),
		random:  node == 0,
		now:     time.Now,
		newUUID: uuid.New,
	}
}

// Next returns the next id.
func (g *idGenerator) Next() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.random {
		return g.nextRandom()
	}

	ms := g.now().UnixMilli() - idEpoch
	if ms < 1 {
		ms = 1
	}
	if ms < g.lastMs {
		ms = g.lastMs
	}

	if ms == g.lastMs {
		g.seq = (g.seq + 1) & seqMask
		if g.seq == 0 {
			// Sequence exhausted for this millisecond; borrow the next one.
			ms++
		}
	} else {
		g.seq = 0
	}
	g.lastMs = ms

	return uint64(ms)<<(nodeBits+seqBits) | g.node<<seqBits | g.seq
}

// nextRandom folds both halves of a UUID into 63 bits. The fixed version and
// variant bits of one half are covered by random bits of the other.
func (g *idGenerator) nextRandom() uint64 {
	for {
		u := g.newUUID()
		id := (binary.BigEndian.Uint64(u[:8]) ^ binary.BigEndian.Uint64(u[8:])) & randomMask
		if id != schemaPointID {
			return id
		}
	}
}
