package qdrant

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDsAreUniqueAndIncreasing(t *testing.T) {
	g := newIDGenerator(5)
	fixed := time.UnixMilli(idEpoch + 1000)
	g.now = func() time.Time { return fixed }

	prev := uint64(0)
	for i := 0; i < 3*(seqMask+1); i++ {
		id := g.Next()
		require.Greater(t, id, prev)
		assert.NotEqual(t, schemaPointID, id)
		prev = id
	}
}

func TestIDsSurviveClockGoingBackwards(t *testing.T) {
	g := newIDGenerator(1)
	now := time.UnixMilli(idEpoch + 5000)
	g.now = func() time.Time { return now }
	first := g.Next()

	now = now.Add(-2 * time.Second)
	second := g.Next()
	assert.Greater(t, second, first)
}

func TestIDNodeBits(t *testing.T) {
	g := newIDGenerator(3)
	g.now = func() time.Time { return time.UnixMilli(idEpoch + 42) }
	id := g.Next()
	assert.Equal(t, uint64(3), (id>>seqBits)&maxNodeID)
	assert.Equal(t, uint64(42), id>>(nodeBits+seqBits))

	assert.Equal(t, uint64(2000&maxNodeID), newIDGenerator(2000).node)
}

func TestIDsConcurrent(t *testing.T) {
	g := newIDGenerator(7)
	var mu sync.Mutex
	seen := make(map[uint64]bool)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				id := g.Next()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 8000)
}

func TestDefaultConfigWritersDoNotCollide(t *testing.T) {
	fixed := time.UnixMilli(idEpoch + 1000)
	a := newIDGenerator(DefaultConfig().NodeID)
	b := newIDGenerator(DefaultConfig().NodeID)
	a.now = func() time.Time { return fixed }
	b.now = func() time.Time { return fixed }

	seen := make(map[uint64]bool)
	for i := 0; i < 1000; i++ {
		for _, id := range []uint64{a.Next(), b.Next()} {
			assert.NotEqual(t, schemaPointID, id)
			assert.Zero(t, id>>63)
			assert.False(t, seen[id], "id %d generated twice", id)
			seen[id] = true
		}
	}
}

func TestRandomIDsSkipSchemaPoint(t *testing.T) {
	g := newIDGenerator(0)
	require.True(t, g.random)

	// A UUID whose halves are equal folds to zero.
	calls := 0
	g.newUUID = func() uuid.UUID {
		calls++
		if calls == 1 {
			return uuid.UUID{}
		}
		return uuid.MustParse("0000000000000000000000000000002a")
	}
	assert.Equal(t, uint64(42), g.Next())
	assert.Equal(t, 2, calls)
}
