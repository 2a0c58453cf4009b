package multimodal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func h(id uint64, score float64) Hit {
	return Hit{ID: id, Score: score, Description: "d", ImageURL: "u"}
}

func ids(hits []Hit) []uint64 {
	out := make([]uint64, len(hits))
	for i, x := range hits {
		out[i] = x.ID
	}
	return out
}

func scoresByID(hits []Hit) map[uint64]float64 {
	out := make(map[uint64]float64, len(hits))
	for _, x := range hits {
		out[x.ID] = x.Score
	}
	return out
}

func TestFuseWorkedExample(t *testing.T) {
	text := []Hit{h(1, 0.9), h(2, 0.8)}
	image := []Hit{h(2, 0.7), h(3, 0.6)}

	out := Fuse(text, image, 2)

	require.Len(t, out, 2)
	assert.Equal(t, []uint64{1, 2}, ids(out))
	assert.InDelta(t, 0.9, out[0].Score, 1e-9)
	assert.InDelta(t, 0.75, out[1].Score, 1e-9)
}

func TestFuseMeanScoreAndUniqueIDs(t *testing.T) {
	a := []Hit{h(1, 0.2), h(2, 0.4), h(3, 0.6)}
	b := []Hit{h(3, 0.2), h(4, 0.5), h(1, 0.6)}

	out := Fuse(a, b, 10)

	require.Len(t, out, 4)
	scores := scoresByID(out)
	assert.InDelta(t, 0.4, scores[1], 1e-9)
	assert.InDelta(t, 0.4, scores[2], 1e-9)
	assert.InDelta(t, 0.4, scores[3], 1e-9)
	assert.InDelta(t, 0.5, scores[4], 1e-9)

	seen := map[uint64]bool{}
	for _, x := range out {
		assert.False(t, seen[x.ID], "duplicate id %d", x.ID)
		seen[x.ID] = true
	}
}

func TestFuseSingleFieldHitNotPenalised(t *testing.T) {
	out := Fuse([]Hit{h(1, 0.9)}, []Hit{h(2, 0.5)}, 5)
	assert.Equal(t, []uint64{1, 2}, ids(out))
	assert.InDelta(t, 0.9, out[0].Score, 1e-9)
	assert.InDelta(t, 0.5, out[1].Score, 1e-9)
}

func TestFuseSymmetry(t *testing.T) {
	a := []Hit{h(1, 0.91), h(2, 0.83), h(5, 0.40)}
	b := []Hit{h(2, 0.77), h(3, 0.65), h(1, 0.10)}

	ab := Fuse(a, b, 10)
	ba := Fuse(b, a, 10)

	assert.ElementsMatch(t, ids(ab), ids(ba))
	assert.Equal(t, scoresByID(ab), scoresByID(ba))
}

func TestFuseTruncation(t *testing.T) {
	a := []Hit{h(1, 0.9), h(2, 0.8), h(3, 0.7)}
	b := []Hit{h(4, 0.6), h(5, 0.5)}

	for k := 0; k <= 7; k++ {
		out := Fuse(a, b, k)
		assert.Len(t, out, min(5, k), "k=%d", k)
	}
	assert.Empty(t, Fuse(a, b, -1))
	assert.Empty(t, Fuse(nil, nil, 3))
}

func TestFuseOrderedDescending(t *testing.T) {
	a := []Hit{h(1, 0.1), h(2, 0.95), h(3, 0.5)}
	b := []Hit{h(4, 0.7), h(3, 0.9)}

	out := Fuse(a, b, 10)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].Score, out[i].Score)
	}
	assert.Equal(t, uint64(2), out[0].ID)
}

func TestFuseTiesKeepFirstSeenOrder(t *testing.T) {
	a := []Hit{h(7, 0.5), h(3, 0.5)}
	b := []Hit{h(9, 0.5), h(1, 0.5)}

	out := Fuse(a, b, 4)
	assert.Equal(t, []uint64{7, 3, 9, 1}, ids(out))
}

func TestFuseFirstPayloadWins(t *testing.T) {
	a := []Hit{{ID: 1, Score: 0.8, Description: "from text", ImageURL: "u1"}}
	b := []Hit{{ID: 1, Score: 0.6, Description: "from image", ImageURL: "u2"}}

	out := Fuse(a, b, 1)
	require.Len(t, out, 1)
	assert.Equal(t, "from text", out[0].Description)
	assert.Equal(t, "u1", out[0].ImageURL)
	assert.InDelta(t, 0.7, out[0].Score, 1e-9)
}

func TestFuseDoesNotMutateInputs(t *testing.T) {
	a := []Hit{h(1, 0.2), h(2, 0.9)}
	b := []Hit{h(1, 0.4)}

	_ = Fuse(a, b, 2)
	assert.Equal(t, []Hit{h(1, 0.2), h(2, 0.9)}, a)
	assert.Equal(t, []Hit{h(1, 0.4)}, b)
}

func TestFormat(t *testing.T) {
	out := Format([]Hit{
		{ID: 1, Description: "a cat", ImageURL: "s3://cat.png", Score: 0.9},
		{ID: 2, Description: "a dog", ImageURL: "s3://dog.png", Score: 0.75},
	})
	assert.Equal(t, []Result{
		{Description: "a cat", ImageURL: "s3://cat.png", Score: 0.9},
		{Description: "a dog", ImageURL: "s3://dog.png", Score: 0.75},
	}, out)
	assert.Empty(t, Format(nil))
}
