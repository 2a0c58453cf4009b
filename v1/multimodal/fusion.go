package multimodal

import "sort"

// Hit is one ranked record.
type Hit struct {
	ID          uint64
	Description string
	ImageURL    string
	// Score is cosine similarity. Higher is more similar.
	Score float64
}

type fusedHit struct {
	hit   Hit
	sum   float64
	count int
}

// Fuse merges two ranked lists into one.
//
// Hits are grouped by ID; the payload of the first occurrence (a before b)
// wins and the fused score is the mean of the contributing scores, so a record
// found by only one list is not penalised. The result is ordered by score,
// best first, with ties kept in first-seen order, and holds at most topK
// hits. Swapping a and b leaves every fused score unchanged.
func Fuse(a, b []Hit, topK int) []Hit {
	if topK < 1 {
		return []Hit{}
	}

	index := make(map[uint64]int, len(a)+len(b))
	merged := make([]*fusedHit, 0, len(a)+len(b))

	for _, list := range [][]Hit{a, b} {
		for _, h := range list {
			if i, ok := index[h.ID]; ok {
				merged[i].sum += h.Score
				merged[i].count++
				continue
			}
			index[h.ID] = len(merged)
			merged = append(merged, &fusedHit{hit: h, sum: h.Score, count: 1})
		}
	}

	out := make([]Hit, len(merged))
	for i, f := range merged {
		out[i] = f.hit
		out[i].Score = f.sum / float64(f.count)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	if len(out) > topK {
		out = out[:topK]
	}
	return out
}
