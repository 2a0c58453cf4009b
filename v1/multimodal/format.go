package multimodal

// Result is the caller-facing projection of a hit.
type Result struct {
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Score       float64 `json:"score"`
}

// Format projects hits to results, keeping their order.
func Format(hits []Hit) []Result {
	out := make([]Result, len(hits))
	for i, h := range hits {
		out[i] = Result{
			Description: h.Description,
			ImageURL:    h.ImageURL,
			Score:       h.Score,
		}
	}
	return out
}
