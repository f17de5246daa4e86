package intelligence

import "math"

// CosineSimilarity returns the cosine of the angle between a and b,
// in [-1, 1]. Empty, mismatched, or zero-norm input scores 0: callers
// treat "no signal" as "no match" rather than an error.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
