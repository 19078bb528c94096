package reembed

import "math"

// NormalizeVector returns a unit-length copy of v. The squared magnitude is
// accumulated in float64 to avoid drift on wide vectors. A zero vector has no
// direction and comes back as a zero vector.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var sum float64
	for _, val := range v {
		sum += float64(val) * float64(val)
	}

	result := make([]float32, len(v))
	norm := math.Sqrt(sum)
	if norm == 0 {
		return result
	}

	for i, val := range v {
		result[i] = float32(float64(val) / norm)
	}
	return result
}
