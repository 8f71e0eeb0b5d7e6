package similarity

import (
	"math"
	"sort"
)

// vector is a sparse term frequency vector with terms in sorted order
// so dot products and norms sum in a fixed order
type vector struct {
	terms  []string
	counts []float64
	index  map[string]float64
	norm   float64
}

func newVector(tf map[string]float64) vector {
	v := vector{terms: make([]string, 0, len(tf)), index: tf}
	for t := range tf {
		v.terms = append(v.terms, t)
	}
	sort.Strings(v.terms)
	v.counts = make([]float64, len(v.terms))
	sum := 0.0
	for i, t := range v.terms {
		v.counts[i] = tf[t]
		sum += tf[t] * tf[t]
	}
	v.norm = math.Sqrt(sum)
	return v
}

func (v vector) addTo(tf map[string]float64) {
	for i, t := range v.terms {
		tf[t] += v.counts[i]
	}
}

func cosine(a, b vector) float64 {
	if a.norm == 0 || b.norm == 0 {
		return 0
	}
	dot := 0.0
	for i, t := range a.terms {
		dot += a.counts[i] * b.index[t]
	}
	return min(1, dot/(a.norm*b.norm))
}

// dice is the token LCS ratio 2*LCS/(|a|+|b|)
func dice(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return 2 * float64(lcs(a, b)) / float64(len(a)+len(b))
}

func lcs(a, b []string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
