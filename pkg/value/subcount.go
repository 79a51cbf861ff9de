package value

// SubCount returns the combinatorial weight of a node pair whose tree
// distances from the evaluated node are dia and dib, in a graph of v nodes.
//
// With k = dia + dib, the result is v when k is 0, and otherwise
//
//	Σ_{s=k}^{v-1} Π_{p=1}^{k} (s+1-p)/(v-p)
//
// which is 0 when k ≥ v. The value is symmetric in dia and dib.
func SubCount(dia, dib, v int) float64 {
	k := dia + dib
	if k == 0 {
		return float64(v)
	}

	var sum float64
	for s := k; s < v; s++ {
		prod := 1.0
		for p := 1; p <= k; p++ {
			prod *= float64(s+1-p) / float64(v-p)
		}
		sum += prod
	}
	return sum
}

// subCounts memoizes SubCount for a fixed v; the result only depends on the
// sum of the two depths.
type subCounts struct {
	v    int
	memo map[int]float64
}

func newSubCounts(v int) *subCounts {
	return &subCounts{v: v, memo: make(map[int]float64)}
}

func (s *subCounts) get(dia, dib int) float64 {
	k := dia + dib
	if x, ok := s.memo[k]; ok {
		return x
	}
	x := SubCount(k, 0, s.v)
	s.memo[k] = x
	return x
}
