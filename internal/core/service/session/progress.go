package session

import "math"

// percentOf converts byte progress into a whole percentage in [0,100].
// ok is false when the total size is unknown
func percentOf(loaded, total uint64) (percent int, ok bool) {
	if total == 0 {
		return 0, false
	}
	if loaded >= total {
		return 100, true
	}
	return clampPercent(int(math.Round(float64(loaded) / float64(total) * 100))), true
}

func clampPercent(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
