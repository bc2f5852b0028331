package facts

// Clamp01 bounds a confidence score to [0, 1]. Every scoring function routes
// its result through here.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
