package domain

const ScoreDecimalPlaces = 3

// ClampScore forces a score into the valid [0, 1] range.
func ClampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
