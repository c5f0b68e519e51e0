package semantic

import (
	"errors"
	"regexp"
	"strconv"

	"github.com/mzivkovic/ragrank/internal/domain"
)

// ErrNoScore means the response contained no usable decimal. Callers retry;
// they never substitute a value, so prompting failures stay visible instead
// of masquerading as low scores.
var ErrNoScore = errors.New("no valid score in model response")

var decimalRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// ParseScore extracts the first well-formed decimal within [0, 1] from free
// text. Values straying past a bound by at most tolerance are clamped to the
// nearest bound; anything further off is skipped.
func ParseScore(response string, tolerance float64) (float64, error) {
	for _, match := range decimalRe.FindAllString(response, -1) {
		val, err := strconv.ParseFloat(match, 64)
		if err != nil {
			continue
		}
		if val < -tolerance || val > 1+tolerance {
			continue
		}
		return domain.ClampScore(val), nil
	}

	return 0, ErrNoScore
}
