package scorer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var ramAmount = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(gb|mb)\b`)

// ParseRAM returns the first "<n> GB" or "<n> MB" amount in value, in GB.
// MB is divided by 1024 and rounded to one decimal. found is false when no
// amount is present; callers need it to tell "unknown" from a small value.
func ParseRAM(value string) (gb float64, found bool) {
	m := ramAmount.FindStringSubmatch(value)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if strings.EqualFold(m[2], "mb") {
		return math.Round(n/1024*10) / 10, true
	}
	return n, true
}
