package engine

import (
	"strconv"
	"strings"
)

// formatScalar renders a SCALAR value the way STOC does: Go's shortest
// round-tripping decimal, matching the reference's "%g".
func formatScalar(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// formatInt renders an INTEGER value for ITOC.
func formatInt(i int32) string {
	return strconv.Itoa(int(i))
}

// parseFloatLoose parses CTOS's source text leniently: surrounding
// whitespace is trimmed, and an unparsable string reads as 0 rather than
// faulting the engine.
func parseFloatLoose(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
