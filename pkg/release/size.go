package release

import (
	"strconv"
	"strings"
)

const (
	mib = 1 << 20
	gib = 1 << 30
)

// FormatSize renders bytes as "<n> GB" when the size rounds to at least one
// GiB, else as "<n> MB". Values are rounded to two decimals and always carry
// a fractional part: 1073741824 -> "1.0 GB", 524288000 -> "500.0 MB".
func FormatSize(bytes int64) string {
	gb := round2(float64(bytes) / gib)
	if gb >= 1 {
		return formatDecimal(gb) + " GB"
	}
	return formatDecimal(round2(float64(bytes)/mib)) + " MB"
}

// round2 rounds on the exact decimal value, half to even on ties, so
// 1.125 becomes 1.12 rather than 1.13.
func round2(f float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 2, 64), 64)
	return r
}

func formatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
