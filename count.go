package profilepeek

import (
	"regexp"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// UnknownCount is the formatted sentinel for an absent raw value.
const UnknownCount = "Unknown"

// countPrinter renders integers with thousands separators ("1,500,000").
var countPrinter = message.NewPrinter(language.English)

// rawCountPattern matches text a profile page renders as a follower
// count: digits with optional grouping punctuation and an optional
// K/M/B suffix.
var rawCountPattern = regexp.MustCompile(`^[\d,.KMBkmb]+$`)

// suffix multipliers for abbreviated counts.
var countSuffixes = map[byte]float64{
	'K': 1e3, 'M': 1e6, 'B': 1e9,
	'k': 1e3, 'm': 1e6, 'b': 1e9,
}

// IsRawCount reports whether text looks like a rendered follower count.
func IsRawCount(text string) bool {
	return text != "" && rawCountPattern.MatchString(text)
}

// FormatCount renders a raw follower count for display. Digit-only
// values pass through with thousands grouping. Suffixed values
// ("3.4K", "1.5M") are expanded by their multiplier and truncated to an
// integer before grouping. Values with a non-numeric coefficient are
// returned unchanged. An empty value formats to UnknownCount.
func FormatCount(raw string) string {
	if raw == "" {
		return UnknownCount
	}
	if isDigits(raw) {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return raw
		}
		return countPrinter.Sprintf("%d", n)
	}
	factor, ok := countSuffixes[raw[len(raw)-1]]
	if !ok {
		return raw
	}
	coeff, err := strconv.ParseFloat(raw[:len(raw)-1], 64)
	if err != nil {
		return raw
	}
	return countPrinter.Sprintf("%d", int64(coeff*factor))
}

// CountValue returns the numeric value of a raw follower count, with
// suffixed values expanded and truncated. Empty or malformed values
// return 0.
func CountValue(raw string) int64 {
	if raw == "" {
		return 0
	}
	if isDigits(raw) {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0
		}
		return n
	}
	factor, ok := countSuffixes[raw[len(raw)-1]]
	if !ok {
		return 0
	}
	coeff, err := strconv.ParseFloat(raw[:len(raw)-1], 64)
	if err != nil {
		return 0
	}
	return int64(coeff * factor)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
