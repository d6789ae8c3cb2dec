package text

import (
	"regexp"
	"strconv"
)

// Korean numeral units in won.
const (
	Eok = 100_000_000 // 억
	Man = 10_000      // 만
)

var (
	eokRE      = regexp.MustCompile(`(\d+)억`)
	manRE      = regexp.MustCompile(`(\d+)만`)
	wonRE      = regexp.MustCompile(`(\d+)원`)
	sepRE      = regexp.MustCompile(`[,\s]+`)
	nonDigitRE = regexp.MustCompile(`[^\d]`)
)

// ParseWon converts a Korean unit-based monetary phrase into integer won.
// Separators are stripped, then the 억, 만 and bare 원 segments are matched
// independently and summed. Returns false when the sum is not strictly
// positive, i.e. no currency information was recognized.
//
// Compound numerals beyond simple segment concatenation (e.g. "1억 2천만원")
// are not decomposed further; only the recognized segments contribute.
func ParseWon(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	s = sepRE.ReplaceAllString(s, "")

	var total int64
	for _, seg := range []struct {
		re   *regexp.Regexp
		unit int64
	}{
		{eokRE, Eok},
		{manRE, Man},
		{wonRE, 1},
	} {
		m := seg.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		v, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		total += v * seg.unit
	}

	if total <= 0 {
		return 0, false
	}
	return total, true
}

// ParseInt extracts the digits of s and parses them, tolerating separators
// and stray unit characters.
func ParseInt(s string) (int, bool) {
	s = nonDigitRE.ReplaceAllString(s, "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatWon renders an integer won amount with thousands separators.
func FormatWon(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
