package catalog

import (
	"sort"
	"strings"
)

// NaturalSort returns a sorted copy of ss with digit runs compared by
// numeric value and the text between them case-insensitively, so
// "r1i1p1" < "r3i1p1" < "r10i1p1".
func NaturalSort(ss []string) []string {
	out := make([]string, len(ss))
	copy(out, ss)
	sort.SliceStable(out, func(i, j int) bool {
		return naturalLess(out[i], out[j])
	})
	return out
}

// naturalLess walks both strings token by token. Tokens alternate
// between text and digit runs, starting with a possibly empty text
// token, so the kinds always line up.
func naturalLess(a, b string) bool {
	for a != "" || b != "" {
		at, an, arest := nextTokens(a)
		bt, bn, brest := nextTokens(b)
		if c := strings.Compare(strings.ToLower(at), strings.ToLower(bt)); c != 0 {
			return c < 0
		}
		if c := compareDigits(an, bn); c != 0 {
			return c < 0
		}
		a, b = arest, brest
	}
	return false
}

// nextTokens splits off the leading text token and the digit run that
// follows it.
func nextTokens(s string) (text, digits, rest string) {
	i := 0
	for i < len(s) && (s[i] < '0' || s[i] > '9') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	return s[:i], s[i:j], s[j:]
}

// compareDigits orders digit runs by numeric value without converting:
// leading zeros are stripped, then longer runs are larger and equal
// lengths fall back to the string order. An absent run sorts first.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
