package skill

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Ratio returns the Ratcliff/Obershelp similarity of a and b in [0,1]:
// 2*M/T where M is the number of matched runes and T the total rune count.
// Argument order matters for tie-breaking inside the matcher, as in difflib.
func Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

// ratioUpperBound is the best ratio a and b could reach given only their
// lengths. It never underestimates Ratio.
func ratioUpperBound(la, lb int) float64 {
	if la+lb == 0 {
		return 1
	}
	m := la
	if lb < m {
		m = lb
	}
	return 2 * float64(m) / float64(la+lb)
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// runeLen counts runes without allocating.
func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
