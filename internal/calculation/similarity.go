package calculation

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Similarity returns the Ratcliff/Obershelp ratio of two club names after
// case normalization. Either name blank yields 0.
func Similarity(a, b string) float64 {
	na := strings.ToUpper(strings.TrimSpace(a))
	nb := strings.ToUpper(strings.TrimSpace(b))
	if na == "" || nb == "" {
		return 0
	}
	m := difflib.NewMatcher(strings.Split(na, ""), strings.Split(nb, ""))
	return m.Ratio()
}

// SameClub reports whether two names likely denote the same club.
// "Benfica" and "SL Benfica" match at the default 0.6 threshold.
func SameClub(a, b string, threshold float64) bool {
	return Similarity(a, b) > threshold
}
