package extract

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// identity folds a display name for comparison: NFKC, lower case, trimmed.
func identity(name string) string {
	folded := cases.Lower(language.Und).String(norm.NFKC.String(name))
	return strings.Join(strings.Fields(folded), " ")
}

// sameIdentity reports whether two display names refer to the same person.
// Either folded name may contain the other, which covers truncated names.
// A second comparison drops single-letter initials so "Jane A. Doe" and
// "Jane Doe" match.
func sameIdentity(a, b string) bool {
	ia, ib := identity(a), identity(b)
	if ia == "" || ib == "" {
		return false
	}
	if containsEither(ia, ib) {
		return true
	}

	sa, sb := withoutInitials(ia), withoutInitials(ib)
	if sa == "" || sb == "" {
		return false
	}
	return containsEither(sa, sb)
}

func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func withoutInitials(name string) string {
	var words []string
	for _, w := range strings.Fields(name) {
		if utf8.RuneCountInString(strings.Trim(w, ".,")) <= 1 {
			continue
		}
		words = append(words, w)
	}
	return strings.Join(words, " ")
}
