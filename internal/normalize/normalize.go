package normalize

import (
	"strings"

	"github.com/goserg/ratingengine/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Name folds case, applies NFKC and collapses whitespace so that
// "League  of Legends" and "league of legends" compare equal.
func Name(s string) string {
	s = norm.NFKC.String(s)
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}

// Scope normalizes a game name into a rating scope. Empty input is the global scope.
func Scope(s string) domain.Scope {
	n := Name(s)
	if n == "" {
		return domain.GlobalScope
	}
	return domain.Scope(n)
}

// Display applies NFKC and collapses whitespace but keeps the case, for names shown to people.
func Display(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}
