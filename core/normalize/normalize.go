package normalize

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Policy selects how a field value becomes a comparison key.
type Policy string

const (
	// StrictKey case-folds and keeps only ASCII letters.
	StrictKey Policy = "strict"
	// CasefoldKey case-folds only.
	CasefoldKey Policy = "casefold"
)

// ParsePolicy validates a configured policy name.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case StrictKey, CasefoldKey:
		return p, nil
	default:
		return "", fmt.Errorf("unknown key policy %q (want %q or %q)", s, StrictKey, CasefoldKey)
	}
}

// Key applies the policy to value. Unknown policies fall back to CasefoldKey.
func (p Policy) Key(value string) string {
	if p == StrictKey {
		return Strict(value)
	}
	return Casefold(value)
}

// Strict is the StrictKey policy.
func Strict(value string) string {
	folded := Casefold(value)
	var b strings.Builder
	b.Grow(len(folded))
	for i := 0; i < len(folded); i++ {
		if c := folded[i]; c >= 'a' && c <= 'z' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Casefold is the CasefoldKey policy.
func Casefold(value string) string {
	// A Caser carries state, so each call gets its own.
	return cases.Fold().String(value)
}
