// Package postalcodes serves the read-only postal code lookups.
package postalcodes

import (
	"context"
	"strings"

	"franceguessr/internal/model"
)

const maxCodeLen = 5

// Lookup is implemented by service.PostalCodeLookup.
type Lookup interface {
	ByCode(ctx context.Context, code string) (*model.PostalCode, error)
	ByPrefix(ctx context.Context, prefix string) ([]model.PostalCode, error)
}

// normalizeCode upper-cases s and checks it is 1 to 5 ASCII letters or
// digits.
func normalizeCode(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || len(s) > maxCodeLen {
		return "", false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'Z') {
			return "", false
		}
	}
	return s, true
}

// padInseeCode restores the leading zeros of an all-digit code.
func padInseeCode(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return s
		}
	}
	if len(s) < maxCodeLen {
		s = strings.Repeat("0", maxCodeLen-len(s)) + s
	}
	return s
}
