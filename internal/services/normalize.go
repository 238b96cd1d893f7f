package services

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName produces a stable cache key: NFC form with runs of
// whitespace collapsed. Case is preserved; the resolver treats names as-is.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
