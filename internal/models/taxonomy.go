package models

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// TaxonomyKind names a taxonomy registry.
type TaxonomyKind string

const (
	TaxonomyCategory  TaxonomyKind = "category"
	TaxonomyPublisher TaxonomyKind = "publisher"
)

// TaxonomyEntry is a registered name with the number of items using it.
type TaxonomyEntry struct {
	Name  string `db:"name" json:"name"`
	Count int    `db:"count" json:"count"`
}

// NormalizeName trims surrounding space and applies Unicode NFC so that
// visually identical names compare equal.
func NormalizeName(raw string) string {
	return norm.NFC.String(strings.TrimSpace(raw))
}
