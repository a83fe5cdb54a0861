package service

import (
	"strings"

	"orgpulse/internal/domain"
)

// ResolveSliceKey derives the canonical slice key for one demographic
// attribute value, e.g. "department:Engineering". It is a pure function of
// its inputs: two responses carrying the same attribute value always land in
// the same slice regardless of map iteration order.
func ResolveSliceKey(attribute, value string) string {
	return strings.TrimSpace(attribute) + ":" + strings.TrimSpace(value)
}

// SliceLabel returns the human label for a slice key. The whole organization
// slice has a fixed label; attribute slices are labeled by their value.
func SliceLabel(attribute, value string) string {
	if attribute == "" {
		return domain.WholeOrgSliceLabel
	}
	return strings.TrimSpace(value)
}
