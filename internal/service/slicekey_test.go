package service

import (
	"testing"

	"orgpulse/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestResolveSliceKey(t *testing.T) {
	assert.Equal(t, "department:Engineering", ResolveSliceKey("department", "Engineering"))
	assert.Equal(t, "department:Engineering", ResolveSliceKey(" department ", " Engineering "))
	assert.Equal(t, "tenure:0-2", ResolveSliceKey("tenure", "0-2"))
}

func TestResolveSliceKey_IsPure(t *testing.T) {
	// The same attribute value always lands in the same slice.
	for i := 0; i < 100; i++ {
		assert.Equal(t, ResolveSliceKey("department", "Sales"), ResolveSliceKey("department", "Sales"))
	}
}

func TestSliceLabel(t *testing.T) {
	assert.Equal(t, domain.WholeOrgSliceLabel, SliceLabel("", ""))
	assert.Equal(t, "Engineering", SliceLabel("department", "Engineering"))
	assert.Equal(t, "Engineering", SliceLabel("department", " Engineering "))
}
