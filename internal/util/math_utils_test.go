package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, Round2(100.0/3.0))
	assert.Equal(t, 0.85, Round2(0.85))
	assert.Equal(t, 2.68, Round2(2.675000001))
	// Half rounds away from zero.
	assert.Equal(t, 1.13, Round2(1.125))
	assert.Equal(t, -1.13, Round2(-1.125))
	assert.Equal(t, 0.0, Round2(0))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.5))
	assert.Equal(t, 0.42, Clamp01(0.42))
	assert.Equal(t, 1.0, Clamp01(1.5))
}
