package mhmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeometric(t *testing.T) {
	var g Geometric

	assert.Equal(t, 18, g.Initial(6))
	assert.Equal(t, 1, g.Initial(0))

	assert.Equal(t, 11, g.Next(10))
	assert.Equal(t, 16, g.Next(15))
	assert.Equal(t, 20, g.Next(16))
	assert.Equal(t, 121, g.Next(100))

	assert.Equal(t, 1280, g.Limit(10))
	assert.Equal(t, 500, Geometric{MaxTableSize: 500}.Limit(10))
	assert.Equal(t, 1280, Geometric{MaxTableSize: 5000}.Limit(10))

	// bits.Len(6) == 3
	assert.True(t, g.Accept(1, 6))
	assert.True(t, g.Accept(4, 6))
	assert.False(t, g.Accept(5, 6))
}

type stuckPolicy struct{ Geometric }

func (stuckPolicy) Next(size int) int { return size }

func TestNextSizeAlwaysAdvances(t *testing.T) {
	assert.Equal(t, 8, nextSize(stuckPolicy{}, 7))
	assert.Equal(t, 20, nextSize(Geometric{}, 16))
}
