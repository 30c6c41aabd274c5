package sbt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]int{3, 5, 6, 3, 0, 11, 0})

	assert.Equal(t, 7, s.Total)
	assert.Equal(t, 2, s.Unclassified)
	assert.Equal(t, 1, s.Overlap)
	assert.Equal(t, map[int]int{0: 2, 3: 2, 5: 1, 6: 1, 11: 1}, s.ByCode)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Total)
	assert.NotNil(t, s.ByCode)
	assert.Empty(t, s.ByCode)
}
