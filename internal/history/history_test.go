package history_test

import (
	"testing"

	"github.com/aretw0/flux/internal/history"
	"github.com/stretchr/testify/assert"
)

func TestStack_PushPop(t *testing.T) {
	s := history.New[int](10)

	assert.False(t, s.CanUndo())

	s.Push(1)
	s.Push(2)
	s.Push(3)
	assert.Equal(t, 3, s.Len())

	v, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = s.Pop()
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	v, ok = s.Pop()
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = s.Pop()
	assert.False(t, ok)
	assert.False(t, s.CanUndo())
}

func TestStack_EvictsOldest(t *testing.T) {
	s := history.New[int](2)

	s.Push(1)
	s.Push(2)
	s.Push(3) // evicts 1
	assert.Equal(t, 2, s.Len())

	v, _ := s.Pop()
	assert.Equal(t, 3, v)
	v, _ = s.Pop()
	assert.Equal(t, 2, v)
	_, ok := s.Pop()
	assert.False(t, ok, "oldest snapshot should have been evicted")
}

func TestStack_ZeroCapacity(t *testing.T) {
	s := history.New[int](0)

	s.Push(1)
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.CanUndo())

	_, ok := s.Pop()
	assert.False(t, ok)
}

func TestStack_NegativeCapacity(t *testing.T) {
	s := history.New[int](-5)

	s.Push(1)
	assert.False(t, s.CanUndo())
}
