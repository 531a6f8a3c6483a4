package pqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueDrainsInOrder(t *testing.T) {
	q := New[int](func(a, b int) bool { return a < b })
	for _, v := range []int{5, 1, 9, 3, 7} {
		q.Add(v)
	}

	require.False(t, q.Empty())
	assert.Equal(t, 1, q.Peek())

	var got []int
	for !q.Empty() {
		got = append(got, q.Poll())
	}
	assert.Equal(t, []int{1, 3, 5, 7, 9}, got)
}

func TestQueueLen(t *testing.T) {
	q := New[string](func(a, b string) bool { return a < b })
	assert.Equal(t, 0, q.Len())
	q.Add("b")
	q.Add("a")
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, "a", q.Poll())
	assert.Equal(t, 1, q.Len())
}
