package lrucache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_PutGet(t *testing.T) {
	c := New[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)

	// "a" становится самой свежей записью
	_, ok := c.Get("a")
	require.True(t, ok)

	// вытесняется "b", а не "a"
	c.Put("c", 3)

	_, ok = c.Get("b")
	assert.False(t, ok)

	_, ok = c.Get("a")
	assert.True(t, ok)

	_, ok = c.Get("c")
	assert.True(t, ok)

	assert.Equal(t, 2, c.Len())
}

func TestCache_UpdateExistingKey(t *testing.T) {
	c := New[string, int](2)

	c.Put("a", 1)
	c.Put("a", 10)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v)
	assert.Equal(t, 1, c.Len())
}

func TestCache_Remove(t *testing.T) {
	c := New[string, int](2)

	c.Put("a", 1)
	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"))

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestCache_Purge(t *testing.T) {
	c := New[string, int](3)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Purge()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestCache_MinimumCapacity(t *testing.T) {
	c := New[string, int](0)

	c.Put("a", 1)
	c.Put("b", 2)

	assert.Equal(t, 1, c.Len())
}
