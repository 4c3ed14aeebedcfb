package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAddGet(t *testing.T) {
	s := NewStore[string]()
	a := s.Add("a")
	b := s.Add("b")

	require.True(t, a.IsValid())
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, s.Len())

	v, ok := s.Get(b)
	require.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = s.Get(Handle[string]{})
	assert.False(t, ok)
}

func TestStoreEachKeepsOrder(t *testing.T) {
	s := NewStore[int]()
	for i := 0; i < 5; i++ {
		s.Add(i * 10)
	}
	var got []int
	s.Each(func(_ Handle[int], v int) { got = append(got, v) })
	assert.Equal(t, []int{0, 10, 20, 30, 40}, got)
}

func TestMustGetPanicsOnUnknownHandle(t *testing.T) {
	s := NewStore[int]()
	assert.Panics(t, func() { s.MustGet(Handle[int]{id: 42}) })
}
