package digo_test

import (
	"testing"

	"github.com/centraunit/digo"
	"github.com/centraunit/digo/mock"
	"github.com/stretchr/testify/assert"
)

func TestDependencyHistory(t *testing.T) {
	a := digo.KeyOf[mock.CircularService1]()
	b := digo.KeyOf[mock.CircularService2]()

	t.Run("PushCopies", func(t *testing.T) {
		root := digo.NewDependencyHistory().Push(a)
		left := root.Push(b)
		right := root.Push(digo.KeyOf[mock.IDog]())

		assert.Equal(t, 1, root.Len())
		assert.Equal(t, []string{a.String(), b.String()}, left.Items())
		assert.Equal(t, []string{a.String(), "mock.IDog"}, right.Items())
		assert.False(t, right.Contains(b))
	})

	t.Run("ContainsUsesName", func(t *testing.T) {
		h := digo.NewDependencyHistory().Push(a.WithName("x"))
		assert.True(t, h.Contains(a.WithName("x")))
		assert.False(t, h.Contains(a))
	})

	t.Run("Plain", func(t *testing.T) {
		h := digo.NewDependencyHistory().Push(a).Push(b)
		assert.Equal(t, "mock.CircularService1 -> mock.CircularService2", h.String())
	})

	t.Run("HighlightsRepeat", func(t *testing.T) {
		h := digo.NewDependencyHistory().Push(a).Push(b).Push(a)
		bold := "\x1b[1mmock.CircularService1\x1b[22m"
		assert.Equal(t, bold+" -> mock.CircularService2 -> "+bold, h.String())
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "", digo.NewDependencyHistory().String())
		assert.Empty(t, digo.NewDependencyHistory().Items())
	})
}
