package digo_test

import (
	"reflect"
	"testing"

	"github.com/centraunit/digo"
	"github.com/centraunit/digo/mock"
	"github.com/stretchr/testify/assert"
)

func TestTypeOf(t *testing.T) {
	assert.Equal(t, reflect.Interface, digo.TypeOf[mock.IDog]().Kind())
	assert.Equal(t, reflect.Pointer, digo.TypeOf[*mock.Dog]().Kind())
	assert.NotEqual(t, digo.TypeOf[mock.IDog](), digo.TypeOf[mock.ICat]())
}

func TestInterfaceKey(t *testing.T) {
	t.Run("Unnamed", func(t *testing.T) {
		key := digo.KeyOf[mock.IDog]()
		assert.False(t, key.IsNamed())
		assert.Equal(t, "mock.IDog", key.String())
		assert.Equal(t, "mock.IDog", key.TypeName())
	})

	t.Run("Named", func(t *testing.T) {
		key := digo.NamedKeyOf[mock.IDog]("rex")
		assert.True(t, key.IsNamed())
		assert.Equal(t, "mock.IDog[name=rex]", key.String())
		assert.Equal(t, "mock.IDog", key.TypeName())
		assert.Equal(t, digo.KeyOf[mock.IDog](), key.Unnamed())
	})

	t.Run("Equality", func(t *testing.T) {
		assert.Equal(t, digo.KeyOf[mock.IDog]().WithName("a"), digo.NamedKeyOf[mock.IDog]("a"))
		assert.NotEqual(t, digo.NamedKeyOf[mock.IDog]("a"), digo.NamedKeyOf[mock.IDog]("b"))
		assert.NotEqual(t, digo.KeyOf[mock.IDog](), digo.KeyOf[mock.ICat]())

		seen := map[digo.InterfaceKey]bool{digo.NamedKeyOf[mock.IDog]("a"): true}
		assert.True(t, seen[digo.KeyOf[mock.IDog]().WithName("a")])
	})
}
