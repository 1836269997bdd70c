package digo_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/centraunit/digo"
	"github.com/centraunit/digo/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CasterTestSuite struct {
	suite.Suite
}

func (s *CasterTestSuite) SetupTest() {
	digo.MustDeclareInterface[*mock.Dog, mock.IDog]()
	digo.MustDeclareInterface[*mock.Cat, mock.ICat]()
}

func (s *CasterTestSuite) TestCastOwnedMoves() {
	src := digo.NewOwned(&mock.Dog{})

	dst, err := digo.CastOwned[mock.IDog](src)
	s.Require().NoError(err)
	s.True(src.Moved())
	s.Nil(src.Get())

	dog, err := dst.Take()
	s.Require().NoError(err)
	s.Equal("woof", dog.Woof())

	_, err = digo.CastOwned[mock.IDog](src)
	s.ErrorIs(err, digo.ErrOwnedMoved)
}

func (s *CasterTestSuite) TestCastOwnedFailureKeepsSource() {
	src := digo.NewOwned(&mock.Dog{})

	_, err := digo.CastOwned[mock.ICat](src)

	var castErr *digo.CastFailedError
	s.Require().True(errors.As(err, &castErr))
	s.Equal("*mock.Dog", castErr.From)
	s.Equal("mock.ICat", castErr.To)
	s.False(src.Moved())
}

func (s *CasterTestSuite) TestCastSharedAliases() {
	src := digo.NewShared(&mock.Dog{})
	src.Get().Woof()

	dst, err := digo.CastShared[mock.IDog](src)
	s.Require().NoError(err)
	s.Equal(int64(1), dst.Get().Woofs())

	s.True(digo.SameShared(src, dst))
	s.Equal(int64(2), src.Refs())
	s.Equal(int64(2), dst.Refs())

	dst.Get().Woof()
	s.Equal(int64(2), src.Get().Woofs())

	dst.Release()
	dst.Release()
	s.Equal(int64(1), src.Refs())
}

func (s *CasterTestSuite) TestCastBackToConcrete() {
	src := digo.NewShared[mock.IDog](&mock.Dog{})

	dst, err := digo.CastShared[*mock.Dog](src)
	s.Require().NoError(err)
	s.Same(src.Get(), dst.Get())
}

func (s *CasterTestSuite) TestCastToEmptyInterface() {
	src := digo.NewShared(&mock.Cat{})

	dst, err := digo.CastShared[any](src)
	s.Require().NoError(err)
	s.True(digo.SameShared(src, dst))
}

func (s *CasterTestSuite) TestCastNil() {
	var dog *mock.Dog
	_, err := digo.CastShared[mock.ICat](digo.NewShared[mock.IDog](nil))
	var castErr *digo.CastFailedError
	s.True(errors.As(err, &castErr))

	_, err = digo.CastShared[mock.ICat](digo.NewShared(dog))
	s.True(errors.As(err, &castErr))
}

func TestCasterSuite(t *testing.T) {
	suite.Run(t, new(CasterTestSuite))
}

func TestCasterRegistry(t *testing.T) {
	t.Run("RejectsUnrelatedTypes", func(t *testing.T) {
		r := digo.NewCasterRegistry()

		err := digo.DeclareInterfaceIn[*mock.Cat, mock.IDog](r)

		var invalid *digo.InvalidDeclarationError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, "*mock.Cat", invalid.Concrete)
		assert.Equal(t, "mock.IDog", invalid.Interface)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("Idempotent", func(t *testing.T) {
		r := digo.NewCasterRegistry()
		require.NoError(t, digo.DeclareInterfaceIn[*mock.Dog, mock.IDog](r))
		require.NoError(t, digo.DeclareInterfaceIn[*mock.Dog, mock.IDog](r))
		assert.Equal(t, 1, r.Len())

		_, ok := r.Lookup(digo.TypeOf[*mock.Dog](), digo.TypeOf[mock.IDog]())
		assert.True(t, ok)
		_, ok = r.Lookup(digo.TypeOf[*mock.Cat](), digo.TypeOf[mock.IDog]())
		assert.False(t, ok)
	})

	t.Run("Lock", func(t *testing.T) {
		r := digo.NewCasterRegistry()
		r.Lock()
		assert.True(t, r.IsLocked())
		assert.ErrorIs(t, digo.DeclareInterfaceIn[*mock.Dog, mock.IDog](r), digo.ErrCasterRegistryLocked)

		r.Unlock()
		assert.NoError(t, digo.DeclareInterfaceIn[*mock.Dog, mock.IDog](r))
	})

	t.Run("Reset", func(t *testing.T) {
		r := digo.NewCasterRegistry()
		require.NoError(t, mock.Declare(r))
		r.Lock()
		r.Reset()
		assert.Equal(t, 0, r.Len())
		assert.False(t, r.IsLocked())
	})

	t.Run("ConcurrentDeclareAndLookup", func(t *testing.T) {
		r := digo.NewCasterRegistry()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				assert.NoError(t, mock.Declare(r))
			}()
			go func() {
				defer wg.Done()
				r.Lookup(digo.TypeOf[*mock.Dog](), digo.TypeOf[mock.IDog]())
			}()
		}
		wg.Wait()
		_, ok := r.Lookup(digo.TypeOf[*mock.Dog](), digo.TypeOf[mock.IDog]())
		assert.True(t, ok)
	})
}
