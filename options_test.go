package digo_test

import (
	"context"
	"testing"

	"github.com/centraunit/digo"
	"github.com/centraunit/digo/mock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultID(t *testing.T) {
	c := digo.New()
	_, err := uuid.Parse(c.ID())
	assert.NoError(t, err)

	ac := digo.NewAsync()
	_, err = uuid.Parse(ac.ID())
	assert.NoError(t, err)
}

func TestWithID(t *testing.T) {
	assert.Equal(t, "app", digo.New(digo.WithID("app")).ID())
	assert.Equal(t, "app", digo.NewAsync(digo.WithID("app")).ID())
}

func TestNilOptionIgnored(t *testing.T) {
	c := digo.New(nil, digo.WithID("x"))
	assert.Equal(t, "x", c.ID())
}

func TestDefaultCasterRegistry(t *testing.T) {
	require.NoError(t, digo.DeclareInterface[*mock.Dog, mock.IDog]())
	c := digo.New()
	_, err := digo.To(digo.Bind[mock.IDog](c), mock.NewDog)
	require.NoError(t, err)

	ptr, err := digo.Get[mock.IDog](c)
	require.NoError(t, err)
	_, err = ptr.Transient()
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, digo.DefaultCasters().Len(), 1)
}

func TestLogging(t *testing.T) {
	casters := digo.NewCasterRegistry()
	require.NoError(t, mock.Declare(casters))

	t.Run("Resolution", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		c := digo.New(digo.WithLogger(zap.New(core)), digo.WithID("test-id"), digo.WithCasterRegistry(casters))

		sc, err := digo.To(digo.Bind[mock.IDog](c), mock.NewDog)
		require.NoError(t, err)
		_, err = sc.InSingletonScope()
		require.NoError(t, err)
		_, err = digo.Get[mock.IDog](c)
		require.NoError(t, err)

		assert.Equal(t, 1, logs.FilterMessage("singleton constructed").Len())
		resolved := logs.FilterMessage("resolved").All()
		require.Len(t, resolved, 1)
		assert.Equal(t, zapcore.DebugLevel, resolved[0].Level)

		fields := resolved[0].ContextMap()
		assert.Equal(t, "test-id", fields["container_id"])
		assert.Equal(t, "mock.IDog", fields["interface"])
		assert.Equal(t, "singleton", fields["kind"])
	})

	t.Run("Failure", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		c := digo.New(digo.WithLogger(zap.New(core)), digo.WithCasterRegistry(casters))

		_, err := digo.Get[mock.IDog](c)
		require.Error(t, err)

		failures := logs.FilterMessage("resolution failed").All()
		require.Len(t, failures, 1)
		assert.Equal(t, zapcore.WarnLevel, failures[0].Level)
		assert.Equal(t, c.ID(), failures[0].ContextMap()["container_id"])
		assert.Equal(t, 0, logs.FilterMessage("resolved").Len())
	})

	t.Run("SingletonFailure", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		c := digo.New(digo.WithLogger(zap.New(core)), digo.WithCasterRegistry(casters))

		sc, err := digo.To(digo.Bind[mock.IDog](c), mock.NewFailingService)
		require.NoError(t, err)
		_, err = sc.InSingletonScope()
		require.Error(t, err)

		assert.Equal(t, 1, logs.FilterMessage("singleton resolution failed").Len())
	})

	t.Run("Async", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		c := digo.NewAsync(digo.WithLogger(zap.New(core)), digo.WithCasterRegistry(casters))

		_, err := digo.ToAsync(digo.BindAsync[mock.IDog](c), mock.NewDogAsync)
		require.NoError(t, err)
		_, err = digo.GetAsync[mock.IDog](context.Background(), c)
		require.NoError(t, err)

		resolved := logs.FilterMessage("resolved").All()
		require.Len(t, resolved, 1)
		assert.Equal(t, true, resolved[0].ContextMap()["async"])
		assert.Equal(t, "transient", resolved[0].ContextMap()["kind"])
	})
}
