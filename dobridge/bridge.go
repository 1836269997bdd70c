// Package dobridge connects a digo container with a samber/do injector so
// services can move between the two during a migration.
package dobridge

import (
	"fmt"

	"github.com/centraunit/digo"
	"github.com/samber/do/v2"
)

// Bridge links a digo container with a samber/do root scope.
type Bridge struct {
	c        *digo.Container
	injector *do.RootScope
}

// NewBridge creates a bridge between c and injector.
func NewBridge(c *digo.Container, injector *do.RootScope) *Bridge {
	return &Bridge{
		c:        c,
		injector: injector,
	}
}

// Container returns the digo side of the bridge.
func (b *Bridge) Container() *digo.Container {
	return b.c
}

// Injector returns the samber/do side of the bridge.
func (b *Bridge) Injector() *do.RootScope {
	return b.injector
}

// Expose publishes the unnamed digo binding for I to the injector.
//
// Singleton bindings become lazy do singletons holding the shared instance,
// transient bindings become do transients and factory bindings publish the
// callable itself.
//
//	dobridge.Expose[IDog](bridge)
//	dog := do.MustInvoke[IDog](injector)
func Expose[I any](b *Bridge) error {
	return ExposeNamed[I](b, "")
}

// ExposeNamed publishes the digo binding for I registered under name. The
// do service gets the same name.
func ExposeNamed[I any](b *Bridge, name string) error {
	key := digo.NamedKeyOf[I](name)
	p, ok := b.c.GetBinding(key)
	if !ok {
		return &digo.BindingNotFoundError{Interface: key.TypeName(), Name: name}
	}

	switch p.Kind() {
	case digo.SingletonKind:
		provide(b, name, false, func() (I, error) {
			ptr, err := digo.GetNamed[I](b.c, name)
			if err != nil {
				var zero I
				return zero, err
			}
			shared, err := ptr.Singleton()
			if err != nil {
				var zero I
				return zero, err
			}
			defer shared.Release()
			return shared.Get(), nil
		})
	case digo.TransientKind:
		provide(b, name, true, func() (I, error) {
			ptr, err := digo.GetNamed[I](b.c, name)
			if err != nil {
				var zero I
				return zero, err
			}
			return ptr.Transient()
		})
	case digo.FactoryKind:
		provide(b, name, false, func() (I, error) {
			ptr, err := digo.GetNamed[I](b.c, name)
			if err != nil {
				var zero I
				return zero, err
			}
			return ptr.Factory()
		})
	default:
		return fmt.Errorf("dobridge: cannot expose %s binding for %s", p.Kind(), key)
	}
	return nil
}

func provide[I any](b *Bridge, name string, transient bool, fn func() (I, error)) {
	provider := func(do.Injector) (I, error) {
		return fn()
	}
	switch {
	case name == "" && transient:
		do.ProvideTransient(b.injector, provider)
	case name == "":
		do.Provide(b.injector, provider)
	case transient:
		do.ProvideNamedTransient(b.injector, name, provider)
	default:
		do.ProvideNamed(b.injector, name, provider)
	}
}

// Import binds I in the digo container as a dynamic value served by the
// injector. Every digo resolution invokes the do service; an injector error
// fails the resolution with a BindingResolveFailedError.
func Import[I any](b *Bridge) error {
	return ImportNamed[I](b, "")
}

// ImportNamed binds I under name in the digo container, served by the do
// service with the same name.
func ImportNamed[I any](b *Bridge, name string) error {
	key := digo.NamedKeyOf[I](name)
	if b.c.HasBinding(key) {
		return &digo.BindingAlreadyExistsError{Interface: key.String()}
	}

	b.c.SetBinding(key, digo.NewDynamicValueProvider(func(*digo.Container) func() (I, error) {
		return func() (I, error) {
			if name == "" {
				return do.Invoke[I](b.injector)
			}
			return do.InvokeNamed[I](b.injector, name)
		}
	}))
	return nil
}
