package digo

import "fmt"

// resolved is the type-erased outcome of a provider dispatch.
type resolved struct {
	kind   ProviderKind
	owned  *Owned[any]
	shared *Shared[any]
	value  any
	// direct is set when the provider produced the bound type itself, so no
	// registered cast is needed.
	direct bool
}

// toSomePtr converts an erased result into a typed pointer for I.
func toSomePtr[I any](casters *CasterRegistry, key InterfaceKey, res resolved) (SomePtr[I], error) {
	ptr := SomePtr[I]{key: key, kind: res.kind}

	switch {
	case res.direct:
		v, ok := res.value.(I)
		if !ok {
			return SomePtr[I]{}, &CastFailedError{From: fmt.Sprintf("%T", res.value), To: key.TypeName()}
		}
		if res.kind == FactoryKind {
			ptr.factory = v
		} else {
			ptr.transient = NewOwned(v)
		}
	case res.kind == TransientKind:
		owned, err := castOwned[I](casters, res.owned)
		if err != nil {
			return SomePtr[I]{}, err
		}
		ptr.transient = owned
	case res.kind == SingletonKind:
		shared, err := castShared[I](casters, res.shared)
		if err != nil {
			return SomePtr[I]{}, err
		}
		ptr.singleton = shared
	default:
		return SomePtr[I]{}, &CastFailedError{From: res.kind.String(), To: key.TypeName()}
	}
	return ptr, nil
}

func transientResult(v any) resolved {
	return resolved{kind: TransientKind, owned: NewOwned(v)}
}

func singletonResult(p *singletonProvider) resolved {
	return resolved{kind: SingletonKind, shared: p.instance}
}

func factoryResult(v any, dynamic bool) resolved {
	if dynamic {
		return resolved{kind: TransientKind, value: v, direct: true}
	}
	return resolved{kind: FactoryKind, value: v, direct: true}
}
