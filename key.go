package digo

import (
	"reflect"
	"sync"
)

var typeStringCache sync.Map

// TypeOf returns the static type of T. Interface types are returned as
// themselves rather than as the type of a nil value.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// typeString caches reflect.Type.String, which allocates on every call.
func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if cached, ok := typeStringCache.Load(t); ok {
		return cached.(string)
	}
	s := t.String()
	typeStringCache.Store(t, s)
	return s
}

// InterfaceKey identifies a binding: the bound type plus an optional name.
// An empty Name is the default, unnamed binding.
type InterfaceKey struct {
	Type reflect.Type
	Name string
}

// KeyOf returns the unnamed key for I.
func KeyOf[I any]() InterfaceKey {
	return InterfaceKey{Type: TypeOf[I]()}
}

// NamedKeyOf returns the key for I bound under name.
func NamedKeyOf[I any](name string) InterfaceKey {
	return InterfaceKey{Type: TypeOf[I](), Name: name}
}

// IsNamed reports whether the key targets a named binding.
func (k InterfaceKey) IsNamed() bool {
	return k.Name != ""
}

// Unnamed returns the default key for the same type.
func (k InterfaceKey) Unnamed() InterfaceKey {
	return InterfaceKey{Type: k.Type}
}

// WithName returns the key for the same type bound under name.
func (k InterfaceKey) WithName(name string) InterfaceKey {
	return InterfaceKey{Type: k.Type, Name: name}
}

// TypeName returns the type identity without the binding name.
func (k InterfaceKey) TypeName() string {
	return typeString(k.Type)
}

func (k InterfaceKey) String() string {
	if k.Name == "" {
		return typeString(k.Type)
	}
	return typeString(k.Type) + "[name=" + k.Name + "]"
}
