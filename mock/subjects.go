package mock

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/centraunit/digo"
)

// Core interfaces
type IDog interface {
	Woof() string
	Woofs() int64
}

type ICat interface {
	Meow() string
}

type IHuman interface {
	MakePetsMakeSounds() []string
	Dog() IDog
}

type IFood interface {
	Eat() string
}

// FoodFactory is bound as a factory; resolving it hands out the func itself.
type FoodFactory func() IFood

type IUser interface {
	Name() string
}

// UserFactory takes caller-supplied arguments.
type UserFactory func(name string) IUser

// Counter is implemented by CounterService and exercised through aliased singletons.
type Counter interface {
	Increment() int64
	Count() int64
}

// Mock implementations
type Dog struct {
	woofs atomic.Int64
}

func NewDog(r *digo.Resolver) (*Dog, error) {
	return &Dog{}, nil
}

func NewDogAsync(ctx context.Context, r *digo.AsyncResolver) (*Dog, error) {
	return &Dog{}, nil
}

func (d *Dog) Woof() string {
	d.woofs.Add(1)
	return "woof"
}

func (d *Dog) Woofs() int64 {
	return d.woofs.Load()
}

type Cat struct{}

func NewCat(r *digo.Resolver) (*Cat, error) {
	return &Cat{}, nil
}

func NewCatAsync(ctx context.Context, r *digo.AsyncResolver) (*Cat, error) {
	return &Cat{}, nil
}

func (c *Cat) Meow() string {
	return "meow"
}

type Human struct {
	dog *digo.Shared[IDog]
	cat ICat
}

// NewHuman needs IDog bound as a singleton and ICat bound as a transient.
func NewHuman(r *digo.Resolver) (*Human, error) {
	dogPtr, err := digo.Inject[IDog](r)
	if err != nil {
		return nil, err
	}
	dog, err := dogPtr.Singleton()
	if err != nil {
		return nil, err
	}

	catPtr, err := digo.Inject[ICat](r)
	if err != nil {
		return nil, err
	}
	cat, err := catPtr.Transient()
	if err != nil {
		return nil, err
	}
	return &Human{dog: dog, cat: cat}, nil
}

// NewHumanAsync resolves both pets concurrently.
func NewHumanAsync(ctx context.Context, r *digo.AsyncResolver) (*Human, error) {
	h := &Human{}
	err := r.Concurrently(ctx,
		func(ctx context.Context, r *digo.AsyncResolver) error {
			ptr, err := digo.InjectAsync[IDog](ctx, r)
			if err != nil {
				return err
			}
			h.dog, err = ptr.Singleton()
			return err
		},
		func(ctx context.Context, r *digo.AsyncResolver) error {
			ptr, err := digo.InjectAsync[ICat](ctx, r)
			if err != nil {
				return err
			}
			h.cat, err = ptr.Transient()
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Human) MakePetsMakeSounds() []string {
	return []string{h.dog.Get().Woof(), h.cat.Meow()}
}

func (h *Human) Dog() IDog {
	return h.dog.Get()
}

type Food struct{}

func (f *Food) Eat() string {
	return "nom"
}

type User struct {
	name string
}

func NewUser(name string) *User {
	return &User{name: name}
}

func (u *User) Name() string {
	return u.name
}

type CounterService struct {
	count atomic.Int64
}

func NewCounterService(r *digo.Resolver) (*CounterService, error) {
	return &CounterService{}, nil
}

func NewCounterServiceAsync(ctx context.Context, r *digo.AsyncResolver) (*CounterService, error) {
	return &CounterService{}, nil
}

func (c *CounterService) Increment() int64 {
	return c.count.Add(1)
}

func (c *CounterService) Count() int64 {
	return c.count.Load()
}

// Circular dependency test types
type CircularService1 interface {
	Service2() CircularService2
}

type CircularService2 interface {
	Service1() CircularService1
}

type CircularImpl1 struct {
	svc2 CircularService2
}

func NewCircularImpl1(r *digo.Resolver) (*CircularImpl1, error) {
	ptr, err := digo.Inject[CircularService2](r)
	if err != nil {
		return nil, err
	}
	svc2, err := ptr.Transient()
	if err != nil {
		return nil, err
	}
	return &CircularImpl1{svc2: svc2}, nil
}

func NewCircularImpl1Async(ctx context.Context, r *digo.AsyncResolver) (*CircularImpl1, error) {
	ptr, err := digo.InjectAsync[CircularService2](ctx, r)
	if err != nil {
		return nil, err
	}
	svc2, err := ptr.Transient()
	if err != nil {
		return nil, err
	}
	return &CircularImpl1{svc2: svc2}, nil
}

func (i *CircularImpl1) Service2() CircularService2 { return i.svc2 }

type CircularImpl2 struct {
	svc1 CircularService1
}

func NewCircularImpl2(r *digo.Resolver) (*CircularImpl2, error) {
	ptr, err := digo.Inject[CircularService1](r)
	if err != nil {
		return nil, err
	}
	svc1, err := ptr.Transient()
	if err != nil {
		return nil, err
	}
	return &CircularImpl2{svc1: svc1}, nil
}

func NewCircularImpl2Async(ctx context.Context, r *digo.AsyncResolver) (*CircularImpl2, error) {
	ptr, err := digo.InjectAsync[CircularService1](ctx, r)
	if err != nil {
		return nil, err
	}
	svc1, err := ptr.Transient()
	if err != nil {
		return nil, err
	}
	return &CircularImpl2{svc1: svc1}, nil
}

func (i *CircularImpl2) Service1() CircularService1 { return i.svc1 }

// Deep dependency chain: DeepService1 -> DeepService2 -> DeepService3
type DeepService3 interface {
	GetValue() string
}

type DeepService2 interface {
	GetService3() DeepService3
}

type DeepService1 interface {
	GetService2() DeepService2
}

type DeepImpl3 struct {
	Value string
}

func NewDeepImpl3(r *digo.Resolver) (*DeepImpl3, error) {
	return &DeepImpl3{Value: "deep"}, nil
}

func (d *DeepImpl3) GetValue() string {
	return d.Value
}

type DeepImpl2 struct {
	svc3 DeepService3
}

func NewDeepImpl2(r *digo.Resolver) (*DeepImpl2, error) {
	ptr, err := digo.Inject[DeepService3](r)
	if err != nil {
		return nil, err
	}
	svc3, err := ptr.Transient()
	if err != nil {
		return nil, err
	}
	return &DeepImpl2{svc3: svc3}, nil
}

func (d *DeepImpl2) GetService3() DeepService3 {
	return d.svc3
}

type DeepImpl1 struct {
	svc2 DeepService2
}

func NewDeepImpl1(r *digo.Resolver) (*DeepImpl1, error) {
	ptr, err := digo.Inject[DeepService2](r)
	if err != nil {
		return nil, err
	}
	svc2, err := ptr.Transient()
	if err != nil {
		return nil, err
	}
	return &DeepImpl1{svc2: svc2}, nil
}

func (d *DeepImpl1) GetService2() DeepService2 {
	return d.svc2
}

// ErrSimulatedBoot is returned by the failing constructors.
var ErrSimulatedBoot = errors.New("simulated boot failure")

type FailingService struct{}

func NewFailingService(r *digo.Resolver) (*FailingService, error) {
	return nil, ErrSimulatedBoot
}

func NewFailingServiceAsync(ctx context.Context, r *digo.AsyncResolver) (*FailingService, error) {
	return nil, ErrSimulatedBoot
}

func (f *FailingService) Woof() string { return "" }
func (f *FailingService) Woofs() int64 { return 0 }
func (f *FailingService) Meow() string { return "" }

// Declare registers every (concrete, interface) pair used by the subjects.
func Declare(r *digo.CasterRegistry) error {
	decls := []func(*digo.CasterRegistry) error{
		digo.DeclareInterfaceIn[*Dog, IDog],
		digo.DeclareInterfaceIn[*Cat, ICat],
		digo.DeclareInterfaceIn[*Human, IHuman],
		digo.DeclareInterfaceIn[*CounterService, Counter],
		digo.DeclareInterfaceIn[*CircularImpl1, CircularService1],
		digo.DeclareInterfaceIn[*CircularImpl2, CircularService2],
		digo.DeclareInterfaceIn[*DeepImpl1, DeepService1],
		digo.DeclareInterfaceIn[*DeepImpl2, DeepService2],
		digo.DeclareInterfaceIn[*DeepImpl3, DeepService3],
		digo.DeclareInterfaceIn[*FailingService, IDog],
		digo.DeclareInterfaceIn[*FailingService, ICat],
	}
	for _, declare := range decls {
		if err := declare(r); err != nil {
			return fmt.Errorf("declare casts: %w", err)
		}
	}
	return nil
}
