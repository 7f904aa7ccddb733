package vm

import (
	"fmt"
	"reflect"
	"sort"
)

// Names of the implicit entry points of a contract.
const (
	ConstructorName = "<init>"
	FallbackName    = "fallback"
)

// Flags describe how a method may be invoked.
type Flags uint8

const (
	// External methods may be invoked by accounts and other contracts.
	External Flags = 1 << iota
	// ReadOnly methods must not modify the state. Calls made while a
	// read-only method runs are read-only as well.
	ReadOnly
	// Payable methods accept a non-zero value.
	Payable
)

func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// Param declares a method parameter. Optional parameters may be omitted by
// callers and have to trail the required ones.
type Param struct {
	Name     string
	Type     reflect.Type
	Optional bool
}

// ParamOf declares a required parameter of type T.
func ParamOf[T any](name string) Param {
	return Param{Name: name, Type: reflect.TypeFor[T]()}
}

// OptionalOf declares an optional parameter of type T. Omitted optional
// arguments are passed as the zero value of T.
func OptionalOf[T any](name string) Param {
	return Param{Name: name, Type: reflect.TypeFor[T](), Optional: true}
}

// Handler implements a method on the contract instance self. The arguments
// have already been converted to the declared parameter types.
type Handler func(self any, ctx Context, args []any) (any, error)

// Bind adapts a handler working on a concrete contract type.
func Bind[T any](fn func(self T, ctx Context, args []any) (any, error)) Handler {
	return func(self any, ctx Context, args []any) (any, error) {
		typed, ok := self.(T)
		if !ok {
			return nil, fmt.Errorf("%w: contract is %T, not %v", ErrIllegalState, self, reflect.TypeFor[T]())
		}
		return fn(typed, ctx, args)
	}
}

// Method is an entry of the dispatch table of a contract class.
type Method struct {
	Name   string
	Flags  Flags
	Params []Param
	Run    Handler

	required int
}

// Constructor creates the contract instance during deployment.
type Constructor struct {
	Params []Param
	Run    func(ctx Context, args []any) (any, error)

	required int
}

// Class is the validated dispatch table of a contract type. Parameter
// layouts are checked once when the class is created.
type Class struct {
	name        string
	constructor Constructor
	methods     map[string]*Method
}

// NewClass validates a contract definition and creates its dispatch table.
func NewClass(name string, constructor Constructor, methods ...Method) (*Class, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: missing class name", ErrInvalidDefinition)
	}
	if constructor.Run == nil {
		return nil, fmt.Errorf("%w: %s has no constructor", ErrInvalidDefinition, name)
	}
	required, err := countRequired(constructor.Params)
	if err != nil {
		return nil, fmt.Errorf("%w: constructor of %s: %w", ErrInvalidDefinition, name, err)
	}
	res := &Class{
		name:        name,
		constructor: constructor,
		methods:     make(map[string]*Method, len(methods)),
	}
	res.constructor.required = required
	for _, m := range methods {
		if err := checkMethod(&m); err != nil {
			return nil, fmt.Errorf("%w: %s.%s: %w", ErrInvalidDefinition, name, m.Name, err)
		}
		if _, found := res.methods[m.Name]; found {
			return nil, fmt.Errorf("%w: %s.%s defined twice", ErrInvalidDefinition, name, m.Name)
		}
		method := m
		res.methods[m.Name] = &method
	}
	return res, nil
}

// MustNewClass is like NewClass but panics on invalid definitions.
func MustNewClass(name string, constructor Constructor, methods ...Method) *Class {
	res, err := NewClass(name, constructor, methods...)
	if err != nil {
		panic(err)
	}
	return res
}

func checkMethod(m *Method) error {
	if m.Name == "" || m.Name == ConstructorName {
		return fmt.Errorf("invalid method name %q", m.Name)
	}
	if m.Run == nil {
		return fmt.Errorf("missing handler")
	}
	if m.Flags.Has(ReadOnly) && m.Flags.Has(Payable) {
		return fmt.Errorf("read-only methods can not be payable")
	}
	if m.Name == FallbackName {
		if m.Flags.Has(External) || m.Flags.Has(ReadOnly) || len(m.Params) != 0 {
			return fmt.Errorf("fallback must be a non-external writable method without parameters")
		}
	}
	required, err := countRequired(m.Params)
	if err != nil {
		return err
	}
	m.required = required
	return nil
}

// countRequired returns the number of required parameters and checks that
// optional parameters only trail the required ones.
func countRequired(params []Param) (int, error) {
	required := 0
	for i, p := range params {
		if p.Type == nil {
			return 0, fmt.Errorf("%w: parameter %q has no type", ErrInvalidParameter, p.Name)
		}
		if p.Optional {
			continue
		}
		if required != i {
			return 0, fmt.Errorf("%w: required parameter %q follows optional one", ErrInvalidParameter, p.Name)
		}
		required++
	}
	return required, nil
}

func (c *Class) Name() string {
	return c.name
}

// Method returns the named entry of the dispatch table.
func (c *Class) Method(name string) (*Method, bool) {
	m, found := c.methods[name]
	return m, found
}

// Methods lists the names of all methods in lexical order.
func (c *Class) Methods() []string {
	res := make([]string, 0, len(c.methods))
	for name := range c.methods {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Required returns the number of arguments a caller has to provide.
func (m *Method) Required() int {
	return m.required
}
