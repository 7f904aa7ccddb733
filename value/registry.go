package value

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/0xsoniclabs/contractsim/common"
)

const (
	ErrInvalidRegistration = common.ConstError("invalid struct registration")
)

// Layout selects the canonical shape of a registered struct.
type Layout int

const (
	// AsList represents a struct as a list of its fields in declaration
	// order.
	AsList Layout = iota
	// AsMap represents a struct as a map from field names to values, with
	// keys sorted by name.
	AsMap
)

// Field describes a single field of a struct registered with a Converter.
// Set receives values already specialized to Type.
type Field[T any] struct {
	Name string
	Type reflect.Type
	Get  func(*T) any
	Set  func(*T, any)
}

// FieldOf creates a field description from typed accessors.
func FieldOf[T, F any](name string, get func(*T) F, set func(*T, F)) Field[T] {
	return Field[T]{
		Name: name,
		Type: reflect.TypeFor[F](),
		Get:  func(s *T) any { return get(s) },
		Set: func(s *T, v any) {
			f, _ := v.(F)
			set(s, f)
		},
	}
}

// Register makes the struct type T convertible by c. The fields define the
// canonical form of T; each must have a distinct name and both accessors.
func Register[T any](c *Converter, layout Layout, fields ...Field[T]) error {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %v is not a struct", ErrInvalidRegistration, typ)
	}
	if _, found := c.structs[typ]; found {
		return fmt.Errorf("%w: %v already registered", ErrInvalidRegistration, typ)
	}
	codec := &structCodec{typ: typ, layout: layout}
	names := map[string]bool{}
	for _, field := range fields {
		if field.Get == nil || field.Set == nil || field.Type == nil {
			return fmt.Errorf("%w: incomplete field %q of %v", ErrInvalidRegistration, field.Name, typ)
		}
		if names[field.Name] {
			return fmt.Errorf("%w: duplicate field %q of %v", ErrInvalidRegistration, field.Name, typ)
		}
		names[field.Name] = true
		get, set := field.Get, field.Set
		codec.fields = append(codec.fields, structField{
			name: field.Name,
			typ:  field.Type,
			get:  func(ptr any) any { return get(ptr.(*T)) },
			set:  func(ptr any, v any) { set(ptr.(*T), v) },
		})
	}
	if layout == AsMap {
		sort.Slice(codec.fields, func(i, j int) bool {
			return codec.fields[i].name < codec.fields[j].name
		})
	}
	if c.structs == nil {
		c.structs = map[reflect.Type]*structCodec{}
	}
	c.structs[typ] = codec
	return nil
}

// MustRegister is like Register but panics on failure.
func MustRegister[T any](c *Converter, layout Layout, fields ...Field[T]) {
	if err := Register(c, layout, fields...); err != nil {
		panic(err)
	}
}

type structCodec struct {
	typ    reflect.Type
	layout Layout
	fields []structField
}

type structField struct {
	name string
	typ  reflect.Type
	get  func(any) any
	set  func(any, any)
}

func (s *structCodec) toCanonical(c *Converter, rv reflect.Value) (any, error) {
	ptr := reflect.New(s.typ)
	ptr.Elem().Set(rv)
	values := make([]any, len(s.fields))
	for i, field := range s.fields {
		norm, err := c.Normalize(field.get(ptr.Interface()))
		if err != nil {
			return nil, fmt.Errorf("field %q of %v: %w", field.name, s.typ, err)
		}
		values[i] = norm
	}
	if s.layout == AsList {
		return values, nil
	}
	res := NewMap()
	for i, field := range s.fields {
		res.Set(field.name, values[i])
	}
	return res, nil
}

func (s *structCodec) fromCanonical(c *Converter, x any) (reflect.Value, error) {
	values := make([]any, len(s.fields))
	switch s.layout {
	case AsList:
		list, ok := x.([]any)
		if !ok {
			return reflect.Value{}, mismatch(x, s.typ)
		}
		if len(list) != len(s.fields) {
			return reflect.Value{}, fmt.Errorf("%w: got %d elements for %v", ErrArityMismatch, len(list), s.typ)
		}
		copy(values, list)
	case AsMap:
		m, ok := x.(*Map)
		if !ok {
			return reflect.Value{}, mismatch(x, s.typ)
		}
		for i, field := range s.fields {
			values[i], _ = m.Get(field.name)
		}
	}
	ptr := reflect.New(s.typ)
	for i, field := range s.fields {
		v, err := c.specialize(values[i], field.typ)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("field %q of %v: %w", field.name, s.typ, err)
		}
		field.set(ptr.Interface(), v.Interface())
	}
	return ptr.Elem(), nil
}
