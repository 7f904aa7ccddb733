package value

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/0xsoniclabs/contractsim/common"
)

// Kind enumerates the shapes of canonical values.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInt
	KindBytes
	KindString
	KindAddress
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindBytes:
		return "bytes"
	case KindString:
		return "str"
	case KindAddress:
		return "Address"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Type is a schema describing the shape of a canonical value. It is needed
// to decode encoded values, which do not carry type information.
//
// Lists either have a homogeneous element type (Elem) or a fixed sequence
// of element types (Elems). Maps either have a homogeneous value type (Elem)
// or a set of named fields (Fields).
type Type struct {
	Kind     Kind
	Nullable bool
	Elem     *Type
	Elems    []Type
	Fields   []FieldType
}

type FieldType struct {
	Name string
	Type Type
}

// Field returns the type of the named field of a map schema.
func (t Type) Field(name string) (Type, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return Type{}, false
}

// TypeOf derives the schema of a canonical value.
func TypeOf(x any) Type {
	switch v := x.(type) {
	case nil:
		return Type{Kind: KindNull, Nullable: true}
	case bool:
		return Type{Kind: KindBool}
	case *big.Int:
		return Type{Kind: KindInt}
	case []byte:
		return Type{Kind: KindBytes}
	case string:
		return Type{Kind: KindString}
	case common.Address:
		return Type{Kind: KindAddress}
	case []any:
		res := Type{Kind: KindList, Elems: make([]Type, len(v))}
		for i, cur := range v {
			res.Elems[i] = TypeOf(cur)
		}
		return res
	case *Map:
		res := Type{Kind: KindMap, Fields: []FieldType{}}
		for _, e := range v.Entries() {
			res.Fields = append(res.Fields, FieldType{Name: e.Key, Type: TypeOf(e.Value)})
		}
		return res
	}
	return Type{}
}

// TypeFor derives the schema of the canonical form of values of type t.
func (c *Converter) TypeFor(t reflect.Type) (Type, error) {
	if codec := c.structs[t]; codec != nil {
		return codec.schema(c)
	}
	switch t {
	case bigIntPtrType, uint256PtrType:
		return Type{Kind: KindInt, Nullable: true}, nil
	case uint256Type:
		return Type{Kind: KindInt}, nil
	case addressType:
		return Type{Kind: KindAddress}, nil
	}
	switch t.Kind() {
	case reflect.Bool:
		return Type{Kind: KindBool}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Type{Kind: KindInt}, nil
	case reflect.String:
		return Type{Kind: KindString}, nil
	case reflect.Slice, reflect.Array:
		nullable := t.Kind() == reflect.Slice
		if t.Elem().Kind() == reflect.Uint8 {
			return Type{Kind: KindBytes, Nullable: nullable}, nil
		}
		elem, err := c.TypeFor(t.Elem())
		if err != nil {
			return Type{}, err
		}
		return Type{Kind: KindList, Nullable: nullable, Elem: &elem}, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			break
		}
		elem, err := c.TypeFor(t.Elem())
		if err != nil {
			return Type{}, err
		}
		return Type{Kind: KindMap, Nullable: true, Elem: &elem}, nil
	case reflect.Pointer:
		res, err := c.TypeFor(t.Elem())
		if err != nil {
			return Type{}, err
		}
		res.Nullable = true
		return res, nil
	}
	return Type{}, fmt.Errorf("%w: no schema for %v", ErrUnsupportedType, t)
}

func (s *structCodec) schema(c *Converter) (Type, error) {
	res := Type{Kind: KindList}
	if s.layout == AsMap {
		res.Kind = KindMap
	}
	for _, field := range s.fields {
		ft, err := c.TypeFor(field.typ)
		if err != nil {
			return Type{}, fmt.Errorf("field %q of %v: %w", field.name, s.typ, err)
		}
		if s.layout == AsList {
			res.Elems = append(res.Elems, ft)
		} else {
			res.Fields = append(res.Fields, FieldType{Name: field.name, Type: ft})
		}
	}
	return res, nil
}
