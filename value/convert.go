package value

import (
	"bytes"
	"fmt"
	"math/big"
	"reflect"
	"sort"

	"github.com/0xsoniclabs/contractsim/common"
	"github.com/holiman/uint256"
)

const (
	ErrUnsupportedType = common.ConstError("unsupported type")
	ErrTypeMismatch    = common.ConstError("type mismatch")
	ErrOutOfRange      = common.ConstError("value out of range")
	ErrArityMismatch   = common.ConstError("arity mismatch")
)

var (
	bigIntPtrType  = reflect.TypeFor[*big.Int]()
	uint256PtrType = reflect.TypeFor[*uint256.Int]()
	uint256Type    = reflect.TypeFor[uint256.Int]()
	addressType    = reflect.TypeFor[common.Address]()
	mapPtrType     = reflect.TypeFor[*Map]()
)

// Converter translates between host values and the canonical universe.
// Struct types take part in the conversion only after being registered
// through Register. A zero Converter is ready to use and knows no structs.
type Converter struct {
	structs map[reflect.Type]*structCodec
}

func NewConverter() *Converter {
	return &Converter{structs: map[reflect.Type]*structCodec{}}
}

// plain is used by the package level helpers; it never gets registrations.
var plain = &Converter{}

// Normalize widens x into its canonical form using a converter without
// struct registrations.
func Normalize(x any) (any, error) {
	return plain.Normalize(x)
}

// Specialize narrows a canonical value into the given host type using a
// converter without struct registrations.
func Specialize(x any, t reflect.Type) (any, error) {
	return plain.Specialize(x, t)
}

// Cast normalizes x and specializes the result into T.
func Cast[T any](c *Converter, x any) (T, error) {
	var zero T
	norm, err := c.Normalize(x)
	if err != nil {
		return zero, err
	}
	res, err := c.Specialize(norm, reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	if res == nil {
		return zero, nil
	}
	return res.(T), nil
}

// Normalize widens x into its canonical form. Integers of all widths become
// *big.Int, byte sequences are copied, slices and arrays become lists, maps
// with string keys become *Map with sorted keys and registered structs are
// converted according to their layout. Nil pointers, slices and maps are
// absent.
func (c *Converter) Normalize(x any) (any, error) {
	switch v := x.(type) {
	case nil:
		return nil, nil
	case bool:
		return v, nil
	case string:
		return v, nil
	case []byte:
		if v == nil {
			return nil, nil
		}
		return bytes.Clone(v), nil
	case *big.Int:
		if v == nil {
			return nil, nil
		}
		return new(big.Int).Set(v), nil
	case *uint256.Int:
		if v == nil {
			return nil, nil
		}
		return v.ToBig(), nil
	case uint256.Int:
		return v.ToBig(), nil
	case common.Address:
		return v, nil
	case *common.Address:
		if v == nil {
			return nil, nil
		}
		return *v, nil
	case int:
		return big.NewInt(int64(v)), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case []any:
		if v == nil {
			return nil, nil
		}
		res := make([]any, len(v))
		for i, cur := range v {
			norm, err := c.Normalize(cur)
			if err != nil {
				return nil, err
			}
			res[i] = norm
		}
		return res, nil
	case *Map:
		if v == nil {
			return nil, nil
		}
		res := NewMap()
		for _, key := range v.keys {
			norm, err := c.Normalize(v.values[key])
			if err != nil {
				return nil, err
			}
			res.Set(key, norm)
		}
		return res, nil
	}
	return c.normalizeValue(reflect.ValueOf(x))
}

func (c *Converter) normalizeValue(rv reflect.Value) (any, error) {
	if codec := c.structs[rv.Type()]; codec != nil {
		return codec.toCanonical(c, rv)
	}
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return new(big.Int).SetUint64(rv.Uint()), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, nil
		}
		return c.Normalize(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return nil, nil
		}
		return c.normalizeSequence(rv)
	case reflect.Array:
		return c.normalizeSequence(rv)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		if rv.IsNil() {
			return nil, nil
		}
		keys := make([]string, 0, rv.Len())
		for _, key := range rv.MapKeys() {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		res := NewMap()
		for _, key := range keys {
			elem := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
			norm, err := c.Normalize(elem.Interface())
			if err != nil {
				return nil, err
			}
			res.Set(key, norm)
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, rv.Type())
}

func (c *Converter) normalizeSequence(rv reflect.Value) (any, error) {
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		res := make([]byte, rv.Len())
		for i := range res {
			res[i] = byte(rv.Index(i).Uint())
		}
		return res, nil
	}
	res := make([]any, rv.Len())
	for i := range res {
		norm, err := c.Normalize(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		res[i] = norm
	}
	return res, nil
}

// Specialize narrows the canonical value x into a value of type t. Integers
// are range checked against the target width, fixed size arrays require a
// matching number of elements and absent values become the zero value of t.
func (c *Converter) Specialize(x any, t reflect.Type) (any, error) {
	res, err := c.specialize(x, t)
	if err != nil {
		return nil, err
	}
	return res.Interface(), nil
}

func (c *Converter) specialize(x any, t reflect.Type) (reflect.Value, error) {
	if x == nil {
		return reflect.Zero(t), nil
	}
	if codec := c.structs[t]; codec != nil {
		return codec.fromCanonical(c, x)
	}
	switch t {
	case bigIntPtrType:
		n, err := asInt(x, t)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(new(big.Int).Set(n)), nil
	case uint256PtrType, uint256Type:
		n, err := asInt(x, t)
		if err != nil {
			return reflect.Value{}, err
		}
		if n.Sign() < 0 {
			return reflect.Value{}, fmt.Errorf("%w: %v does not fit %v", ErrOutOfRange, n, t)
		}
		res, overflow := uint256.FromBig(n)
		if overflow {
			return reflect.Value{}, fmt.Errorf("%w: %v does not fit %v", ErrOutOfRange, n, t)
		}
		if t == uint256Type {
			return reflect.ValueOf(*res), nil
		}
		return reflect.ValueOf(res), nil
	case addressType:
		addr, ok := x.(common.Address)
		if !ok {
			return reflect.Value{}, mismatch(x, t)
		}
		return reflect.ValueOf(addr), nil
	case mapPtrType:
		m, ok := x.(*Map)
		if !ok {
			return reflect.Value{}, mismatch(x, t)
		}
		norm, err := c.Normalize(m)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(norm), nil
	}

	res := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Interface:
		if !reflect.TypeOf(x).Implements(t) {
			return reflect.Value{}, mismatch(x, t)
		}
		res.Set(reflect.ValueOf(x))
		return res, nil
	case reflect.Bool:
		b, ok := x.(bool)
		if !ok {
			return reflect.Value{}, mismatch(x, t)
		}
		res.SetBool(b)
		return res, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := asInt(x, t)
		if err != nil {
			return reflect.Value{}, err
		}
		if !n.IsInt64() || res.OverflowInt(n.Int64()) {
			return reflect.Value{}, fmt.Errorf("%w: %v does not fit %v", ErrOutOfRange, n, t)
		}
		res.SetInt(n.Int64())
		return res, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := asInt(x, t)
		if err != nil {
			return reflect.Value{}, err
		}
		if n.Sign() < 0 || !n.IsUint64() || res.OverflowUint(n.Uint64()) {
			return reflect.Value{}, fmt.Errorf("%w: %v does not fit %v", ErrOutOfRange, n, t)
		}
		res.SetUint(n.Uint64())
		return res, nil
	case reflect.String:
		s, ok := x.(string)
		if !ok {
			return reflect.Value{}, mismatch(x, t)
		}
		res.SetString(s)
		return res, nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			b, ok := x.([]byte)
			if !ok {
				return reflect.Value{}, mismatch(x, t)
			}
			return reflect.ValueOf(bytes.Clone(b)).Convert(t), nil
		}
		list, ok := x.([]any)
		if !ok {
			return reflect.Value{}, mismatch(x, t)
		}
		res = reflect.MakeSlice(t, len(list), len(list))
		if err := c.specializeElements(list, res); err != nil {
			return reflect.Value{}, err
		}
		return res, nil
	case reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			b, ok := x.([]byte)
			if !ok {
				return reflect.Value{}, mismatch(x, t)
			}
			if len(b) != t.Len() {
				return reflect.Value{}, fmt.Errorf("%w: got %d bytes for %v", ErrArityMismatch, len(b), t)
			}
			reflect.Copy(res, reflect.ValueOf(b))
			return res, nil
		}
		list, ok := x.([]any)
		if !ok {
			return reflect.Value{}, mismatch(x, t)
		}
		if len(list) != t.Len() {
			return reflect.Value{}, fmt.Errorf("%w: got %d elements for %v", ErrArityMismatch, len(list), t)
		}
		if err := c.specializeElements(list, res); err != nil {
			return reflect.Value{}, err
		}
		return res, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			break
		}
		m, ok := x.(*Map)
		if !ok {
			return reflect.Value{}, mismatch(x, t)
		}
		res = reflect.MakeMapWithSize(t, m.Len())
		for _, key := range m.keys {
			elem, err := c.specialize(m.values[key], t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			res.SetMapIndex(reflect.ValueOf(key).Convert(t.Key()), elem)
		}
		return res, nil
	case reflect.Pointer:
		elem, err := c.specialize(x, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %v", ErrUnsupportedType, t)
}

func (c *Converter) specializeElements(list []any, target reflect.Value) error {
	for i, cur := range list {
		elem, err := c.specialize(cur, target.Type().Elem())
		if err != nil {
			return err
		}
		target.Index(i).Set(elem)
	}
	return nil
}

func asInt(x any, t reflect.Type) (*big.Int, error) {
	n, ok := x.(*big.Int)
	if !ok || n == nil {
		return nil, mismatch(x, t)
	}
	return n, nil
}

func mismatch(x any, t reflect.Type) error {
	return fmt.Errorf("%w: cannot convert %T to %v", ErrTypeMismatch, x, t)
}
