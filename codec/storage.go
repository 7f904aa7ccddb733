package codec

import (
	"bytes"
	"fmt"
	"math/big"
	"reflect"

	"github.com/0xsoniclabs/contractsim/common"
	"github.com/0xsoniclabs/contractsim/value"
)

// ToBytes converts a value into the form kept in contract storage. Strings
// are stored as UTF-8, byte sequences verbatim, booleans and integers in
// minimal two's complement form and addresses as their 21 bytes. Lists,
// maps and registered structs are stored in the RLPn encoding.
func ToBytes(c *value.Converter, x any) ([]byte, error) {
	norm, err := c.Normalize(x)
	if err != nil {
		return nil, err
	}
	switch v := norm.(type) {
	case nil:
		return nil, fmt.Errorf("%w: absent value has no byte form", ErrIllegalValue)
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case bool:
		if v {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case *big.Int:
		return SignedBytes(v), nil
	case common.Address:
		return v.Bytes(), nil
	}
	w := NewWriter(RLPn)
	if err := w.WriteValue(norm); err != nil {
		return nil, err
	}
	return w.Bytes()
}

// FromBytes is the inverse of ToBytes. A nil input is an absent value and
// yields the zero value of t.
func FromBytes(c *value.Converter, data []byte, t reflect.Type) (any, error) {
	if data == nil {
		return c.Specialize(nil, t)
	}
	typ, err := c.TypeFor(t)
	if err != nil {
		return nil, err
	}
	var canonical any
	switch typ.Kind {
	case value.KindString:
		canonical = string(data)
	case value.KindBytes:
		canonical = bytes.Clone(data)
	case value.KindBool:
		switch {
		case len(data) == 0:
			canonical = false
		case len(data) == 1 && data[0] <= 1:
			canonical = data[0] == 1
		default:
			return nil, fmt.Errorf("%w: %x is not a boolean", ErrMalformed, data)
		}
	case value.KindInt:
		canonical = FromSignedBytes(data)
	case value.KindAddress:
		if canonical, err = common.NewAddress(data); err != nil {
			return nil, err
		}
	default:
		r := NewReader(RLPn, data)
		if canonical, err = r.ReadValue(typ); err != nil {
			return nil, err
		}
		if err := r.Close(); err != nil {
			return nil, err
		}
	}
	return c.Specialize(canonical, t)
}

// Decode is a typed version of FromBytes.
func Decode[T any](c *value.Converter, data []byte) (T, error) {
	var zero T
	res, err := FromBytes(c, data, reflect.TypeFor[T]())
	if err != nil || res == nil {
		return zero, err
	}
	return res.(T), nil
}
