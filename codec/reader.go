package codec

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/0xsoniclabs/contractsim/common"
	"github.com/0xsoniclabs/contractsim/value"
	"github.com/ethereum/go-ethereum/rlp"
)

// Reader consumes the binary form produced by a Writer of the same variant.
// Lists and maps are entered by BeginList and BeginMap; End skips the items
// not read yet and leaves the innermost level. Close verifies that all
// levels have been left and no trailing data remains.
type Reader struct {
	variant Variant
	rest    []byte
	outer   [][]byte
}

func NewReader(variant Variant, data []byte) *Reader {
	return &Reader{variant: variant, rest: data}
}

func (r *Reader) Variant() Variant {
	return r.variant
}

// Level returns the number of currently entered lists and maps.
func (r *Reader) Level() int {
	return len(r.outer)
}

// HasNext reports whether the current level has unread items.
func (r *Reader) HasNext() bool {
	return len(r.rest) > 0
}

// ReadNullity consumes a null marker if one is next and reports whether it
// did so.
func (r *Reader) ReadNullity() bool {
	tag := r.variant.nullTag()
	if bytes.HasPrefix(r.rest, tag) {
		r.rest = r.rest[len(tag):]
		return true
	}
	return false
}

func (r *Reader) ReadNull() error {
	if !r.HasNext() {
		return ErrNoMoreItems
	}
	if !r.ReadNullity() {
		return fmt.Errorf("%w: expected null", ErrMalformed)
	}
	return nil
}

// ItemKind classifies encoded items.
type ItemKind int

const (
	ItemString ItemKind = iota
	ItemList
	ItemNull
)

func (k ItemKind) String() string {
	switch k {
	case ItemString:
		return "string"
	case ItemList:
		return "list"
	case ItemNull:
		return "null"
	}
	return fmt.Sprintf("ItemKind(%d)", int(k))
}

// Peek returns the kind of the next item without consuming it.
func (r *Reader) Peek() (ItemKind, error) {
	if !r.HasNext() {
		return 0, ErrNoMoreItems
	}
	if bytes.HasPrefix(r.rest, r.variant.nullTag()) {
		return ItemNull, nil
	}
	kind, _, _, err := rlp.Split(r.rest)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if kind == rlp.List {
		return ItemList, nil
	}
	return ItemString, nil
}

func (r *Reader) next() (rlp.Kind, []byte, error) {
	if !r.HasNext() {
		return 0, nil, ErrNoMoreItems
	}
	if bytes.HasPrefix(r.rest, r.variant.nullTag()) {
		return 0, nil, ErrUnexpectedNull
	}
	kind, content, rest, err := rlp.Split(r.rest)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	r.rest = rest
	return kind, content, nil
}

func (r *Reader) nextString() ([]byte, error) {
	kind, content, err := r.next()
	if err != nil {
		return nil, err
	}
	if kind == rlp.List {
		return nil, fmt.Errorf("%w: expected string, got list", ErrMalformed)
	}
	return content, nil
}

func (r *Reader) ReadBool() (bool, error) {
	n, err := r.ReadBigInt()
	if err != nil {
		return false, err
	}
	if !n.IsInt64() || n.Int64() < 0 || n.Int64() > 1 {
		return false, fmt.Errorf("%w: %v is not a boolean", ErrMalformed, n)
	}
	return n.Int64() == 1, nil
}

func (r *Reader) ReadBigInt() (*big.Int, error) {
	content, err := r.nextString()
	if err != nil {
		return nil, err
	}
	return FromSignedBytes(content), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	n, err := r.ReadBigInt()
	if err != nil {
		return 0, err
	}
	if !n.IsInt64() {
		return 0, fmt.Errorf("%w: %v exceeds 64 bits", value.ErrOutOfRange, n)
	}
	return n.Int64(), nil
}

func (r *Reader) ReadString() (string, error) {
	content, err := r.nextString()
	return string(content), err
}

func (r *Reader) ReadBytes() ([]byte, error) {
	content, err := r.nextString()
	if err != nil {
		return nil, err
	}
	return bytes.Clone(content), nil
}

func (r *Reader) ReadAddress() (common.Address, error) {
	content, err := r.nextString()
	if err != nil {
		return common.Address{}, err
	}
	return common.NewAddress(content)
}

// BeginList enters the next item, which has to be a list.
func (r *Reader) BeginList() error {
	kind, content, err := r.next()
	if err != nil {
		return err
	}
	if kind != rlp.List {
		return fmt.Errorf("%w: expected list", ErrMalformed)
	}
	r.outer = append(r.outer, r.rest)
	r.rest = content
	return nil
}

// BeginNullableList enters the next list unless a null marker is next. It
// reports whether a list was entered.
func (r *Reader) BeginNullableList() (bool, error) {
	if r.ReadNullity() {
		return false, nil
	}
	return true, r.BeginList()
}

func (r *Reader) BeginMap() error {
	return r.BeginList()
}

// End skips the remaining items of the current level and leaves it.
func (r *Reader) End() error {
	if len(r.outer) == 0 {
		return fmt.Errorf("%w: end without open list", ErrUnbalanced)
	}
	last := len(r.outer) - 1
	r.rest = r.outer[last]
	r.outer = r.outer[:last]
	return nil
}

// Skip drops the next n items of the current level.
func (r *Reader) Skip(n int) error {
	for i := 0; i < n; i++ {
		if r.ReadNullity() {
			continue
		}
		if _, _, err := r.next(); err != nil {
			return err
		}
	}
	return nil
}

// Close checks that the input has been consumed completely.
func (r *Reader) Close() error {
	if len(r.outer) != 0 {
		return fmt.Errorf("%w: %d levels left open", ErrUnbalanced, len(r.outer))
	}
	if len(r.rest) != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformed, len(r.rest))
	}
	return nil
}

// ReadValue reads a canonical value of the given shape.
func (r *Reader) ReadValue(t value.Type) (any, error) {
	if t.Kind == value.KindNull {
		return nil, r.ReadNull()
	}
	if t.Nullable && r.ReadNullity() {
		return nil, nil
	}
	switch t.Kind {
	case value.KindBool:
		return r.ReadBool()
	case value.KindInt:
		return r.ReadBigInt()
	case value.KindBytes:
		return r.ReadBytes()
	case value.KindString:
		return r.ReadString()
	case value.KindAddress:
		return r.ReadAddress()
	case value.KindList:
		return r.readList(t)
	case value.KindMap:
		return r.readMap(t)
	}
	return nil, fmt.Errorf("%w: cannot decode %v", value.ErrUnsupportedType, t.Kind)
}

func (r *Reader) readList(t value.Type) (any, error) {
	if t.Elem == nil && t.Elems == nil {
		return nil, fmt.Errorf("%w: list without element types", value.ErrUnsupportedType)
	}
	if err := r.BeginList(); err != nil {
		return nil, err
	}
	res := []any{}
	if t.Elem != nil {
		for r.HasNext() {
			elem, err := r.ReadValue(*t.Elem)
			if err != nil {
				return nil, err
			}
			res = append(res, elem)
		}
	} else {
		for _, et := range t.Elems {
			elem, err := r.ReadValue(et)
			if err != nil {
				return nil, err
			}
			res = append(res, elem)
		}
	}
	return res, r.End()
}

func (r *Reader) readMap(t value.Type) (any, error) {
	if t.Elem == nil && t.Fields == nil {
		return nil, fmt.Errorf("%w: map without value types", value.ErrUnsupportedType)
	}
	if err := r.BeginMap(); err != nil {
		return nil, err
	}
	res := value.NewMap()
	for r.HasNext() {
		key, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		vt := t.Elem
		if vt == nil {
			ft, found := t.Field(key)
			if !found {
				return nil, fmt.Errorf("%w: unexpected key %q", ErrMalformed, key)
			}
			vt = &ft
		}
		elem, err := r.ReadValue(*vt)
		if err != nil {
			return nil, err
		}
		res.Set(key, elem)
	}
	return res, r.End()
}
