package codec

import (
	"fmt"
	"math/big"

	"github.com/0xsoniclabs/contractsim/common"
	"github.com/0xsoniclabs/contractsim/value"
	"github.com/ethereum/go-ethereum/rlp"
)

// Writer produces the binary form of a sequence of values. Lists and maps
// are opened by BeginList and BeginMap and closed by End; Bytes fails as
// long as a nesting level is open. The first error encountered is sticky.
type Writer struct {
	variant Variant
	buf     rlp.EncoderBuffer
	open    []int
	err     error
}

func NewWriter(variant Variant) *Writer {
	return &Writer{variant: variant, buf: rlp.NewEncoderBuffer(nil)}
}

func (w *Writer) Variant() Variant {
	return w.variant
}

// Level returns the number of currently open lists and maps.
func (w *Writer) Level() int {
	return len(w.open)
}

func (w *Writer) WriteBool(b bool) {
	if b {
		w.buf.WriteBytes([]byte{1})
	} else {
		w.buf.WriteBytes([]byte{0})
	}
}

func (w *Writer) WriteInt64(n int64) {
	w.WriteBigInt(big.NewInt(n))
}

func (w *Writer) WriteUint64(n uint64) {
	w.WriteBigInt(new(big.Int).SetUint64(n))
}

// WriteBigInt writes n in two's complement form; nil is written as null.
func (w *Writer) WriteBigInt(n *big.Int) {
	if n == nil {
		w.WriteNull()
		return
	}
	w.buf.WriteBytes(SignedBytes(n))
}

func (w *Writer) WriteString(s string) {
	w.buf.WriteString(s)
}

func (w *Writer) WriteBytes(b []byte) {
	w.buf.WriteBytes(b)
}

func (w *Writer) WriteAddress(addr common.Address) {
	w.buf.WriteBytes(addr[:])
}

func (w *Writer) WriteNull() {
	w.buf.Write(w.variant.nullTag())
}

// WriteNullity writes a null marker if isNull is set and nothing otherwise.
// It precedes the value of nullable fields.
func (w *Writer) WriteNullity(isNull bool) {
	if isNull {
		w.WriteNull()
	}
}

// BeginList opens a list. The size hint is not part of the encoding.
func (w *Writer) BeginList(int) {
	w.open = append(w.open, w.buf.List())
}

// BeginMap opens a map; entries are written as alternating keys and values.
func (w *Writer) BeginMap(int) {
	w.BeginList(0)
}

// End closes the innermost open list or map.
func (w *Writer) End() error {
	if len(w.open) == 0 {
		err := fmt.Errorf("%w: end without open list", ErrUnbalanced)
		w.fail(err)
		return err
	}
	last := len(w.open) - 1
	w.buf.ListEnd(w.open[last])
	w.open = w.open[:last]
	return nil
}

// WriteValue writes a canonical value.
func (w *Writer) WriteValue(x any) error {
	switch v := x.(type) {
	case nil:
		w.WriteNull()
	case bool:
		w.WriteBool(v)
	case *big.Int:
		w.WriteBigInt(v)
	case []byte:
		w.WriteBytes(v)
	case string:
		w.WriteString(v)
	case common.Address:
		w.WriteAddress(v)
	case []any:
		w.BeginList(len(v))
		for _, cur := range v {
			if err := w.WriteValue(cur); err != nil {
				return err
			}
		}
		return w.End()
	case *value.Map:
		w.BeginMap(v.Len())
		for _, e := range v.Entries() {
			w.WriteString(e.Key)
			if err := w.WriteValue(e.Value); err != nil {
				return err
			}
		}
		return w.End()
	default:
		err := fmt.Errorf("%w: %T is not canonical", ErrIllegalValue, x)
		w.fail(err)
		return err
	}
	return nil
}

// Bytes returns the encoded output. It fails if an error occurred while
// writing or if lists are left open.
func (w *Writer) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if len(w.open) != 0 {
		return nil, fmt.Errorf("%w: %d levels left open", ErrUnbalanced, len(w.open))
	}
	return w.buf.ToBytes(), nil
}

func (w *Writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}
