package codec

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/0xsoniclabs/contractsim/common"
	"github.com/0xsoniclabs/contractsim/value"
	"github.com/stretchr/testify/require"
)

func encodeHex(t *testing.T, variant Variant, write func(w *Writer)) string {
	t.Helper()
	w := NewWriter(variant)
	write(w)
	data, err := w.Bytes()
	require.NoError(t, err)
	return hex.EncodeToString(data)
}

func TestWriter_EncodesScalars(t *testing.T) {
	for _, variant := range []Variant{RLP, RLPn} {
		t.Run(string(variant), func(t *testing.T) {
			require := require.New(t)
			require.Equal("00", encodeHex(t, variant, func(w *Writer) { w.WriteInt64(0) }))
			require.Equal("7f", encodeHex(t, variant, func(w *Writer) { w.WriteInt64(127) }))
			require.Equal("820080", encodeHex(t, variant, func(w *Writer) { w.WriteInt64(128) }))
			require.Equal("81ff", encodeHex(t, variant, func(w *Writer) { w.WriteInt64(-1) }))
			require.Equal("01", encodeHex(t, variant, func(w *Writer) { w.WriteBool(true) }))
			require.Equal("00", encodeHex(t, variant, func(w *Writer) { w.WriteBool(false) }))
			require.Equal("83616263", encodeHex(t, variant, func(w *Writer) { w.WriteString("abc") }))
			require.Equal("820102", encodeHex(t, variant, func(w *Writer) { w.WriteBytes([]byte{1, 2}) }))
		})
	}
}

func TestWriter_EncodesAddressAs21ByteString(t *testing.T) {
	want := "95" + strings.Repeat("00", 21)
	for _, variant := range []Variant{RLP, RLPn} {
		got := encodeHex(t, variant, func(w *Writer) { w.WriteAddress(common.Address{}) })
		require.Equal(t, want, got, "variant %s", variant)
	}
}

func TestWriter_VariantsDifferInNullTag(t *testing.T) {
	require.Equal(t, "b800", encodeHex(t, RLP, func(w *Writer) { w.WriteNull() }))
	require.Equal(t, "f800", encodeHex(t, RLPn, func(w *Writer) { w.WriteNull() }))
	require.Equal(t, "f800", encodeHex(t, RLPn, func(w *Writer) { w.WriteBigInt(nil) }))
	require.Equal(t, "", encodeHex(t, RLPn, func(w *Writer) { w.WriteNullity(false) }))
}

func TestWriter_EncodesNestedLists(t *testing.T) {
	got := encodeHex(t, RLPn, func(w *Writer) {
		w.BeginList(3)
		w.WriteInt64(1)
		w.WriteString("a")
		w.BeginList(0)
		require.Equal(t, 2, w.Level())
		require.NoError(t, w.End())
		require.NoError(t, w.End())
	})
	require.Equal(t, "c30161c0", got)
}

func TestWriter_MapsUseListFraming(t *testing.T) {
	m := value.NewMap(value.Entry{Key: "a", Value: big.NewInt(1)})
	got := encodeHex(t, RLPn, func(w *Writer) {
		require.NoError(t, w.WriteValue(m))
	})
	require.Equal(t, "c26101", got)
}

func TestWriter_EndWithoutOpenLevelFails(t *testing.T) {
	require := require.New(t)
	w := NewWriter(RLPn)
	require.ErrorIs(w.End(), ErrUnbalanced)
	_, err := w.Bytes()
	require.ErrorIs(err, ErrUnbalanced)
}

func TestWriter_OpenLevelsBlockOutput(t *testing.T) {
	w := NewWriter(RLP)
	w.BeginList(1)
	w.WriteInt64(1)
	_, err := w.Bytes()
	require.ErrorIs(t, err, ErrUnbalanced)
}

func TestWriter_RejectsNonCanonicalValues(t *testing.T) {
	w := NewWriter(RLPn)
	require.ErrorIs(t, w.WriteValue(42), ErrIllegalValue)
	_, err := w.Bytes()
	require.ErrorIs(t, err, ErrIllegalValue)
}
