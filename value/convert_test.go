package value

import (
	"math"
	"math/big"
	"reflect"
	"testing"

	"github.com/0xsoniclabs/contractsim/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

type color int

func TestNormalize_WidensHostValues(t *testing.T) {
	addr := common.NewSequenceAddress(true, 1)
	tests := map[string]struct {
		input any
		want  any
	}{
		"nil":           {nil, nil},
		"bool":          {true, true},
		"int":           {-5, big.NewInt(-5)},
		"int8":          {int8(-128), big.NewInt(-128)},
		"uint64":        {uint64(math.MaxUint64), new(big.Int).SetUint64(math.MaxUint64)},
		"named int":     {color(3), big.NewInt(3)},
		"uint256":       {uint256.NewInt(7), big.NewInt(7)},
		"string":        {"abc", "abc"},
		"bytes":         {[]byte{1, 2}, []byte{1, 2}},
		"byte array":    {[3]byte{1, 2, 3}, []byte{1, 2, 3}},
		"address":       {addr, addr},
		"address ptr":   {&addr, addr},
		"nil pointer":   {(*big.Int)(nil), nil},
		"nil slice":     {[]int(nil), nil},
		"int slice":     {[]int{1, 2}, []any{big.NewInt(1), big.NewInt(2)}},
		"nested slices": {[][]string{{"a"}, {}}, []any{[]any{"a"}, []any{}}},
		"any list":      {[]any{int16(1), "x"}, []any{big.NewInt(1), "x"}},
		"map": {
			map[string]int{"b": 2, "a": 1},
			NewMap(Entry{Key: "a", Value: big.NewInt(1)}, Entry{Key: "b", Value: big.NewInt(2)}),
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Normalize(test.input)
			require.NoError(t, err)
			require.True(t, Equal(test.want, got), "want %v, got %v", test.want, got)
			require.True(t, IsCanonical(got))
		})
	}
}

func TestNormalize_SortsMapKeys(t *testing.T) {
	got, err := Normalize(map[string]bool{"z": true, "m": false, "a": true})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "m", "z"}, got.(*Map).Keys())
}

func TestNormalize_CopiesByteSequences(t *testing.T) {
	input := []byte{1, 2, 3}
	got, err := Normalize(input)
	require.NoError(t, err)
	input[0] = 9
	require.Equal(t, []byte{1, 2, 3}, got)
}

func TestNormalize_RejectsUnregisteredStructs(t *testing.T) {
	type point struct{ X, Y int }
	_, err := Normalize(point{})
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, err = Normalize(map[int]string{1: "a"})
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSpecialize_NarrowsIntegersWithRangeChecks(t *testing.T) {
	require := require.New(t)

	got, err := Specialize(big.NewInt(127), reflect.TypeFor[int8]())
	require.NoError(err)
	require.Equal(int8(127), got)

	_, err = Specialize(big.NewInt(128), reflect.TypeFor[int8]())
	require.ErrorIs(err, ErrOutOfRange)

	_, err = Specialize(big.NewInt(-1), reflect.TypeFor[uint32]())
	require.ErrorIs(err, ErrOutOfRange)

	huge := new(big.Int).Lsh(big.NewInt(1), 64)
	_, err = Specialize(huge, reflect.TypeFor[int64]())
	require.ErrorIs(err, ErrOutOfRange)

	got, err = Specialize(huge, reflect.TypeFor[*big.Int]())
	require.NoError(err)
	require.Equal(0, huge.Cmp(got.(*big.Int)))

	got, err = Specialize(big.NewInt(3), reflect.TypeFor[color]())
	require.NoError(err)
	require.Equal(color(3), got)
}

func TestSpecialize_NarrowsToUint256(t *testing.T) {
	require := require.New(t)

	got, err := Specialize(big.NewInt(42), reflect.TypeFor[*uint256.Int]())
	require.NoError(err)
	require.Equal(uint256.NewInt(42), got)

	got, err = Specialize(big.NewInt(42), reflect.TypeFor[uint256.Int]())
	require.NoError(err)
	require.Equal(*uint256.NewInt(42), got)

	_, err = Specialize(big.NewInt(-1), reflect.TypeFor[*uint256.Int]())
	require.ErrorIs(err, ErrOutOfRange)

	tooLarge := new(big.Int).Lsh(big.NewInt(1), 256)
	_, err = Specialize(tooLarge, reflect.TypeFor[*uint256.Int]())
	require.ErrorIs(err, ErrOutOfRange)
}

func TestSpecialize_ChecksArityOfFixedSizeArrays(t *testing.T) {
	require := require.New(t)

	got, err := Specialize([]any{big.NewInt(1), big.NewInt(2)}, reflect.TypeFor[[2]int]())
	require.NoError(err)
	require.Equal([2]int{1, 2}, got)

	_, err = Specialize([]any{big.NewInt(1)}, reflect.TypeFor[[2]int]())
	require.ErrorIs(err, ErrArityMismatch)

	got, err = Specialize([]byte{1, 2, 3}, reflect.TypeFor[[3]byte]())
	require.NoError(err)
	require.Equal([3]byte{1, 2, 3}, got)

	_, err = Specialize([]byte{1, 2}, reflect.TypeFor[[3]byte]())
	require.ErrorIs(err, ErrArityMismatch)
}

func TestSpecialize_ConvertsContainers(t *testing.T) {
	require := require.New(t)

	got, err := Specialize([]any{[]any{"a"}, nil}, reflect.TypeFor[[][]string]())
	require.NoError(err)
	require.Equal([][]string{{"a"}, nil}, got)

	m := NewMap(Entry{Key: "x", Value: big.NewInt(1)})
	got, err = Specialize(m, reflect.TypeFor[map[string]uint16]())
	require.NoError(err)
	require.Equal(map[string]uint16{"x": 1}, got)

	got, err = Specialize(true, reflect.TypeFor[*bool]())
	require.NoError(err)
	require.True(*got.(*bool))

	got, err = Specialize("abc", reflect.TypeFor[any]())
	require.NoError(err)
	require.Equal("abc", got)
}

func TestSpecialize_AbsentBecomesZeroValue(t *testing.T) {
	require := require.New(t)

	got, err := Specialize(nil, reflect.TypeFor[int]())
	require.NoError(err)
	require.Equal(0, got)

	got, err = Specialize(nil, reflect.TypeFor[string]())
	require.NoError(err)
	require.Equal("", got)

	got, err = Specialize(nil, reflect.TypeFor[any]())
	require.NoError(err)
	require.Nil(got)
}

func TestSpecialize_RejectsMismatchingShapes(t *testing.T) {
	for name, test := range map[string]struct {
		input any
		typ   reflect.Type
	}{
		"string to int":   {"1", reflect.TypeFor[int]()},
		"int to bool":     {big.NewInt(1), reflect.TypeFor[bool]()},
		"bytes to string": {[]byte("a"), reflect.TypeFor[string]()},
		"list to bytes":   {[]any{}, reflect.TypeFor[[]byte]()},
		"string to addr":  {"hx00", reflect.TypeFor[common.Address]()},
		"list to map":     {[]any{}, reflect.TypeFor[map[string]int]()},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Specialize(test.input, test.typ)
			require.ErrorIs(t, err, ErrTypeMismatch)
		})
	}
}

func TestCast_NormalizesAndSpecializes(t *testing.T) {
	require := require.New(t)
	c := NewConverter()

	got, err := Cast[int16](c, uint8(200))
	require.NoError(err)
	require.Equal(int16(200), got)

	list, err := Cast[[]int64](c, []int{1, 2, 3})
	require.NoError(err)
	require.Equal([]int64{1, 2, 3}, list)

	ptr, err := Cast[*big.Int](c, nil)
	require.NoError(err)
	require.Nil(ptr)

	_, err = Cast[uint8](c, 256)
	require.ErrorIs(err, ErrOutOfRange)
}
