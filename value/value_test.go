package value

import (
	"math/big"
	"testing"

	"github.com/0xsoniclabs/contractsim/common"
	"github.com/stretchr/testify/require"
)

func TestMap_KeepsInsertionOrder(t *testing.T) {
	require := require.New(t)
	m := NewMap(Entry{Key: "b", Value: "1"}, Entry{Key: "a", Value: "2"})
	m.Set("c", "3")
	m.Set("b", "4")

	require.Equal(3, m.Len())
	require.Equal([]string{"b", "a", "c"}, m.Keys())
	value, found := m.Get("b")
	require.True(found)
	require.Equal("4", value)
	_, found = m.Get("x")
	require.False(found)
}

func TestIsCanonical_AcceptsOnlyCanonicalValues(t *testing.T) {
	require := require.New(t)
	for _, x := range []any{
		nil, true, big.NewInt(1), []byte{1}, "a", common.Address{},
		[]any{big.NewInt(1), nil, []any{"x"}},
		NewMap(Entry{Key: "k", Value: false}),
	} {
		require.True(IsCanonical(x), "%v", x)
	}
	for _, x := range []any{
		1, int64(1), uint8(1), (*big.Int)(nil), []int{1}, []any{1},
		NewMap(Entry{Key: "k", Value: 1}), struct{}{},
	} {
		require.False(IsCanonical(x), "%v", x)
	}
}

func TestEqual_ComparesByValue(t *testing.T) {
	require := require.New(t)
	require.True(Equal(nil, nil))
	require.True(Equal(big.NewInt(5), big.NewInt(5)))
	require.True(Equal([]byte{1, 2}, []byte{1, 2}))
	require.True(Equal(
		[]any{"a", big.NewInt(1)},
		[]any{"a", big.NewInt(1)},
	))
	require.True(Equal(
		NewMap(Entry{Key: "a", Value: true}, Entry{Key: "b", Value: "x"}),
		NewMap(Entry{Key: "b", Value: "x"}, Entry{Key: "a", Value: true}),
	))

	require.False(Equal(nil, false))
	require.False(Equal(big.NewInt(1), []byte{1}))
	require.False(Equal([]any{"a"}, []any{"a", "b"}))
	require.False(Equal(
		NewMap(Entry{Key: "a", Value: true}),
		NewMap(Entry{Key: "a", Value: false}),
	))
}
