package value

import (
	"math/big"
	"reflect"
	"testing"

	"github.com/0xsoniclabs/contractsim/common"
	"github.com/stretchr/testify/require"
)

type person struct {
	name   string
	age    int
	wallet common.Address
}

type team struct {
	title   string
	members []person
}

func newTestConverter(t *testing.T, layout Layout) *Converter {
	c := NewConverter()
	require.NoError(t, Register(c, layout,
		FieldOf("name", func(p *person) string { return p.name }, func(p *person, v string) { p.name = v }),
		FieldOf("age", func(p *person) int { return p.age }, func(p *person, v int) { p.age = v }),
		FieldOf("wallet", func(p *person) common.Address { return p.wallet }, func(p *person, v common.Address) { p.wallet = v }),
	))
	require.NoError(t, Register(c, AsList,
		FieldOf("title", func(s *team) string { return s.title }, func(s *team, v string) { s.title = v }),
		FieldOf("members", func(s *team) []person { return s.members }, func(s *team, v []person) { s.members = v }),
	))
	return c
}

func TestRegister_ListLayoutKeepsDeclarationOrder(t *testing.T) {
	require := require.New(t)
	c := newTestConverter(t, AsList)
	wallet := common.NewSequenceAddress(false, 1)

	got, err := c.Normalize(person{name: "bob", age: 42, wallet: wallet})
	require.NoError(err)
	require.True(Equal([]any{"bob", big.NewInt(42), wallet}, got))

	back, err := c.Specialize(got, reflect.TypeFor[person]())
	require.NoError(err)
	require.Equal(person{name: "bob", age: 42, wallet: wallet}, back)
}

func TestRegister_MapLayoutSortsFieldsByName(t *testing.T) {
	require := require.New(t)
	c := newTestConverter(t, AsMap)

	got, err := c.Normalize(&person{name: "alice", age: 7})
	require.NoError(err)
	require.Equal([]string{"age", "name", "wallet"}, got.(*Map).Keys())

	back, err := Cast[*person](c, got)
	require.NoError(err)
	require.Equal(&person{name: "alice", age: 7}, back)
}

func TestRegister_NestedStructsRoundTrip(t *testing.T) {
	require := require.New(t)
	c := newTestConverter(t, AsList)
	input := team{title: "core", members: []person{{name: "a", age: 1}, {name: "b", age: 2}}}

	norm, err := c.Normalize(input)
	require.NoError(err)
	back, err := Cast[team](c, norm)
	require.NoError(err)
	require.Equal(input, back)
}

func TestRegister_ListLayoutChecksArity(t *testing.T) {
	c := newTestConverter(t, AsList)
	_, err := c.Specialize([]any{"bob"}, reflect.TypeFor[person]())
	require.ErrorIs(t, err, ErrArityMismatch)
}

func TestRegister_RejectsInvalidRegistrations(t *testing.T) {
	require := require.New(t)
	c := newTestConverter(t, AsList)

	err := Register(c, AsList, FieldOf("name", func(p *person) string { return "" }, func(*person, string) {}))
	require.ErrorIs(err, ErrInvalidRegistration)

	err = Register[int](c, AsList)
	require.ErrorIs(err, ErrInvalidRegistration)

	type pair struct{ a, b int }
	err = Register(c, AsList,
		FieldOf("a", func(p *pair) int { return p.a }, func(p *pair, v int) { p.a = v }),
		FieldOf("a", func(p *pair) int { return p.b }, func(p *pair, v int) { p.b = v }),
	)
	require.ErrorIs(err, ErrInvalidRegistration)

	err = Register(c, AsList, Field[pair]{Name: "a"})
	require.ErrorIs(err, ErrInvalidRegistration)
}

func TestTypeFor_DescribesRegisteredStructs(t *testing.T) {
	require := require.New(t)
	c := newTestConverter(t, AsMap)

	typ, err := c.TypeFor(reflect.TypeFor[person]())
	require.NoError(err)
	require.Equal(KindMap, typ.Kind)
	age, found := typ.Field("age")
	require.True(found)
	require.Equal(KindInt, age.Kind)

	typ, err = c.TypeFor(reflect.TypeFor[team]())
	require.NoError(err)
	require.Equal(KindList, typ.Kind)
	require.Len(typ.Elems, 2)
	require.Equal(KindList, typ.Elems[1].Kind)
	require.Equal(KindMap, typ.Elems[1].Elem.Kind)

	_, err = c.TypeFor(reflect.TypeFor[any]())
	require.ErrorIs(err, ErrUnsupportedType)
}
