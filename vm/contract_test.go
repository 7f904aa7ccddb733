package vm

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/0xsoniclabs/contractsim/codec"
	"github.com/0xsoniclabs/contractsim/common"
	"github.com/stretchr/testify/require"
)

// store is a contract instance used throughout the tests. All of its state
// lives in contract storage.
type store struct{}

var storedEvent = &EventDecl{
	Name:    "Stored",
	Params:  []Param{ParamOf[common.Address]("by"), ParamOf[int64]("value")},
	Indexed: 1,
}

func storeInt(ctx Context, key string, v int64) error {
	data, err := codec.ToBytes(ctx.Converter(), v)
	if err != nil {
		return err
	}
	return ctx.SetValue(key, data)
}

func loadInt(ctx Context, key string) (int64, error) {
	return codec.Decode[int64](ctx.Converter(), ctx.GetValue(key))
}

func newStoreClass() *Class {
	return MustNewClass("Store",
		Constructor{
			Params: []Param{OptionalOf[int64]("initial")},
			Run: func(ctx Context, args []any) (any, error) {
				initial := args[0].(int64)
				if err := storeInt(ctx, "value", initial); err != nil {
					return nil, err
				}
				if initial < 0 {
					return nil, ctx.Revert(3, "negative initial value")
				}
				return &store{}, nil
			},
		},
		Method{
			Name:   "set",
			Flags:  External,
			Params: []Param{ParamOf[int64]("v")},
			Run: Bind(func(_ *store, ctx Context, args []any) (any, error) {
				v := args[0].(int64)
				if err := storeInt(ctx, "value", v); err != nil {
					return nil, err
				}
				return nil, storedEvent.Emit(ctx, ctx.Caller(), v)
			}),
		},
		Method{
			Name:  "get",
			Flags: External | ReadOnly,
			Run: Bind(func(_ *store, ctx Context, _ []any) (any, error) {
				return loadInt(ctx, "value")
			}),
		},
		Method{
			Name:  "deposit",
			Flags: External | Payable,
			Run: Bind(func(_ *store, ctx Context, _ []any) (any, error) {
				return ctx.Value(), nil
			}),
		},
		Method{
			Name:  "greet",
			Flags: External | ReadOnly,
			Params: []Param{
				ParamOf[string]("name"),
				OptionalOf[string]("greeting"),
				OptionalOf[*big.Int]("times"),
			},
			Run: Bind(func(_ *store, _ Context, args []any) (any, error) {
				return fmt.Sprintf("%s %s %v", args[1], args[0], args[2]), nil
			}),
		},
		Method{
			Name: "internal",
			Run: Bind(func(_ *store, _ Context, _ []any) (any, error) {
				return nil, nil
			}),
		},
		Method{
			Name:  "fail",
			Flags: External,
			Run: Bind(func(_ *store, ctx Context, _ []any) (any, error) {
				if err := storeInt(ctx, "value", 1); err != nil {
					return nil, err
				}
				return nil, errors.New("boom")
			}),
		},
		Method{
			Name:   "revert",
			Flags:  External,
			Params: []Param{ParamOf[int]("code")},
			Run: Bind(func(_ *store, ctx Context, args []any) (any, error) {
				if err := storeInt(ctx, "value", 99); err != nil {
					return nil, err
				}
				if err := storedEvent.Emit(ctx, ctx.Caller(), 99); err != nil {
					return nil, err
				}
				return nil, ctx.Revert(args[0].(int), "bad")
			}),
		},
		Method{
			Name:  "crash",
			Flags: External,
			Run: Bind(func(_ *store, _ Context, _ []any) (any, error) {
				var m map[string]int
				m["x"] = 1
				return nil, nil
			}),
		},
		Method{
			Name:  "tryWrite",
			Flags: External | ReadOnly,
			Run: Bind(func(_ *store, ctx Context, _ []any) (any, error) {
				return nil, storeInt(ctx, "value", 5)
			}),
		},
		Method{
			Name:   "relay",
			Flags:  External,
			Params: []Param{ParamOf[common.Address]("target"), ParamOf[string]("method"), ParamOf[[]any]("args")},
			Run: Bind(func(_ *store, ctx Context, args []any) (any, error) {
				return ctx.Call(nil, args[0].(common.Address), args[1].(string), args[2].([]any)...)
			}),
		},
		Method{
			Name:   "readOnlyRelay",
			Flags:  External | ReadOnly,
			Params: []Param{ParamOf[common.Address]("target"), ParamOf[string]("method"), ParamOf[[]any]("args")},
			Run: Bind(func(_ *store, ctx Context, args []any) (any, error) {
				return ctx.Call(nil, args[0].(common.Address), args[1].(string), args[2].([]any)...)
			}),
		},
		Method{
			Name:   "catch",
			Flags:  External,
			Params: []Param{ParamOf[common.Address]("target"), ParamOf[int]("code")},
			Run: Bind(func(_ *store, ctx Context, args []any) (any, error) {
				if err := storeInt(ctx, "value", 1); err != nil {
					return nil, err
				}
				_, err := ctx.Call(nil, args[0].(common.Address), "revert", args[1])
				var reverted *UserRevertedError
				if errors.As(err, &reverted) {
					return reverted.Code, nil
				}
				return nil, ctx.Require(err == nil, "revert expected")
			}),
		},
		Method{
			Name:   "pay",
			Flags:  External,
			Params: []Param{ParamOf[common.Address]("target"), ParamOf[*big.Int]("amount")},
			Run: Bind(func(_ *store, ctx Context, args []any) (any, error) {
				return nil, ctx.Transfer(args[0].(common.Address), args[1].(*big.Int))
			}),
		},
		Method{
			Name:  "whoami",
			Flags: External | ReadOnly,
			Run: Bind(func(_ *store, ctx Context, _ []any) (any, error) {
				return []any{ctx.Caller(), ctx.Origin(), ctx.Owner(), ctx.Address()}, nil
			}),
		},
		Method{
			Name:  "txInfo",
			Flags: External,
			Run: Bind(func(_ *store, ctx Context, _ []any) (any, error) {
				return []any{ctx.BlockHeight(), ctx.TransactionIndex(), ctx.TransactionHash(), ctx.TransactionTimestamp()}, nil
			}),
		},
		Method{
			Name:   "hash",
			Flags:  External | ReadOnly,
			Params: []Param{ParamOf[[]byte]("msg")},
			Run: Bind(func(_ *store, ctx Context, args []any) (any, error) {
				return ctx.Hash("sha3-256", args[0].([]byte))
			}),
		},
		Method{
			Name:  FallbackName,
			Flags: Payable,
			Run: Bind(func(_ *store, ctx Context, _ []any) (any, error) {
				received, err := loadInt(ctx, "received")
				if err != nil {
					return nil, err
				}
				return nil, storeInt(ctx, "received", received+ctx.Value().Int64())
			}),
		},
	)
}

// newPlainClass creates a class without fallback.
func newPlainClass() *Class {
	return MustNewClass("Plain",
		Constructor{Run: func(Context, []any) (any, error) { return &store{}, nil }},
		Method{
			Name:  "get",
			Flags: External | ReadOnly,
			Run: Bind(func(_ *store, ctx Context, _ []any) (any, error) {
				return loadInt(ctx, "value")
			}),
		},
	)
}

func requireInt(t *testing.T, want int64, got any) {
	t.Helper()
	n, ok := got.(*big.Int)
	require.True(t, ok, "expected integer, got %T", got)
	require.Equal(t, 0, big.NewInt(want).Cmp(n), "want %d, got %v", want, n)
}
