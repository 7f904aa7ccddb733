package vm

import (
	"fmt"
	"math/big"

	"github.com/0xsoniclabs/contractsim/codec"
	"github.com/0xsoniclabs/contractsim/common"
	"github.com/0xsoniclabs/contractsim/event"
	"github.com/0xsoniclabs/contractsim/value"
)

const ErrRequirementFailed = common.ConstError("requirement failed")

// Context is the view of the engine offered to running contract code. All
// accessors refer to the innermost call frame.
type Context interface {
	// Address returns the address of the running contract.
	Address() common.Address
	// Caller returns the address of the account or contract invoking the
	// running method; it is nil for read-only queries.
	Caller() *common.Address
	// Origin returns the account that started the current call chain.
	Origin() *common.Address
	// Owner returns the owner of the running contract.
	Owner() common.Address
	// Value returns the amount transferred with the current call.
	Value() *big.Int
	IsReadOnly() bool

	BlockHeight() int64
	BlockTimestamp() int64
	TransactionHash() []byte
	TransactionIndex() int
	TransactionTimestamp() int64
	TransactionNonce() *big.Int

	Balance(addr common.Address) *big.Int

	GetValue(key string) []byte
	SetValue(key string, value []byte) error
	Converter() *value.Converter

	// Emit records an event of the running contract.
	Emit(indexed []any, data []any) error
	// Call invokes a method of another contract or, if target is not a
	// contract, transfers value to it.
	Call(value *big.Int, target common.Address, method string, params ...any) (any, error)
	// Transfer sends value to target, running its fallback if it is a
	// contract.
	Transfer(target common.Address, value *big.Int) error
	// Revert creates the error reverting the current call with a code.
	Revert(code int, msg string) error
	// Require returns an error reverting the current call unless cond holds.
	Require(cond bool, msg string) error
	Println(msg string)

	Hash(alg string, msg []byte) ([]byte, error)
	VerifySignature(alg string, msg, sig, pubKey []byte) (bool, error)
	RecoverKey(alg string, msg, sig []byte, compressed bool) ([]byte, error)
	Aggregate(typ string, prev, values []byte) ([]byte, error)
	AddressFromKey(pubKey []byte) (common.Address, error)

	NewWriter(variant string) (*codec.Writer, error)
	NewReader(variant string, data []byte) (*codec.Reader, error)
}

var _ Context = &callContext{}

type callContext struct {
	engine *Engine
}

func (c *callContext) frame() *Frame {
	return c.engine.currentFrame()
}

func (c *callContext) Address() common.Address {
	return c.frame().To.address
}

func (c *callContext) Caller() *common.Address {
	return addressOf(c.frame().From)
}

func (c *callContext) Origin() *common.Address {
	return addressOf(c.engine.frames[0].From)
}

func addressOf(a *Account) *common.Address {
	if a == nil {
		return nil
	}
	addr := a.address
	return &addr
}

func (c *callContext) Owner() common.Address {
	score, found := c.engine.state.GetContract(c.Address())
	if !found {
		return common.Address{}
	}
	return score.owner.address
}

func (c *callContext) Value() *big.Int {
	return new(big.Int).Set(c.frame().Value)
}

func (c *callContext) IsReadOnly() bool {
	return c.engine.isReadOnly()
}

func (c *callContext) BlockHeight() int64 {
	return c.engine.block.Height
}

func (c *callContext) BlockTimestamp() int64 {
	return c.engine.block.Timestamp
}

func (c *callContext) TransactionHash() []byte {
	if tx, found := c.engine.Transaction(); found {
		return tx.Hash()
	}
	return nil
}

func (c *callContext) TransactionIndex() int {
	if tx, found := c.engine.Transaction(); found {
		return tx.Index
	}
	return 0
}

func (c *callContext) TransactionTimestamp() int64 {
	if tx, found := c.engine.Transaction(); found {
		return tx.Timestamp()
	}
	return c.engine.block.Timestamp
}

func (c *callContext) TransactionNonce() *big.Int {
	return new(big.Int)
}

func (c *callContext) Balance(addr common.Address) *big.Int {
	return c.engine.state.GetBalance(addr)
}

func (c *callContext) GetValue(key string) []byte {
	return c.engine.GetValue(c.Address(), key)
}

func (c *callContext) SetValue(key string, value []byte) error {
	return c.engine.SetValue(c.Address(), key, value)
}

func (c *callContext) Converter() *value.Converter {
	return c.engine.converter
}

func (c *callContext) Emit(indexed []any, data []any) error {
	e := c.engine
	if e.isReadOnly() || e.events == nil {
		return stateError(ErrReadOnly, "events can not be emitted")
	}
	addr := c.Address()
	ev, err := event.New(&addr, indexed, data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIllegalArgument, err)
	}
	e.events.Add(ev)
	return nil
}

func (c *callContext) Call(amount *big.Int, target common.Address, method string, params ...any) (any, error) {
	amount = orZero(amount)
	self := c.frame().To
	if !target.IsContract() {
		return nil, c.engine.handleTransfer(self, target, amount)
	}
	if (method == "" || method == FallbackName) && amount.Sign() > 0 {
		return nil, c.engine.handleTransfer(self, target, amount)
	}
	return c.engine.handleCall(callRequest{
		from:     self,
		value:    amount,
		transfer: true,
		target:   target,
		method:   method,
		params:   params,
	})
}

func (c *callContext) Transfer(target common.Address, amount *big.Int) error {
	return c.engine.handleTransfer(c.frame().To, target, orZero(amount))
}

func (c *callContext) Revert(code int, msg string) error {
	return &ManualRevertError{Code: code, Message: msg}
}

func (c *callContext) Require(cond bool, msg string) error {
	if cond {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrRequirementFailed, msg)
}

func (c *callContext) Println(msg string) {
	c.engine.logger.Info(msg, "contract", c.Address())
}

func (c *callContext) Hash(alg string, msg []byte) ([]byte, error) {
	return c.engine.crypto.Hash(alg, msg)
}

func (c *callContext) VerifySignature(alg string, msg, sig, pubKey []byte) (bool, error) {
	return c.engine.crypto.VerifySignature(alg, msg, sig, pubKey)
}

func (c *callContext) RecoverKey(alg string, msg, sig []byte, compressed bool) ([]byte, error) {
	return c.engine.crypto.RecoverKey(alg, msg, sig, compressed)
}

func (c *callContext) Aggregate(typ string, prev, values []byte) ([]byte, error) {
	return c.engine.crypto.Aggregate(typ, prev, values)
}

func (c *callContext) AddressFromKey(pubKey []byte) (common.Address, error) {
	return c.engine.crypto.AddressFromKey(pubKey)
}

func (c *callContext) NewWriter(name string) (*codec.Writer, error) {
	variant, err := codec.ParseVariant(name)
	if err != nil {
		return nil, err
	}
	return codec.NewWriter(variant), nil
}

func (c *callContext) NewReader(name string, data []byte) (*codec.Reader, error) {
	variant, err := codec.ParseVariant(name)
	if err != nil {
		return nil, err
	}
	return codec.NewReader(variant, data), nil
}
