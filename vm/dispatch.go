package vm

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/0xsoniclabs/contractsim/common"
)

var bigIntPtrType = reflect.TypeFor[*big.Int]()

// callRequest describes a method invocation on a contract.
type callRequest struct {
	from     *Account
	value    *big.Int
	transfer bool // move value from caller to callee before invoking
	readOnly bool
	target   common.Address
	method   string
	params   []any
	fallback bool // invoked by a plain value transfer
}

// handleCall resolves, checks and runs a method in a new call frame. The
// frame's effects are kept only if the method succeeds.
func (e *Engine) handleCall(req callRequest) (any, error) {
	if req.value.Sign() < 0 {
		return nil, argumentError(ErrInvalidParameter, "negative value %v", req.value)
	}
	score, found := e.state.GetContract(req.target)
	if !found {
		return nil, argumentError(ErrContractNotFound, "%v", req.target)
	}
	method, found := score.class.Method(req.method)
	if !found {
		return nil, argumentError(ErrMethodNotFound, "score=%v method=%q", req.target, req.method)
	}
	if !req.fallback && !method.Flags.Has(External) {
		return nil, argumentError(ErrNotExternal, "%s.%s", score.class.name, method.Name)
	}
	readOnly := req.readOnly || e.isReadOnly()
	if readOnly && !method.Flags.Has(ReadOnly) {
		return nil, argumentError(ErrPermissionDenied, "%s.%s is not read-only", score.class.name, method.Name)
	}
	payable := req.value.Sign() > 0
	if payable && !method.Flags.Has(Payable) {
		return nil, argumentError(ErrNotPayable, "%s.%s", score.class.name, method.Name)
	}
	if err := checkArity(method.Name, method.Params, method.required, len(req.params)); err != nil {
		return nil, err
	}

	e.pushFrame(req.from, score.account, readOnly || method.Flags.Has(ReadOnly), req.method, req.value)
	defer e.popFrame()

	if payable && req.transfer {
		if req.from == nil {
			return nil, argumentError(ErrInvalidParameter, "value transfer without sender")
		}
		if err := e.moveBalance(req.from.address, score.account.address, req.value); err != nil {
			return nil, err
		}
	}
	args, err := e.convertArguments(method.Params, req.params)
	if err != nil {
		return nil, err
	}
	result, err := e.invoke(score, method.Run, args)
	if err != nil {
		e.logger.Debug("Call failed", "score", req.target, "method", req.method, "err", err)
		return nil, err
	}
	result, err = e.converter.Normalize(result)
	if err != nil {
		return nil, &RevertedError{Message: fmt.Sprintf("invalid result of %s: %v", req.method, err), Cause: err}
	}
	e.applyFrame()
	return result, nil
}

// deploy runs the constructor of class in a new frame and registers the
// resulting contract. A previous contract is replaced if owner owns it.
func (e *Engine) deploy(owner *Account, previous *Score, class *Class, params []any) (*Score, error) {
	var account *Account
	if previous == nil {
		account = e.CreateScoreAccount()
	} else {
		if previous.owner != owner {
			return nil, argumentError(ErrNoPermissionToUpdate, "%v is not the owner of %v", owner, previous.Address())
		}
		account = previous.account
	}
	ctor := class.constructor
	if err := checkArity(ConstructorName, ctor.Params, ctor.required, len(params)); err != nil {
		return nil, err
	}

	e.pushFrame(owner, account, false, ConstructorName, new(big.Int))
	defer e.popFrame()

	score := &Score{account: account, owner: owner, class: class}
	e.state.SetContract(account.address, score)
	args, err := e.convertArguments(ctor.Params, params)
	if err != nil {
		return nil, err
	}
	instance, err := e.invoke(nil, func(_ any, ctx Context, args []any) (any, error) {
		return ctor.Run(ctx, args)
	}, args)
	if err != nil {
		e.logger.Debug("Deployment failed", "class", class.name, "err", err)
		return nil, err
	}
	score.instance = instance
	e.applyFrame()
	e.logger.Debug("Deployed contract", "address", account.address, "class", class.name, "owner", owner)
	return score, nil
}

// handleTransfer moves value between accounts and runs the fallback of a
// receiving contract. All effects are dropped if any step fails.
func (e *Engine) handleTransfer(from *Account, to common.Address, value *big.Int) error {
	if from == nil {
		return argumentError(ErrInvalidParameter, "transfer without sender")
	}
	if value.Sign() < 0 {
		return argumentError(ErrInvalidParameter, "negative value %v", value)
	}
	e.GetAccount(to)

	e.state.Push()
	defer e.state.Pop()
	if err := e.moveBalance(from.address, to, value); err != nil {
		return err
	}
	if to.IsContract() {
		_, err := e.handleCall(callRequest{
			from:     from,
			value:    value,
			target:   to,
			method:   FallbackName,
			fallback: true,
		})
		if err != nil {
			return err
		}
	}
	e.state.Apply()
	e.state.Push()
	e.logger.Debug("Transferred", "from", from, "to", to, "value", value)
	return nil
}

// invoke runs contract code and maps its failures, including panics, onto
// reverts.
func (e *Engine) invoke(score *Score, run Handler, args []any) (res any, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, &RevertedError{Message: fmt.Sprintf("panic: %v", r)}
		}
	}()
	var self any
	if score != nil {
		self = score.instance
	}
	res, err = run(self, &callContext{engine: e}, args)
	if err != nil {
		return nil, toRevert(err)
	}
	return res, nil
}

func checkArity(name string, params []Param, required, got int) error {
	if got < required {
		return argumentError(ErrNotEnoughParameters, "%s needs %d, got %d", name, required, got)
	}
	if got > len(params) {
		return argumentError(ErrTooManyParameters, "%s takes %d, got %d", name, len(params), got)
	}
	return nil
}

// convertArguments converts the given arguments to the declared parameter
// types. Omitted optional parameters receive their zero value; integers
// held as *big.Int default to zero.
func (e *Engine) convertArguments(params []Param, args []any) ([]any, error) {
	res := make([]any, len(params))
	for i, p := range params {
		if i >= len(args) {
			res[i] = defaultValue(p.Type)
			continue
		}
		norm, err := e.converter.Normalize(args[i])
		if err == nil && norm == nil && !nilable(p.Type) {
			err = fmt.Errorf("null value for %v", p.Type)
		}
		if err == nil {
			res[i], err = e.converter.Specialize(norm, p.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w: parameter %q: %w", ErrIllegalArgument, ErrInvalidParameter, p.Name, err)
		}
	}
	return res, nil
}

// nilable reports whether absent values may be passed for parameters of
// type t.
func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	}
	return false
}

func defaultValue(t reflect.Type) any {
	if t == bigIntPtrType {
		return new(big.Int)
	}
	return reflect.Zero(t).Interface()
}
