// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package sim is the driver side of the contract simulator. Tests create
// funded accounts, deploy contracts and invoke them through a Simulator,
// then inspect results, storage, balances and emitted events.
package sim

import (
	"fmt"
	"math/big"

	"github.com/0xsoniclabs/contractsim/common"
	"github.com/0xsoniclabs/contractsim/vm"
	"github.com/shopspring/decimal"
)

const (
	ErrInvalidAmount = common.ConstError("invalid amount")
)

// loopDecimals is the number of decimals of one ICX.
const loopDecimals = 18

// ICX converts an amount given in ICX, e.g. "1.5", into loop.
func ICX(amount string) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAmount, err)
	}
	d = d.Shift(loopDecimals)
	if d.Sign() < 0 || !d.IsInteger() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	return d.BigInt(), nil
}

// MustICX is like ICX but panics on invalid amounts.
func MustICX(amount string) *big.Int {
	res, err := ICX(amount)
	if err != nil {
		panic(err)
	}
	return res
}

// Parameters configure a Simulator.
type Parameters struct {
	vm.Parameters
	// TreasuryBalance is minted to the treasury account, which funds the
	// accounts created by CreateFundedAccounts.
	TreasuryBalance *big.Int
}

func DefaultParameters() Parameters {
	return Parameters{
		Parameters:      vm.DefaultParameters(),
		TreasuryBalance: MustICX("1000000000"),
	}
}

// Simulator wraps an engine with driver conveniences.
type Simulator struct {
	*vm.Engine
	treasury *vm.Account
}

func New(params Parameters) (*Simulator, error) {
	engine := vm.NewEngine(params.Parameters)
	treasury := engine.CreateAccount()
	if params.TreasuryBalance != nil {
		if err := treasury.AddBalance(params.TreasuryBalance); err != nil {
			return nil, err
		}
	}
	return &Simulator{Engine: engine, treasury: treasury}, nil
}

// Treasury returns the account funding new accounts.
func (s *Simulator) Treasury() *vm.Account {
	return s.treasury
}

// CreateFundedAccounts creates n accounts each receiving amount from the
// treasury.
func (s *Simulator) CreateFundedAccounts(n int, amount *big.Int) ([]*vm.Account, error) {
	res := make([]*vm.Account, 0, n)
	for range n {
		account := s.CreateAccount()
		if err := s.Transfer(s.treasury, account.Address(), amount); err != nil {
			return nil, err
		}
		res = append(res, account)
	}
	return res, nil
}

// Deploy deploys a contract and returns a handle for invoking it.
func (s *Simulator) Deploy(owner *vm.Account, class *vm.Class, params ...any) (*Score, error) {
	score, err := s.Engine.Deploy(owner, class, params...)
	if err != nil {
		return nil, err
	}
	return &Score{Score: score, sim: s}, nil
}

// Tx describes a top-level transaction. An empty method transfers value.
type Tx struct {
	From   *vm.Account
	Value  *big.Int
	To     common.Address
	Method string
	Params []any
}

// ExecuteBlock runs the given transactions in a single new block. Failing
// transactions do not affect the others; their failure is reported in
// their receipt. Transactions without sender are rejected without being
// executed.
func (s *Simulator) ExecuteBlock(txs ...Tx) ([]Receipt, error) {
	res := make([]Receipt, 0, len(txs))
	err := s.Batch(func() error {
		index := 0
		for _, tx := range txs {
			receipt := Receipt{}
			if tx.From == nil {
				receipt.Err = fmt.Errorf("%w: transaction without sender", vm.ErrInvalidParameter)
				res = append(res, receipt)
				continue
			}
			receipt.Transaction = vm.Transaction{Block: s.Block(), Index: index}
			index++
			var (
				out any
				err error
			)
			if tx.Method == "" {
				err = s.Transfer(tx.From, tx.To, tx.Value)
			} else {
				out, err = s.Invoke(tx.From, tx.Value, tx.To, tx.Method, tx.Params...)
			}
			receipt.Output, receipt.Err = out, err
			if err == nil {
				receipt.Events = s.LastEvents()
			}
			res = append(res, receipt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
