// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

import (
	"fmt"
	"math/big"

	"github.com/0xsoniclabs/contractsim/common"
	"github.com/0xsoniclabs/contractsim/database/layered"
)

const (
	ErrOutOfBalance   = common.ConstError("out of balance")
	ErrNegativeAmount = common.ConstError("negative amount")
)

// WorldState bundles the key spaces of a simulation: contract storage,
// account balances and the registry of deployed contracts of type S. All
// three are layered and always pushed, committed and popped together, so a
// snapshot covers the complete state.
type WorldState[S any] struct {
	storage   *layered.Store[string, []byte]
	balances  *layered.Store[common.Address, *big.Int]
	contracts *layered.Store[common.Address, S]
}

func NewWorldState[S any]() *WorldState[S] {
	return &WorldState[S]{
		storage:   layered.NewStore[string, []byte](),
		balances:  layered.NewStore[common.Address, *big.Int](),
		contracts: layered.NewStore[common.Address, S](),
	}
}

// Push takes a snapshot of the current state.
func (s *WorldState[S]) Push() {
	s.storage.Push()
	s.balances.Push()
	s.contracts.Push()
}

// Apply folds the modifications since the last snapshot into the state
// below it.
func (s *WorldState[S]) Apply() {
	s.storage.Commit()
	s.balances.Commit()
	s.contracts.Commit()
}

// Pop discards the modifications since the last snapshot.
func (s *WorldState[S]) Pop() {
	s.storage.Pop()
	s.balances.Pop()
	s.contracts.Pop()
}

// Depth returns the number of open snapshots.
func (s *WorldState[S]) Depth() int {
	return s.storage.Depth()
}

func storageKey(addr common.Address, key string) string {
	return addr.String() + key
}

// GetValue returns the stored bytes or nil if the key is absent.
func (s *WorldState[S]) GetValue(addr common.Address, key string) []byte {
	value, _ := s.storage.Get(storageKey(addr, key))
	return value
}

// SetValue stores a value; nil or empty values remove the key.
func (s *WorldState[S]) SetValue(addr common.Address, key string, value []byte) {
	if len(value) == 0 {
		s.storage.Delete(storageKey(addr, key))
		return
	}
	s.storage.Set(storageKey(addr, key), append([]byte(nil), value...))
}

// GetBalance returns a copy of the balance of the given account.
func (s *WorldState[S]) GetBalance(addr common.Address) *big.Int {
	if balance, found := s.balances.Get(addr); found {
		return new(big.Int).Set(balance)
	}
	return new(big.Int)
}

func (s *WorldState[S]) AddBalance(addr common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeAmount, amount)
	}
	s.balances.Set(addr, new(big.Int).Add(s.GetBalance(addr), amount))
	return nil
}

func (s *WorldState[S]) SubtractBalance(addr common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeAmount, amount)
	}
	balance := s.GetBalance(addr)
	if balance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: %v has %v, needs %v", ErrOutOfBalance, addr, balance, amount)
	}
	s.balances.Set(addr, balance.Sub(balance, amount))
	return nil
}

// GetContract returns the contract deployed at the given address.
func (s *WorldState[S]) GetContract(addr common.Address) (S, bool) {
	return s.contracts.Get(addr)
}

func (s *WorldState[S]) SetContract(addr common.Address, contract S) {
	s.contracts.Set(addr, contract)
}
