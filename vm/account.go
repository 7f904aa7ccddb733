package vm

import (
	"math/big"

	"github.com/0xsoniclabs/contractsim/common"
)

// Account is a participant of the simulation identified by its address.
// For each address at most one Account exists per engine.
type Account struct {
	address common.Address
	engine  *Engine
}

func (a *Account) Address() common.Address {
	return a.address
}

func (a *Account) IsContract() bool {
	return a.address.IsContract()
}

// Balance returns the current balance of the account.
func (a *Account) Balance() *big.Int {
	return a.engine.state.GetBalance(a.address)
}

// AddBalance credits the account. It fails within read-only calls.
func (a *Account) AddBalance(amount *big.Int) error {
	return a.engine.addBalance(a.address, amount)
}

// SubtractBalance debits the account. It fails within read-only calls and
// if the balance is insufficient.
func (a *Account) SubtractBalance(amount *big.Int) error {
	return a.engine.subtractBalance(a.address, amount)
}

func (a *Account) String() string {
	return a.address.String()
}

// Score is a deployed contract: the account holding it, its owner, its
// class and the instance the class' handlers operate on.
type Score struct {
	account  *Account
	owner    *Account
	class    *Class
	instance any
}

func (s *Score) Address() common.Address {
	return s.account.address
}

func (s *Score) Account() *Account {
	return s.account
}

func (s *Score) Owner() *Account {
	return s.owner
}

func (s *Score) Class() *Class {
	return s.class
}

// Instance returns the contract object created by the constructor.
func (s *Score) Instance() any {
	return s.instance
}
