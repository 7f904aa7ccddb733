// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package vm

import (
	"fmt"
	"math/big"
	"time"

	"github.com/0xsoniclabs/contractsim/common"
	"github.com/0xsoniclabs/contractsim/crypto"
	"github.com/0xsoniclabs/contractsim/event"
	"github.com/0xsoniclabs/contractsim/state"
	"github.com/0xsoniclabs/contractsim/value"
	"github.com/ethereum/go-ethereum/log"
)

// firstSequence is the sequence number of the first generated address.
const firstSequence = 0x100

// Parameters configure an Engine.
type Parameters struct {
	// InitialHeight is the height of the block before the first transaction.
	InitialHeight int64
	// InitialTimestamp is the timestamp of the initial block in
	// micro-seconds; zero selects the current time.
	InitialTimestamp int64
	// BlockInterval is the time between two consecutive blocks.
	BlockInterval time.Duration
	// Logger receives the engine's diagnostics; nil selects the root logger.
	Logger log.Logger
	// Crypto provides the primitives offered to contracts; nil selects
	// the default provider.
	Crypto Crypto
	// Converter translates between host values and canonical values; nil
	// selects a converter without struct registrations.
	Converter *value.Converter
}

func DefaultParameters() Parameters {
	return Parameters{
		BlockInterval: 2 * time.Second,
	}
}

// Engine executes contract calls against a layered world state. It owns
// the call frames, the transaction scope and the registry of accounts.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	params    Parameters
	logger    log.Logger
	converter *value.Converter
	crypto    Crypto

	state    *state.WorldState[*Score]
	accounts map[common.Address]*Account
	sequence uint32

	frames     []*Frame
	block      Block
	tx         *Transaction
	events     *event.Log
	lastEvents event.Batch
}

func NewEngine(params Parameters) *Engine {
	if params.BlockInterval <= 0 {
		params.BlockInterval = DefaultParameters().BlockInterval
	}
	if params.InitialTimestamp == 0 {
		params.InitialTimestamp = time.Now().UnixMicro()
	}
	res := &Engine{
		params:    params,
		logger:    params.Logger,
		converter: params.Converter,
		crypto:    params.Crypto,
		state:     state.NewWorldState[*Score](),
		accounts:  map[common.Address]*Account{},
		sequence:  firstSequence - 1,
		block:     Block{Height: params.InitialHeight, Timestamp: params.InitialTimestamp},
	}
	if res.logger == nil {
		res.logger = log.Root().New("module", "vm")
	}
	if res.converter == nil {
		res.converter = value.NewConverter()
	}
	if res.crypto == nil {
		res.crypto = crypto.New()
	}
	return res
}

// Converter returns the converter used for arguments and results.
func (e *Engine) Converter() *value.Converter {
	return e.converter
}

func (e *Engine) nextAddress(contract bool) common.Address {
	e.sequence++
	return common.NewSequenceAddress(contract, e.sequence)
}

// CreateAccount creates a new externally owned account.
func (e *Engine) CreateAccount() *Account {
	res, _ := e.CreateAccountAt(e.nextAddress(false))
	return res
}

// CreateAccountWithBalance creates a new externally owned account holding
// the given amount.
func (e *Engine) CreateAccountWithBalance(amount *big.Int) (*Account, error) {
	res := e.CreateAccount()
	if err := res.AddBalance(amount); err != nil {
		return nil, err
	}
	return res, nil
}

// CreateScoreAccount creates a new contract account without contract.
func (e *Engine) CreateScoreAccount() *Account {
	res, _ := e.CreateAccountAt(e.nextAddress(true))
	return res
}

// CreateAccountAt creates the account of the given address. It fails if the
// account exists already.
func (e *Engine) CreateAccountAt(addr common.Address) (*Account, error) {
	if _, found := e.accounts[addr]; found {
		return nil, argumentError(ErrAccountExists, "%v", addr)
	}
	res := &Account{address: addr, engine: e}
	e.accounts[addr] = res
	return res, nil
}

// GetAccount returns the account of the given address, creating it on
// first use.
func (e *Engine) GetAccount(addr common.Address) *Account {
	if res, found := e.accounts[addr]; found {
		return res
	}
	res, _ := e.CreateAccountAt(addr)
	return res
}

// GetScore returns the contract deployed at the given address.
func (e *Engine) GetScore(addr common.Address) (*Score, bool) {
	return e.state.GetContract(addr)
}

// Deploy creates a contract of the given class owned by owner. The
// constructor runs in its own transaction; if it fails, nothing is
// deployed.
func (e *Engine) Deploy(owner *Account, class *Class, params ...any) (*Score, error) {
	if owner == nil || class == nil {
		return nil, argumentError(ErrInvalidParameter, "deploy needs owner and class")
	}
	defer e.beginTransaction(true)()
	return e.deploy(owner, nil, class, params)
}

// Update replaces the contract at the address of score by a new instance
// of class. Only the owner of score may update it.
func (e *Engine) Update(owner *Account, score *Score, class *Class, params ...any) (*Score, error) {
	if owner == nil || score == nil || class == nil {
		return nil, argumentError(ErrInvalidParameter, "update needs owner, score and class")
	}
	defer e.beginTransaction(true)()
	return e.deploy(owner, score, class, params)
}

// DeployInstance installs a prepared contract instance at the given
// contract address without running a constructor.
func (e *Engine) DeployInstance(addr common.Address, owner *Account, class *Class, instance any) (*Score, error) {
	if !addr.IsContract() {
		return nil, argumentError(ErrInvalidParameter, "%v is not a contract address", addr)
	}
	if owner == nil || class == nil {
		return nil, argumentError(ErrInvalidParameter, "deploy needs owner and class")
	}
	if e.isReadOnly() {
		return nil, stateError(ErrReadOnly, "can not deploy %v", addr)
	}
	res := &Score{account: e.GetAccount(addr), owner: owner, class: class, instance: instance}
	e.state.SetContract(addr, res)
	e.logger.Debug("Installed contract", "address", addr, "class", class.name, "owner", owner)
	return res, nil
}

// Invoke calls a method as a transaction of from. A non-zero value is
// transferred to the contract before the method runs.
func (e *Engine) Invoke(from *Account, value *big.Int, target common.Address, method string, params ...any) (any, error) {
	if from == nil {
		return nil, argumentError(ErrInvalidParameter, "invoke needs a sender")
	}
	defer e.beginTransaction(true)()
	return e.handleCall(callRequest{
		from:     from,
		value:    orZero(value),
		transfer: true,
		target:   target,
		method:   method,
		params:   params,
	})
}

// Query calls a method in read-only mode without starting a transaction.
func (e *Engine) Query(target common.Address, method string, params ...any) (any, error) {
	return e.handleCall(callRequest{
		value:    new(big.Int),
		readOnly: true,
		target:   target,
		method:   method,
		params:   params,
	})
}

// Transfer moves value from one account to another as a transaction. If
// the receiver is a contract, its fallback method is invoked.
func (e *Engine) Transfer(from *Account, to common.Address, value *big.Int) error {
	defer e.beginTransaction(true)()
	return e.handleTransfer(from, to, orZero(value))
}

// Batch executes fn as a single block: all transactions started by fn
// share the block and receive consecutive indices.
func (e *Engine) Batch(fn func() error) error {
	if e.tx != nil {
		return stateError(ErrBlockInTransaction, "batches can not be nested")
	}
	defer e.beginTransaction(false)()
	return fn()
}

// Transaction returns the transaction currently executed, if any.
func (e *Engine) Transaction() (Transaction, bool) {
	if e.tx == nil || e.tx.Index == noTransaction {
		return Transaction{}, false
	}
	return *e.tx, true
}

// LastEvents returns the events emitted by the most recent transaction.
func (e *Engine) LastEvents() event.Batch {
	return append(event.Batch(nil), e.lastEvents...)
}

// GetValue reads a raw storage value of a contract.
func (e *Engine) GetValue(addr common.Address, key string) []byte {
	return e.state.GetValue(addr, key)
}

// SetValue writes a raw storage value of a contract. It fails within
// read-only calls.
func (e *Engine) SetValue(addr common.Address, key string, value []byte) error {
	if e.isReadOnly() {
		return stateError(ErrReadOnly, "can not write %q of %v", key, addr)
	}
	e.state.SetValue(addr, key, value)
	return nil
}

func (e *Engine) addBalance(addr common.Address, amount *big.Int) error {
	if e.isReadOnly() {
		return stateError(ErrReadOnly, "can not credit %v", addr)
	}
	if err := e.state.AddBalance(addr, amount); err != nil {
		return fmt.Errorf("%w: %w", ErrIllegalArgument, err)
	}
	return nil
}

func (e *Engine) subtractBalance(addr common.Address, amount *big.Int) error {
	if e.isReadOnly() {
		return stateError(ErrReadOnly, "can not debit %v", addr)
	}
	return e.state.SubtractBalance(addr, amount)
}

func (e *Engine) moveBalance(from, to common.Address, amount *big.Int) error {
	if err := e.subtractBalance(from, amount); err != nil {
		return err
	}
	return e.addBalance(to, amount)
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
