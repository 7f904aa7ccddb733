package sim

import (
	"math/big"

	"github.com/0xsoniclabs/contractsim/common"
	"github.com/0xsoniclabs/contractsim/container"
	"github.com/0xsoniclabs/contractsim/value"
	"github.com/0xsoniclabs/contractsim/vm"
)

// Score is the driver's handle of a deployed contract.
type Score struct {
	*vm.Score
	sim *Simulator
}

// Invoke calls a method as a transaction of from.
func (s *Score) Invoke(from *vm.Account, method string, params ...any) (any, error) {
	return s.InvokeWithValue(from, nil, method, params...)
}

// InvokeWithValue calls a method as a transaction of from, transferring
// value to the contract.
func (s *Score) InvokeWithValue(from *vm.Account, value *big.Int, method string, params ...any) (any, error) {
	return s.sim.Invoke(from, value, s.Address(), method, params...)
}

// Call calls a read-only method.
func (s *Score) Call(method string, params ...any) (any, error) {
	return s.sim.Query(s.Address(), method, params...)
}

// Storage gives the driver direct access to the storage of the contract,
// e.g. for inspecting containers.
func (s *Score) Storage() container.Storage {
	return &scoreStorage{engine: s.sim.Engine, address: s.Address()}
}

// Call calls a read-only method and converts its result to T.
func Call[T any](s *Score, method string, params ...any) (T, error) {
	res, err := s.Call(method, params...)
	if err != nil {
		var zero T
		return zero, err
	}
	return value.Cast[T](s.sim.Converter(), res)
}

type scoreStorage struct {
	engine  *vm.Engine
	address common.Address
}

var _ container.Storage = &scoreStorage{}

func (s *scoreStorage) GetValue(key string) []byte {
	return s.engine.GetValue(s.address, key)
}

func (s *scoreStorage) SetValue(key string, value []byte) error {
	return s.engine.SetValue(s.address, key, value)
}

func (s *scoreStorage) Converter() *value.Converter {
	return s.engine.Converter()
}
