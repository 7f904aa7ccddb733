package sim

import (
	"errors"

	"github.com/0xsoniclabs/contractsim/event"
	"github.com/0xsoniclabs/contractsim/vm"
)

// Receipt records the outcome of a transaction executed by ExecuteBlock.
// Events are only kept for successful transactions.
type Receipt struct {
	Transaction vm.Transaction
	Output      any
	Err         error
	Events      event.Batch
}

// Failed reports whether the transaction was rejected or reverted.
func (r *Receipt) Failed() bool {
	return r.Err != nil
}

// Reverted reports whether the transaction was executed but reverted, as
// opposed to being rejected before execution.
func (r *Receipt) Reverted() bool {
	return r.Failed() && errors.Is(r.Err, vm.ErrReverted)
}
