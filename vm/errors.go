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
	"errors"
	"fmt"

	"github.com/0xsoniclabs/contractsim/common"
	"github.com/0xsoniclabs/contractsim/state"
)

// Failure kinds raised by the engine. Argument and permission failures are
// reported to the caller as they are; failures of contract code are mapped
// to reverts at the boundary of the failing call frame.
const (
	ErrIllegalArgument = common.ConstError("illegal argument")
	ErrIllegalState    = common.ConstError("illegal state")

	ErrContractNotFound     = common.ConstError("contract not found")
	ErrMethodNotFound       = common.ConstError("no valid method")
	ErrNotExternal          = common.ConstError("not an external method")
	ErrPermissionDenied     = common.ConstError("permission denied")
	ErrNotPayable           = common.ConstError("method is not payable")
	ErrNotEnoughParameters  = common.ConstError("not enough parameters")
	ErrTooManyParameters    = common.ConstError("too many parameters")
	ErrInvalidParameter     = common.ConstError("invalid parameter")
	ErrInvalidDefinition    = common.ConstError("invalid contract definition")
	ErrNoPermissionToUpdate = common.ConstError("no permission to update")
	ErrAccountExists        = common.ConstError("account already created")
	ErrReadOnly             = common.ConstError("read-only mode")
	ErrBlockInTransaction   = common.ConstError("not allowed to advance block in transaction")
	ErrCrypto               = common.ConstError("crypto failure")

	ErrOutOfBalance = state.ErrOutOfBalance

	// ErrReverted is matched by both RevertedError and UserRevertedError.
	ErrReverted = common.ConstError("reverted")
)

func argumentError(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrIllegalArgument, kind, fmt.Sprintf(format, args...))
}

func stateError(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrIllegalState, kind, fmt.Sprintf(format, args...))
}

// UserRevert is implemented by errors that carry a revert code chosen by
// contract code.
type UserRevert interface {
	error
	RevertCode() int
}

// ManualRevertError is raised by contract code through Context.Revert.
type ManualRevertError struct {
	Code    int
	Message string
}

func (e *ManualRevertError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("Reverted(%d)", e.Code)
	}
	return fmt.Sprintf("Reverted(%d): %s", e.Code, e.Message)
}

func (e *ManualRevertError) RevertCode() int {
	return e.Code
}

// RevertedError reports a failed call frame that did not provide a revert
// code. The cause is kept for diagnostics.
type RevertedError struct {
	Message string
	Cause   error
}

func (e *RevertedError) Error() string {
	if e.Message == "" {
		return "reverted"
	}
	return "reverted: " + e.Message
}

func (e *RevertedError) Unwrap() error {
	return e.Cause
}

func (e *RevertedError) Is(target error) bool {
	return target == ErrReverted
}

// UserRevertedError reports a failed call frame whose contract code chose a
// revert code.
type UserRevertedError struct {
	Code    int
	Message string
	Cause   error
}

func (e *UserRevertedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("user reverted(%d)", e.Code)
	}
	return fmt.Sprintf("user reverted(%d): %s", e.Code, e.Message)
}

func (e *UserRevertedError) Unwrap() error {
	return e.Cause
}

func (e *UserRevertedError) Is(target error) bool {
	return target == ErrReverted
}

// toRevert maps a failure of contract code onto the revert reported to the
// caller of the frame. Reverts of nested frames that were not handled by the
// contract lose their code.
func toRevert(err error) error {
	var reverted *RevertedError
	var userReverted *UserRevertedError
	if errors.As(err, &reverted) || errors.As(err, &userReverted) {
		return &RevertedError{Message: err.Error(), Cause: err}
	}
	var user UserRevert
	if errors.As(err, &user) {
		msg := ""
		var manual *ManualRevertError
		if errors.As(err, &manual) {
			msg = manual.Message
		} else {
			msg = user.Error()
		}
		return &UserRevertedError{Code: user.RevertCode(), Message: msg, Cause: err}
	}
	return &RevertedError{Message: err.Error(), Cause: err}
}
