// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package event

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/0xsoniclabs/contractsim/codec"
	"github.com/0xsoniclabs/contractsim/common"
	"github.com/0xsoniclabs/contractsim/value"
)

const (
	ErrInvalidEvent = common.ConstError("invalid event")
)

// canonical converts event values, which are canonical already.
var canonical = value.NewConverter()

// Event is a log record emitted by a contract. The first indexed value is
// by convention the signature of the event.
type Event struct {
	contract *common.Address
	indexed  []any
	data     []any
}

// New creates an event. The contract, if present, has to be a contract
// address, at least one indexed value is required and all values must be
// canonical.
func New(contract *common.Address, indexed []any, data []any) (*Event, error) {
	if contract != nil && !contract.IsContract() {
		return nil, fmt.Errorf("%w: %v is not a contract", ErrInvalidEvent, contract)
	}
	if len(indexed) == 0 {
		return nil, fmt.Errorf("%w: no indexed values", ErrInvalidEvent)
	}
	for _, list := range [][]any{indexed, data} {
		for _, v := range list {
			if !value.IsCanonical(v) {
				return nil, fmt.Errorf("%w: %T is not a valid event value", ErrInvalidEvent, v)
			}
		}
	}
	res := &Event{
		indexed: append([]any(nil), indexed...),
		data:    append([]any(nil), data...),
	}
	if contract != nil {
		addr := *contract
		res.contract = &addr
	}
	return res, nil
}

// MustNew is like New but panics on invalid input.
func MustNew(contract *common.Address, indexed []any, data []any) *Event {
	res, err := New(contract, indexed, data)
	if err != nil {
		panic(err)
	}
	return res
}

// Contract returns the address of the emitting contract or nil.
func (e *Event) Contract() *common.Address {
	return e.contract
}

func (e *Event) Indexed() []any {
	return append([]any(nil), e.indexed...)
}

func (e *Event) Data() []any {
	return append([]any(nil), e.data...)
}

// Signature returns the first indexed value if it is a string.
func (e *Event) Signature() string {
	sig, _ := e.indexed[0].(string)
	return sig
}

// Equal compares two events. Values are compared by their storage byte
// form, so an integer 1 equals the byte sequence {0x01}.
func (e *Event) Equal(other *Event) bool {
	return e.compare(other, false)
}

// Match is like Equal but treats absent values and an absent contract of
// the receiver as wildcards.
func (e *Event) Match(other *Event) bool {
	return e.compare(other, true)
}

func (e *Event) compare(other *Event, wildcards bool) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.contract == nil {
		if !wildcards && other.contract != nil {
			return false
		}
	} else if other.contract == nil || *e.contract != *other.contract {
		return false
	}
	return compareValues(e.indexed, other.indexed, wildcards) &&
		compareValues(e.data, other.data, wildcards)
}

func compareValues(a, b []any, wildcards bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] == nil {
			if wildcards || b[i] == nil {
				continue
			}
			return false
		}
		if b[i] == nil {
			return false
		}
		x, errX := codec.ToBytes(canonical, a[i])
		y, errY := codec.ToBytes(canonical, b[i])
		if errX != nil || errY != nil || !bytes.Equal(x, y) {
			return false
		}
	}
	return true
}

func (e *Event) String() string {
	var b strings.Builder
	b.WriteString("Event{")
	if e.contract != nil {
		fmt.Fprintf(&b, "contract=%v, ", e.contract)
	}
	fmt.Fprintf(&b, "indexed=%s, data=%s}", formatValues(e.indexed), formatValues(e.data))
	return b.String()
}

func formatValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		switch v := v.(type) {
		case []byte:
			parts[i] = fmt.Sprintf("0x%x", v)
		case nil:
			parts[i] = "null"
		default:
			parts[i] = fmt.Sprint(v)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
