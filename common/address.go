// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressLength is the number of bytes of an address. The first byte marks
// the kind of the account, the remaining 20 bytes identify it.
const AddressLength = 21

const (
	ErrInvalidAddress = ConstError("invalid address")
)

const (
	eoaPrefix      = "hx"
	contractPrefix = "cx"
)

// Address identifies an account. Externally owned accounts carry a zero
// kind byte and are printed with an "hx" prefix, contracts carry a one and
// are printed with "cx".
type Address [AddressLength]byte

// NewAddress creates an address from its 21 byte binary form.
func NewAddress(data []byte) (Address, error) {
	var res Address
	if len(data) != AddressLength {
		return res, fmt.Errorf("%w: length %d", ErrInvalidAddress, len(data))
	}
	if data[0] > 1 {
		return res, fmt.Errorf("%w: kind byte %d", ErrInvalidAddress, data[0])
	}
	copy(res[:], data)
	return res, nil
}

// NewSequenceAddress creates an address of the given kind whose last four
// bytes hold the given sequence number.
func NewSequenceAddress(contract bool, seq uint32) Address {
	var res Address
	if contract {
		res[0] = 1
	}
	binary.BigEndian.PutUint32(res[AddressLength-4:], seq)
	return res
}

// ParseAddress parses the textual form of an address.
func ParseAddress(s string) (Address, error) {
	var res Address
	if len(s) != 2+2*(AddressLength-1) {
		return res, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	switch strings.ToLower(s[:2]) {
	case eoaPrefix:
	case contractPrefix:
		res[0] = 1
	default:
		return res, fmt.Errorf("%w: unknown prefix in %q", ErrInvalidAddress, s)
	}
	if _, err := hex.Decode(res[1:], []byte(s[2:])); err != nil {
		return res, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return res, nil
}

// MustParseAddress is like ParseAddress but panics on invalid input.
func MustParseAddress(s string) Address {
	res, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return res
}

func (a Address) IsContract() bool {
	return a[0] == 1
}

func (a Address) Bytes() []byte {
	return append([]byte(nil), a[:]...)
}

func (a Address) String() string {
	prefix := eoaPrefix
	if a.IsContract() {
		prefix = contractPrefix
	}
	return prefix + hex.EncodeToString(a[1:])
}
