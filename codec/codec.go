// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package codec implements the binary encoding of canonical values. Two
// variants exist, RLP and RLPn, which share the framing of byte strings and
// lists but mark absent values with different tags.
package codec

import (
	"fmt"
	"math/big"

	"github.com/0xsoniclabs/contractsim/common"
)

const (
	ErrUnknownVariant = common.ConstError("unknown codec")
	ErrUnbalanced     = common.ConstError("unbalanced nesting")
	ErrNoMoreItems    = common.ConstError("no more items")
	ErrMalformed      = common.ConstError("malformed input")
	ErrUnexpectedNull = common.ConstError("unexpected null")
	ErrIllegalValue   = common.ConstError("illegal value")
)

// Variant names one of the supported encodings.
type Variant string

const (
	RLP  = Variant("RLP")
	RLPn = Variant("RLPn")
)

// Both null tags are long-form headers announcing an empty payload, which
// no canonical encoder produces.
var (
	rlpNullTag  = []byte{0xb8, 0x00}
	rlpnNullTag = []byte{0xf8, 0x00}
)

// ParseVariant resolves a codec by name.
func ParseVariant(name string) (Variant, error) {
	switch Variant(name) {
	case RLP, RLPn:
		return Variant(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

func (v Variant) nullTag() []byte {
	if v == RLP {
		return rlpNullTag
	}
	return rlpnNullTag
}

var one = big.NewInt(1)

// SignedBytes returns the minimal big-endian two's complement form of n.
// Zero is encoded as a single zero byte.
func SignedBytes(n *big.Int) []byte {
	switch n.Sign() {
	case 0:
		return []byte{0}
	case 1:
		res := n.Bytes()
		if res[0]&0x80 != 0 {
			res = append([]byte{0}, res...)
		}
		return res
	}
	inverted := new(big.Int).Neg(n)
	inverted.Sub(inverted, one)
	size := inverted.BitLen()/8 + 1
	res := new(big.Int).Lsh(one, uint(8*size))
	res.Add(res, n)
	return res.FillBytes(make([]byte, size))
}

// FromSignedBytes interprets data as big-endian two's complement integer.
// An empty input is zero.
func FromSignedBytes(data []byte) *big.Int {
	res := new(big.Int).SetBytes(data)
	if len(data) > 0 && data[0]&0x80 != 0 {
		res.Sub(res, new(big.Int).Lsh(one, uint(8*len(data))))
	}
	return res
}
