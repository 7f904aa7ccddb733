// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package crypto provides the default implementation of the cryptographic
// primitives offered to contracts.
package crypto

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/0xsoniclabs/contractsim/common"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/blake2b"
)

const (
	ErrUnsupported = common.ConstError("unsupported algorithm")
	ErrInvalidKey  = common.ConstError("invalid public key")
	ErrInvalidData = common.ConstError("invalid input")
)

// Supported algorithm names.
const (
	Sha3_256       = "sha3-256"
	Keccak256      = "keccak-256"
	Sha256         = "sha-256"
	Blake2b256     = "blake2b-256"
	EcdsaSecp256k1 = "ecdsa-secp256k1"
	Bls12381G1     = "bls12-381-g1"
	Bls12381G2     = "bls12-381-g2"
)

// Provider implements the primitives on top of go-ethereum's secp256k1
// support and the blst BLS12-381 library.
type Provider struct{}

func New() *Provider {
	return &Provider{}
}

func (p *Provider) Hash(alg string, msg []byte) ([]byte, error) {
	switch alg {
	case Sha3_256:
		return common.Sha3(msg), nil
	case Keccak256:
		return common.Keccak256(msg), nil
	case Sha256:
		sum := sha256.Sum256(msg)
		return sum[:], nil
	case Blake2b256:
		sum := blake2b.Sum256(msg)
		return sum[:], nil
	}
	return nil, fmt.Errorf("%w: hash %q", ErrUnsupported, alg)
}

func (p *Provider) VerifySignature(alg string, msg, sig, pubKey []byte) (bool, error) {
	switch alg {
	case EcdsaSecp256k1:
		uncompressed, err := uncompressedKey(pubKey)
		if err != nil {
			return false, err
		}
		recovered, err := p.RecoverKey(alg, msg, sig, false)
		if err != nil {
			return false, nil
		}
		return bytes.Equal(recovered, uncompressed), nil
	case Bls12381G2:
		return verifyBls(msg, sig, pubKey), nil
	}
	return false, fmt.Errorf("%w: signature %q", ErrUnsupported, alg)
}

func (p *Provider) RecoverKey(alg string, msg, sig []byte, compressed bool) ([]byte, error) {
	if alg != EcdsaSecp256k1 {
		return nil, fmt.Errorf("%w: key recovery %q", ErrUnsupported, alg)
	}
	if len(msg) != 32 || len(sig) != 65 {
		return nil, fmt.Errorf("%w: need 32 byte hash and 65 byte signature", ErrInvalidData)
	}
	key, err := gethcrypto.Ecrecover(msg, sig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	if !compressed {
		return key, nil
	}
	pub, err := gethcrypto.UnmarshalPubkey(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return gethcrypto.CompressPubkey(pub), nil
}

func (p *Provider) Aggregate(typ string, prev, values []byte) ([]byte, error) {
	if typ != Bls12381G1 {
		return nil, fmt.Errorf("%w: aggregation %q", ErrUnsupported, typ)
	}
	return aggregateG1(prev, values)
}

// AddressFromKey derives an account address from a secp256k1 public key:
// the last 20 bytes of the SHA3-256 hash of the uncompressed key without
// its prefix byte.
func (p *Provider) AddressFromKey(pubKey []byte) (common.Address, error) {
	var res common.Address
	key, err := uncompressedKey(pubKey)
	if err != nil {
		return res, err
	}
	hash := common.Sha3(key[1:])
	copy(res[1:], hash[len(hash)-(common.AddressLength-1):])
	return res, nil
}

func uncompressedKey(pubKey []byte) ([]byte, error) {
	switch len(pubKey) {
	case 33:
		pub, err := gethcrypto.DecompressPubkey(pubKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		return gethcrypto.FromECDSAPub(pub), nil
	case 65:
		if _, err := gethcrypto.UnmarshalPubkey(pubKey); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		return bytes.Clone(pubKey), nil
	}
	return nil, fmt.Errorf("%w: length %d", ErrInvalidKey, len(pubKey))
}
