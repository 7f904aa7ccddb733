package common

import (
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

// Sha3 computes the SHA3-256 hash of the concatenation of the given inputs.
func Sha3(data ...[]byte) []byte {
	hasher := sha3.New256()
	for _, cur := range data {
		hasher.Write(cur)
	}
	return hasher.Sum(nil)
}

// Keccak256 computes the legacy Keccak-256 hash of the given inputs.
func Keccak256(data ...[]byte) []byte {
	return crypto.Keccak256(data...)
}
