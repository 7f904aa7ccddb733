package vm

import "github.com/0xsoniclabs/contractsim/common"

//go:generate mockgen -source crypto.go -destination crypto_mock.go -package vm

// Crypto provides the cryptographic primitives available to contracts.
// Algorithms are selected by name; unsupported names are reported as
// errors.
type Crypto interface {
	// Hash computes the digest of msg using the named algorithm.
	Hash(alg string, msg []byte) ([]byte, error)
	// VerifySignature checks a signature of msg against a public key.
	VerifySignature(alg string, msg, sig, pubKey []byte) (bool, error)
	// RecoverKey derives the public key that produced sig for msg.
	RecoverKey(alg string, msg, sig []byte, compressed bool) ([]byte, error)
	// Aggregate adds the concatenated points of values to prev, which may
	// be empty.
	Aggregate(typ string, prev, values []byte) ([]byte, error)
	// AddressFromKey derives the account address of a public key.
	AddressFromKey(pubKey []byte) (common.Address, error)
}
