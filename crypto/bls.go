package crypto

import (
	"bytes"
	"fmt"

	blst "github.com/supranational/blst/bindings/go"
)

const (
	g1Size = 48
)

var blsDST = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_")

// g1Identity is the compressed encoding of the point at infinity.
var g1Identity = append([]byte{0xc0}, make([]byte, g1Size-1)...)

func verifyBls(msg, sig, pubKey []byte) bool {
	pk := new(blst.P1Affine).Uncompress(pubKey)
	if pk == nil {
		return false
	}
	s := new(blst.P2Affine).Uncompress(sig)
	if s == nil {
		return false
	}
	return s.Verify(true, pk, true, msg, blsDST)
}

// aggregateG1 adds the concatenated compressed G1 points of values to prev.
// An empty prev stands for the identity.
func aggregateG1(prev, values []byte) ([]byte, error) {
	if len(values)%g1Size != 0 || (len(prev) != 0 && len(prev) != g1Size) {
		return nil, fmt.Errorf("%w: G1 points must have %d bytes", ErrInvalidData, g1Size)
	}
	var points [][]byte
	if len(prev) != 0 && !bytes.Equal(prev, g1Identity) {
		points = append(points, prev)
	}
	for i := 0; i < len(values); i += g1Size {
		point := values[i : i+g1Size]
		if !bytes.Equal(point, g1Identity) {
			points = append(points, point)
		}
	}
	if len(points) == 0 {
		return bytes.Clone(g1Identity), nil
	}
	agg := new(blst.P1Aggregate)
	if !agg.AggregateCompressed(points, true) {
		return nil, fmt.Errorf("%w: invalid G1 point", ErrInvalidData)
	}
	return agg.ToAffine().Compress(), nil
}
