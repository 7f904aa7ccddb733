package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/0xsoniclabs/contractsim/common"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func fromHex(t *testing.T, s string) []byte {
	t.Helper()
	res, err := hex.DecodeString(s)
	require.NoError(t, err)
	return res
}

func TestProvider_HashesWithSupportedAlgorithms(t *testing.T) {
	p := New()
	tests := map[string]string{
		Sha3_256:   "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a",
		Keccak256:  "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		Sha256:     "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		Blake2b256: "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8",
	}
	for alg, want := range tests {
		got, err := p.Hash(alg, nil)
		require.NoError(t, err, alg)
		require.Equal(t, want, hex.EncodeToString(got), alg)
	}
	_, err := p.Hash("md5", nil)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestProvider_VerifiesAndRecoversSecp256k1Signatures(t *testing.T) {
	require := require.New(t)
	p := New()
	key, err := gethcrypto.GenerateKey()
	require.NoError(err)
	msg := common.Sha3([]byte("message"))
	sig, err := gethcrypto.Sign(msg, key)
	require.NoError(err)

	uncompressed := gethcrypto.FromECDSAPub(&key.PublicKey)
	compressed := gethcrypto.CompressPubkey(&key.PublicKey)

	recovered, err := p.RecoverKey(EcdsaSecp256k1, msg, sig, false)
	require.NoError(err)
	require.Equal(uncompressed, recovered)
	recovered, err = p.RecoverKey(EcdsaSecp256k1, msg, sig, true)
	require.NoError(err)
	require.Equal(compressed, recovered)

	for _, pub := range [][]byte{uncompressed, compressed} {
		ok, err := p.VerifySignature(EcdsaSecp256k1, msg, sig, pub)
		require.NoError(err)
		require.True(ok)
	}

	ok, err := p.VerifySignature(EcdsaSecp256k1, common.Sha3([]byte("other")), sig, compressed)
	require.NoError(err)
	require.False(ok)

	_, err = p.VerifySignature(EcdsaSecp256k1, msg, sig, []byte{1, 2})
	require.ErrorIs(err, ErrInvalidKey)
	_, err = p.RecoverKey(EcdsaSecp256k1, msg[:5], sig, false)
	require.ErrorIs(err, ErrInvalidData)
}

func TestProvider_AddressFromKeyIgnoresKeyEncoding(t *testing.T) {
	require := require.New(t)
	p := New()
	key, err := gethcrypto.GenerateKey()
	require.NoError(err)

	a, err := p.AddressFromKey(gethcrypto.FromECDSAPub(&key.PublicKey))
	require.NoError(err)
	b, err := p.AddressFromKey(gethcrypto.CompressPubkey(&key.PublicKey))
	require.NoError(err)
	require.Equal(a, b)
	require.False(a.IsContract())

	hash := common.Sha3(gethcrypto.FromECDSAPub(&key.PublicKey)[1:])
	require.Equal(hash[12:], a[1:])
}

const (
	blsPa       = "a85840694564cd1582f53e30fca43a396214990e5e0b255b8d257931ff0a933a5746b3a9bdd63b9c93ade10a85db0e9b"
	blsPb       = "b0f6fc69e358da7acefc579b5c87bd5970257a347fc45aa53e73d6c65fe5354ce63f25e27412d301ba7e4661b65175f3"
	blsPaPlusPb = "ae8831c4f88dfb7853af6b0c4db9fd38becb236dfbe64633c782a2796544fb8e751edcd996b0b19826a0c33fee80805b"
	blsPk       = "a931985bb2949bd7bebf453e6ca3b653d4c661d90316e5ec0d844f3c187c2920799c605e76ff64184d0e0f5c1f69e955"
	blsMsg      = "6d79206d657373616765"
	blsSig      = "a9d535044a303502a75c2364570731069f862858a1b0a60ae7c2981b4aa96fa48fe8c4a25d000a2a75b0653c60658dd00ebac42bcef4b9a6fc293dce6e207e10040c909b1f3d2be5ebf55f1865d6b66d72eb8d9379df0b2a737d01de84813af1"
)

func TestProvider_AggregatesG1Points(t *testing.T) {
	require := require.New(t)
	p := New()
	pa, pb, sum := fromHex(t, blsPa), fromHex(t, blsPb), fromHex(t, blsPaPlusPb)

	id, err := p.Aggregate(Bls12381G1, nil, nil)
	require.NoError(err)
	got, err := p.Aggregate(Bls12381G1, id, id)
	require.NoError(err)
	require.Equal(id, got)

	got, err = p.Aggregate(Bls12381G1, pa, nil)
	require.NoError(err)
	require.Equal(pa, got)
	got, err = p.Aggregate(Bls12381G1, nil, pa)
	require.NoError(err)
	require.Equal(pa, got)

	got, err = p.Aggregate(Bls12381G1, nil, append(append([]byte{}, pa...), pb...))
	require.NoError(err)
	require.Equal(sum, got)
	got, err = p.Aggregate(Bls12381G1, id, append(append([]byte{}, pa...), pb...))
	require.NoError(err)
	require.Equal(sum, got)
	got, err = p.Aggregate(Bls12381G1, pa, pb)
	require.NoError(err)
	require.Equal(sum, got)

	_, err = p.Aggregate(Bls12381G1, nil, pa[:10])
	require.ErrorIs(err, ErrInvalidData)
	_, err = p.Aggregate(Bls12381G2, nil, nil)
	require.ErrorIs(err, ErrUnsupported)
}

func TestProvider_VerifiesBlsSignatures(t *testing.T) {
	require := require.New(t)
	p := New()

	ok, err := p.VerifySignature(Bls12381G2, fromHex(t, blsMsg), fromHex(t, blsSig), fromHex(t, blsPk))
	require.NoError(err)
	require.True(ok)

	ok, err = p.VerifySignature(Bls12381G2, []byte("other"), fromHex(t, blsSig), fromHex(t, blsPk))
	require.NoError(err)
	require.False(ok)
}
