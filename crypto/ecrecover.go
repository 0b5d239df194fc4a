package crypto

import (
	"math/big"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

var (
	secp256k1N     = gethcrypto.S256().Params().N
	secp256k1HalfN = new(big.Int).Rsh(secp256k1N, 1)
)

// ValidateSignatureValues reports whether (v, r, s) are within the
// secp256k1 curve's valid range, mirroring go-ethereum's homestead
// malleability check (s must be in the lower half of the curve order
// once homestead is active).
func ValidateSignatureValues(v byte, r, s *big.Int, homestead bool) bool {
	if r.Sign() <= 0 || s.Sign() <= 0 {
		return false
	}
	if r.Cmp(secp256k1N) >= 0 || s.Cmp(secp256k1N) >= 0 {
		return false
	}
	if homestead && s.Cmp(secp256k1HalfN) > 0 {
		return false
	}
	return v == 0 || v == 1
}

// Ecrecover recovers the 20-byte address that produced sig over hash,
// returning (address bytes, ok). sig is [R || S || V] with V in {0,1}.
func Ecrecover(hash []byte, sig []byte) ([]byte, bool) {
	pub, err := gethcrypto.Ecrecover(hash, sig)
	if err != nil {
		return nil, false
	}
	addr := gethcrypto.Keccak256(pub[1:])[12:]
	return addr, true
}
