package crypto

import (
	"math/big"
	"testing"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

func TestValidateSignatureValuesRejectsNonPositive(t *testing.T) {
	if ValidateSignatureValues(0, big.NewInt(0), big.NewInt(1), false) {
		t.Error("r=0 must be rejected")
	}
	if ValidateSignatureValues(0, big.NewInt(1), big.NewInt(0), false) {
		t.Error("s=0 must be rejected")
	}
}

func TestValidateSignatureValuesRejectsOutOfRange(t *testing.T) {
	if ValidateSignatureValues(0, secp256k1N, big.NewInt(1), false) {
		t.Error("r >= N must be rejected")
	}
}

func TestValidateSignatureValuesHomesteadMalleability(t *testing.T) {
	highS := new(big.Int).Add(secp256k1HalfN, big.NewInt(1))
	if ValidateSignatureValues(0, big.NewInt(1), highS, true) {
		t.Error("s above half the curve order must be rejected once homestead is active")
	}
	if !ValidateSignatureValues(0, big.NewInt(1), highS, false) {
		t.Error("pre-homestead must accept a high-s signature")
	}
}

func TestValidateSignatureValuesRejectsBadV(t *testing.T) {
	if ValidateSignatureValues(2, big.NewInt(1), big.NewInt(1), false) {
		t.Error("v must be 0 or 1")
	}
}

// TestEcrecoverRoundTrip signs a hash with a fresh key and checks that
// Ecrecover returns the signer's address, mirroring the corpus's
// sign-then-recover fuzz style without depending on a fixed vector.
func TestEcrecoverRoundTrip(t *testing.T) {
	key, err := gethcrypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	want := gethcrypto.PubkeyToAddress(key.PublicKey)

	hash := make([]byte, 32)
	for i := range hash {
		hash[i] = byte(i + 1)
	}
	sig, err := gethcrypto.Sign(hash, key)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	addr, ok := Ecrecover(hash, sig)
	if !ok {
		t.Fatal("Ecrecover reported failure on a well-formed signature")
	}
	if !bytesEqual(addr, want.Bytes()) {
		t.Errorf("Ecrecover = %x, want %x", addr, want.Bytes())
	}
}

func TestEcrecoverMalformedInput(t *testing.T) {
	if _, ok := Ecrecover(make([]byte, 32), make([]byte, 64)); ok {
		t.Error("Ecrecover must fail on a truncated (non-65-byte) signature")
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
