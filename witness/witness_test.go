package witness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssign(t *testing.T) {
	key := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	plaintext := mustHex(t, "00112233445566778899aabbccddeeff")
	ciphertext := mustHex(t, "69c4e0d86a7b0430d8cdb78070b4c55a")

	a, err := Assign(key[:], plaintext[:])
	require.NoError(t, err)
	for i := 0; i < 16; i++ {
		require.Equal(t, key[i], a.Key[i])
		require.Equal(t, plaintext[i], a.Plaintext[i])
		require.Equal(t, ciphertext[i], a.Ciphertext[i])
	}
}

func TestAssignKnownPlaintext(t *testing.T) {
	key := mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	plaintext := mustHex(t, "6bc1bee22e409f96e93d7e117393172a")

	a, err := AssignKnownPlaintext(key[:], plaintext[:])
	require.NoError(t, err)

	ct, err := Ciphertext(key[:], plaintext[:])
	require.NoError(t, err)
	for i := 0; i < 16; i++ {
		require.Equal(t, ct[i], a.Ciphertext[i])
	}
}

func TestAssignRejectsBadLengths(t *testing.T) {
	_, err := Assign(make([]byte, 15), make([]byte, 16))
	require.ErrorContains(t, err, "key must be 16 bytes")

	_, err = Assign(make([]byte, 16), make([]byte, 17))
	require.ErrorContains(t, err, "plaintext must be 16 bytes")

	_, err = Ciphertext(nil, make([]byte, 16))
	require.ErrorContains(t, err, "key must be 16 bytes")
}
