package witness

import (
	"crypto/aes"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) [16]byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, b, 16)
	var out [16]byte
	copy(out[:], b)
	return out
}

func TestDerivedSbox(t *testing.T) {
	require.Equal(t, byte(0x63), SBox(0x00))
	require.Equal(t, byte(0x7c), SBox(0x01))
	require.Equal(t, byte(0xed), SBox(0x53))
	require.Equal(t, byte(0x16), SBox(0xff))

	seen := make(map[byte]bool, 256)
	for i := 0; i < 256; i++ {
		v := SBox(byte(i))
		require.False(t, seen[v], "value %#02x repeats", v)
		seen[v] = true
	}
}

func TestExpandKeyZero(t *testing.T) {
	xk := ExpandKey([16]byte{})
	for w := 0; w < 4; w++ {
		require.Equal(t, []byte{0x62, 0x63, 0x63, 0x63}, xk[1][4*w:4*w+4])
	}
}

func TestExpandKeyFIPS(t *testing.T) {
	xk := ExpandKey(mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c"))
	require.Equal(t, mustHex(t, "a0fafe1788542cb123a339392a6c7605"), xk[1])
	require.Equal(t, mustHex(t, "d014f9a8c9ee2589e13f0cc8b6630ca6"), xk[10])
}

func TestEncryptTraceFIPS(t *testing.T) {
	key := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	plaintext := mustHex(t, "00112233445566778899aabbccddeeff")

	tr := EncryptTrace(key, plaintext)
	require.Equal(t, mustHex(t, "69c4e0d86a7b0430d8cdb78070b4c55a"), tr.Ciphertext)

	// FIPS-197 appendix C.1 round 1 intermediate states
	require.Equal(t, mustHex(t, "00102030405060708090a0b0c0d0e0f0"), tr.AfterAddRoundKey[0])
	require.Equal(t, mustHex(t, "63cab7040953d051cd60e0e7ba70e18c"), tr.AfterSubBytes[0])
	require.Equal(t, mustHex(t, "6353e08c0960e104cd70b751bacad0e7"), tr.AfterShiftRows[0])
	require.Equal(t, mustHex(t, "5f72641557f5bc92f7be3b291db9f91a"), tr.AfterMixColumns[0])
}

func TestEncryptTraceMatchesStdlib(t *testing.T) {
	for i := 0; i < 32; i++ {
		var key, plaintext [16]byte
		_, err := rand.Read(key[:])
		require.NoError(t, err)
		_, err = rand.Read(plaintext[:])
		require.NoError(t, err)

		block, err := aes.NewCipher(key[:])
		require.NoError(t, err)
		var expected [16]byte
		block.Encrypt(expected[:], plaintext[:])

		tr := EncryptTrace(key, plaintext)
		require.Equal(t, expected, tr.Ciphertext)
	}
}
