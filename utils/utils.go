package utils

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"filippo.io/age"
)

// AgeEncrypt seals data to a single X25519 recipient.
func AgeEncrypt(data []byte, recipient age.Recipient) ([]byte, error) {
	buf := &bytes.Buffer{}
	w, err := age.Encrypt(buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypt writer: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write encrypted data: %v", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close encrypt writer: %v", err)
	}
	return buf.Bytes(), nil
}

// AgeDecrypt opens data sealed to the given identity.
func AgeDecrypt(data []byte, identity age.Identity) ([]byte, error) {
	r, err := age.Decrypt(bytes.NewReader(data), identity)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt data: %v", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read decrypted data: %v", err)
	}
	return out, nil
}

// MustHex decodes a hex string and panics on malformed input. Used for
// fixed test vectors and pinned hashes.
func MustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
