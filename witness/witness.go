package witness

import (
	"fmt"

	"gnark-aes-block/circuits/aes128"
)

func toBlock(name string, b []byte) ([16]byte, error) {
	var block [16]byte
	if len(b) != 16 {
		return block, fmt.Errorf("%s must be 16 bytes, got %d", name, len(b))
	}
	copy(block[:], b)
	return block, nil
}

// Assign validates the inputs, runs the reference encryption and produces the
// full assignment for aes128.Circuit. Malformed lengths are rejected before
// any circuit work.
func Assign(key, plaintext []byte) (*aes128.Circuit, error) {
	k, err := toBlock("key", key)
	if err != nil {
		return nil, err
	}
	p, err := toBlock("plaintext", plaintext)
	if err != nil {
		return nil, err
	}

	t := EncryptTrace(k, p)

	a := &aes128.Circuit{}
	for i := 0; i < 16; i++ {
		a.Key[i] = k[i]
		a.Plaintext[i] = p[i]
		a.Ciphertext[i] = t.Ciphertext[i]
	}
	return a, nil
}

// AssignKnownPlaintext is Assign for the public-plaintext statement.
func AssignKnownPlaintext(key, plaintext []byte) (*aes128.KnownPlaintextCircuit, error) {
	a, err := Assign(key, plaintext)
	if err != nil {
		return nil, err
	}
	return &aes128.KnownPlaintextCircuit{
		Key:        a.Key,
		Plaintext:  a.Plaintext,
		Ciphertext: a.Ciphertext,
	}, nil
}

// Ciphertext returns the reference encryption of plaintext under key.
func Ciphertext(key, plaintext []byte) ([]byte, error) {
	k, err := toBlock("key", key)
	if err != nil {
		return nil, err
	}
	p, err := toBlock("plaintext", plaintext)
	if err != nil {
		return nil, err
	}
	t := EncryptTrace(k, p)
	return t.Ciphertext[:], nil
}
