// Package aes128 expresses single-block AES-128 encryption as a gnark
// circuit: the prover knows a key and plaintext that encrypt to the public
// ciphertext. SubBytes is a lookup argument against a fixed S-box table,
// ShiftRows a wire permutation, MixColumns a GF(2^8) linear combination over
// bit decompositions and AddRoundKey a bitwise XOR, per FIPS-197.
package aes128

import "github.com/consensys/gnark/frontend"

// Circuit proves knowledge of a key and plaintext encrypting to the public
// ciphertext.
type Circuit struct {
	Key        [16]frontend.Variable
	Plaintext  [16]frontend.Variable
	Ciphertext [16]frontend.Variable `gnark:",public"`
}

func (c *Circuit) Define(api frontend.API) error {
	return defineEncrypt(api, c.Key, c.Plaintext, c.Ciphertext)
}

// KnownPlaintextCircuit proves knowledge of a key for a known
// plaintext/ciphertext pair; only the key stays private.
type KnownPlaintextCircuit struct {
	Key        [16]frontend.Variable
	Plaintext  [16]frontend.Variable `gnark:",public"`
	Ciphertext [16]frontend.Variable `gnark:",public"`
}

func (c *KnownPlaintextCircuit) Define(api frontend.API) error {
	return defineEncrypt(api, c.Key, c.Plaintext, c.Ciphertext)
}

// defineEncrypt declares the full encryption: initial AddRoundKey, nine full
// rounds, the final round without MixColumns, then equality constraints
// binding the last state to the public ciphertext cells.
func defineEncrypt(api frontend.API, key, pt, ct [16]frontend.Variable) error {
	gAes := NewAESGadget(api)

	xk, err := gAes.ExpandKey(key[:])
	if err != nil {
		return err
	}

	state := gAes.AddRoundKey(pt, xk[0])
	for round := 1; round <= 10; round++ {
		state = gAes.Round(state, xk[round], round == 10)
	}

	for i := 0; i < 16; i++ {
		api.AssertIsEqual(ct[i], state[i])
	}
	return nil
}
