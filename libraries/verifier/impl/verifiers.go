package impl

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gnark-aes-block/circuits/aes128"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
)

type Verifier interface {
	Verify(proof []byte, publicSignals json.RawMessage) bool
}

// AESBlockVerifier rebuilds the public witness (ciphertext only) and runs the
// groth16 pairing check.
type AESBlockVerifier struct {
	vk groth16.VerifyingKey
}

func NewAESBlockVerifier(vk groth16.VerifyingKey) *AESBlockVerifier {
	return &AESBlockVerifier{vk: vk}
}

func (av *AESBlockVerifier) Verify(bProof []byte, publicSignals json.RawMessage) bool {
	var signals PublicSignalsJSON
	err := json.Unmarshal(publicSignals, &signals)
	if err != nil {
		fmt.Printf("failed to parse public signals JSON: %v\n", err)
		return false
	}

	if len(signals.Ciphertext) != 16 {
		fmt.Printf("ciphertext must be 16 bytes, not %d\n", len(signals.Ciphertext))
		return false
	}

	wtns := &aes128.Circuit{}
	for i := 0; i < 16; i++ {
		wtns.Ciphertext[i] = signals.Ciphertext[i]
	}

	return verifyWitness(av.vk, bProof, wtns)
}

// AESBlockKnownPtVerifier additionally binds the public plaintext.
type AESBlockKnownPtVerifier struct {
	vk groth16.VerifyingKey
}

func NewAESBlockKnownPtVerifier(vk groth16.VerifyingKey) *AESBlockKnownPtVerifier {
	return &AESBlockKnownPtVerifier{vk: vk}
}

func (av *AESBlockKnownPtVerifier) Verify(bProof []byte, publicSignals json.RawMessage) bool {
	var signals PublicSignalsJSON
	err := json.Unmarshal(publicSignals, &signals)
	if err != nil {
		fmt.Printf("failed to parse public signals JSON: %v\n", err)
		return false
	}

	if len(signals.Ciphertext) != 16 {
		fmt.Printf("ciphertext must be 16 bytes, not %d\n", len(signals.Ciphertext))
		return false
	}
	if len(signals.Plaintext) != 16 {
		fmt.Printf("plaintext must be 16 bytes, not %d\n", len(signals.Plaintext))
		return false
	}

	wtns := &aes128.KnownPlaintextCircuit{}
	for i := 0; i < 16; i++ {
		wtns.Plaintext[i] = signals.Plaintext[i]
		wtns.Ciphertext[i] = signals.Ciphertext[i]
	}

	return verifyWitness(av.vk, bProof, wtns)
}

func verifyWitness(vk groth16.VerifyingKey, bProof []byte, circuit frontend.Circuit) bool {
	wtns, err := frontend.NewWitness(circuit, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		fmt.Println(err)
		return false
	}

	gProof := groth16.NewProof(ecc.BN254)
	_, err = gProof.ReadFrom(bytes.NewBuffer(bProof))
	if err != nil {
		fmt.Println(err)
		return false
	}
	err = groth16.Verify(gProof, vk, wtns)
	if err != nil {
		fmt.Println(err)
		return false
	}
	return true
}
