package impl

import "C"
import (
	"bytes"
	"log"

	"gnark-aes-block/witness"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
)

type Prover interface {
	SetParams(r1cs constraint.ConstraintSystem, pk groth16.ProvingKey)
	Prove(params *InputParams) (proof []byte, ciphertext []uint8)
}

type baseProver struct {
	r1cs constraint.ConstraintSystem
	pk   groth16.ProvingKey
}

func (bp *baseProver) SetParams(r1cs constraint.ConstraintSystem, pk groth16.ProvingKey) {
	bp.r1cs = r1cs
	bp.pk = pk
}

func (bp *baseProver) prove(assignment frontend.Circuit) []byte {
	wtns, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		panic(err)
	}
	gProof, err := groth16.Prove(bp.r1cs, bp.pk, wtns)
	if err != nil {
		panic(err)
	}
	buf := &bytes.Buffer{}
	_, err = gProof.WriteTo(buf)
	if err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func checkBlockParams(params *InputParams) {
	if len(params.Key) != 16 {
		log.Panicf("key length must be 16: %d", len(params.Key))
	}
	if len(params.Plaintext) != 16 {
		log.Panicf("plaintext length must be 16: %d", len(params.Plaintext))
	}
}

// AESBlockProver proves the secret-plaintext statement: both key and
// plaintext stay private, the ciphertext is the only public signal.
type AESBlockProver struct {
	baseProver
}

func (ap *AESBlockProver) Prove(params *InputParams) (proof []byte, ciphertext []uint8) {
	checkBlockParams(params)

	ciphertext, err := witness.Ciphertext(params.Key, params.Plaintext)
	if err != nil {
		panic(err)
	}
	assignment, err := witness.Assign(params.Key, params.Plaintext)
	if err != nil {
		panic(err)
	}

	return ap.prove(assignment), ciphertext
}

// AESBlockKnownPtProver proves the known-plaintext statement: the plaintext
// is public, only the key stays private.
type AESBlockKnownPtProver struct {
	baseProver
}

func (ap *AESBlockKnownPtProver) Prove(params *InputParams) (proof []byte, ciphertext []uint8) {
	checkBlockParams(params)

	ciphertext, err := witness.Ciphertext(params.Key, params.Plaintext)
	if err != nil {
		panic(err)
	}
	assignment, err := witness.AssignKnownPlaintext(params.Key, params.Plaintext)
	if err != nil {
		panic(err)
	}

	return ap.prove(assignment), ciphertext
}
