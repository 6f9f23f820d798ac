package libraries

import (
	"sync"
	"testing"

	"gnark-aes-block/circuits/aes128"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/stretchr/testify/require"
)

// Fixture holds one compiled circuit with a fresh groth16 setup. Compilation
// and setup are expensive, each circuit is prepared once per test run.
type Fixture struct {
	R1CS constraint.ConstraintSystem
	PK   groth16.ProvingKey
	VK   groth16.VerifyingKey
}

var (
	blockOnce      sync.Once
	blockFixture   *Fixture
	blockErr       error
	knownPtOnce    sync.Once
	knownPtFixture *Fixture
	knownPtErr     error
)

func newFixture(circuit frontend.Circuit) (*Fixture, error) {
	r1css, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return nil, err
	}
	pk, vk, err := groth16.Setup(r1css)
	if err != nil {
		return nil, err
	}
	return &Fixture{R1CS: r1css, PK: pk, VK: vk}, nil
}

func BlockFixture(t *testing.T) *Fixture {
	blockOnce.Do(func() {
		blockFixture, blockErr = newFixture(&aes128.Circuit{})
	})
	require.NoError(t, blockErr)
	return blockFixture
}

func KnownPtFixture(t *testing.T) *Fixture {
	knownPtOnce.Do(func() {
		knownPtFixture, knownPtErr = newFixture(&aes128.KnownPlaintextCircuit{})
	})
	require.NoError(t, knownPtErr)
	return knownPtFixture
}
