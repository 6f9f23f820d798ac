package aes128

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/test"
)

// gfMulCircuit checks the doubling and tripling gates over every byte value
// in a single proof.
type gfMulCircuit struct {
	In   [256]frontend.Variable
	Mul2 [256]frontend.Variable `gnark:",public"`
	Mul3 [256]frontend.Variable `gnark:",public"`
}

func (c *gfMulCircuit) Define(api frontend.API) error {
	gAes := NewAESGadget(api)
	for i := 0; i < 256; i++ {
		api.AssertIsEqual(c.Mul2[i], gAes.MulBy2(c.In[i]))
		api.AssertIsEqual(c.Mul3[i], gAes.MulBy3(c.In[i]))
	}
	return nil
}

func TestGFMul(t *testing.T) {
	assert := test.NewAssert(t)

	valid := &gfMulCircuit{}
	for i := 0; i < 256; i++ {
		valid.In[i] = i
		valid.Mul2[i] = gmul2(byte(i))
		valid.Mul3[i] = gmul3(byte(i))
	}

	// overflow boundary: 0x80 reduces to 0x1b, 0x01 stays unreduced
	if gmul2(0x80) != 0x1b || gmul2(0x01) != 0x02 {
		t.Fatal("reference gmul2 is broken")
	}

	tampered := *valid
	tampered.Mul2[0x80] = 0x100 // unreduced doubling, must be rejected

	assert.CheckCircuit(&gfMulCircuit{},
		test.WithValidAssignment(valid),
		test.WithInvalidAssignment(&tampered),
		test.WithCurves(ecc.BN254),
		test.WithBackends(backend.GROTH16))
}

// sboxCircuit runs every row of the lookup table through Subws.
type sboxCircuit struct {
	In  [256]frontend.Variable
	Out [256]frontend.Variable `gnark:",public"`
}

func (c *sboxCircuit) Define(api frontend.API) error {
	gAes := NewAESGadget(api)
	res := gAes.Subws(c.In[:]...)
	for i := 0; i < 256; i++ {
		api.AssertIsEqual(c.Out[i], res[i])
	}
	return nil
}

func TestSubBytesLookup(t *testing.T) {
	assert := test.NewAssert(t)

	valid := &sboxCircuit{}
	for i := 0; i < 256; i++ {
		valid.In[i] = i
		valid.Out[i] = sboxTable[i]
	}

	tampered := *valid
	tampered.Out[0x53] = sboxTable[0x53] ^ 1

	outOfRange := *valid
	outOfRange.In[0] = 256
	outOfRange.Out[0] = sboxTable[0]

	assert.CheckCircuit(&sboxCircuit{},
		test.WithValidAssignment(valid),
		test.WithInvalidAssignment(&tampered),
		test.WithInvalidAssignment(&outOfRange),
		test.WithCurves(ecc.BN254),
		test.WithBackends(backend.GROTH16))
}

// circuits using only the byte gates must compile without the S-box table
// being committed
func TestCompileWithoutSbox(t *testing.T) {
	curve := ecc.BN254.ScalarField()

	if _, err := frontend.Compile(curve, r1cs.NewBuilder, &gfMulCircuit{}); err != nil {
		t.Fatal(err)
	}
	if _, err := frontend.Compile(curve, r1cs.NewBuilder, &xorCircuit{}); err != nil {
		t.Fatal(err)
	}
}

type xorCircuit struct {
	A   [8]frontend.Variable
	B   [8]frontend.Variable
	Out [8]frontend.Variable `gnark:",public"`
}

func (c *xorCircuit) Define(api frontend.API) error {
	gAes := NewAESGadget(api)
	for i := range c.A {
		api.AssertIsEqual(c.Out[i], gAes.VariableXor(c.A[i], c.B[i], 8))
	}
	return nil
}

func TestVariableXor(t *testing.T) {
	assert := test.NewAssert(t)

	a := [8]byte{0x00, 0xff, 0xff, 0x53, 0xca, 0x01, 0x80, 0xaa}
	b := [8]byte{0x00, 0xff, 0x00, 0xca, 0x53, 0x80, 0x01, 0x55}

	valid := &xorCircuit{}
	for i := range a {
		valid.A[i] = a[i]
		valid.B[i] = b[i]
		valid.Out[i] = a[i] ^ b[i]
	}

	// XOR in the circuit must not degrade to field addition
	additive := *valid
	additive.A[0] = 0x0f
	additive.B[0] = 0x0f
	additive.Out[0] = 0x1e

	assert.CheckCircuit(&xorCircuit{},
		test.WithValidAssignment(valid),
		test.WithInvalidAssignment(&additive),
		test.WithCurves(ecc.BN254),
		test.WithBackends(backend.GROTH16))
}
