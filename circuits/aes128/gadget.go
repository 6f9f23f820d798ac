package aes128

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/lookup/logderivlookup"
)

// AESGadget bundles the shared S-box lookup table and the byte-level gates
// (XOR, GF(2^8) multiplication) the key schedule and the round function are
// built from. One gadget instance is shared across all ten rounds so the
// proving system sees a single table commitment.
type AESGadget struct {
	api  frontend.API
	sbox *logderivlookup.Table
	RCon [11]frontend.Variable
}

// returns AESGadget instance which can be used inside a circuit
func NewAESGadget(api frontend.API) AESGadget {
	RCon := [11]frontend.Variable{0x8d, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36}

	return AESGadget{api: api, RCon: RCon}
}

// sboxLookup builds the table on first use; a committed table with zero
// queries does not compile, so circuits using only the byte gates must not
// pay for it.
func (aes *AESGadget) sboxLookup(a ...frontend.Variable) []frontend.Variable {
	if aes.sbox == nil {
		aes.sbox = logderivlookup.New(aes.api)
		for i := 0; i < 256; i++ {
			aes.sbox.Insert(sboxTable[i])
		}
	}
	return aes.sbox.Lookup(a...)
}

// SubBytes substitutes all 16 state bytes through the S-box lookup table.
// The lookup argument is the sole mechanism binding input and output byte;
// it also proves the input lies in [0,255].
func (aes *AESGadget) SubBytes(state [16]frontend.Variable) (res [16]frontend.Variable) {
	t := aes.sboxLookup(state[:]...)
	copy(res[:], t)
	return res
}

// Subws substitutes an arbitrary run of bytes, used by SubWord in the key
// schedule.
func (aes *AESGadget) Subws(a ...frontend.Variable) []frontend.Variable {
	return aes.sboxLookup(a...)
}

// VariableXor computes the bitwise XOR of two variables over their size-bit
// decompositions. Field addition does not equal XOR, so every byte XOR in the
// circuit goes through here.
func (aes *AESGadget) VariableXor(a frontend.Variable, b frontend.Variable, size int) frontend.Variable {
	bitsA := aes.api.ToBinary(a, size)
	bitsB := aes.api.ToBinary(b, size)
	return aes.api.FromBinary(aes.xorBits(bitsA, bitsB)...)
}

func (aes *AESGadget) xorBits(a, b []frontend.Variable) []frontend.Variable {
	x := make([]frontend.Variable, len(a))
	for i := range a {
		x[i] = aes.api.Xor(a[i], b[i])
	}
	return x
}

// mulBy2Bits doubles a byte in GF(2^8) over its existing 8-bit decomposition:
// shift left by one and, when the dropped top bit is set, reduce by the AES
// polynomial 0x11B, i.e. XOR the low byte 0x1B into the shifted value.
func (aes *AESGadget) mulBy2Bits(bits []frontend.Variable) []frontend.Variable {
	top := bits[7]
	out := make([]frontend.Variable, 8)
	out[0] = top
	out[1] = aes.api.Xor(bits[0], top)
	out[2] = bits[1]
	out[3] = aes.api.Xor(bits[2], top)
	out[4] = aes.api.Xor(bits[3], top)
	out[5] = bits[4]
	out[6] = bits[5]
	out[7] = bits[6]
	return out
}

// mulBy3Bits computes 3x = 2x XOR x over the operand's decomposition.
func (aes *AESGadget) mulBy3Bits(bits []frontend.Variable) []frontend.Variable {
	return aes.xorBits(aes.mulBy2Bits(bits), bits)
}

// MulBy2 is the byte-level GF(2^8) doubling gate.
func (aes *AESGadget) MulBy2(x frontend.Variable) frontend.Variable {
	return aes.api.FromBinary(aes.mulBy2Bits(aes.api.ToBinary(x, 8))...)
}

// MulBy3 is the byte-level GF(2^8) multiplication by 3.
func (aes *AESGadget) MulBy3(x frontend.Variable) frontend.Variable {
	return aes.api.FromBinary(aes.mulBy3Bits(aes.api.ToBinary(x, 8))...)
}
