package aes128

import "github.com/consensys/gnark/frontend"

// ShiftRows is a pure wire permutation; no constraints are declared, only the
// relabeling of which cell feeds each downstream gate.
func ShiftRows(state [16]frontend.Variable) (res [16]frontend.Variable) {
	for i, j := range shiftRowsIndex {
		res[i] = state[j]
	}
	return res
}

// MixColumns multiplies each state column by the fixed AES matrix
//
//	2 3 1 1
//	1 2 3 1
//	1 1 2 3
//	3 1 1 2
//
// over GF(2^8), combining the terms with bitwise XOR. Each column byte is
// decomposed once and the 1x/2x/3x terms share that decomposition; this step
// dominates the circuit size.
func (aes *AESGadget) MixColumns(state [16]frontend.Variable) (res [16]frontend.Variable) {
	for c := 0; c < 4; c++ {
		var b, m2, m3 [4][]frontend.Variable
		for r := 0; r < 4; r++ {
			b[r] = aes.api.ToBinary(state[4*c+r], 8)
			m2[r] = aes.mulBy2Bits(b[r])
			m3[r] = aes.xorBits(m2[r], b[r])
		}

		rows := [4][4][]frontend.Variable{
			{m2[0], m3[1], b[2], b[3]},
			{b[0], m2[1], m3[2], b[3]},
			{b[0], b[1], m2[2], m3[3]},
			{m3[0], b[1], b[2], m2[3]},
		}
		for r := 0; r < 4; r++ {
			acc := aes.xorBits(rows[r][0], rows[r][1])
			acc = aes.xorBits(acc, rows[r][2])
			acc = aes.xorBits(acc, rows[r][3])
			res[4*c+r] = aes.api.FromBinary(acc...)
		}
	}
	return res
}

// AddRoundKey XORs the round key into the state byte by byte.
func (aes *AESGadget) AddRoundKey(state [16]frontend.Variable, rk [16]frontend.Variable) (res [16]frontend.Variable) {
	for i := 0; i < 16; i++ {
		res[i] = aes.VariableXor(state[i], rk[i], 8)
	}
	return res
}

// Round applies one full AES round to the state. The final round (round 10)
// omits MixColumns. The choice is structural: the caller instantiates ten
// rounds at definition time, there is no runtime branch in the circuit.
func (aes *AESGadget) Round(state [16]frontend.Variable, rk [16]frontend.Variable, final bool) [16]frontend.Variable {
	s := aes.SubBytes(state)
	s = ShiftRows(s)
	if !final {
		s = aes.MixColumns(s)
	}
	return aes.AddRoundKey(s, rk)
}
