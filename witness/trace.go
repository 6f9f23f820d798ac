// Package witness computes the complete assignment for the AES-128 block
// circuit by executing the reference cipher and recording every intermediate
// state the circuit declares cells for. The S-box is derived from its
// algebraic definition here, independently of the hardcoded circuit table.
package witness

// sbox is filled by init from the standard definition: multiplicative inverse
// in GF(2^8) followed by the affine transform.
var sbox [256]byte

func init() {
	p, q := byte(1), byte(1)
	for {
		// p runs over GF(2^8)* via multiplication by 3, q tracks its inverse
		p = p ^ gmul2(p)
		q ^= q << 1
		q ^= q << 2
		q ^= q << 4
		if q&0x80 != 0 {
			q ^= 0x09
		}
		sbox[p] = q ^ rotl8(q, 1) ^ rotl8(q, 2) ^ rotl8(q, 3) ^ rotl8(q, 4) ^ 0x63
		if p == 1 {
			break
		}
	}
	sbox[0] = 0x63
}

func rotl8(x byte, n uint) byte {
	return x<<n | x>>(8-n)
}

// gmul2 doubles in GF(2^8), reducing by the AES polynomial 0x11B when the top
// bit is set.
func gmul2(x byte) byte {
	if x&0x80 != 0 {
		return x<<1 ^ 0x1b
	}
	return x << 1
}

func gmul3(x byte) byte {
	return gmul2(x) ^ x
}

// SBox exposes the derived S-box row for the given input byte.
func SBox(x byte) byte {
	return sbox[x]
}

var rcon = [11]byte{0x8d, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36}

// shiftRowsIndex matches the circuit's wire permutation: output cell i reads
// input cell shiftRowsIndex[i] of the column-major state.
var shiftRowsIndex = [16]int{0, 5, 10, 15, 4, 9, 14, 3, 8, 13, 2, 7, 12, 1, 6, 11}

// Trace records every sub-step state of one block encryption, mirroring the
// circuit's decomposition round for round. Index r of the per-round arrays
// holds round r+1.
type Trace struct {
	RoundKeys        [11][16]byte
	AfterSubBytes    [10][16]byte
	AfterShiftRows   [10][16]byte
	AfterMixColumns  [9][16]byte
	AfterAddRoundKey [11][16]byte // index 0 is the initial whitening
	Ciphertext       [16]byte
}

// ExpandKey derives the 11 round keys of AES-128.
func ExpandKey(key [16]byte) [11][16]byte {
	var xk [11][16]byte
	xk[0] = key

	for i := 1; i <= 10; i++ {
		prev := xk[i-1]

		w := [4]byte{
			sbox[prev[13]] ^ rcon[i],
			sbox[prev[14]],
			sbox[prev[15]],
			sbox[prev[12]],
		}
		for j := 0; j < 4; j++ {
			xk[i][j] = prev[j] ^ w[j]
		}
		for word := 1; word < 4; word++ {
			for j := 0; j < 4; j++ {
				xk[i][word*4+j] = prev[word*4+j] ^ xk[i][(word-1)*4+j]
			}
		}
	}
	return xk
}

func subBytes(s [16]byte) (out [16]byte) {
	for i, b := range s {
		out[i] = sbox[b]
	}
	return out
}

func shiftRows(s [16]byte) (out [16]byte) {
	for i, j := range shiftRowsIndex {
		out[i] = s[j]
	}
	return out
}

func mixColumns(s [16]byte) (out [16]byte) {
	for c := 0; c < 4; c++ {
		a0, a1, a2, a3 := s[4*c], s[4*c+1], s[4*c+2], s[4*c+3]
		out[4*c+0] = gmul2(a0) ^ gmul3(a1) ^ a2 ^ a3
		out[4*c+1] = a0 ^ gmul2(a1) ^ gmul3(a2) ^ a3
		out[4*c+2] = a0 ^ a1 ^ gmul2(a2) ^ gmul3(a3)
		out[4*c+3] = gmul3(a0) ^ a1 ^ a2 ^ gmul2(a3)
	}
	return out
}

func addRoundKey(s, rk [16]byte) (out [16]byte) {
	for i := range s {
		out[i] = s[i] ^ rk[i]
	}
	return out
}

// EncryptTrace runs the reference encryption and records all intermediate
// states.
func EncryptTrace(key, plaintext [16]byte) *Trace {
	t := &Trace{RoundKeys: ExpandKey(key)}

	state := addRoundKey(plaintext, t.RoundKeys[0])
	t.AfterAddRoundKey[0] = state

	for round := 1; round <= 10; round++ {
		state = subBytes(state)
		t.AfterSubBytes[round-1] = state

		state = shiftRows(state)
		t.AfterShiftRows[round-1] = state

		if round < 10 {
			state = mixColumns(state)
			t.AfterMixColumns[round-1] = state
		}

		state = addRoundKey(state, t.RoundKeys[round])
		t.AfterAddRoundKey[round] = state
	}

	t.Ciphertext = state
	return t
}
