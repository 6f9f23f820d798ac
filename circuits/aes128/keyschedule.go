package aes128

import (
	"errors"

	"github.com/consensys/gnark/frontend"
)

// ExpandKey derives the eleven round keys from the 16 master key cells.
// Round key 0 is the master key itself. For every later round key the first
// word is RotWord (a wire re-indexing of the previous last word), SubWord via
// four S-box lookups and an Rcon XOR into the first byte, chained with the
// first word of the previous round key; the remaining three words each XOR
// the prior word with the matching word of the previous round key.
func (aes *AESGadget) ExpandKey(key []frontend.Variable) ([11][16]frontend.Variable, error) {
	var xk [11][16]frontend.Variable

	if len(key) != 16 {
		return xk, errors.New("key size must be 16")
	}

	copy(xk[0][:], key)

	for i := 1; i <= 10; i++ {
		prev := xk[i-1]

		// RotWord: the previous last word rotated left by one byte
		t0, t1, t2, t3 := prev[13], prev[14], prev[15], prev[12]

		tt := aes.Subws(t0, t1, t2, t3)

		// the round constant is a fixed public value, folded into the
		// first byte only
		w := [4]frontend.Variable{
			aes.VariableXor(tt[0], aes.RCon[i], 8),
			tt[1], tt[2], tt[3],
		}

		for j := 0; j < 4; j++ {
			xk[i][j] = aes.VariableXor(prev[j], w[j], 8)
		}
		for word := 1; word < 4; word++ {
			for j := 0; j < 4; j++ {
				xk[i][word*4+j] = aes.VariableXor(prev[word*4+j], xk[i][(word-1)*4+j], 8)
			}
		}
	}

	return xk, nil
}
