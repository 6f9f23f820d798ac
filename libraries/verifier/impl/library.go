package impl

import (
	"bytes"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/logger"
)

const (
	AES_128_BLOCK          = 0
	AES_128_BLOCK_KNOWN_PT = 1
)

var algorithmNames = map[uint8]string{
	AES_128_BLOCK:          "aes-128-block",
	AES_128_BLOCK_KNOWN_PT: "aes-128-block-known-pt",
}

// verifying keys are keygen artifacts loaded at startup; the pinned hashes
// are rewritten by keygen together with the prover ones
var vkHashes = map[string]string{
	"aes-128-block":          "5b3e4c4cfb78d9c55d0fbc2a3b3a89f1e7f6d3827c06a5a1c2d90b7e4f8a6630",
	"aes-128-block-known-pt": "9d21f6a8a4a0de60b1c6cd1e2f3b8a97c5e4f98813aa7bd2f0c6742e4b1d5aa2",
}

var verifiers = make(map[string]Verifier)
var initLock sync.Mutex

func init() {
	logger.Disable()
}

// InputVerifyParams is the JSON request accepted by Verify.
type InputVerifyParams struct {
	Cipher        string          `json:"cipher"`
	Proof         []uint8         `json:"proof"`
	PublicSignals json.RawMessage `json:"publicSignals"`
}

// PublicSignalsJSON carries the public inputs in standard AES byte order,
// most-significant byte first. Plaintext is present only for the
// known-plaintext statement.
type PublicSignalsJSON struct {
	Ciphertext []uint8 `json:"ciphertext"`
	Plaintext  []uint8 `json:"plaintext,omitempty"`
}

// InitVerifier pins and loads the verifying key for one algorithm.
func InitVerifier(algorithmID uint8, vkData []byte) (res bool) {
	defer func() {
		if err := recover(); err != nil {
			fmt.Println(err)
			res = false
		}
	}()

	alg, ok := algorithmNames[algorithmID]
	if !ok {
		return false
	}

	initLock.Lock()
	defer initLock.Unlock()
	if _, done := verifiers[alg]; done {
		return true
	}

	inHash := sha256.Sum256(vkData)
	wantHash, err := hex.DecodeString(vkHashes[alg])
	if err != nil {
		panic(err)
	}
	if subtle.ConstantTimeCompare(inHash[:], wantHash) != 1 {
		fmt.Printf("incorrect vk hash %0x expected %0x \n", inHash[:], wantHash)
		return false
	}

	vk := groth16.NewVerifyingKey(ecc.BN254)
	_, err = vk.ReadFrom(bytes.NewBuffer(vkData))
	if err != nil {
		panic(err)
	}

	switch algorithmID {
	case AES_128_BLOCK:
		verifiers[alg] = &AESBlockVerifier{vk: vk}
	case AES_128_BLOCK_KNOWN_PT:
		verifiers[alg] = &AESBlockKnownPtVerifier{vk: vk}
	}
	return true
}

// Verify checks a proof against its public signals. Any malformed input or
// failed pairing check yields false, never a partial result.
func Verify(params []byte) (res bool) {
	defer func() {
		if err := recover(); err != nil {
			fmt.Println(err)
			res = false
		}
	}()

	var inputParams *InputVerifyParams
	err := json.Unmarshal(params, &inputParams)
	if err != nil {
		fmt.Println(err)
		return false
	}

	if verifier, ok := verifiers[inputParams.Cipher]; ok {
		return verifier.Verify(inputParams.Proof, inputParams.PublicSignals)
	}
	return false
}

// VerifyAES128Block verifies a secret-plaintext proof against the public
// ciphertext.
func VerifyAES128Block(proof []byte, ciphertext []byte) bool {
	return verifyNamed("aes-128-block", proof, &PublicSignalsJSON{Ciphertext: ciphertext})
}

// VerifyAES128BlockKnownPt verifies a known-plaintext proof against the
// public plaintext/ciphertext pair.
func VerifyAES128BlockKnownPt(proof []byte, plaintext, ciphertext []byte) bool {
	return verifyNamed("aes-128-block-known-pt", proof, &PublicSignalsJSON{
		Ciphertext: ciphertext,
		Plaintext:  plaintext,
	})
}

func verifyNamed(cipher string, proof []byte, signals *PublicSignalsJSON) bool {
	publicSignals, err := json.Marshal(signals)
	if err != nil {
		return false
	}
	buf, err := json.Marshal(&InputVerifyParams{
		Cipher:        cipher,
		Proof:         proof,
		PublicSignals: publicSignals,
	})
	if err != nil {
		return false
	}
	return Verify(buf)
}
