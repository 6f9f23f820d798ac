package impl

import (
	"bytes"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"sync"

	"gnark-aes-block/utils"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/logger"
	"github.com/consensys/gnark/std"
)

const (
	AES_128_BLOCK          = 0
	AES_128_BLOCK_KNOWN_PT = 1
)

var algorithmNames = map[uint8]string{
	AES_128_BLOCK:          "aes-128-block",
	AES_128_BLOCK_KNOWN_PT: "aes-128-block-known-pt",
}

// the hashes pin the exact artifacts produced by keygen; keygen rewrites them
// in place after every setup
var provers = map[string]*ProverParams{
	"aes-128-block": {
		KeyHash:     "8c4f3f8ae2b9145c2e0334a45bc9db6c76a77ea54b1e8f7a92c95d1f1a6a1f30",
		CircuitHash: "41e29bb40b8e0d935c18e54ddf4eca66ab4b5ff0f1a9d43f2c1a7c1e9b2c8e11",
		Prover:      &AESBlockProver{},
	},
	"aes-128-block-known-pt": {
		KeyHash:     "f1aa3c09f34a2a9d2be6c9c7c7f0fddc7e2fa0f31772cd7e48f9b64ad2a1be77",
		CircuitHash: "0c84a9bf59e0f5deb2a7bfc3a80d4a70c86aed11d13be72d9b70cc9cf2a6b1d9",
		Prover:      &AESBlockKnownPtProver{},
	},
}

// InputParams is the JSON request accepted by Prove. Key and plaintext are
// the private witness; the ciphertext is recomputed by the prover and
// returned as the public signal.
type InputParams struct {
	Cipher    string  `json:"cipher"`
	Key       []uint8 `json:"key"`
	Plaintext []uint8 `json:"plaintext"`
}

type OutputParams struct {
	Proof         []uint8 `json:"proof"`
	PublicSignals []uint8 `json:"publicSignals"`
}

type ProverParams struct {
	Prover
	KeyHash     string
	CircuitHash string
	initDone    bool
	initLock    sync.Mutex
}

func init() {
	logger.Disable()
	std.RegisterHints()
}

// InitAlgorithm checks the pinned hashes of the proving key and constraint
// system, deserializes them and arms the prover for the given algorithm.
func InitAlgorithm(algorithmID uint8, provingKey []byte, r1csData []byte) (res bool) {
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
	proverParams := provers[alg]
	proverParams.initLock.Lock()
	defer proverParams.initLock.Unlock()
	if proverParams.initDone {
		return true
	}

	inHash := sha256.Sum256(provingKey)
	keyHash := utils.MustHex(proverParams.KeyHash)

	if subtle.ConstantTimeCompare(inHash[:], keyHash) != 1 {
		fmt.Printf("incorrect key hash %0x expected %0x \n", inHash[:], keyHash)
		return false
	}

	pkey := groth16.NewProvingKey(ecc.BN254)
	_, err := pkey.ReadFrom(bytes.NewBuffer(provingKey))
	if err != nil {
		fmt.Println(fmt.Errorf("error reading proving key: %v", err))
		return false
	}

	inHash = sha256.Sum256(r1csData)
	circuitHash := utils.MustHex(proverParams.CircuitHash)

	if subtle.ConstantTimeCompare(inHash[:], circuitHash) != 1 {
		fmt.Println(fmt.Errorf("circuit hash mismatch, expected %0x, got %0x", circuitHash, inHash[:]))
		return false
	}

	var r1cs constraint.ConstraintSystem = groth16.NewCS(ecc.BN254)
	_, err = r1cs.ReadFrom(bytes.NewBuffer(r1csData))
	if err != nil {
		fmt.Println(fmt.Errorf("error reading r1cs: %v", err))
		return false
	}

	proverParams.SetParams(r1cs, pkey)
	proverParams.initDone = true
	fmt.Println("Initialized", alg)
	return true
}

// Prove parses JSON input params, proves the matching statement and returns
// the proof plus the public ciphertext bytes. A witness violating the
// declared constraints surfaces as a backend error; it is never masked or
// retried.
func Prove(params []byte) []byte {
	var inputParams *InputParams
	err := json.Unmarshal(params, &inputParams)
	if err != nil {
		panic(err)
	}

	prover, ok := provers[inputParams.Cipher]
	if !ok {
		panic("could not find prover for " + inputParams.Cipher)
	}
	if !prover.initDone {
		panic(fmt.Sprintf("proving params are not initialized for cipher: %s", inputParams.Cipher))
	}

	proof, ciphertext := prover.Prove(inputParams)
	res, err := json.Marshal(&OutputParams{
		Proof:         proof,
		PublicSignals: ciphertext,
	})
	if err != nil {
		panic(err)
	}
	return res
}

// ProveAES128Block proves single-block encryption with a secret key and
// plaintext.
func ProveAES128Block(key []byte, plaintext []byte) []byte {
	return proveNamed("aes-128-block", key, plaintext)
}

// ProveAES128BlockKnownPt proves knowledge of a key for a known
// plaintext/ciphertext pair.
func ProveAES128BlockKnownPt(key []byte, plaintext []byte) []byte {
	return proveNamed("aes-128-block-known-pt", key, plaintext)
}

func proveNamed(cipher string, key, plaintext []byte) []byte {
	buf, err := json.Marshal(&InputParams{
		Cipher:    cipher,
		Key:       key,
		Plaintext: plaintext,
	})
	if err != nil {
		panic(err)
	}
	return Prove(buf)
}
