package main

import (
	"fmt"
	"gnark-aes-block/circuits/aes128"
	"os"

	"github.com/PolyhedraZK/ExpanderCompilerCollection/ecgo"
	"github.com/consensys/gnark-crypto/ecc"
)

const GEN_FILES_DIR = "../resources/expander/"

func main() {
	err := generateAES128Block()
	if err != nil {
		panic(err)
	}
}

func generateAES128Block() error {
	circuit, err := ecgo.Compile(ecc.BN254.ScalarField(), &aes128.Circuit{})
	if err != nil {
		return err
	}

	c := circuit.GetLayeredCircuit()

	circuitfilename := GEN_FILES_DIR + "aes128_block.txt"
	err = os.WriteFile(circuitfilename, c.Serialize(), 0o644)
	if err != nil {
		return err
	}

	fmt.Printf("generated circuit file: %s\n", circuitfilename)

	return nil
}
