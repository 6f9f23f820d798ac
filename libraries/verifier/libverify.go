package main

import (
	"unsafe"

	"gnark-aes-block/libraries/verifier/impl"
)

// #include <stdlib.h>
import (
	"C"
)

func main() {}

//export InitVerifier
func InitVerifier(algorithmID uint8, vk []byte) bool {
	return impl.InitVerifier(algorithmID, vk)
}

//export Verify
func Verify(params []byte) bool {
	return impl.Verify(params)
}

//export VFree
func VFree(pointer unsafe.Pointer) {
	C.free(pointer)
}
