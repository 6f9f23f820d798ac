package aes128

func gmul2(x byte) byte {
	if x&0x80 != 0 {
		return x<<1 ^ 0x1b
	}
	return x << 1
}

func gmul3(x byte) byte {
	return gmul2(x) ^ x
}
