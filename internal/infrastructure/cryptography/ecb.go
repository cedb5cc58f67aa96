package cryptography

import "crypto/cipher"

// ecbMode applies the block cipher to each block independently. It satisfies
// cipher.BlockMode so it can be swapped with the CBC encrypter and decrypter.
type ecbMode struct {
	block   cipher.Block
	decrypt bool
}

func newECBEncrypter(block cipher.Block) cipher.BlockMode {
	return &ecbMode{block: block}
}

func newECBDecrypter(block cipher.Block) cipher.BlockMode {
	return &ecbMode{block: block, decrypt: true}
}

func (m *ecbMode) BlockSize() int {
	return m.block.BlockSize()
}

func (m *ecbMode) CryptBlocks(dst, src []byte) {
	size := m.block.BlockSize()
	if len(src)%size != 0 {
		panic("cryptography: ECB input not full blocks")
	}
	if len(dst) < len(src) {
		panic("cryptography: ECB output smaller than input")
	}

	for start := 0; start < len(src); start += size {
		end := start + size
		if m.decrypt {
			m.block.Decrypt(dst[start:end], src[start:end])
		} else {
			m.block.Encrypt(dst[start:end], src[start:end])
		}
	}
}
