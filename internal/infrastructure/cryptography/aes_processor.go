package cryptography

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/logger"
)

// aesProcessor struct that implements the AESProcessor interface
type aesProcessor struct {
	logger logger.Logger
	random io.Reader
}

// NewAESProcessor creates and returns a new instance of aesProcessor backed by crypto/rand
func NewAESProcessor(logger logger.Logger) (cryptoalg.AESProcessor, error) {
	return NewAESProcessorWithRandom(logger, rand.Reader)
}

// NewAESProcessorWithRandom is NewAESProcessor with an explicit random source
func NewAESProcessorWithRandom(logger logger.Logger, random io.Reader) (cryptoalg.AESProcessor, error) {
	if random == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	return &aesProcessor{
		logger: logger,
		random: random,
	}, nil
}

// GenerateKey returns keySize random bytes. Supported sizes are 16, 24 and 32.
func (a *aesProcessor) GenerateKey(keySize int) ([]byte, error) {
	if keySize != 16 && keySize != 24 && keySize != 32 {
		return nil, fmt.Errorf("%d bytes: %w", keySize, cryptoalg.ErrInvalidKeySize)
	}

	key, err := a.readRandom(keySize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate AES key: %w", err)
	}

	a.logger.Info(fmt.Sprintf("Generated AES-%d key", keySize*8))
	return key, nil
}

// GenerateIV returns a random 16-byte initialization vector
func (a *aesProcessor) GenerateIV() ([]byte, error) {
	iv, err := a.readRandom(aes.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate IV: %w", err)
	}
	return iv, nil
}

func (a *aesProcessor) readRandom(n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(a.random, buf)
	if read != n {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("%w: got %d of %d bytes: %v", cryptoalg.ErrRandomSourceShortRead, read, n, err)
	}
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Encrypt pads data with PKCS#7 and encrypts it with AES in the given mode
func (a *aesProcessor) Encrypt(data, key, iv []byte, mode cryptoalg.Mode) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	encrypter, err := newBlockMode(block, iv, mode, false)
	if err != nil {
		return nil, err
	}

	padder := &pkcs7Padder{blockSize: block.BlockSize()}
	padded := padder.Pad(data)

	ciphertext := make([]byte, len(padded))
	encrypter.CryptBlocks(ciphertext, padded)

	a.logger.Info(fmt.Sprintf("AES-%d-%s encryption succeeded", len(key)*8, mode))
	return ciphertext, nil
}

// Decrypt decrypts ciphertext with AES in the given mode and strips PKCS#7 padding
func (a *aesProcessor) Decrypt(ciphertext, key, iv []byte, mode cryptoalg.Mode) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	if len(ciphertext) == 0 || len(ciphertext)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("ciphertext length %d is not a positive multiple of %d", len(ciphertext), block.BlockSize())
	}

	decrypter, err := newBlockMode(block, iv, mode, true)
	if err != nil {
		return nil, err
	}

	plaintext := make([]byte, len(ciphertext))
	decrypter.CryptBlocks(plaintext, ciphertext)

	padder := &pkcs7Padder{blockSize: block.BlockSize()}
	unpadded, err := padder.Unpad(plaintext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt data: %w", err)
	}

	a.logger.Info(fmt.Sprintf("AES-%d-%s decryption succeeded", len(key)*8, mode))
	return unpadded, nil
}

func newBlockMode(block cipher.Block, iv []byte, mode cryptoalg.Mode, decrypt bool) (cipher.BlockMode, error) {
	switch mode {
	case cryptoalg.ModeCBC:
		if len(iv) != block.BlockSize() {
			return nil, fmt.Errorf("IV must be %d bytes, got %d", block.BlockSize(), len(iv))
		}
		if decrypt {
			return cipher.NewCBCDecrypter(block, iv), nil
		}
		return cipher.NewCBCEncrypter(block, iv), nil
	case cryptoalg.ModeECB:
		if decrypt {
			return newECBDecrypter(block), nil
		}
		return newECBEncrypter(block), nil
	default:
		return nil, fmt.Errorf("%q: %w", mode, cryptoalg.ErrUnsupportedMode)
	}
}
