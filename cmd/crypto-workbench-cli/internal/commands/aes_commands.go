package commands

import (
	"fmt"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/codec"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// AESCommandHandler encapsulates logic for handling AES operations via CLI.
type AESCommandHandler struct {
	aesService workbench.AESService
	logger     logger.Logger
}

// NewAESCommandHandler returns an AESCommandHandler backed by the toolkit's AES service.
func NewAESCommandHandler(toolkit *Toolkit) (*AESCommandHandler, error) {
	if toolkit == nil || toolkit.AES == nil {
		return nil, fmt.Errorf("AES service cannot be nil")
	}
	return &AESCommandHandler{
		aesService: toolkit.AES,
		logger:     toolkit.Logger,
	}, nil
}

// EncryptAESCmd encrypts text or a file. A missing key or IV is generated and printed.
func (commandHandler *AESCommandHandler) EncryptAESCmd(cmd *cobra.Command, _ []string) error {
	plaintext, err := readContent(cmd, "text", "input-file")
	if err != nil {
		return err
	}
	keySize, mode, keyEncoding, err := aesParameters(cmd)
	if err != nil {
		return err
	}
	outputEncoding, err := encodingFlag(cmd, "output-encoding")
	if err != nil {
		return err
	}
	key, _ := cmd.Flags().GetString("key")
	iv, _ := cmd.Flags().GetString("iv")

	result, err := commandHandler.aesService.Encrypt(cmd.Context(), &workbench.AESEncryptRequest{
		Plaintext:      plaintext,
		KeySize:        keySize,
		Mode:           mode,
		Key:            key,
		IV:             iv,
		KeyEncoding:    keyEncoding,
		OutputEncoding: outputEncoding,
	})
	if err != nil {
		return err
	}

	if err := writeOutput(cmd, "key-file", "key", result.Key); err != nil {
		return err
	}
	if result.IV != "" {
		if err := writeOutput(cmd, "iv-file", "iv", result.IV); err != nil {
			return err
		}
	}
	if err := writeOutput(cmd, "output-file", "ciphertext", result.Ciphertext); err != nil {
		return err
	}

	commandHandler.logger.Info(fmt.Sprintf("AES-%d-%s encryption finished", result.KeySize, result.Mode))
	return nil
}

// DecryptAESCmd decrypts a ciphertext given inline or in a file.
func (commandHandler *AESCommandHandler) DecryptAESCmd(cmd *cobra.Command, _ []string) error {
	ciphertext, err := readText(cmd, "ciphertext", "input-file")
	if err != nil {
		return err
	}
	keySize, mode, keyEncoding, err := aesParameters(cmd)
	if err != nil {
		return err
	}
	inputEncoding, err := encodingFlag(cmd, "input-encoding")
	if err != nil {
		return err
	}
	key, err := readText(cmd, "key", "key-file")
	if err != nil {
		return err
	}
	iv, err := readText(cmd, "iv", "iv-file")
	if err != nil {
		return err
	}

	result, err := commandHandler.aesService.Decrypt(cmd.Context(), &workbench.AESDecryptRequest{
		Ciphertext:         ciphertext,
		KeySize:            keySize,
		Mode:               mode,
		Key:                key,
		IV:                 iv,
		KeyEncoding:        keyEncoding,
		CiphertextEncoding: inputEncoding,
	})
	if err != nil {
		return err
	}

	if result.Warning != "" {
		commandHandler.logger.Warn(result.Warning)
	}
	plaintext := result.Plaintext
	if !result.ValidUTF8 {
		plaintext = string(result.Raw)
	}
	return writeOutput(cmd, "output-file", "plaintext", plaintext)
}

func aesParameters(cmd *cobra.Command) (cryptoalg.KeySize, cryptoalg.Mode, codec.Encoding, error) {
	keySizeValue, err := cmd.Flags().GetString("key-size")
	if err != nil {
		return 0, "", "", fmt.Errorf("invalid key-size flag: %w", err)
	}
	keySize, err := cryptoalg.ParseKeySize(keySizeValue)
	if err != nil {
		return 0, "", "", err
	}

	modeValue, err := cmd.Flags().GetString("mode")
	if err != nil {
		return 0, "", "", fmt.Errorf("invalid mode flag: %w", err)
	}
	mode, err := cryptoalg.ParseMode(modeValue)
	if err != nil {
		return 0, "", "", err
	}

	keyEncoding, err := encodingFlag(cmd, "key-encoding")
	if err != nil {
		return 0, "", "", err
	}
	return keySize, mode, keyEncoding, nil
}

func encodingFlag(cmd *cobra.Command, name string) (codec.Encoding, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("invalid %s flag: %w", name, err)
	}
	return codec.ParseEncoding(value)
}

func addAESParameterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("key-size", "", "256", "AES key size in bits (128, 192 or 256)")
	cmd.Flags().StringP("mode", "", string(cryptoalg.ModeCBC), "Block cipher mode (CBC or ECB)")
	cmd.Flags().StringP("key-encoding", "", string(codec.EncodingBase64), "Encoding of supplied key and IV (UTF8, HEX or BASE64)")
}

// InitAESCommands registers AES-related commands
func InitAESCommands(rootCmd *cobra.Command, toolkit *Toolkit) error {
	handler, err := NewAESCommandHandler(toolkit)
	if err != nil {
		return fmt.Errorf("failed to create AES command handler %w", err)
	}

	var encryptAESCmd = &cobra.Command{
		Use:   "encrypt-aes",
		Short: "Encrypt text or a file using AES",
		RunE:  handler.EncryptAESCmd,
	}
	addAESParameterFlags(encryptAESCmd)
	encryptAESCmd.Flags().StringP("text", "", "", "Plaintext to encrypt")
	encryptAESCmd.Flags().StringP("input-file", "", "", "Path to input file that needs to be encrypted")
	encryptAESCmd.Flags().StringP("key", "", "", "Key material; generated when empty")
	encryptAESCmd.Flags().StringP("iv", "", "", "CBC initialization vector; generated when empty")
	encryptAESCmd.Flags().StringP("output-encoding", "", string(codec.EncodingBase64), "Encoding of ciphertext, key and IV (HEX or BASE64)")
	encryptAESCmd.Flags().StringP("output-file", "", "", "Path to ciphertext output file; printed when empty")
	encryptAESCmd.Flags().StringP("key-file", "", "", "Path to write the key to; printed when empty")
	encryptAESCmd.Flags().StringP("iv-file", "", "", "Path to write the IV to; printed when empty")
	rootCmd.AddCommand(encryptAESCmd)

	var decryptAESCmd = &cobra.Command{
		Use:   "decrypt-aes",
		Short: "Decrypt an AES ciphertext",
		RunE:  handler.DecryptAESCmd,
	}
	addAESParameterFlags(decryptAESCmd)
	decryptAESCmd.Flags().StringP("ciphertext", "", "", "Ciphertext to decrypt")
	decryptAESCmd.Flags().StringP("input-file", "", "", "Path to a file holding the ciphertext")
	decryptAESCmd.Flags().StringP("input-encoding", "", string(codec.EncodingBase64), "Ciphertext encoding (HEX or BASE64)")
	decryptAESCmd.Flags().StringP("key", "", "", "Key material")
	decryptAESCmd.Flags().StringP("key-file", "", "", "Path to a file holding the key")
	decryptAESCmd.Flags().StringP("iv", "", "", "CBC initialization vector")
	decryptAESCmd.Flags().StringP("iv-file", "", "", "Path to a file holding the IV")
	decryptAESCmd.Flags().StringP("output-file", "", "", "Path to decrypted output file; printed when empty")
	rootCmd.AddCommand(decryptAESCmd)

	return nil
}
