package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/codec"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// ErrSignatureInvalid makes verify-rsa exit non-zero when the signature does not match.
var ErrSignatureInvalid = errors.New("signature is INVALID")

// RSACommandHandler encapsulates logic for handling RSA operations via CLI.
type RSACommandHandler struct {
	rsaKeyService    workbench.RSAKeyService
	signatureService workbench.SignatureService
	logger           logger.Logger
}

// NewRSACommandHandler returns an RSACommandHandler backed by the toolkit's RSA services.
func NewRSACommandHandler(toolkit *Toolkit) (*RSACommandHandler, error) {
	if toolkit == nil || toolkit.RSAKeys == nil || toolkit.Signatures == nil {
		return nil, fmt.Errorf("RSA key and signature services cannot be nil")
	}
	return &RSACommandHandler{
		rsaKeyService:    toolkit.RSAKeys,
		signatureService: toolkit.Signatures,
		logger:           toolkit.Logger,
	}, nil
}

// GenerateRSAKeysCmd generates an RSA key pair and persists it in the selected directory
func (commandHandler *RSACommandHandler) GenerateRSAKeysCmd(cmd *cobra.Command, _ []string) error {
	keySize, err := cmd.Flags().GetInt("key-size")
	if err != nil {
		return fmt.Errorf("invalid key-size flag: %w", err)
	}
	keyDir, err := cmd.Flags().GetString("key-dir")
	if err != nil {
		return fmt.Errorf("invalid key-dir flag: %w", err)
	}

	result, err := commandHandler.rsaKeyService.Generate(cmd.Context(), &workbench.RSAKeyRequest{KeySize: keySize})
	if err != nil {
		return err
	}

	uniqueID := uuid.New()

	privateKeyFilePath := filepath.Join(keyDir, fmt.Sprintf("%s-private-key.pem", uniqueID))
	if err := os.WriteFile(privateKeyFilePath, []byte(result.PrivateKeyPEM), 0600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}

	publicKeyFilePath := filepath.Join(keyDir, fmt.Sprintf("%s-public-key.pem", uniqueID))
	if err := os.WriteFile(publicKeyFilePath, []byte(result.PublicKeyPEM), 0600); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}

	commandHandler.logger.Info(fmt.Sprintf("RSA-%d key pair generated with %s generator", result.KeySize, result.Generator))
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "private key: %s\npublic key: %s\n", privateKeyFilePath, publicKeyFilePath)
	return err
}

// SignRSACmd signs text or a file with a PEM private key
func (commandHandler *RSACommandHandler) SignRSACmd(cmd *cobra.Command, _ []string) error {
	content, err := readContent(cmd, "text", "input-file")
	if err != nil {
		return err
	}
	privateKeyPEM, err := readKeyFile(cmd, "private-key")
	if err != nil {
		return err
	}
	digest, encoding, err := signatureParameters(cmd)
	if err != nil {
		return err
	}

	result, err := commandHandler.signatureService.Sign(cmd.Context(), &workbench.SignRequest{
		PrivateKeyPEM:  privateKeyPEM,
		Content:        content,
		Digest:         digest,
		OutputEncoding: encoding,
	})
	if err != nil {
		return err
	}

	return writeOutput(cmd, "output-file", "signature", result.Signature)
}

// VerifyRSACmd checks a signature against text or a file with a PEM public key
func (commandHandler *RSACommandHandler) VerifyRSACmd(cmd *cobra.Command, _ []string) error {
	content, err := readContent(cmd, "text", "input-file")
	if err != nil {
		return err
	}
	publicKeyPEM, err := readKeyFile(cmd, "public-key")
	if err != nil {
		return err
	}
	signature, err := readText(cmd, "signature", "signature-file")
	if err != nil {
		return err
	}
	digest, encoding, err := signatureParameters(cmd)
	if err != nil {
		return err
	}

	result, err := commandHandler.signatureService.Verify(cmd.Context(), &workbench.VerifyRequest{
		PublicKeyPEM:      publicKeyPEM,
		Content:           content,
		Digest:            digest,
		Signature:         signature,
		SignatureEncoding: encoding,
	})
	if err != nil {
		return err
	}

	if !result.Valid {
		return ErrSignatureInvalid
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "signature is VALID")
	return err
}

func readKeyFile(cmd *cobra.Command, name string) (string, error) {
	path, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("invalid %s flag: %w", name, err)
	}
	if path == "" {
		return "", fmt.Errorf("--%s is required", name)
	}
	pemBytes, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(pemBytes), nil
}

func signatureParameters(cmd *cobra.Command) (cryptoalg.DigestAlgorithm, codec.Encoding, error) {
	digestValue, err := cmd.Flags().GetString("digest")
	if err != nil {
		return "", "", fmt.Errorf("invalid digest flag: %w", err)
	}
	digest, err := cryptoalg.ParseDigestAlgorithm(digestValue)
	if err != nil {
		return "", "", err
	}
	encoding, err := encodingFlag(cmd, "encoding")
	if err != nil {
		return "", "", err
	}
	return digest, encoding, nil
}

func addSignatureFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("text", "", "", "Text content; surrounding whitespace is ignored")
	cmd.Flags().StringP("input-file", "", "", "Path to the content file; used byte for byte")
	cmd.Flags().StringP("digest", "", string(cryptoalg.DigestSHA256), "Digest algorithm (SHA-256, SHA-384 or SHA-512)")
	cmd.Flags().StringP("encoding", "", string(codec.EncodingBase64), "Signature encoding (HEX or BASE64)")
}

// InitRSACommands registers RSA-related commands
func InitRSACommands(rootCmd *cobra.Command, toolkit *Toolkit) error {
	handler, err := NewRSACommandHandler(toolkit)
	if err != nil {
		return fmt.Errorf("failed to create RSA command handler %w", err)
	}

	var generateRSAKeysCmd = &cobra.Command{
		Use:   "generate-rsa-keys",
		Short: "Generate an RSA key pair",
		RunE:  handler.GenerateRSAKeysCmd,
	}
	generateRSAKeysCmd.Flags().IntP("key-size", "", 2048, "RSA modulus size in bits")
	generateRSAKeysCmd.Flags().StringP("key-dir", "", ".", "Directory to store the key pair")
	rootCmd.AddCommand(generateRSAKeysCmd)

	var signRSACmd = &cobra.Command{
		Use:   "sign-rsa",
		Short: "Sign content with an RSA private key (PKCS#1 v1.5)",
		RunE:  handler.SignRSACmd,
	}
	addSignatureFlags(signRSACmd)
	signRSACmd.Flags().StringP("private-key", "", "", "Path to the PEM private key")
	signRSACmd.Flags().StringP("output-file", "", "", "Path to signature output file; printed when empty")
	rootCmd.AddCommand(signRSACmd)

	var verifyRSACmd = &cobra.Command{
		Use:   "verify-rsa",
		Short: "Verify an RSA signature (PKCS#1 v1.5)",
		RunE:  handler.VerifyRSACmd,
	}
	addSignatureFlags(verifyRSACmd)
	verifyRSACmd.Flags().StringP("public-key", "", "", "Path to the PEM public key")
	verifyRSACmd.Flags().StringP("signature", "", "", "Signature to check")
	verifyRSACmd.Flags().StringP("signature-file", "", "", "Path to a file holding the signature")
	rootCmd.AddCommand(verifyRSACmd)

	return nil
}
