package commands

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/crypto-workbench/internal/app"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"
	"github.com/MGTheTrain/crypto-workbench/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/config"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// Toolkit bundles the services shared by every command. The CLI keeps no
// sessions and records no audit trail.
type Toolkit struct {
	AES          workbench.AESService
	RSAKeys      workbench.RSAKeyService
	Signatures   workbench.SignatureService
	Capabilities workbench.CapabilityService
	Logger       logger.Logger
}

// Setup loads the CLI configuration from configPath, initializes the logger
// and builds the Toolkit.
func Setup(configPath string) (*Toolkit, error) {
	cfg, err := config.InitializeCLIConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	loggerInstance, err := setupLogger(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return NewToolkit(cfg, loggerInstance)
}

// NewToolkit wires processors and application services for local use.
func NewToolkit(cfg *config.CLIConfig, log logger.Logger) (*Toolkit, error) {
	aesProcessor, err := cryptography.NewAESProcessor(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES processor: %w", err)
	}

	rsaProcessor, err := cryptography.NewRSAProcessor(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	var fallback cryptoalg.RSAKeyGenerator
	if cfg.Crypto.NativeFallback {
		fallback, err = cryptography.NewOpenSSLKeyGenerator(log, cfg.Crypto.OpenSSLPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create openssl key generator: %w", err)
		}
	}

	capabilityService, err := app.NewCapabilityService(rand.Reader, aesProcessor, rsaProcessor, fallback, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create capability service: %w", err)
	}
	capabilityService.Probe(context.Background())

	recorder := app.NewNoopRecorder()

	aesService, err := app.NewAESService(aesProcessor, capabilityService, nil, recorder, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES service: %w", err)
	}

	rsaKeyService, err := app.NewRSAKeyService(rsaProcessor, fallback, capabilityService, nil, recorder, cfg.Crypto, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA key service: %w", err)
	}

	signatureService, err := app.NewSignatureService(rsaProcessor, capabilityService, nil, recorder, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create signature service: %w", err)
	}

	return &Toolkit{
		AES:          aesService,
		RSAKeys:      rsaKeyService,
		Signatures:   signatureService,
		Capabilities: capabilityService,
		Logger:       log,
	}, nil
}

func setupLogger(settings *config.LoggerSettings) (logger.Logger, error) {
	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// readContent takes the text flag when set, otherwise the bytes of the file flag
func readContent(cmd *cobra.Command, textFlag, fileFlag string) (workbench.Content, error) {
	text, err := cmd.Flags().GetString(textFlag)
	if err != nil {
		return workbench.Content{}, fmt.Errorf("invalid %s flag: %w", textFlag, err)
	}
	filePath, err := cmd.Flags().GetString(fileFlag)
	if err != nil {
		return workbench.Content{}, fmt.Errorf("invalid %s flag: %w", fileFlag, err)
	}

	switch {
	case text != "" && filePath != "":
		return workbench.Content{}, fmt.Errorf("--%s and --%s are mutually exclusive", textFlag, fileFlag)
	case filePath != "":
		data, err := os.ReadFile(filepath.Clean(filePath))
		if err != nil {
			return workbench.Content{}, fmt.Errorf("failed to read %s: %w", filePath, err)
		}
		return workbench.FileContent(data), nil
	default:
		return workbench.TextContent(text), nil
	}
}

// readText returns the inline flag value, or the contents of the file flag
func readText(cmd *cobra.Command, valueFlag, fileFlag string) (string, error) {
	content, err := readContent(cmd, valueFlag, fileFlag)
	if err != nil {
		return "", err
	}
	return string(content.Data), nil
}

// writeOutput writes value to the file named by the output flag, or prints it
func writeOutput(cmd *cobra.Command, outputFlag, label, value string) error {
	outputPath, err := cmd.Flags().GetString(outputFlag)
	if err != nil {
		return fmt.Errorf("invalid %s flag: %w", outputFlag, err)
	}
	if outputPath == "" {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", label, value)
		return err
	}
	if err := os.WriteFile(filepath.Clean(outputPath), []byte(value), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	return nil
}
