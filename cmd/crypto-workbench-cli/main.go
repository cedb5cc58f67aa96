// Package main is the entry point for the crypto-workbench-cli application.
// It registers the AES, RSA and capability sub-commands and executes the
// command-line interface against the same services as the web server.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/MGTheTrain/crypto-workbench/cmd/crypto-workbench-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "crypto-workbench-cli",
		Short: "Cryptographic workbench CLI tool",
		Long: `crypto-workbench-cli runs the workbench operations locally.
Supports AES-CBC/ECB encryption and decryption, RSA key generation,
and RSA PKCS#1 v1.5 signing and verification.

Settings are read from the YAML file named by CONFIG_PATH, if set.
CWB_LOG_LEVEL and CWB_OPENSSL_PATH override the file.`,
		SilenceUsage: true,
	}

	toolkit, err := commands.Setup(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("failed to set up commands: %w", err)
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd, toolkit); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command, toolkit *commands.Toolkit) error {
	if err := commands.InitAESCommands(rootCmd, toolkit); err != nil {
		return fmt.Errorf("failed to initialize AES commands: %w", err)
	}

	if err := commands.InitRSACommands(rootCmd, toolkit); err != nil {
		return fmt.Errorf("failed to initialize RSA commands: %w", err)
	}

	if err := commands.InitCapabilityCommands(rootCmd, toolkit); err != nil {
		return fmt.Errorf("failed to initialize capability commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	// Set log flags for better error messages
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Ensure proper exit codes on errors
	log.SetOutput(os.Stderr)
}
