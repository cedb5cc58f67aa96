package commands

import (
	"fmt"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"

	"github.com/spf13/cobra"
)

// CapabilityCommandHandler prints the startup self-test report.
type CapabilityCommandHandler struct {
	capabilityService workbench.CapabilityService
}

// CapabilitiesCmd prints one line per capability and fails when any required one is missing
func (commandHandler *CapabilityCommandHandler) CapabilitiesCmd(cmd *cobra.Command, _ []string) error {
	report := commandHandler.capabilityService.Report()
	for _, capability := range []workbench.Capability{
		report.RandomSource,
		report.AES,
		report.RSAPrimary,
		report.RSAFallback,
		report.SHA2,
	} {
		status := "available"
		if !capability.Available {
			status = "unavailable"
		}
		line := fmt.Sprintf("%-20s %s", capability.Name, status)
		if capability.Detail != "" {
			line += " (" + capability.Detail + ")"
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return err
		}
	}
	return report.Err()
}

// InitCapabilityCommands registers the capabilities command
func InitCapabilityCommands(rootCmd *cobra.Command, toolkit *Toolkit) error {
	if toolkit == nil || toolkit.Capabilities == nil {
		return fmt.Errorf("capability service cannot be nil")
	}
	handler := &CapabilityCommandHandler{capabilityService: toolkit.Capabilities}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "capabilities",
		Short: "Report which cryptographic operations this environment supports",
		RunE:  handler.CapabilitiesCmd,
	})
	return nil
}
