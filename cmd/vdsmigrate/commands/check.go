package commands

import (
	"github.com/spf13/cobra"

	"github.com/virtstack/vdsmigrate/cmd/vdsmigrate/handlers"
)

// Check returns the preflight diagnostics command.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: vdsmigrate.yaml)
//	--json: Emit machine-readable JSON instead of the styled report
func Check() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run preflight checks against the vCenter",
		Long: `Run preflight checks before migrating.

Connects to the configured vCenter and verifies that every host exists
and has at least two physical adapters including the configured uplink
device, and reports whether the distributed switch and port group
already exist. Nothing is changed.

Examples:
  # Check using vdsmigrate.yaml in the current directory
  vdsmigrate check

  # Machine-readable output for CI pipelines
  vdsmigrate check --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Check(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: vdsmigrate.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}
