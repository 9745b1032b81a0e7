package commands

import (
	"github.com/spf13/cobra"

	"github.com/virtstack/vdsmigrate/cmd/vdsmigrate/handlers"
)

// Init returns the command for interactively creating a configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "vdsmigrate.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a migration configuration",
		Long: `Interactively create a migration configuration file.

This command guides you through describing your environment step by
step. It will ask about:

  - vCenter connection (endpoint, username, datacenter)
  - The hosts to migrate
  - Switch topology (distributed switch, port group, legacy switch,
    initial uplink device)
  - Excluded VM patterns and parallelism

The vCenter password is never written to the file; set VSPHERE_PASSWORD
before running the migration.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "vdsmigrate.yaml", "Output file path")

	return cmd
}
