package commands

import (
	"github.com/spf13/cobra"

	"github.com/virtstack/vdsmigrate/cmd/vdsmigrate/handlers"
)

// Migrate returns the command that runs the full switch migration.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: vdsmigrate.yaml)
//	--dry-run: Walk the phases and report planned changes without mutating
//
// Environment variables:
//
//	VSPHERE_PASSWORD: vCenter password (required unless set in the file)
func Migrate() *cobra.Command {
	var (
		configPath string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate hosts to the distributed switch",
		Long: `Migrate the configured hosts to the distributed virtual switch.

The migration runs in six ordered phases: provision the switch and port
group, enroll each host with its second physical adapter, rebind VM
adapters, rebind each host's management interface, attach the remaining
physical adapters, and finally remove the legacy standard-switch port
groups. Every phase is idempotent; re-running a partially completed
migration converges without duplicating work.

If no config file is specified, it looks for vdsmigrate.yaml in the
current directory. Use 'vdsmigrate init' to create one.

Examples:
  # Migrate using vdsmigrate.yaml in the current directory
  vdsmigrate migrate

  # Migrate using a specific config file
  vdsmigrate migrate -c production.yaml

  # Show what would change without touching the cluster
  vdsmigrate migrate --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Migrate(cmd.Context(), configPath, dryRun)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: vdsmigrate.yaml)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report planned changes without mutating the cluster")

	return cmd
}
