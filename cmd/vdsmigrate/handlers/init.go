package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/virtstack/vdsmigrate/internal/config"
	"github.com/virtstack/vdsmigrate/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	fileExists       = wizard.FileExists
	confirmOverwrite = wizard.ConfirmOverwrite
	runWizard        = wizard.RunWizard
	writeConfig      = wizard.WriteConfig
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		ok, err := confirmOverwrite(outputPath)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := wizard.BuildConfig(result)

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("vdsmigrate - standard switch to distributed switch migration")
	fmt.Println("=============================================================")
	fmt.Println()
	fmt.Println("This wizard describes your vCenter, the hosts to migrate, and")
	fmt.Println("the target switch topology. Credentials are not written to the")
	fmt.Println("file; set VSPHERE_PASSWORD before running the migration.")
	fmt.Println()
}

// printInitSuccess prints the summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Migration Summary")
	fmt.Println("-----------------")
	fmt.Printf("  vCenter:       %s\n", cfg.VCenter.Endpoint)
	fmt.Printf("  Hosts:         %s\n", strings.Join(cfg.Hosts, ", "))
	fmt.Printf("  New switch:    %s (port group %s)\n", cfg.SwitchName, cfg.PortGroup)
	fmt.Printf("  Legacy switch: %s\n", cfg.LegacySwitch)
	fmt.Printf("  First uplink:  %s\n", cfg.UplinkDevice)
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Set the vCenter password:")
	fmt.Println("     export VSPHERE_PASSWORD=<password>")
	fmt.Println()
	fmt.Printf("  2. Run the preflight checks:\n")
	fmt.Printf("     vdsmigrate check -c %s\n", outputPath)
	fmt.Println()
	fmt.Printf("  3. Run the migration:\n")
	fmt.Printf("     vdsmigrate migrate -c %s\n", outputPath)
	fmt.Println()
}
