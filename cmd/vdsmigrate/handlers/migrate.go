// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic
// and can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/virtstack/vdsmigrate/internal/config"
	"github.com/virtstack/vdsmigrate/internal/migration"
	"github.com/virtstack/vdsmigrate/internal/migration/cutover"
	"github.com/virtstack/vdsmigrate/internal/migration/enrollment"
	"github.com/virtstack/vdsmigrate/internal/migration/topology"
	"github.com/virtstack/vdsmigrate/internal/platform/vsphere"
)

// Factory function variables - can be replaced in tests for dependency
// injection.
var (
	// loadConfigFile loads config from file.
	loadConfigFile = config.LoadFile

	// findConfigFile finds the default config file.
	findConfigFile = config.FindConfigFile

	// loadTimeouts loads the environment timing knobs.
	loadTimeouts = config.LoadTimeouts

	// connectClient establishes the vCenter session.
	connectClient = func(ctx context.Context, s vsphere.Settings) (vsphere.Client, error) {
		return vsphere.Connect(ctx, s)
	}

	// runPhases executes the migration pipeline.
	runPhases = migration.RunPhases
)

// Migrate runs the full switch migration.
//
// The handler loads and validates the configuration, establishes the
// vCenter session (retrying while the endpoint boots), and runs the six
// migration phases in order. With dryRun set, the phases report their
// planned changes and the cluster is left untouched.
func Migrate(ctx context.Context, configPath string, dryRun bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log.Printf("Migrating %d host(s) to distributed switch %q", len(cfg.Hosts), cfg.SwitchName)

	client, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Logout(ctx); err != nil {
			log.Printf("Warning: logout failed: %v", err)
		}
	}()

	mctx := migration.NewContext(ctx, cfg, client)
	mctx.DryRun = dryRun

	if err := runPhases(mctx, migrationPhases()); err != nil {
		return err
	}

	printMigrateSuccess(cfg, dryRun)
	return nil
}

// migrationPhases returns the phases in their one valid execution order.
func migrationPhases() []migration.Phase {
	return []migration.Phase{
		topology.New(),
		enrollment.New(),
		cutover.NewVMDriver(),
		cutover.NewManagementDriver(),
		cutover.NewUplinkDriver(),
		cutover.NewTeardownDriver(),
	}
}

// loadConfig loads and validates the migration configuration. If
// configPath is empty, it looks for vdsmigrate.yaml in the current
// directory.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file found: %w\nRun 'vdsmigrate init' to create one", err)
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log.Printf("Using config: %s", configPath)
	return cfg, nil
}

// connect dials vCenter with the configured credentials and the
// environment timing knobs.
func connect(ctx context.Context, cfg *config.Config) (vsphere.Client, error) {
	timeouts := loadTimeouts()

	client, err := connectClient(ctx, vsphere.Settings{
		Endpoint:           cfg.VCenter.Endpoint,
		Username:           cfg.VCenter.Username,
		Password:           cfg.VCenter.Password,
		Datacenter:         cfg.VCenter.Datacenter,
		Insecure:           cfg.VCenter.Insecure,
		ConnectMaxAttempts: timeouts.ConnectMaxAttempts,
		ConnectRetryDelay:  timeouts.ConnectRetryDelay,
		TaskTimeout:        timeouts.TaskTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to vCenter: %w", err)
	}
	return client, nil
}

// printMigrateSuccess outputs the completion message.
func printMigrateSuccess(cfg *config.Config, dryRun bool) {
	if dryRun {
		fmt.Printf("\nDry run complete. No changes were made.\n")
		return
	}

	fmt.Printf("\nMigration complete!\n")
	fmt.Printf("  Switch:     %s\n", cfg.SwitchName)
	fmt.Printf("  Port group: %s\n", cfg.PortGroup)
	fmt.Printf("  Hosts:      %d\n", len(cfg.Hosts))
	fmt.Printf("\nAll host traffic now flows over %q. The legacy port groups on %q have been removed.\n",
		cfg.SwitchName, cfg.LegacySwitch)
}
