package cutover

import (
	"context"
	"fmt"

	"github.com/virtstack/vdsmigrate/internal/migration"
	"github.com/virtstack/vdsmigrate/internal/util/async"
)

// TeardownDriver removes the legacy standard-switch port groups once a
// host's traffic is fully on the distributed switch. This is the only
// destructive phase, which is why it depends on every other per-host
// phase having completed first.
type TeardownDriver struct{}

// NewTeardownDriver creates the legacy teardown phase.
func NewTeardownDriver() *TeardownDriver {
	return &TeardownDriver{}
}

// Name implements migration.Phase.
func (d *TeardownDriver) Name() migration.PhaseName {
	return migration.PhaseLegacyTeardown
}

// Run tears down legacy port groups on every host, continuing past
// individual host failures.
func (d *TeardownDriver) Run(ctx *migration.Context) error {
	tasks := make([]async.Task, 0, len(ctx.Config.Hosts))
	for _, host := range ctx.Config.Hosts {
		tasks = append(tasks, async.Task{
			Name: host,
			Func: func(context.Context) error {
				if err := d.teardownHost(ctx, host); err != nil {
					migration.LogHostFailed(ctx.Observer, d.Name(), host, err)
					return err
				}
				return nil
			},
		})
	}
	return async.Run(ctx, tasks, ctx.Config.Parallel)
}

func (d *TeardownDriver) teardownHost(ctx *migration.Context, host string) error {
	cfg := ctx.Config

	if err := ctx.State.RequireHostDone(host, migration.PhaseUplinkMigration); err != nil {
		return err
	}

	groups, err := ctx.Client.LegacyPortGroups(ctx, host, cfg.LegacySwitch)
	if err != nil {
		return fmt.Errorf("failed to list port groups on %q: %w", cfg.LegacySwitch, err)
	}
	if len(groups) == 0 {
		migration.LogHostStep(ctx.Observer, d.Name(), host, "no legacy port groups left")
		ctx.State.MarkHostDone(host, d.Name())
		return nil
	}

	if ctx.DryRun {
		ctx.Observer.Printf("dry-run: would remove legacy port groups %v from %s", groups, host)
		ctx.State.MarkHostDone(host, d.Name())
		return nil
	}

	for _, group := range groups {
		if err := ctx.Client.RemoveLegacyPortGroup(ctx, host, group); err != nil {
			return fmt.Errorf("failed to remove port group %q: %w", group, err)
		}
		migration.LogHostStep(ctx.Observer, d.Name(), host,
			fmt.Sprintf("legacy port group %q removed", group))
	}

	ctx.State.MarkHostDone(host, d.Name())
	return nil
}
