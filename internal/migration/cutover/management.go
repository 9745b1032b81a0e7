package cutover

import (
	"context"
	"fmt"

	"github.com/virtstack/vdsmigrate/internal/migration"
	"github.com/virtstack/vdsmigrate/internal/util/async"
)

// ManagementDriver moves each host's management kernel nic onto the
// distributed switch. The host already has an uplink there from
// enrollment, so management connectivity survives the rebind.
type ManagementDriver struct{}

// NewManagementDriver creates the management cutover phase.
func NewManagementDriver() *ManagementDriver {
	return &ManagementDriver{}
}

// Name implements migration.Phase.
func (d *ManagementDriver) Name() migration.PhaseName {
	return migration.PhaseManagementCutover
}

// Run rebinds the management nic on every host, continuing past
// individual host failures.
func (d *ManagementDriver) Run(ctx *migration.Context) error {
	tasks := make([]async.Task, 0, len(ctx.Config.Hosts))
	for _, host := range ctx.Config.Hosts {
		tasks = append(tasks, async.Task{
			Name: host,
			Func: func(context.Context) error {
				if err := d.cutoverHost(ctx, host); err != nil {
					migration.LogHostFailed(ctx.Observer, d.Name(), host, err)
					return err
				}
				return nil
			},
		})
	}
	return async.Run(ctx, tasks, ctx.Config.Parallel)
}

func (d *ManagementDriver) cutoverHost(ctx *migration.Context, host string) error {
	cfg := ctx.Config

	if err := ctx.State.RequireHostDone(host, migration.PhaseVMCutover); err != nil {
		return err
	}

	if ctx.DryRun {
		ctx.Observer.Printf("dry-run: would rebind %s of %s to %q", cfg.ManagementNic, host, cfg.PortGroup)
		ctx.State.MarkHostDone(host, d.Name())
		return nil
	}

	if err := ctx.Client.RebindManagementNic(ctx, cfg.SwitchName, cfg.PortGroup, host, cfg.ManagementNic); err != nil {
		return fmt.Errorf("failed to rebind %s: %w", cfg.ManagementNic, err)
	}
	migration.LogHostStep(ctx.Observer, d.Name(), host,
		fmt.Sprintf("%s rebound to %q", cfg.ManagementNic, cfg.PortGroup))

	ctx.State.MarkHostDone(host, d.Name())
	return nil
}
