package cutover

import (
	"context"
	"fmt"
	"strings"

	"github.com/virtstack/vdsmigrate/internal/migration"
	"github.com/virtstack/vdsmigrate/internal/util/async"
)

// UplinkDriver attaches every physical adapter of each host to the
// distributed switch. The adapter attached during enrollment is listed
// again on purpose: attachment is a set union, so re-requesting it is a
// no-op and a partially failed earlier run converges on retry.
type UplinkDriver struct{}

// NewUplinkDriver creates the uplink migration phase.
func NewUplinkDriver() *UplinkDriver {
	return &UplinkDriver{}
}

// Name implements migration.Phase.
func (d *UplinkDriver) Name() migration.PhaseName {
	return migration.PhaseUplinkMigration
}

// Run migrates the remaining adapters on every host, continuing past
// individual host failures.
func (d *UplinkDriver) Run(ctx *migration.Context) error {
	tasks := make([]async.Task, 0, len(ctx.Config.Hosts))
	for _, host := range ctx.Config.Hosts {
		tasks = append(tasks, async.Task{
			Name: host,
			Func: func(context.Context) error {
				if err := d.migrateHost(ctx, host); err != nil {
					migration.LogHostFailed(ctx.Observer, d.Name(), host, err)
					return err
				}
				return nil
			},
		})
	}
	return async.Run(ctx, tasks, ctx.Config.Parallel)
}

func (d *UplinkDriver) migrateHost(ctx *migration.Context, host string) error {
	cfg := ctx.Config

	if err := ctx.State.RequireHostDone(host, migration.PhaseManagementCutover); err != nil {
		return err
	}

	pnics, err := ctx.Client.PhysicalAdapters(ctx, host)
	if err != nil {
		return fmt.Errorf("failed to list physical adapters: %w", err)
	}

	if ctx.DryRun {
		ctx.Observer.Printf("dry-run: would attach adapters %s of %s to switch %q",
			strings.Join(pnics, ", "), host, cfg.SwitchName)
		ctx.State.MarkHostDone(host, d.Name())
		return nil
	}

	if err := ctx.Client.AttachUplinks(ctx, cfg.SwitchName, host, pnics); err != nil {
		return fmt.Errorf("failed to attach uplinks %v: %w", pnics, err)
	}
	migration.LogHostStep(ctx.Observer, d.Name(), host,
		fmt.Sprintf("all %d adapters attached as uplinks", len(pnics)))

	ctx.State.MarkHostDone(host, d.Name())
	return nil
}
