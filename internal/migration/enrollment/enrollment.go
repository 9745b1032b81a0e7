// Package enrollment joins each host to the distributed switch and
// attaches its second physical adapter as the first uplink. The first
// adapter stays on the legacy switch so the host keeps its existing
// connectivity throughout; it only moves during the final uplink
// migration, after management traffic is already on the new switch.
package enrollment

import (
	"context"
	"fmt"
	"slices"

	"github.com/virtstack/vdsmigrate/internal/migration"
	"github.com/virtstack/vdsmigrate/internal/platform/vsphere"
	"github.com/virtstack/vdsmigrate/internal/util/async"
)

// Driver is the host enrollment phase.
type Driver struct{}

// New creates the enrollment phase.
func New() *Driver {
	return &Driver{}
}

// Name implements migration.Phase.
func (d *Driver) Name() migration.PhaseName {
	return migration.PhaseEnrollment
}

// Run enrolls every configured host. A failed host does not stop the
// others; all failures are joined into the returned error.
func (d *Driver) Run(ctx *migration.Context) error {
	tasks := make([]async.Task, 0, len(ctx.Config.Hosts))
	for _, host := range ctx.Config.Hosts {
		tasks = append(tasks, async.Task{
			Name: host,
			Func: func(context.Context) error {
				if err := d.enrollHost(ctx, host); err != nil {
					migration.LogHostFailed(ctx.Observer, d.Name(), host, err)
					return err
				}
				return nil
			},
		})
	}
	return async.Run(ctx, tasks, ctx.Config.Parallel)
}

func (d *Driver) enrollHost(ctx *migration.Context, host string) error {
	cfg := ctx.Config

	device, err := d.uplinkDevice(ctx, host)
	if err != nil {
		return err
	}

	if ctx.DryRun {
		ctx.Observer.Printf("dry-run: would enroll host %s on switch %q with uplink %s", host, cfg.SwitchName, device)
		ctx.State.MarkHostDone(host, d.Name())
		return nil
	}

	outcome, err := ctx.Client.AddHostMember(ctx, cfg.SwitchName, host)
	if err != nil {
		return fmt.Errorf("failed to add host to switch %q: %w", cfg.SwitchName, err)
	}
	if outcome == vsphere.OutcomeAlreadyPresent {
		migration.LogHostStep(ctx.Observer, d.Name(), host, "already a switch member")
	} else {
		migration.LogHostStep(ctx.Observer, d.Name(), host, "added to switch")
	}

	if err := ctx.Client.AttachUplinks(ctx, cfg.SwitchName, host, []string{device}); err != nil {
		return fmt.Errorf("failed to attach uplink %s: %w", device, err)
	}
	migration.LogHostStep(ctx.Observer, d.Name(), host, fmt.Sprintf("uplink %s attached", device))

	ctx.State.MarkHostDone(host, d.Name())
	return nil
}

// uplinkDevice validates the host's adapter inventory and returns the
// device to attach. Hosts with a single physical adapter cannot migrate
// without losing connectivity, so they fail here before anything is
// touched.
func (d *Driver) uplinkDevice(ctx *migration.Context, host string) (string, error) {
	pnics, err := ctx.Client.PhysicalAdapters(ctx, host)
	if err != nil {
		return "", fmt.Errorf("failed to list physical adapters: %w", err)
	}
	if len(pnics) < 2 {
		return "", fmt.Errorf("host has %d physical adapter(s), need at least 2 to migrate without downtime", len(pnics))
	}

	device := ctx.Config.UplinkDevice
	if !slices.Contains(pnics, device) {
		return "", fmt.Errorf("host has no physical adapter %q (available: %v)", device, pnics)
	}
	if device == pnics[0] {
		return "", fmt.Errorf("refusing to move %q, the host's first physical adapter carries live traffic", device)
	}
	return device, nil
}
