package cutover

import (
	"errors"
	"fmt"

	"github.com/virtstack/vdsmigrate/internal/migration"
)

// VMDriver rebinds every eligible VM network adapter to the port group
// on the distributed switch. VMs run before the management nic moves so
// guest traffic is already flowing over the new switch when the hosts
// themselves cut over.
type VMDriver struct{}

// NewVMDriver creates the VM cutover phase.
func NewVMDriver() *VMDriver {
	return &VMDriver{}
}

// Name implements migration.Phase.
func (d *VMDriver) Name() migration.PhaseName {
	return migration.PhaseVMCutover
}

// Run rebinds all non-excluded VMs. One VM's failure does not stop the
// others; all failures are joined into the returned error.
func (d *VMDriver) Run(ctx *migration.Context) error {
	cfg := ctx.Config

	// Every host must be enrolled before any traffic moves, or a VM
	// could be rebound onto a switch its host has no uplink on.
	for _, host := range cfg.Hosts {
		if err := ctx.State.RequireHostDone(host, migration.PhaseEnrollment); err != nil {
			return err
		}
	}

	vms, err := ctx.Client.VirtualMachines(ctx)
	if err != nil {
		return fmt.Errorf("failed to list virtual machines: %w", err)
	}

	var errs []error
	for _, vm := range vms {
		if Excluded(vm, cfg.ExcludeVMs) {
			ctx.Observer.Event(migration.Event{
				Type:     migration.EventSkipped,
				Phase:    d.Name(),
				Resource: vm,
				Message:  "excluded by pattern",
			})
			continue
		}
		if ctx.DryRun {
			ctx.Observer.Printf("dry-run: would rebind adapters of %s to %q", vm, cfg.PortGroup)
			continue
		}
		if err := ctx.Client.RebindVMAdapters(ctx, cfg.SwitchName, cfg.PortGroup, vm); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", vm, err))
			continue
		}
		ctx.Observer.Event(migration.Event{
			Type:     migration.EventHostStep,
			Phase:    d.Name(),
			Resource: vm,
			Message:  fmt.Sprintf("adapters rebound to %q", cfg.PortGroup),
		})
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	for _, host := range cfg.Hosts {
		ctx.State.MarkHostDone(host, d.Name())
	}
	return nil
}
