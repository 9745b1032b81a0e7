// Package topology provisions the distributed switch and its primary
// port group. Both operations are create-or-reuse: a second run against
// the same datacenter finds the objects in place and changes nothing.
package topology

import (
	"fmt"

	"github.com/virtstack/vdsmigrate/internal/migration"
	"github.com/virtstack/vdsmigrate/internal/platform/vsphere"
)

// Provisioner is the topology phase.
type Provisioner struct{}

// New creates the topology phase.
func New() *Provisioner {
	return &Provisioner{}
}

// Name implements migration.Phase.
func (p *Provisioner) Name() migration.PhaseName {
	return migration.PhaseTopology
}

// Run ensures the switch and port group exist under the datacenter.
// This runs to completion before any host-level work starts, so the
// shared objects are never created twice by racing per-host workers.
func (p *Provisioner) Run(ctx *migration.Context) error {
	cfg := ctx.Config

	if ctx.DryRun {
		ctx.Observer.Printf("dry-run: would ensure switch %q and port group %q", cfg.SwitchName, cfg.PortGroup)
		return nil
	}

	switchOutcome, err := ctx.Client.EnsureSwitch(ctx, cfg.SwitchName)
	if err != nil {
		return fmt.Errorf("failed to ensure switch %q: %w", cfg.SwitchName, err)
	}
	ctx.State.SwitchOutcome = switchOutcome
	migration.LogResourceOutcome(ctx.Observer, p.Name(), "distributed switch", cfg.SwitchName,
		switchOutcome == vsphere.OutcomeCreated)

	pgOutcome, err := ctx.Client.EnsurePortGroup(ctx, cfg.SwitchName, cfg.PortGroup)
	if err != nil {
		return fmt.Errorf("failed to ensure port group %q: %w", cfg.PortGroup, err)
	}
	ctx.State.PortGroupOutcome = pgOutcome
	migration.LogResourceOutcome(ctx.Observer, p.Name(), "port group", cfg.PortGroup,
		pgOutcome == vsphere.OutcomeCreated)

	return nil
}
