// Package migration provides the shared types for the distributed-switch
// migration pipeline.
//
// The migration domain is organized into focused subpackages:
//   - topology/: distributed switch and port group provisioning
//   - enrollment/: switch membership and the first uplink per host
//   - cutover/: VM traffic, management interface, remaining uplinks,
//     legacy teardown
//
// This root package contains the phase pipeline, the shared per-host
// state, and the observer used for progress reporting.
package migration

// Phase is one step of the migration sequence.
type Phase interface {
	// Name returns the phase identifier used in state markers and logs.
	Name() PhaseName

	// Run executes the phase. Host-level failures inside a phase are
	// collected and joined so one host cannot silently abort the others;
	// a returned error still stops the pipeline before the next phase.
	Run(ctx *Context) error
}

// PhaseName identifies a migration phase. The declaration order below
// is the execution order, and later phases must not run for a host
// before the earlier ones completed for that host.
type PhaseName string

const (
	// PhaseTopology ensures the distributed switch and port group exist.
	PhaseTopology PhaseName = "topology"

	// PhaseEnrollment adds each host to the switch and gives it one
	// uplink there, leaving the legacy path untouched.
	PhaseEnrollment PhaseName = "enrollment"

	// PhaseVMCutover rebinds VM network adapters to the new port group.
	PhaseVMCutover PhaseName = "vm-cutover"

	// PhaseManagementCutover rebinds each host's management interface.
	PhaseManagementCutover PhaseName = "management-cutover"

	// PhaseUplinkMigration attaches every remaining physical adapter.
	PhaseUplinkMigration PhaseName = "uplink-migration"

	// PhaseLegacyTeardown removes the legacy switch's port groups.
	PhaseLegacyTeardown PhaseName = "legacy-teardown"
)

// Sequence returns the canonical phase order.
func Sequence() []PhaseName {
	return []PhaseName{
		PhaseTopology,
		PhaseEnrollment,
		PhaseVMCutover,
		PhaseManagementCutover,
		PhaseUplinkMigration,
		PhaseLegacyTeardown,
	}
}
