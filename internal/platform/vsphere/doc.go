// Package vsphere wraps the govmomi SDK behind the narrow set of
// operations the migration needs: ensure-style topology creation,
// distributed-switch host membership, uplink attachment, and traffic
// rebinding for virtual machines and VMkernel interfaces.
//
// All mutating operations are idempotent where vCenter allows it:
// duplicate-name and already-exists faults are absorbed and reported as
// OutcomeAlreadyPresent rather than surfaced as errors.
package vsphere
