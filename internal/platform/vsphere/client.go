package vsphere

import "context"

// Client is the management-plane contract the migration drives. It is
// implemented by RealClient against vCenter and by fakes.Inventory in
// tests.
type Client interface {
	// EnsureSwitch looks up the distributed switch by name and creates
	// it under the datacenter's network folder if absent.
	EnsureSwitch(ctx context.Context, name string) (Outcome, error)

	// EnsurePortGroup looks up the port group by name scoped to the
	// given distributed switch and creates it if absent.
	EnsurePortGroup(ctx context.Context, switchName, pgName string) (Outcome, error)

	// SwitchExists reports whether the distributed switch exists,
	// without creating anything.
	SwitchExists(ctx context.Context, name string) (bool, error)

	// PortGroupExists reports whether the port group exists on the
	// switch, without creating anything.
	PortGroupExists(ctx context.Context, switchName, pgName string) (bool, error)

	// AddHostMember adds the host to the distributed switch. A host
	// that is already a member is reported as OutcomeAlreadyPresent.
	AddHostMember(ctx context.Context, switchName, hostName string) (Outcome, error)

	// PhysicalAdapters returns the host's physical NIC device names
	// sorted by device name (vmnic0, vmnic1, ...).
	PhysicalAdapters(ctx context.Context, hostName string) ([]string, error)

	// AttachUplinks binds the given physical NIC devices to the
	// distributed switch as uplinks for the host. Devices already
	// attached are left alone; the call never creates duplicate uplink
	// entries.
	AttachUplinks(ctx context.Context, switchName, hostName string, devices []string) error

	// VirtualMachines returns the names of all virtual machines in the
	// datacenter. An empty inventory is not an error.
	VirtualMachines(ctx context.Context) ([]string, error)

	// RebindVMAdapters moves every network adapter of the named virtual
	// machine onto the distributed port group.
	RebindVMAdapters(ctx context.Context, switchName, pgName, vmName string) error

	// RebindManagementNic moves the host's VMkernel interface (device,
	// e.g. "vmk0") onto the distributed port group.
	RebindManagementNic(ctx context.Context, switchName, pgName, hostName, device string) error

	// LegacyPortGroups returns the port group names defined on the
	// host's standard virtual switch.
	LegacyPortGroups(ctx context.Context, hostName, vswitchName string) ([]string, error)

	// RemoveLegacyPortGroup removes a port group from the host's
	// standard networking stack.
	RemoveLegacyPortGroup(ctx context.Context, hostName, pgName string) error

	// Logout releases the session. Best effort on process exit.
	Logout(ctx context.Context) error
}
