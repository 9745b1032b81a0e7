package vsphere

import (
	"context"
	"fmt"
	"sort"

	"github.com/vmware/govmomi/vim25/types"
)

// PhysicalAdapters returns the host's physical NIC device names in
// device-name order.
func (c *RealClient) PhysicalAdapters(ctx context.Context, hostName string) ([]string, error) {
	hs, err := c.hostNetworkConfig(ctx, hostName)
	if err != nil {
		return nil, err
	}
	if hs.Config.Network == nil {
		return nil, fmt.Errorf("host %q has no network info available", hostName)
	}

	devices := make([]string, 0, len(hs.Config.Network.Pnic))
	for _, pnic := range hs.Config.Network.Pnic {
		devices = append(devices, pnic.Device)
	}
	sort.Strings(devices)
	return devices, nil
}

// RebindManagementNic points the host's VMkernel interface at the
// distributed port group. The caller must have given the host a working
// uplink on the switch first, or the host drops off the network the
// moment the old binding goes away.
func (c *RealClient) RebindManagementNic(ctx context.Context, switchName, pgName, hostName, device string) error {
	conn, err := c.portConnection(ctx, switchName, pgName)
	if err != nil {
		return err
	}

	ns, err := c.hostNetworkSystem(ctx, hostName)
	if err != nil {
		return err
	}

	spec := types.HostVirtualNicSpec{
		DistributedVirtualPort: conn,
	}

	tctx, cancel := c.taskCtx(ctx)
	defer cancel()

	if err := ns.UpdateVirtualNic(tctx, device, spec); err != nil {
		return fmt.Errorf("failed to rebind %s of host %q to port group %q: %w",
			device, hostName, pgName, err)
	}
	return nil
}

// LegacyPortGroups returns the names of port groups defined on the
// host's standard virtual switch.
func (c *RealClient) LegacyPortGroups(ctx context.Context, hostName, vswitchName string) ([]string, error) {
	hs, err := c.hostNetworkConfig(ctx, hostName)
	if err != nil {
		return nil, err
	}
	if hs.Config.Network == nil {
		return nil, fmt.Errorf("host %q has no network info available", hostName)
	}

	var names []string
	for _, pg := range hs.Config.Network.Portgroup {
		if pg.Spec.VswitchName == vswitchName {
			names = append(names, pg.Spec.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// RemoveLegacyPortGroup removes a port group from the host's standard
// networking stack.
func (c *RealClient) RemoveLegacyPortGroup(ctx context.Context, hostName, pgName string) error {
	ns, err := c.hostNetworkSystem(ctx, hostName)
	if err != nil {
		return err
	}

	tctx, cancel := c.taskCtx(ctx)
	defer cancel()

	if err := ns.RemovePortGroup(tctx, pgName); err != nil {
		return fmt.Errorf("failed to remove port group %q from host %q: %w", pgName, hostName, err)
	}
	return nil
}
