package vsphere

import (
	"context"
	"fmt"

	"github.com/vmware/govmomi/vim25/types"
)

// VirtualMachines returns the names of all virtual machines in the
// datacenter. An empty inventory is not an error.
func (c *RealClient) VirtualMachines(ctx context.Context) ([]string, error) {
	vms, err := c.finder.VirtualMachineList(ctx, "*")
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list virtual machines: %w", err)
	}

	names := make([]string, 0, len(vms))
	for _, vm := range vms {
		names = append(names, vm.Name())
	}
	return names, nil
}

// RebindVMAdapters moves every network adapter of the virtual machine
// onto the distributed port group.
func (c *RealClient) RebindVMAdapters(ctx context.Context, switchName, pgName, vmName string) error {
	conn, err := c.portConnection(ctx, switchName, pgName)
	if err != nil {
		return err
	}

	vm, err := c.finder.VirtualMachine(ctx, vmName)
	if err != nil {
		return fmt.Errorf("failed to resolve virtual machine %q: %w", vmName, err)
	}

	devices, err := vm.Device(ctx)
	if err != nil {
		return fmt.Errorf("failed to list devices of %q: %w", vmName, err)
	}

	tctx, cancel := c.taskCtx(ctx)
	defer cancel()

	for _, dev := range devices.SelectByType((*types.VirtualEthernetCard)(nil)) {
		card := dev.(types.BaseVirtualEthernetCard).GetVirtualEthernetCard()
		card.Backing = &types.VirtualEthernetCardDistributedVirtualPortBackingInfo{
			Port: *conn,
		}

		if err := vm.EditDevice(tctx, dev); err != nil {
			return fmt.Errorf("failed to rebind adapter of %q to port group %q: %w", vmName, pgName, err)
		}
	}

	return nil
}
