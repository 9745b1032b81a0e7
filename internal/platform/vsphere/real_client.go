package vsphere

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/find"
	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/vim25/mo"
)

// RealClient implements Client against a live vCenter session.
type RealClient struct {
	client      *govmomi.Client
	finder      *find.Finder
	dc          *object.Datacenter
	taskTimeout time.Duration

	// dvsMu serializes switch reconfigurations issued by this process.
	// A DVSConfigSpec is only valid for the ConfigVersion it was built
	// against, so parallel per-host edits would invalidate each other.
	dvsMu sync.Mutex
}

var _ Client = (*RealClient)(nil)

// Logout releases the session.
func (c *RealClient) Logout(ctx context.Context) error {
	return c.client.Logout(ctx)
}

// taskCtx bounds a mutating vCenter task.
func (c *RealClient) taskCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.taskTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.taskTimeout)
}

// lookupSwitch resolves a distributed switch by name in the datacenter's
// network folder. Returns a find.NotFoundError when absent.
func (c *RealClient) lookupSwitch(ctx context.Context, name string) (*object.DistributedVirtualSwitch, error) {
	net, err := c.finder.Network(ctx, name)
	if err != nil {
		return nil, err
	}
	dvs, ok := net.(*object.DistributedVirtualSwitch)
	if !ok {
		return nil, fmt.Errorf("network %q exists but is not a distributed virtual switch", name)
	}
	return dvs, nil
}

// lookupHost resolves a host system by its inventory name or address.
func (c *RealClient) lookupHost(ctx context.Context, name string) (*object.HostSystem, error) {
	host, err := c.finder.HostSystem(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve host %q: %w", name, err)
	}
	return host, nil
}

// hostNetworkSystem returns the host's networking manager object.
func (c *RealClient) hostNetworkSystem(ctx context.Context, hostName string) (*object.HostNetworkSystem, error) {
	host, err := c.lookupHost(ctx, hostName)
	if err != nil {
		return nil, err
	}
	ns, err := host.ConfigManager().NetworkSystem(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get network system of host %q: %w", hostName, err)
	}
	return ns, nil
}

// hostNetworkConfig fetches the host's network config snapshot.
func (c *RealClient) hostNetworkConfig(ctx context.Context, hostName string) (*mo.HostSystem, error) {
	host, err := c.lookupHost(ctx, hostName)
	if err != nil {
		return nil, err
	}

	var hs mo.HostSystem
	if err := host.Properties(ctx, host.Reference(), []string{"config.network"}, &hs); err != nil {
		return nil, fmt.Errorf("failed to read network config of host %q: %w", hostName, err)
	}
	if hs.Config == nil {
		return nil, fmt.Errorf("host %q has no config available", hostName)
	}
	return &hs, nil
}
