package vsphere

import (
	"context"
	"fmt"
	"sort"

	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/vim25/mo"
	"github.com/vmware/govmomi/vim25/types"
)

// EnsureSwitch looks up the distributed switch and creates it under the
// datacenter's network folder when absent. A DuplicateName fault on
// create means another invocation won the race; that is still success.
func (c *RealClient) EnsureSwitch(ctx context.Context, name string) (Outcome, error) {
	if _, err := c.lookupSwitch(ctx, name); err == nil {
		return OutcomeAlreadyPresent, nil
	} else if !IsNotFound(err) {
		return "", fmt.Errorf("failed to look up switch %q: %w", name, err)
	}

	folders, err := c.dc.Folders(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get datacenter folders: %w", err)
	}

	spec := types.DVSCreateSpec{
		ConfigSpec: &types.VMwareDVSConfigSpec{
			DVSConfigSpec: types.DVSConfigSpec{Name: name},
		},
	}

	tctx, cancel := c.taskCtx(ctx)
	defer cancel()

	task, err := folders.NetworkFolder.CreateDVS(tctx, spec)
	if err != nil {
		return "", fmt.Errorf("failed to create switch %q: %w", name, err)
	}
	if err := task.Wait(tctx); err != nil {
		if IsDuplicateName(err) {
			return OutcomeAlreadyPresent, nil
		}
		return "", fmt.Errorf("failed to create switch %q: %w", name, err)
	}

	return OutcomeCreated, nil
}

// EnsurePortGroup looks up the port group scoped to the switch and adds
// it when absent.
func (c *RealClient) EnsurePortGroup(ctx context.Context, switchName, pgName string) (Outcome, error) {
	dvs, err := c.lookupSwitch(ctx, switchName)
	if err != nil {
		return "", fmt.Errorf("failed to look up switch %q: %w", switchName, err)
	}

	if net, err := c.finder.Network(ctx, pgName); err == nil {
		pg, ok := net.(*object.DistributedVirtualPortgroup)
		if !ok {
			return "", fmt.Errorf("network %q exists but is not a distributed port group", pgName)
		}

		var pgMo mo.DistributedVirtualPortgroup
		if err := pg.Properties(ctx, pg.Reference(), []string{"config.distributedVirtualSwitch"}, &pgMo); err != nil {
			return "", fmt.Errorf("failed to read port group %q: %w", pgName, err)
		}
		if pgMo.Config.DistributedVirtualSwitch != nil &&
			*pgMo.Config.DistributedVirtualSwitch != dvs.Reference() {
			return "", fmt.Errorf("port group %q belongs to a different switch", pgName)
		}
		return OutcomeAlreadyPresent, nil
	} else if !IsNotFound(err) {
		return "", fmt.Errorf("failed to look up port group %q: %w", pgName, err)
	}

	spec := types.DVPortgroupConfigSpec{
		Name:     pgName,
		Type:     string(types.DistributedVirtualPortgroupPortgroupTypeEarlyBinding),
		NumPorts: 128,
	}

	tctx, cancel := c.taskCtx(ctx)
	defer cancel()

	task, err := dvs.AddPortgroup(tctx, []types.DVPortgroupConfigSpec{spec})
	if err != nil {
		return "", fmt.Errorf("failed to add port group %q: %w", pgName, err)
	}
	if err := task.Wait(tctx); err != nil {
		if IsDuplicateName(err) {
			return OutcomeAlreadyPresent, nil
		}
		return "", fmt.Errorf("failed to add port group %q: %w", pgName, err)
	}

	return OutcomeCreated, nil
}

// SwitchExists probes for the distributed switch without side effects.
func (c *RealClient) SwitchExists(ctx context.Context, name string) (bool, error) {
	if _, err := c.lookupSwitch(ctx, name); err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up switch %q: %w", name, err)
	}
	return true, nil
}

// PortGroupExists probes for the port group on the switch without side
// effects.
func (c *RealClient) PortGroupExists(ctx context.Context, switchName, pgName string) (bool, error) {
	dvs, err := c.lookupSwitch(ctx, switchName)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up switch %q: %w", switchName, err)
	}

	net, err := c.finder.Network(ctx, pgName)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up port group %q: %w", pgName, err)
	}
	pg, ok := net.(*object.DistributedVirtualPortgroup)
	if !ok {
		return false, nil
	}

	var pgMo mo.DistributedVirtualPortgroup
	if err := pg.Properties(ctx, pg.Reference(), []string{"config.distributedVirtualSwitch"}, &pgMo); err != nil {
		return false, fmt.Errorf("failed to read port group %q: %w", pgName, err)
	}
	return pgMo.Config.DistributedVirtualSwitch != nil &&
		*pgMo.Config.DistributedVirtualSwitch == dvs.Reference(), nil
}

// AddHostMember joins the host to the distributed switch with an empty
// pnic backing: membership first, uplinks in a separate step so that no
// adapter is touched before the host is a member.
func (c *RealClient) AddHostMember(ctx context.Context, switchName, hostName string) (Outcome, error) {
	host, err := c.lookupHost(ctx, hostName)
	if err != nil {
		return "", err
	}

	c.dvsMu.Lock()
	defer c.dvsMu.Unlock()

	read, submit := c.switchConfigPair(ctx, switchName)
	outcome := OutcomeCreated
	err = withFreshConfig(read, submit,
		func(cfg *types.DVSConfigInfo) (*types.DVSConfigSpec, error) {
			if hostMember(cfg, host.Reference()) != nil {
				outcome = OutcomeAlreadyPresent
				return nil, nil
			}
			return &types.DVSConfigSpec{
				ConfigVersion: cfg.ConfigVersion,
				Host: []types.DistributedVirtualSwitchHostMemberConfigSpec{{
					Operation: string(types.ConfigSpecOperationAdd),
					Host:      host.Reference(),
					Backing:   &types.DistributedVirtualSwitchHostMemberPnicBacking{},
				}},
			}, nil
		},
	)
	if err != nil {
		if IsAlreadyExists(err) || IsDuplicateName(err) {
			return OutcomeAlreadyPresent, nil
		}
		return "", fmt.Errorf("failed to add host %q to switch %q: %w", hostName, switchName, err)
	}

	return outcome, nil
}

// AttachUplinks binds the given pnic devices to the switch for the host.
// The backing is written as the set union of current and requested
// devices, so attaching an already-attached adapter is a no-op and never
// produces a duplicate uplink entry.
func (c *RealClient) AttachUplinks(ctx context.Context, switchName, hostName string, devices []string) error {
	host, err := c.lookupHost(ctx, hostName)
	if err != nil {
		return err
	}

	c.dvsMu.Lock()
	defer c.dvsMu.Unlock()

	read, submit := c.switchConfigPair(ctx, switchName)
	err = withFreshConfig(read, submit,
		func(cfg *types.DVSConfigInfo) (*types.DVSConfigSpec, error) {
			member := hostMember(cfg, host.Reference())
			if member == nil {
				return nil, fmt.Errorf("host %q is not a member of switch %q", hostName, switchName)
			}

			current := map[string]bool{}
			if backing, ok := member.Config.Backing.(*types.DistributedVirtualSwitchHostMemberPnicBacking); ok {
				for _, pnic := range backing.PnicSpec {
					current[pnic.PnicDevice] = true
				}
			}

			union := make(map[string]bool, len(current)+len(devices))
			for dev := range current {
				union[dev] = true
			}
			changed := false
			for _, dev := range devices {
				if !union[dev] {
					changed = true
				}
				union[dev] = true
			}
			if !changed {
				return nil, nil
			}

			pnicSpec := make([]types.DistributedVirtualSwitchHostMemberPnicSpec, 0, len(union))
			for _, dev := range sortedKeys(union) {
				pnicSpec = append(pnicSpec, types.DistributedVirtualSwitchHostMemberPnicSpec{PnicDevice: dev})
			}

			return &types.DVSConfigSpec{
				ConfigVersion: cfg.ConfigVersion,
				Host: []types.DistributedVirtualSwitchHostMemberConfigSpec{{
					Operation: string(types.ConfigSpecOperationEdit),
					Host:      host.Reference(),
					Backing: &types.DistributedVirtualSwitchHostMemberPnicBacking{
						PnicSpec: pnicSpec,
					},
				}},
			}, nil
		},
	)
	if err != nil {
		return fmt.Errorf("failed to attach uplinks %v of host %q to switch %q: %w",
			devices, hostName, switchName, err)
	}
	return nil
}

// switchConfig fetches the switch object together with its live config,
// which carries the ConfigVersion required for reconfiguration and the
// current host member list.
func (c *RealClient) switchConfig(ctx context.Context, name string) (*object.DistributedVirtualSwitch, *types.DVSConfigInfo, error) {
	dvs, err := c.lookupSwitch(ctx, name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up switch %q: %w", name, err)
	}

	var dvsMo mo.DistributedVirtualSwitch
	if err := dvs.Properties(ctx, dvs.Reference(), []string{"config"}, &dvsMo); err != nil {
		return nil, nil, fmt.Errorf("failed to read switch %q config: %w", name, err)
	}
	if dvsMo.Config == nil {
		return nil, nil, fmt.Errorf("switch %q has no config available", name)
	}

	return dvs, dvsMo.Config.GetDVSConfigInfo(), nil
}

func (c *RealClient) reconfigureSwitch(ctx context.Context, dvs *object.DistributedVirtualSwitch, spec types.BaseDVSConfigSpec) error {
	tctx, cancel := c.taskCtx(ctx)
	defer cancel()

	task, err := dvs.Reconfigure(tctx, spec)
	if err != nil {
		return err
	}
	return task.Wait(tctx)
}

// switchConfigPair returns a read/submit pair over the named switch for
// withFreshConfig. Submit reconfigures the switch object resolved by the
// most recent read.
func (c *RealClient) switchConfigPair(ctx context.Context, name string) (func() (*types.DVSConfigInfo, error), func(*types.DVSConfigSpec) error) {
	var dvs *object.DistributedVirtualSwitch
	read := func() (*types.DVSConfigInfo, error) {
		d, cfg, err := c.switchConfig(ctx, name)
		if err != nil {
			return nil, err
		}
		dvs = d
		return cfg, nil
	}
	submit := func(spec *types.DVSConfigSpec) error {
		return c.reconfigureSwitch(ctx, dvs, spec)
	}
	return read, submit
}

// reconfigureRetries bounds how many stale config reads a single switch
// change tolerates before giving up.
const reconfigureRetries = 3

// withFreshConfig submits a switch change built against the latest config
// read. vCenter rejects a DVSConfigSpec whose ConfigVersion no longer
// matches the switch with a ConcurrentAccess fault; on that fault the
// config is read again and the spec rebuilt, since another writer may
// have applied or obsoleted the change in the meantime. A nil spec from
// build means nothing is left to do.
func withFreshConfig(
	read func() (*types.DVSConfigInfo, error),
	submit func(*types.DVSConfigSpec) error,
	build func(cfg *types.DVSConfigInfo) (*types.DVSConfigSpec, error),
) error {
	var err error
	for range reconfigureRetries {
		var cfg *types.DVSConfigInfo
		cfg, err = read()
		if err != nil {
			return err
		}

		var spec *types.DVSConfigSpec
		spec, err = build(cfg)
		if err != nil || spec == nil {
			return err
		}

		err = submit(spec)
		if err == nil || !IsConcurrentAccess(err) {
			return err
		}
	}
	return fmt.Errorf("switch config changed %d times during reconfiguration: %w", reconfigureRetries, err)
}

// portConnection resolves the switch UUID / port group key pair used to
// point a virtual or VMkernel adapter at the distributed port group.
func (c *RealClient) portConnection(ctx context.Context, switchName, pgName string) (*types.DistributedVirtualSwitchPortConnection, error) {
	dvs, err := c.lookupSwitch(ctx, switchName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up switch %q: %w", switchName, err)
	}

	var dvsMo mo.DistributedVirtualSwitch
	if err := dvs.Properties(ctx, dvs.Reference(), []string{"uuid"}, &dvsMo); err != nil {
		return nil, fmt.Errorf("failed to read switch %q uuid: %w", switchName, err)
	}

	net, err := c.finder.Network(ctx, pgName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up port group %q: %w", pgName, err)
	}
	pg, ok := net.(*object.DistributedVirtualPortgroup)
	if !ok {
		return nil, fmt.Errorf("network %q is not a distributed port group", pgName)
	}

	var pgMo mo.DistributedVirtualPortgroup
	if err := pg.Properties(ctx, pg.Reference(), []string{"key"}, &pgMo); err != nil {
		return nil, fmt.Errorf("failed to read port group %q key: %w", pgName, err)
	}

	return &types.DistributedVirtualSwitchPortConnection{
		SwitchUuid:   dvsMo.Uuid,
		PortgroupKey: pgMo.Key,
	}, nil
}

func hostMember(cfg *types.DVSConfigInfo, ref types.ManagedObjectReference) *types.DistributedVirtualSwitchHostMember {
	for i := range cfg.Host {
		member := &cfg.Host[i]
		if member.Config.Host != nil && *member.Config.Host == ref {
			return member
		}
	}
	return nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
