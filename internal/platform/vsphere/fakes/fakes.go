// Package fakes provides an in-memory vSphere inventory implementing
// vsphere.Client for tests. It tracks the same state the migration
// mutates on a real cluster (switch membership, uplink sets, adapter
// bindings, legacy port groups) and records every call so tests can
// assert on ordering.
package fakes

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/virtstack/vdsmigrate/internal/platform/vsphere"
)

// FakeHost is one simulated hypervisor.
type FakeHost struct {
	Pnics           []string            // physical adapter device names
	ManagementNic   string              // e.g. "vmk0"
	ManagementBound string              // port group the vmk is bound to
	LegacyGroups    map[string][]string // vswitch name -> port group names
}

// FakeVM is one simulated virtual machine with a single adapter binding.
type FakeVM struct {
	BoundPortGroup string
}

// FakeSwitch is a simulated distributed switch.
type FakeSwitch struct {
	PortGroups map[string]bool
	Members    map[string]map[string]bool // host -> uplink device set
}

// Inventory is an in-memory cluster implementing vsphere.Client.
type Inventory struct {
	mu sync.Mutex

	Switches map[string]*FakeSwitch
	Hosts    map[string]*FakeHost
	VMs      map[string]*FakeVM

	// FailOn injects an error for a specific call, keyed by
	// "Operation/name" (e.g. "AttachUplinks/esx-02").
	FailOn map[string]error

	// CallLog records "Operation/name" entries in invocation order.
	CallLog []string

	LoggedOut bool
}

var _ vsphere.Client = (*Inventory)(nil)

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{
		Switches: make(map[string]*FakeSwitch),
		Hosts:    make(map[string]*FakeHost),
		VMs:      make(map[string]*FakeVM),
		FailOn:   make(map[string]error),
	}
}

// AddHost registers a simulated host with the given pnics and legacy
// port groups on vSwitch0.
func (f *Inventory) AddHost(name string, pnics []string, legacyGroups ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Hosts[name] = &FakeHost{
		Pnics:         append([]string(nil), pnics...),
		ManagementNic: "vmk0",
		LegacyGroups: map[string][]string{
			"vSwitch0": append([]string(nil), legacyGroups...),
		},
	}
}

// AddVM registers a simulated virtual machine.
func (f *Inventory) AddVM(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.VMs[name] = &FakeVM{}
}

func (f *Inventory) record(op, name string) error {
	key := op + "/" + name
	f.CallLog = append(f.CallLog, key)
	if err, ok := f.FailOn[key]; ok {
		return err
	}
	if err, ok := f.FailOn[op]; ok {
		return err
	}
	return nil
}

func (f *Inventory) EnsureSwitch(_ context.Context, name string) (vsphere.Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("EnsureSwitch", name); err != nil {
		return "", err
	}
	if _, ok := f.Switches[name]; ok {
		return vsphere.OutcomeAlreadyPresent, nil
	}
	f.Switches[name] = &FakeSwitch{
		PortGroups: make(map[string]bool),
		Members:    make(map[string]map[string]bool),
	}
	return vsphere.OutcomeCreated, nil
}

func (f *Inventory) EnsurePortGroup(_ context.Context, switchName, pgName string) (vsphere.Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("EnsurePortGroup", pgName); err != nil {
		return "", err
	}
	sw, ok := f.Switches[switchName]
	if !ok {
		return "", fmt.Errorf("switch %q not found", switchName)
	}
	if sw.PortGroups[pgName] {
		return vsphere.OutcomeAlreadyPresent, nil
	}
	sw.PortGroups[pgName] = true
	return vsphere.OutcomeCreated, nil
}

func (f *Inventory) SwitchExists(_ context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("SwitchExists", name); err != nil {
		return false, err
	}
	_, ok := f.Switches[name]
	return ok, nil
}

func (f *Inventory) PortGroupExists(_ context.Context, switchName, pgName string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("PortGroupExists", pgName); err != nil {
		return false, err
	}
	sw, ok := f.Switches[switchName]
	return ok && sw.PortGroups[pgName], nil
}

func (f *Inventory) AddHostMember(_ context.Context, switchName, hostName string) (vsphere.Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("AddHostMember", hostName); err != nil {
		return "", err
	}
	sw, ok := f.Switches[switchName]
	if !ok {
		return "", fmt.Errorf("switch %q not found", switchName)
	}
	if _, ok := f.Hosts[hostName]; !ok {
		return "", fmt.Errorf("host %q not found", hostName)
	}
	if _, ok := sw.Members[hostName]; ok {
		return vsphere.OutcomeAlreadyPresent, nil
	}
	sw.Members[hostName] = make(map[string]bool)
	return vsphere.OutcomeCreated, nil
}

func (f *Inventory) PhysicalAdapters(_ context.Context, hostName string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("PhysicalAdapters", hostName); err != nil {
		return nil, err
	}
	host, ok := f.Hosts[hostName]
	if !ok {
		return nil, fmt.Errorf("host %q not found", hostName)
	}
	devices := append([]string(nil), host.Pnics...)
	sort.Strings(devices)
	return devices, nil
}

func (f *Inventory) AttachUplinks(_ context.Context, switchName, hostName string, devices []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("AttachUplinks", hostName); err != nil {
		return err
	}
	sw, ok := f.Switches[switchName]
	if !ok {
		return fmt.Errorf("switch %q not found", switchName)
	}
	uplinks, ok := sw.Members[hostName]
	if !ok {
		return fmt.Errorf("host %q is not a member of switch %q", hostName, switchName)
	}
	host := f.Hosts[hostName]
	for _, dev := range devices {
		found := false
		for _, pnic := range host.Pnics {
			if pnic == dev {
				found = true
			}
		}
		if !found {
			return fmt.Errorf("host %q has no physical adapter %q", hostName, dev)
		}
		// Set semantics: re-attach is a no-op, never a duplicate.
		uplinks[dev] = true
	}
	return nil
}

func (f *Inventory) VirtualMachines(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("VirtualMachines", "*"); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(f.VMs))
	for name := range f.VMs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *Inventory) RebindVMAdapters(_ context.Context, switchName, pgName, vmName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("RebindVMAdapters", vmName); err != nil {
		return err
	}
	sw, ok := f.Switches[switchName]
	if !ok || !sw.PortGroups[pgName] {
		return fmt.Errorf("port group %q not found on switch %q", pgName, switchName)
	}
	vm, ok := f.VMs[vmName]
	if !ok {
		return fmt.Errorf("virtual machine %q not found", vmName)
	}
	vm.BoundPortGroup = pgName
	return nil
}

func (f *Inventory) RebindManagementNic(_ context.Context, switchName, pgName, hostName, device string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("RebindManagementNic", hostName); err != nil {
		return err
	}
	sw, ok := f.Switches[switchName]
	if !ok || !sw.PortGroups[pgName] {
		return fmt.Errorf("port group %q not found on switch %q", pgName, switchName)
	}
	host, ok := f.Hosts[hostName]
	if !ok {
		return fmt.Errorf("host %q not found", hostName)
	}
	if host.ManagementNic != device {
		return fmt.Errorf("host %q has no virtual nic %q", hostName, device)
	}
	// Connectivity invariant: the host must already have an uplink on
	// the target switch, or this rebind would strand it.
	if len(sw.Members[hostName]) == 0 {
		return fmt.Errorf("host %q has no uplink on switch %q; rebinding %s would sever management connectivity",
			hostName, switchName, device)
	}
	host.ManagementBound = pgName
	return nil
}

func (f *Inventory) LegacyPortGroups(_ context.Context, hostName, vswitchName string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("LegacyPortGroups", hostName); err != nil {
		return nil, err
	}
	host, ok := f.Hosts[hostName]
	if !ok {
		return nil, fmt.Errorf("host %q not found", hostName)
	}
	names := append([]string(nil), host.LegacyGroups[vswitchName]...)
	sort.Strings(names)
	return names, nil
}

func (f *Inventory) RemoveLegacyPortGroup(_ context.Context, hostName, pgName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("RemoveLegacyPortGroup", hostName+"/"+pgName); err != nil {
		return err
	}
	host, ok := f.Hosts[hostName]
	if !ok {
		return fmt.Errorf("host %q not found", hostName)
	}
	for vswitch, groups := range host.LegacyGroups {
		kept := groups[:0]
		for _, name := range groups {
			if name != pgName {
				kept = append(kept, name)
			}
		}
		host.LegacyGroups[vswitch] = kept
	}
	return nil
}

func (f *Inventory) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoggedOut = true
	return nil
}

// HasSwitch reports whether a switch exists in the inventory.
func (f *Inventory) HasSwitch(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.Switches[name]
	return ok
}

// HasPortGroup reports whether a port group exists on a switch.
func (f *Inventory) HasPortGroup(switchName, pgName string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	sw, ok := f.Switches[switchName]
	return ok && sw.PortGroups[pgName]
}

// Uplinks returns the sorted uplink devices of a host on a switch.
func (f *Inventory) Uplinks(switchName, hostName string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	sw, ok := f.Switches[switchName]
	if !ok {
		return nil
	}
	devices := make([]string, 0, len(sw.Members[hostName]))
	for dev := range sw.Members[hostName] {
		devices = append(devices, dev)
	}
	sort.Strings(devices)
	return devices
}

// CallIndex returns the position of the first call matching the key, or
// -1 when it never happened.
func (f *Inventory) CallIndex(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, call := range f.CallLog {
		if call == key {
			return i
		}
	}
	return -1
}
