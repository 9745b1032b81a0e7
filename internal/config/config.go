package config

// Defaults applied by LoadFile when the corresponding field is empty.
const (
	// DefaultSwitchName is the distributed switch created by the migration.
	DefaultSwitchName = "VDS"

	// DefaultPortGroup is the distributed port group VM and management
	// traffic is moved onto.
	DefaultPortGroup = "VM-Network"

	// DefaultLegacySwitch is the per-host standard switch being retired.
	DefaultLegacySwitch = "vSwitch0"

	// DefaultUplinkDevice is the first uplink moved to the new switch.
	// It is the second physical NIC by convention: the first one carries
	// the host's only live network path until cutover completes, so it
	// must not be touched during enrollment.
	DefaultUplinkDevice = "vmnic1"

	// DefaultManagementNic is the VMkernel interface carrying host
	// management traffic.
	DefaultManagementNic = "vmk0"
)

// DefaultExcludeVMs are name prefixes of infrastructure-management VMs
// that must not have their traffic moved (vSphere cluster services).
var DefaultExcludeVMs = []string{"vCLS"}

// VCenterConfig identifies the management endpoint and credentials.
type VCenterConfig struct {
	Endpoint   string `yaml:"endpoint"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password,omitempty"` // VSPHERE_PASSWORD preferred
	Datacenter string `yaml:"datacenter,omitempty"`
	Insecure   bool   `yaml:"insecure,omitempty"`
}

// Config is the full migration configuration.
type Config struct {
	VCenter VCenterConfig `yaml:"vcenter"`

	SwitchName    string   `yaml:"switch_name"`
	PortGroup     string   `yaml:"port_group"`
	LegacySwitch  string   `yaml:"legacy_switch"`
	UplinkDevice  string   `yaml:"uplink_device"`
	ManagementNic string   `yaml:"management_nic"`
	Hosts         []string `yaml:"hosts"`
	ExcludeVMs    []string `yaml:"exclude_vms"`

	// Parallel fans host-level work out across hosts inside each phase.
	// Within-host ordering is preserved either way. Default is the
	// sequential reference behavior.
	Parallel bool `yaml:"parallel,omitempty"`
}

// ApplyDefaults fills empty fields with the conventional values.
func (c *Config) ApplyDefaults() {
	if c.SwitchName == "" {
		c.SwitchName = DefaultSwitchName
	}
	if c.PortGroup == "" {
		c.PortGroup = DefaultPortGroup
	}
	if c.LegacySwitch == "" {
		c.LegacySwitch = DefaultLegacySwitch
	}
	if c.UplinkDevice == "" {
		c.UplinkDevice = DefaultUplinkDevice
	}
	if c.ManagementNic == "" {
		c.ManagementNic = DefaultManagementNic
	}
	if c.ExcludeVMs == nil {
		c.ExcludeVMs = append([]string(nil), DefaultExcludeVMs...)
	}
}
