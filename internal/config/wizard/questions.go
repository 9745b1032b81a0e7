package wizard

import (
	"context"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/virtstack/vdsmigrate/internal/config"
)

// runVCenterGroup prompts for the vCenter connection details.
func runVCenterGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("vCenter Endpoint").
				Description("Hostname or URL of the vCenter server").
				Placeholder("vcenter.example.com").
				Value(&result.Endpoint).
				Validate(validateEndpoint),
			huh.NewInput().
				Title("Username").
				Description("Account with network administration privileges").
				Placeholder("administrator@vsphere.local").
				Value(&result.Username).
				Validate(validateRequired(errUsernameRequired)),
			huh.NewInput().
				Title("Datacenter (Optional)").
				Description("Leave empty to use the default datacenter").
				Value(&result.Datacenter),
			huh.NewConfirm().
				Title("Skip TLS Verification?").
				Description("Only for vCenters with self-signed certificates").
				Value(&result.Insecure),
		).Title("vCenter Connection"),
	).RunWithContext(ctx)
}

// runHostsGroup prompts for the hosts to migrate.
func runHostsGroup(ctx context.Context, result *Result) error {
	var hostsInput string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Hosts").
				Description("Comma-separated host names as known to vCenter").
				Placeholder("esx-01.lab, esx-02.lab").
				Value(&hostsInput).
				Validate(validateHostList),
		).Title("Hosts"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	result.Hosts = parseList(hostsInput)
	return nil
}

// runTopologyGroup prompts for the switch topology names.
func runTopologyGroup(ctx context.Context, result *Result) error {
	result.SwitchName = config.DefaultSwitchName
	result.PortGroup = config.DefaultPortGroup
	result.LegacySwitch = config.DefaultLegacySwitch
	result.UplinkDevice = config.DefaultUplinkDevice

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Distributed Switch Name").
				Description("Created if it does not exist").
				Value(&result.SwitchName).
				Validate(validateName),
			huh.NewInput().
				Title("Port Group Name").
				Description("Target port group for VM and management traffic").
				Value(&result.PortGroup).
				Validate(validateName),
			huh.NewInput().
				Title("Legacy Standard Switch").
				Description("The per-host switch being replaced").
				Value(&result.LegacySwitch).
				Validate(validateName),
			huh.NewInput().
				Title("Initial Uplink Device").
				Description("Physical adapter attached first; must not carry live traffic").
				Value(&result.UplinkDevice).
				Validate(validateName),
		).Title("Switch Topology"),
	).RunWithContext(ctx)
}

// runOptionsGroup prompts for migration options.
func runOptionsGroup(ctx context.Context, result *Result) error {
	excludeInput := strings.Join(config.DefaultExcludeVMs, ", ")

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Excluded VM Patterns (Optional)").
				Description("Comma-separated name prefixes to leave untouched").
				Value(&excludeInput),
			huh.NewConfirm().
				Title("Migrate Hosts in Parallel?").
				Description("Hosts are independent; phases stay ordered within each host").
				Value(&result.Parallel),
		).Title("Options"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	result.ExcludeVMs = parseList(excludeInput)
	return nil
}

// validateEndpoint checks the vCenter endpoint format.
func validateEndpoint(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errEndpointRequired
	}
	if strings.ContainsAny(s, " \t") {
		return errEndpointInvalid
	}
	return nil
}

// validateRequired returns a validator that rejects blank input with
// the given error.
func validateRequired(err error) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return err
		}
		return nil
	}
}

// validateName checks an inventory object name.
func validateName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errNameRequired
	}
	if strings.ContainsAny(s, " \t") {
		return errNameInvalid
	}
	return nil
}

// validateHostList checks a comma-separated host list.
func validateHostList(s string) error {
	if len(parseList(s)) == 0 {
		return errHostsRequired
	}
	return nil
}

// parseList splits comma-separated input into trimmed non-empty items.
func parseList(input string) []string {
	var items []string
	for _, item := range strings.Split(input, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
