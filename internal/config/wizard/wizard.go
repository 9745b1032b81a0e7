package wizard

import (
	"context"
	"fmt"
)

// Result holds all the answers from the interactive wizard.
type Result struct {
	// vCenter connection
	Endpoint   string
	Username   string
	Datacenter string
	Insecure   bool

	// Hosts to migrate
	Hosts []string

	// Switch topology
	SwitchName   string
	PortGroup    string
	LegacySwitch string
	UplinkDevice string

	// Migration options
	ExcludeVMs []string
	Parallel   bool
}

// RunWizard runs the interactive configuration wizard. The context is
// used for cancellation support (e.g. Ctrl+C).
func RunWizard(ctx context.Context) (*Result, error) {
	result := &Result{}

	if err := runVCenterGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("vcenter: %w", err)
	}

	if err := runHostsGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("hosts: %w", err)
	}

	if err := runTopologyGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("topology: %w", err)
	}

	if err := runOptionsGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}

	return result, nil
}
