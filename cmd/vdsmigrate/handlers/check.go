package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/mattn/go-isatty"

	"github.com/virtstack/vdsmigrate/internal/config"
	"github.com/virtstack/vdsmigrate/internal/platform/vsphere"
)

// CheckReport is the preflight result for the whole environment.
type CheckReport struct {
	Endpoint        string      `json:"endpoint"`
	Datacenter      string      `json:"datacenter,omitempty"`
	SwitchName      string      `json:"switchName"`
	SwitchExists    bool        `json:"switchExists"`
	SwitchError     string      `json:"switchError,omitempty"`
	PortGroup       string      `json:"portGroup"`
	PortGroupExists bool        `json:"portGroupExists"`
	PortGroupError  string      `json:"portGroupError,omitempty"`
	Hosts           []HostCheck `json:"hosts"`
	Ready           bool        `json:"ready"`
}

// HostCheck is the preflight result for one host.
type HostCheck struct {
	Name         string   `json:"name"`
	Found        bool     `json:"found"`
	Adapters     []string `json:"adapters,omitempty"`
	UplinkDevice string   `json:"uplinkDevice"`
	HasUplink    bool     `json:"hasUplink"`
	Ready        bool     `json:"ready"`
	Message      string   `json:"message,omitempty"`
}

// Check runs preflight diagnostics against the configured vCenter
// without changing anything. It returns an error when any host is not
// ready, so CI pipelines can gate on the exit code.
func Check(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	client, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Logout(ctx) }()

	report := buildCheckReport(ctx, client, cfg)

	if jsonOutput || !isInteractiveTTY() {
		if err := printCheckJSON(report); err != nil {
			return err
		}
	} else {
		printCheckStyled(report)
	}

	if !report.Ready {
		return fmt.Errorf("preflight checks failed")
	}
	return nil
}

// buildCheckReport probes the inventory. Host checks reuse the same
// eligibility rules the enrollment phase enforces.
func buildCheckReport(ctx context.Context, client vsphere.Client, cfg *config.Config) *CheckReport {
	report := &CheckReport{
		Endpoint:   cfg.VCenter.Endpoint,
		Datacenter: cfg.VCenter.Datacenter,
		SwitchName: cfg.SwitchName,
		PortGroup:  cfg.PortGroup,
		Ready:      true,
	}

	// Existing topology is informational: the migrate phases create it
	// when missing, so absence does not fail the preflight. A failed
	// probe does: it means the environment could not be verified.
	exists, err := client.SwitchExists(ctx, cfg.SwitchName)
	if err != nil {
		report.SwitchError = err.Error()
		report.Ready = false
	}
	report.SwitchExists = exists

	exists, err = client.PortGroupExists(ctx, cfg.SwitchName, cfg.PortGroup)
	if err != nil {
		report.PortGroupError = err.Error()
		report.Ready = false
	}
	report.PortGroupExists = exists

	for _, host := range cfg.Hosts {
		check := checkHost(ctx, client, cfg, host)
		if !check.Ready {
			report.Ready = false
		}
		report.Hosts = append(report.Hosts, check)
	}

	return report
}

func checkHost(ctx context.Context, client vsphere.Client, cfg *config.Config, host string) HostCheck {
	check := HostCheck{Name: host, UplinkDevice: cfg.UplinkDevice}

	adapters, err := client.PhysicalAdapters(ctx, host)
	if err != nil {
		check.Message = err.Error()
		return check
	}
	check.Found = true
	check.Adapters = adapters
	check.HasUplink = slices.Contains(adapters, cfg.UplinkDevice)

	switch {
	case len(adapters) < 2:
		check.Message = fmt.Sprintf("only %d physical adapter(s); need at least 2", len(adapters))
	case !check.HasUplink:
		check.Message = fmt.Sprintf("uplink device %q not present", cfg.UplinkDevice)
	case cfg.UplinkDevice == adapters[0]:
		check.Message = fmt.Sprintf("%q is the first physical adapter and cannot be moved", cfg.UplinkDevice)
	default:
		check.Ready = true
	}
	return check
}

// printCheckJSON outputs the report as indented JSON.
func printCheckJSON(report *CheckReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// printCheckStyled renders the report for an interactive terminal.
func printCheckStyled(report *CheckReport) {
	fmt.Println()
	fmt.Println(checkTitleStyle.Render("vdsmigrate preflight"))
	fmt.Println(checkDimStyle.Render(fmt.Sprintf("  vCenter: %s", report.Endpoint)))
	fmt.Println()

	fmt.Println(checkSectionStyle.Render("  Topology"))
	printTopologyRow("distributed switch", report.SwitchName, report.SwitchExists, report.SwitchError)
	printTopologyRow("port group", report.PortGroup, report.PortGroupExists, report.PortGroupError)
	fmt.Println()

	fmt.Println(checkSectionStyle.Render("  Hosts"))
	for _, host := range report.Hosts {
		mark := checkOKStyle.Render(checkMark)
		detail := fmt.Sprintf("%d adapter(s)", len(host.Adapters))
		if !host.Ready {
			mark = checkFailStyle.Render(crossMark)
			detail = host.Message
		}
		fmt.Printf("  %s %-24s %s\n", mark, host.Name, checkDimStyle.Render(detail))
	}

	fmt.Println()
	if report.Ready {
		fmt.Println(checkOKStyle.Render("  All hosts are ready to migrate."))
	} else {
		fmt.Println(checkFailStyle.Render("  Fix the problems above before migrating."))
	}
	fmt.Println()
}

// printTopologyRow renders one topology line. Missing objects are not
// failures; the migration creates them. A probe error is one.
func printTopologyRow(kind, name string, exists bool, probeErr string) {
	if probeErr != "" {
		fmt.Printf("  %-20s %-24s %s\n", kind, name, checkFailStyle.Render(probeErr))
		return
	}
	state := "will be created"
	if exists {
		state = "exists"
	}
	fmt.Printf("  %-20s %-24s %s\n", kind, name, checkDimStyle.Render(state))
}

// isInteractiveTTY reports whether stdout is an interactive terminal.
func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
