package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtstack/vdsmigrate/internal/config"
	"github.com/virtstack/vdsmigrate/internal/platform/vsphere"
)

func TestBuildCheckReportAllReady(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	inv := testInventory()

	report := buildCheckReport(context.Background(), inv, cfg)

	require.Len(t, report.Hosts, 2)
	assert.True(t, report.Ready)
	for _, host := range report.Hosts {
		assert.True(t, host.Found)
		assert.True(t, host.HasUplink)
		assert.True(t, host.Ready)
		assert.Empty(t, host.Message)
	}
}

func TestBuildCheckReportProbesTopology(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	inv := testInventory()

	report := buildCheckReport(context.Background(), inv, cfg)
	assert.False(t, report.SwitchExists)
	assert.False(t, report.PortGroupExists)

	_, err := inv.EnsureSwitch(context.Background(), cfg.SwitchName)
	require.NoError(t, err)
	_, err = inv.EnsurePortGroup(context.Background(), cfg.SwitchName, cfg.PortGroup)
	require.NoError(t, err)

	report = buildCheckReport(context.Background(), inv, cfg)
	assert.True(t, report.SwitchExists)
	assert.True(t, report.PortGroupExists)
	assert.True(t, report.Ready)
}

func TestBuildCheckReportFlagsFailedTopologyProbe(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	inv := testInventory()
	inv.FailOn["SwitchExists/"+cfg.SwitchName] = errors.New("permission denied")

	report := buildCheckReport(context.Background(), inv, cfg)

	assert.False(t, report.Ready)
	assert.False(t, report.SwitchExists)
	assert.Contains(t, report.SwitchError, "permission denied")
	for _, host := range report.Hosts {
		assert.True(t, host.Ready, "host checks are independent of topology probes")
	}
}

func TestBuildCheckReportFlagsFailedPortGroupProbe(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	inv := testInventory()
	inv.FailOn["PortGroupExists/"+cfg.PortGroup] = errors.New("query timed out")

	report := buildCheckReport(context.Background(), inv, cfg)

	assert.False(t, report.Ready)
	assert.Empty(t, report.SwitchError)
	assert.Contains(t, report.PortGroupError, "query timed out")
}

func TestBuildCheckReportFlagsSingleAdapterHost(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	inv := testInventory()
	inv.Hosts["esx-02"].Pnics = []string{"vmnic0"}

	report := buildCheckReport(context.Background(), inv, cfg)

	assert.False(t, report.Ready)
	assert.True(t, report.Hosts[0].Ready)
	assert.False(t, report.Hosts[1].Ready)
	assert.Contains(t, report.Hosts[1].Message, "need at least 2")
}

func TestBuildCheckReportFlagsMissingUplink(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	inv := testInventory()
	inv.Hosts["esx-01"].Pnics = []string{"vmnic0", "vmnic2"}

	report := buildCheckReport(context.Background(), inv, cfg)

	assert.False(t, report.Ready)
	assert.False(t, report.Hosts[0].Ready)
	assert.Contains(t, report.Hosts[0].Message, `"vmnic1" not present`)
}

func TestBuildCheckReportFlagsMissingHost(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Hosts = append(cfg.Hosts, "esx-99")
	inv := testInventory()

	report := buildCheckReport(context.Background(), inv, cfg)

	assert.False(t, report.Ready)
	missing := report.Hosts[2]
	assert.False(t, missing.Found)
	assert.Contains(t, missing.Message, "not found")
}

func TestBuildCheckReportFlagsFirstAdapterUplink(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.UplinkDevice = "vmnic0"
	inv := testInventory()

	report := buildCheckReport(context.Background(), inv, cfg)

	assert.False(t, report.Ready)
	assert.Contains(t, report.Hosts[0].Message, "first physical adapter")
}

func TestCheckReturnsErrorWhenNotReady(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := testConfig()
	inv := testInventory()
	inv.Hosts["esx-01"].Pnics = []string{"vmnic0"}

	loadConfigFile = func(string) (*config.Config, error) { return cfg, nil }
	connectClient = func(context.Context, vsphere.Settings) (vsphere.Client, error) { return inv, nil }

	err := Check(context.Background(), "test.yaml", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preflight checks failed")
	assert.True(t, inv.LoggedOut)
}

func TestCheckSucceedsWhenReady(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(string) (*config.Config, error) { return testConfig(), nil }
	connectClient = func(context.Context, vsphere.Settings) (vsphere.Client, error) {
		return testInventory(), nil
	}

	assert.NoError(t, Check(context.Background(), "test.yaml", true))
}

func TestCheckReportMarshalsToJSON(t *testing.T) {
	t.Parallel()

	report := buildCheckReport(context.Background(), testInventory(), testConfig())

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ready":true`)
	assert.Contains(t, string(data), `"uplinkDevice":"vmnic1"`)
}

func TestCheckHostSurfacesClientError(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	inv := testInventory()
	inv.FailOn["PhysicalAdapters/esx-01"] = errors.New("host in maintenance mode")

	check := checkHost(context.Background(), inv, cfg, "esx-01")

	assert.False(t, check.Found)
	assert.False(t, check.Ready)
	assert.Contains(t, check.Message, "maintenance mode")
}
