package enrollment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtstack/vdsmigrate/internal/config"
	"github.com/virtstack/vdsmigrate/internal/migration"
	"github.com/virtstack/vdsmigrate/internal/platform/vsphere/fakes"
)

func newTestContext(t *testing.T, inv *fakes.Inventory, hosts ...string) *migration.Context {
	t.Helper()
	cfg := &config.Config{Hosts: hosts}
	cfg.ApplyDefaults()
	ctx := migration.NewContext(context.Background(), cfg, inv)
	_, err := inv.EnsureSwitch(ctx, cfg.SwitchName)
	require.NoError(t, err)
	return ctx
}

func TestEnrollmentAttachesSecondAdapter(t *testing.T) {
	t.Parallel()

	inv := fakes.NewInventory()
	inv.AddHost("esx-01", []string{"vmnic0", "vmnic1"})
	ctx := newTestContext(t, inv, "esx-01")

	require.NoError(t, New().Run(ctx))

	assert.Equal(t, []string{"vmnic1"}, inv.Uplinks(config.DefaultSwitchName, "esx-01"))
	assert.True(t, ctx.State.HostDone("esx-01", migration.PhaseEnrollment))
}

func TestEnrollmentIsIdempotent(t *testing.T) {
	t.Parallel()

	inv := fakes.NewInventory()
	inv.AddHost("esx-01", []string{"vmnic0", "vmnic1"})

	ctx := newTestContext(t, inv, "esx-01")
	require.NoError(t, New().Run(ctx))

	// A second run finds the host enrolled and changes nothing.
	ctx2 := newTestContext(t, inv, "esx-01")
	require.NoError(t, New().Run(ctx2))
	assert.Equal(t, []string{"vmnic1"}, inv.Uplinks(config.DefaultSwitchName, "esx-01"))
}

func TestEnrollmentRejectsSingleAdapterHost(t *testing.T) {
	t.Parallel()

	inv := fakes.NewInventory()
	inv.AddHost("esx-01", []string{"vmnic0"})
	ctx := newTestContext(t, inv, "esx-01")

	err := New().Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "need at least 2")
	assert.False(t, ctx.State.HostDone("esx-01", migration.PhaseEnrollment))
	assert.Empty(t, inv.Uplinks(config.DefaultSwitchName, "esx-01"))
}

func TestEnrollmentRejectsMissingUplinkDevice(t *testing.T) {
	t.Parallel()

	inv := fakes.NewInventory()
	inv.AddHost("esx-01", []string{"vmnic0", "vmnic2"})
	ctx := newTestContext(t, inv, "esx-01")

	err := New().Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no physical adapter "vmnic1"`)
}

func TestEnrollmentRefusesFirstAdapter(t *testing.T) {
	t.Parallel()

	inv := fakes.NewInventory()
	inv.AddHost("esx-01", []string{"vmnic1", "vmnic2"})
	ctx := newTestContext(t, inv, "esx-01")

	// vmnic1 sorts first on this host, so it is the live adapter.
	err := New().Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to move")
}

func TestEnrollmentContinuesPastFailedHost(t *testing.T) {
	t.Parallel()

	inv := fakes.NewInventory()
	inv.AddHost("esx-01", []string{"vmnic0", "vmnic1"})
	inv.AddHost("esx-02", []string{"vmnic0", "vmnic1"})
	inv.FailOn["AddHostMember/esx-01"] = errors.New("host disconnected")
	ctx := newTestContext(t, inv, "esx-01", "esx-02")

	err := New().Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "esx-01")
	assert.True(t, ctx.State.HostDone("esx-02", migration.PhaseEnrollment))
	assert.False(t, ctx.State.HostDone("esx-01", migration.PhaseEnrollment))
}

func TestEnrollmentParallelHandlesAllHosts(t *testing.T) {
	t.Parallel()

	inv := fakes.NewInventory()
	hosts := []string{"esx-01", "esx-02", "esx-03"}
	for _, host := range hosts {
		inv.AddHost(host, []string{"vmnic0", "vmnic1"})
	}
	ctx := newTestContext(t, inv, hosts...)
	ctx.Config.Parallel = true

	require.NoError(t, New().Run(ctx))
	for _, host := range hosts {
		assert.Equal(t, []string{"vmnic1"}, inv.Uplinks(config.DefaultSwitchName, host))
		assert.True(t, ctx.State.HostDone(host, migration.PhaseEnrollment))
	}
}

func TestEnrollmentDryRunMarksWithoutMutating(t *testing.T) {
	t.Parallel()

	inv := fakes.NewInventory()
	inv.AddHost("esx-01", []string{"vmnic0", "vmnic1"})
	ctx := newTestContext(t, inv, "esx-01")
	ctx.DryRun = true

	require.NoError(t, New().Run(ctx))

	assert.Empty(t, inv.Uplinks(config.DefaultSwitchName, "esx-01"))
	assert.True(t, ctx.State.HostDone("esx-01", migration.PhaseEnrollment))
	assert.Equal(t, -1, inv.CallIndex("AddHostMember/esx-01"))
}
