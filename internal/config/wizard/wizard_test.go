package wizard

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtstack/vdsmigrate/internal/config"
)

func TestValidateEndpoint(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validateEndpoint("vcenter.example.com"))
	assert.NoError(t, validateEndpoint("https://vcenter.example.com/sdk"))
	assert.ErrorIs(t, validateEndpoint(""), errEndpointRequired)
	assert.ErrorIs(t, validateEndpoint("   "), errEndpointRequired)
	assert.ErrorIs(t, validateEndpoint("vcenter one"), errEndpointInvalid)
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validateName("VDS"))
	assert.NoError(t, validateName("vmnic1"))
	assert.ErrorIs(t, validateName(""), errNameRequired)
	assert.ErrorIs(t, validateName("my switch"), errNameInvalid)
}

func TestValidateHostList(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validateHostList("esx-01"))
	assert.NoError(t, validateHostList("esx-01, esx-02"))
	assert.ErrorIs(t, validateHostList(""), errHostsRequired)
	assert.ErrorIs(t, validateHostList(" , ,"), errHostsRequired)
}

func TestParseList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"esx-01", "esx-02"}, parseList("esx-01, esx-02"))
	assert.Equal(t, []string{"esx-01"}, parseList("  esx-01  "))
	assert.Nil(t, parseList(""))
	assert.Nil(t, parseList(" , "))
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	result := &Result{
		Endpoint:     "vcenter.example.com",
		Username:     "administrator@vsphere.local",
		Datacenter:   "dc-01",
		Insecure:     true,
		Hosts:        []string{"esx-01", "esx-02"},
		SwitchName:   "VDS-Prod",
		PortGroup:    "VM-Network",
		LegacySwitch: "vSwitch0",
		UplinkDevice: "vmnic1",
		ExcludeVMs:   []string{"vCLS"},
		Parallel:     true,
	}

	cfg := BuildConfig(result)

	assert.Equal(t, "vcenter.example.com", cfg.VCenter.Endpoint)
	assert.Equal(t, "dc-01", cfg.VCenter.Datacenter)
	assert.True(t, cfg.VCenter.Insecure)
	assert.Equal(t, "VDS-Prod", cfg.SwitchName)
	assert.Equal(t, []string{"esx-01", "esx-02"}, cfg.Hosts)
	assert.True(t, cfg.Parallel)
	assert.Empty(t, cfg.VCenter.Password)
}

func TestBuildConfigFillsDefaults(t *testing.T) {
	t.Parallel()

	result := &Result{
		Endpoint: "vcenter.example.com",
		Username: "admin",
		Hosts:    []string{"esx-01"},
	}

	cfg := BuildConfig(result)

	assert.Equal(t, config.DefaultSwitchName, cfg.SwitchName)
	assert.Equal(t, config.DefaultUplinkDevice, cfg.UplinkDevice)
	assert.Equal(t, config.DefaultExcludeVMs, cfg.ExcludeVMs)
}

func TestWriteConfigStripsPassword(t *testing.T) {
	cfg := BuildConfig(&Result{
		Endpoint: "vcenter.example.com",
		Username: "admin",
		Hosts:    []string{"esx-01"},
	})
	cfg.VCenter.Password = "secret"

	path := t.TempDir() + "/vdsmigrate.yaml"
	require.NoError(t, WriteConfig(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "vcenter.example.com")
	assert.Contains(t, content, "VSPHERE_PASSWORD")
	assert.NotContains(t, content, "secret")

	// The written file round-trips through the loader.
	t.Setenv("VSPHERE_PASSWORD", "secret")
	loaded, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", loaded.VCenter.Password)
	assert.Equal(t, []string{"esx-01"}, loaded.Hosts)
}

func TestConfirmOverwriteUsesInjectedFunc(t *testing.T) {
	original := confirmOverwrite
	defer func() { confirmOverwrite = original }()

	confirmOverwrite = func(string) (bool, error) { return true, nil }
	ok, err := ConfirmOverwrite("some-path")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assert.False(t, FileExists(dir+"/missing.yaml"))

	path := dir + "/present.yaml"
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	assert.True(t, FileExists(path))
}
