package wizard

import "github.com/virtstack/vdsmigrate/internal/config"

// BuildConfig creates a Config struct from the wizard result. The
// password field stays empty; it is supplied via VSPHERE_PASSWORD when
// the migration runs.
func BuildConfig(result *Result) *config.Config {
	cfg := &config.Config{
		VCenter: config.VCenterConfig{
			Endpoint:   result.Endpoint,
			Username:   result.Username,
			Datacenter: result.Datacenter,
			Insecure:   result.Insecure,
		},
		SwitchName:   result.SwitchName,
		PortGroup:    result.PortGroup,
		LegacySwitch: result.LegacySwitch,
		UplinkDevice: result.UplinkDevice,
		Hosts:        result.Hosts,
		ExcludeVMs:   result.ExcludeVMs,
		Parallel:     result.Parallel,
	}
	cfg.ApplyDefaults()
	return cfg
}
