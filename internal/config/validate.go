package config

import (
	"errors"
	"fmt"
)

// Validate checks that everything required to reach vCenter and drive
// the migration is present. Called after ApplyDefaults and applyEnv.
func (c *Config) Validate() error {
	var errs []error

	if c.VCenter.Endpoint == "" {
		errs = append(errs, errors.New("vcenter.endpoint is required (or set VSPHERE_ENDPOINT)"))
	}
	if c.VCenter.Username == "" {
		errs = append(errs, errors.New("vcenter.username is required (or set VSPHERE_USERNAME)"))
	}
	if c.VCenter.Password == "" {
		errs = append(errs, errors.New("vcenter.password is required (or set VSPHERE_PASSWORD)"))
	}
	if len(c.Hosts) == 0 {
		errs = append(errs, errors.New("at least one host is required"))
	}

	seen := make(map[string]bool, len(c.Hosts))
	for _, host := range c.Hosts {
		if host == "" {
			errs = append(errs, errors.New("host names must not be empty"))
			continue
		}
		if seen[host] {
			errs = append(errs, fmt.Errorf("host %q listed more than once", host))
		}
		seen[host] = true
	}

	if c.SwitchName == c.LegacySwitch {
		errs = append(errs, fmt.Errorf("switch_name %q must differ from legacy_switch", c.SwitchName))
	}

	return errors.Join(errs...)
}
