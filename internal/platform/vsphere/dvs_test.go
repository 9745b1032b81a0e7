package vsphere

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmware/govmomi/vim25/types"
)

// versionedConfig builds a read func that serves configs with increasing
// ConfigVersions, as if another writer reconfigured the switch between
// reads.
func versionedConfig(reads *int, versions ...string) func() (*types.DVSConfigInfo, error) {
	return func() (*types.DVSConfigInfo, error) {
		if *reads >= len(versions) {
			return nil, fmt.Errorf("unexpected read %d", *reads)
		}
		cfg := &types.DVSConfigInfo{ConfigVersion: versions[*reads]}
		*reads++
		return cfg, nil
	}
}

func specForVersion(cfg *types.DVSConfigInfo) (*types.DVSConfigSpec, error) {
	return &types.DVSConfigSpec{ConfigVersion: cfg.ConfigVersion}, nil
}

func TestWithFreshConfigSubmitsOnce(t *testing.T) {
	t.Parallel()

	reads := 0
	var submitted []string
	err := withFreshConfig(
		versionedConfig(&reads, "10"),
		func(spec *types.DVSConfigSpec) error {
			submitted = append(submitted, spec.ConfigVersion)
			return nil
		},
		specForVersion,
	)

	require.NoError(t, err)
	assert.Equal(t, 1, reads)
	assert.Equal(t, []string{"10"}, submitted)
}

func TestWithFreshConfigRereadsOnConcurrentAccess(t *testing.T) {
	t.Parallel()

	reads := 0
	var submitted []string
	err := withFreshConfig(
		versionedConfig(&reads, "10", "11"),
		func(spec *types.DVSConfigSpec) error {
			submitted = append(submitted, spec.ConfigVersion)
			if spec.ConfigVersion == "10" {
				return taskFault(&types.ConcurrentAccess{})
			}
			return nil
		},
		specForVersion,
	)

	require.NoError(t, err)
	assert.Equal(t, 2, reads)
	assert.Equal(t, []string{"10", "11"}, submitted, "rejected spec must be rebuilt from a fresh read")
}

func TestWithFreshConfigStopsWhenChangeObsolete(t *testing.T) {
	t.Parallel()

	reads := 0
	submits := 0
	err := withFreshConfig(
		versionedConfig(&reads, "10", "11"),
		func(*types.DVSConfigSpec) error {
			submits++
			return taskFault(&types.ConcurrentAccess{})
		},
		func(cfg *types.DVSConfigInfo) (*types.DVSConfigSpec, error) {
			// The second read shows the change already applied.
			if cfg.ConfigVersion == "11" {
				return nil, nil
			}
			return specForVersion(cfg)
		},
	)

	require.NoError(t, err)
	assert.Equal(t, 2, reads)
	assert.Equal(t, 1, submits)
}

func TestWithFreshConfigPassesThroughOtherFaults(t *testing.T) {
	t.Parallel()

	reads := 0
	err := withFreshConfig(
		versionedConfig(&reads, "10"),
		func(*types.DVSConfigSpec) error {
			return taskFault(&types.DuplicateName{Name: "VDS"})
		},
		specForVersion,
	)

	require.Error(t, err)
	assert.True(t, IsDuplicateName(err))
	assert.Equal(t, 1, reads, "only stale version rejections trigger a fresh read")
}

func TestWithFreshConfigGivesUpAfterRepeatedRejections(t *testing.T) {
	t.Parallel()

	reads := 0
	err := withFreshConfig(
		versionedConfig(&reads, "10", "11", "12"),
		func(*types.DVSConfigSpec) error {
			return taskFault(&types.ConcurrentAccess{})
		},
		specForVersion,
	)

	require.Error(t, err)
	assert.True(t, IsConcurrentAccess(err))
	assert.Equal(t, reconfigureRetries, reads)
}

func TestWithFreshConfigPropagatesReadError(t *testing.T) {
	t.Parallel()

	readErr := errors.New("lookup failed")
	err := withFreshConfig(
		func() (*types.DVSConfigInfo, error) { return nil, readErr },
		func(*types.DVSConfigSpec) error {
			t.Fatal("submit must not run when the read fails")
			return nil
		},
		specForVersion,
	)

	assert.ErrorIs(t, err, readErr)
}
