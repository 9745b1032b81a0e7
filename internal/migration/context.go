package migration

import (
	"context"

	"github.com/virtstack/vdsmigrate/internal/config"
	"github.com/virtstack/vdsmigrate/internal/platform/vsphere"
)

// Context wraps all dependencies and state needed by a migration phase.
type Context struct {
	context.Context
	Config   *config.Config
	Client   vsphere.Client
	State    *State
	Observer Observer

	// DryRun walks the phases and reports what would happen without
	// mutating the cluster.
	DryRun bool
}

// NewContext creates a migration context with a fresh state and a
// console observer.
func NewContext(ctx context.Context, cfg *config.Config, client vsphere.Client) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		Client:   client,
		State:    NewState(),
		Observer: NewConsoleObserver(),
	}
}
