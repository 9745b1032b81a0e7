package vsphere

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/find"
	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/vim25/soap"
	"github.com/vmware/govmomi/vim25/types"

	"github.com/virtstack/vdsmigrate/internal/util/retry"
)

// Settings carries everything needed to establish a session.
type Settings struct {
	Endpoint   string // vCenter address, host or full SDK URL
	Username   string
	Password   string
	Datacenter string // optional; empty means the sole datacenter
	Insecure   bool   // skip TLS verification (lab appliances)

	ConnectMaxAttempts int
	ConnectRetryDelay  time.Duration
	TaskTimeout        time.Duration
}

// Connect dials vCenter, retrying on connectivity failures with a fixed
// interval until the attempt budget runs out. A freshly deployed vCenter
// appliance can take minutes to start answering, so the default budget
// (30 attempts at 10s) covers a boot window of about five minutes.
//
// Authentication faults are not retried: waiting will not fix a bad
// password.
func Connect(ctx context.Context, s Settings) (*RealClient, error) {
	u, err := soap.ParseURL(s.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid vCenter endpoint %q: %w", s.Endpoint, err)
	}
	u.User = url.UserPassword(s.Username, s.Password)

	var client *govmomi.Client
	attempt := 0
	err = retry.Do(ctx, func() error {
		attempt++
		c, dialErr := govmomi.NewClient(ctx, u, s.Insecure)
		if dialErr != nil {
			if _, bad := methodFault(dialErr).(*types.InvalidLogin); bad {
				return retry.Fatal(dialErr)
			}
			log.Printf("vCenter %s not reachable yet (attempt %d/%d): %v",
				u.Host, attempt, s.ConnectMaxAttempts, dialErr)
			return dialErr
		}
		client = c
		return nil
	},
		retry.WithMaxAttempts(s.ConnectMaxAttempts),
		retry.WithInterval(s.ConnectRetryDelay))
	if err != nil {
		return nil, fmt.Errorf("vCenter endpoint unreachable: %w", err)
	}

	finder := find.NewFinder(client.Client, true)

	var dc *object.Datacenter
	if s.Datacenter != "" {
		dc, err = finder.Datacenter(ctx, s.Datacenter)
	} else {
		dc, err = finder.DefaultDatacenter(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve datacenter: %w", err)
	}
	finder.SetDatacenter(dc)

	log.Printf("Connected to vCenter %s (datacenter %s)", u.Host, dc.Name())

	return &RealClient{
		client:      client,
		finder:      finder,
		dc:          dc,
		taskTimeout: s.TaskTimeout,
	}, nil
}
