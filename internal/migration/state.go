package migration

import (
	"fmt"
	"sync"

	"github.com/virtstack/vdsmigrate/internal/platform/vsphere"
)

// State tracks what the migration has accomplished so far. Phases mark
// per-host completion here, and later phases check the marker before
// touching a host: the ordering invariant (enrollment before any
// traffic rebind) is enforced structurally rather than assumed.
type State struct {
	mu sync.Mutex

	// Topology results.
	SwitchOutcome    vsphere.Outcome
	PortGroupOutcome vsphere.Outcome

	hostPhases map[string]map[PhaseName]bool
}

// NewState creates an empty migration state.
func NewState() *State {
	return &State{
		hostPhases: make(map[string]map[PhaseName]bool),
	}
}

// MarkHostDone records that a phase completed for a host.
func (s *State) MarkHostDone(host string, phase PhaseName) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hostPhases[host] == nil {
		s.hostPhases[host] = make(map[PhaseName]bool)
	}
	s.hostPhases[host][phase] = true
}

// HostDone reports whether a phase completed for a host.
func (s *State) HostDone(host string, phase PhaseName) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hostPhases[host][phase]
}

// RequireHostDone returns an error unless the given phase completed for
// the host. Callers use it as a guard before starting dependent work.
func (s *State) RequireHostDone(host string, phase PhaseName) error {
	if !s.HostDone(host, phase) {
		return fmt.Errorf("host %q has not completed phase %q", host, phase)
	}
	return nil
}
