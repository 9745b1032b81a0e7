package migration

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Observer receives structured progress events. Output must identify
// host and step well enough that an operator can tell from the stream
// alone where a failed run stopped.
type Observer interface {
	// Printf emits a free-form progress line.
	Printf(format string, v ...interface{})

	// Event emits a structured event.
	Event(event Event)
}

// Event represents one structured migration event.
type Event struct {
	Type      EventType
	Phase     PhaseName
	Host      string // host the event concerns, if any
	Resource  string // switch/port group/VM/device, if any
	Message   string
	Timestamp time.Time
}

// EventType classifies migration events.
type EventType string

const (
	// EventPhaseStarted indicates a phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a phase completed for all hosts.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a phase failed for at least one host.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceCreated indicates a switch or port group was created.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates the resource already existed and was
	// reused.
	EventResourceExists EventType = "resource.exists"

	// EventHostStep indicates a per-host step succeeded.
	EventHostStep EventType = "host.step"
	// EventHostFailed indicates a per-host step failed.
	EventHostFailed EventType = "host.failed"
	// EventSkipped indicates an object was deliberately left alone.
	EventSkipped EventType = "skipped"
)

// ConsoleObserver implements Observer on the standard log package.
type ConsoleObserver struct{}

// NewConsoleObserver creates a console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

// Printf implements Observer.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	var parts []string
	parts = append(parts, string(event.Type))
	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}
	if event.Host != "" {
		parts = append(parts, fmt.Sprintf("host=%s", event.Host))
	}
	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}
	parts = append(parts, event.Message)
	log.Print(strings.Join(parts, " "))
}

// LogHostStep logs a successful per-host step.
func LogHostStep(observer Observer, phase PhaseName, host, message string) {
	observer.Event(Event{
		Type:    EventHostStep,
		Phase:   phase,
		Host:    host,
		Message: message,
	})
}

// LogHostFailed logs a failed per-host step.
func LogHostFailed(observer Observer, phase PhaseName, host string, err error) {
	observer.Event(Event{
		Type:    EventHostFailed,
		Phase:   phase,
		Host:    host,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogResourceOutcome logs whether an ensure operation created or reused
// a resource.
func LogResourceOutcome(observer Observer, phase PhaseName, resourceType, name string, created bool) {
	eventType := EventResourceExists
	message := fmt.Sprintf("%s already exists", resourceType)
	if created {
		eventType = EventResourceCreated
		message = fmt.Sprintf("%s created", resourceType)
	}
	observer.Event(Event{
		Type:     eventType,
		Phase:    phase,
		Resource: name,
		Message:  message,
	})
}
