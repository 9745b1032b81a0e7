package migration

import (
	"fmt"
	"time"
)

// RunPhases executes the migration phases in strict sequence. A phase
// error stops the pipeline: later phases depend on earlier ones having
// established an alternate network path, so continuing would risk
// cutting hosts off.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting migration with %d phases...", len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()

		ctx.Observer.Event(Event{
			Type:    EventPhaseStarted,
			Phase:   phase.Name(),
			Message: fmt.Sprintf("starting (%d/%d)", i+1, len(phases)),
		})

		if err := phase.Run(ctx); err != nil {
			ctx.Observer.Event(Event{
				Type:    EventPhaseFailed,
				Phase:   phase.Name(),
				Message: fmt.Sprintf("failed: %v", err),
			})
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		ctx.Observer.Event(Event{
			Type:    EventPhaseCompleted,
			Phase:   phase.Name(),
			Message: fmt.Sprintf("completed in %v", time.Since(phaseStart).Round(time.Millisecond)),
		})
	}

	ctx.Observer.Printf("Migration completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
