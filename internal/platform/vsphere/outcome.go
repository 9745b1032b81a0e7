package vsphere

// Outcome reports how an ensure-style operation concluded, so callers
// can tell creation from reuse without string-matching error messages.
type Outcome string

const (
	// OutcomeCreated indicates the resource was created by this call.
	OutcomeCreated Outcome = "created"

	// OutcomeAlreadyPresent indicates the resource already existed and
	// was reused. Duplicate-create faults map here as well: a rerun or a
	// concurrent invocation is not an error.
	OutcomeAlreadyPresent Outcome = "already-present"
)
