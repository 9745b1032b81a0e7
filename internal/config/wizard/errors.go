package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errEndpointRequired = errors.New("vCenter endpoint is required")
	errEndpointInvalid  = errors.New("endpoint must be a hostname or URL, without spaces")
	errUsernameRequired = errors.New("username is required")
	errHostsRequired    = errors.New("at least one host name is required")
	errNameRequired     = errors.New("a name is required")
	errNameInvalid      = errors.New("names must not contain whitespace")
)
