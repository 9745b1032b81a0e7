package vsphere

import (
	"errors"

	"github.com/vmware/govmomi/find"
	"github.com/vmware/govmomi/task"
	"github.com/vmware/govmomi/vim25/soap"
	"github.com/vmware/govmomi/vim25/types"
)

// methodFault extracts the vim fault from a task or SOAP error, if any.
func methodFault(err error) types.BaseMethodFault {
	if err == nil {
		return nil
	}

	var taskErr task.Error
	if errors.As(err, &taskErr) {
		return taskErr.Fault()
	}

	if soap.IsVimFault(err) {
		return soap.ToVimFault(err)
	}

	if soap.IsSoapFault(err) {
		if f, ok := soap.ToSoapFault(err).VimFault().(types.BaseMethodFault); ok {
			return f
		}
	}

	return nil
}

// IsDuplicateName reports whether the error is vCenter's DuplicateName
// fault, raised when creating an object whose name is already taken.
func IsDuplicateName(err error) bool {
	_, ok := methodFault(err).(*types.DuplicateName)
	return ok
}

// IsAlreadyExists reports whether the error is the AlreadyExists fault,
// raised for example when adding a host that is already a switch member.
func IsAlreadyExists(err error) bool {
	_, ok := methodFault(err).(*types.AlreadyExists)
	return ok
}

// IsConcurrentAccess reports whether the error is the ConcurrentAccess
// fault, raised when a reconfiguration carries a stale ConfigVersion.
func IsConcurrentAccess(err error) bool {
	_, ok := methodFault(err).(*types.ConcurrentAccess)
	return ok
}

// IsNotFound reports whether the error means an inventory object could
// not be resolved by name.
func IsNotFound(err error) bool {
	var nfe *find.NotFoundError
	return errors.As(err, &nfe)
}
