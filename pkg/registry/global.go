package registry

import (
	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/types"
)

// PolicyAsk is the pseudo policy meaning "decide interactively when conflicts show up"
const PolicyAsk = "ask"

var (
	policyRegistry    Registry[types.Policy]
	operationRegistry Registry[types.Operation]
)

func init() {
	policyRegistry = New[types.Policy]()
	MustRegister(policyRegistry, string(types.PolicyOverwrite), types.PolicyOverwrite, "replace")
	MustRegister(policyRegistry, string(types.PolicyCreateCopy), types.PolicyCreateCopy, "copy", "keep-both")
	MustRegister(policyRegistry, string(types.PolicySkip), types.PolicySkip)
	MustRegister(policyRegistry, PolicyAsk, types.PolicyNone, "none", "prompt")

	operationRegistry = New[types.Operation]()
	MustRegister(operationRegistry, string(types.OperationCopy), types.OperationCopy, "cp")
	MustRegister(operationRegistry, string(types.OperationMove), types.OperationMove, "mv")
	MustRegister(operationRegistry, string(types.OperationRename), types.OperationRename, "rn")
}

// Policies returns the global policy table
func Policies() Registry[types.Policy] {
	return policyRegistry
}

// Operations returns the global operation table
func Operations() Registry[types.Operation] {
	return operationRegistry
}

// LookupPolicy resolves a user supplied policy name. "ask" (and "") resolve
// to types.PolicyNone, which lets a resolver decide once conflicts are known.
func LookupPolicy(name string) (types.Policy, error) {
	if Normalize(name) == "" {
		return types.PolicyNone, nil
	}
	p, err := policyRegistry.Get(name)
	if err != nil {
		return types.PolicyNone, errors.Wrapf(err, errors.ErrInvalidInput,
			"unknown conflict policy %q (valid: %v)", name, policyRegistry.List())
	}
	return p, nil
}

// LookupOperation resolves a user supplied operation name
func LookupOperation(name string) (types.Operation, error) {
	op, err := operationRegistry.Get(name)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput,
			"unknown operation %q (valid: %v)", name, operationRegistry.List())
	}
	return op, nil
}
