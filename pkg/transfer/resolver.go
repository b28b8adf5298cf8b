package transfer

import "github.com/arthur-debert/rebatch/pkg/types"

// Resolver picks a policy once conflicts are known. Returning PolicyNone
// leaves the conflicts unresolved; PolicyAbort stops the batch.
type Resolver interface {
	Resolve(conflicts []types.FileConflict) (types.Policy, error)
}

// ResolverFunc adapts a function to the Resolver interface
type ResolverFunc func(conflicts []types.FileConflict) (types.Policy, error)

// Resolve calls f
func (f ResolverFunc) Resolve(conflicts []types.FileConflict) (types.Policy, error) {
	return f(conflicts)
}

// StaticResolver always answers with the same policy
func StaticResolver(p types.Policy) Resolver {
	return ResolverFunc(func([]types.FileConflict) (types.Policy, error) {
		return p, nil
	})
}
