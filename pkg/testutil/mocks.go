package testutil

import (
	"github.com/arthur-debert/rebatch/pkg/types"
	"github.com/stretchr/testify/mock"
)

// MockResolver is a testify mock of the transfer conflict resolver
type MockResolver struct {
	mock.Mock
}

// Resolve records the call and returns the configured policy
func (m *MockResolver) Resolve(conflicts []types.FileConflict) (types.Policy, error) {
	args := m.Called(conflicts)
	return args.Get(0).(types.Policy), args.Error(1)
}
