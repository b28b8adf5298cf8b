// Package testutil provides utilities for testing rebatch components.
//
// Key components:
//   - TestEnvironment: a source and a destination directory on either an
//     in-memory afero filesystem or a real temp directory
//   - MockResolver: testify mock for interactive conflict resolution
//
// Usage guidelines:
//   - Most tests should use EnvMemoryOnly for speed and isolation
//   - Use EnvIsolated when behaviour depends on the OS (permissions, symlinks)
//   - All test data should be defined inline, not in external files
package testutil
