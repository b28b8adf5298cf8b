// Package filesystem provides filesystem implementations for rebatch.
//
// This package contains implementations of the types.FS interface, the
// standard OS filesystem and an afero-backed one used with in-memory
// filesystems in tests, together with the copy and move primitives the
// transfer executor builds on.
package filesystem
