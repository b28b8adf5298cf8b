// Package transfer executes a batch: copy, move or in-place rename of a set of
// entries under one conflict policy.
//
// A batch goes through structural validation, conflict detection and policy
// resolution before any file is touched. Structural failures abort the whole
// batch with status Aborted and no I/O. Once files are being processed, a
// failing entry never stops its siblings and nothing is rolled back; the
// failure is recorded on that entry's outcome.
//
// Policies:
//
//	overwrite    conflicting destinations are deleted first, then every entry transfers
//	create-copy  conflicting entries go to "<name> (Copy)<ext>" next to the destination
//	skip         conflicting entries are left untouched
//
// When conflicts exist and no policy was given, the configured Resolver is
// asked once for the whole batch.
package transfer
