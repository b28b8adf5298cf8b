// Package types defines the core types and interfaces used throughout rebatch.
// This includes the FileEntry and FileConflict records, the operation and
// policy enums that drive a transfer, the TransferResult returned to callers
// and the FS interface every filesystem backend implements.
package types
