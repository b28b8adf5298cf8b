// Package registry provides a generic, thread-safe name to item registry.
//
// Names are matched case-insensitively and may carry aliases, so user input
// such as "Create-Copy", "copy" or "overwrite" resolves through one table.
// The package also holds the global tables of conflict policies and
// operations used by the command line and the configuration layer.
package registry
