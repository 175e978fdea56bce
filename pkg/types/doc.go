// Package types defines the interfaces shared across drupalctl: the FS
// abstraction used by every file-touching task, and the Task contract with
// its TaskResult.
package types
