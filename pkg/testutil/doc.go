// Package testutil provides utilities for testing drupalctl components.
//
// Key components:
//   - FileTree: declarative file layout written to an in-memory or real filesystem
//   - NewMemoryFS: afero backed filesystem for fast, isolated tests
//   - MockRunner, MockTask: testify mocks for command runners and tasks
//
// Tests should use the in-memory filesystem unless they exercise real
// permissions, symlinks or the command line.
package testutil
