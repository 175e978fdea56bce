// Package tasks provides the units of work drupalctl commands are built from.
//
// Every task implements types.Task. Commands assemble tasks into a Collection,
// which runs them in order and stops at the first failure unless told to
// continue. Install hooks declared in configuration are turned into tasks by
// a Factory.
package tasks
