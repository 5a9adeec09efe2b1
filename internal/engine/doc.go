// Package engine holds the signal table at the heart of a controller: the
// light shown by each direction, the paused/running flag, and the conflict
// relation that every GREEN request is validated against.
//
// The package is internal to junction and deliberately decoupled from the
// public types — directions and lights are plain strings here, and the root
// package converts at the boundary. This keeps the dependency direction
// one-way (root imports engine, never the reverse).
//
// A [Table] is not safe for concurrent use on its own. The controller wraps
// every table access in its single critical section, so the table itself
// stays a plain data structure with validate-then-apply semantics: a Set
// that returns an error has changed nothing.
//
// Users of the junction library should not need to interact with this
// package directly.
package engine
