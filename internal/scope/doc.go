// Package scope tracks the live nesting depth of the log stream.
//
// The stack is deliberately not self-locking: the owning logger holds one
// mutex across depth mutation, rendering, and the write, so concurrent call
// sites can never interleave half-updated nesting state.
package scope
