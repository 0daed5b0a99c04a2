// Package logging assembles the ymlog pipeline: one process-wide Logger
// owning the scope stack, the stream serializer, and the sink.
//
// Every depth mutation, render, and write happens inside one critical
// section, so concurrent goroutines logging through the same instance cannot
// interleave nesting state or produce invalid output. Nothing in this
// package is allowed to crash the host program: scope underflow clamps to
// depth zero and logs a warning, write failures are recorded and surfaced
// through Err while later records keep going best effort.
//
// The Handler type adapts a Logger to log/slog so conventional leveled call
// sites can feed the stream writer; NewSessionHandler stamps a session id
// onto every record the way daemon runs are correlated elsewhere.
package logging
