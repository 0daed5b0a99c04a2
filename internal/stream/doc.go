// Package stream renders log events into an indentation-nested YAML stream
// that stays parseable at every write boundary.
//
// Each document is a top-level sequence of records. A record is a block
// mapping with the fixed key order msg, level, ts, fields, steps. Children of
// a record live under its steps: key, which the serializer opens lazily on
// the first deeper write; a bare "steps:" line parses as a null value, so the
// stream is valid even if the process dies before any child is written.
// Dedenting needs no closing markers at all. When a deeper record arrives and
// nothing has been written yet at the parent depth, the serializer
// synthesizes a "- scope: <label>" placeholder from the scope frame so the
// child has something to hang off.
//
// The scalar rules in scalar.go decide between plain, double-quoted, and
// block-literal rendering. Multi-line strings that cannot round-trip through
// a block literal fall back to a quoted single-line scalar; prettiness loses
// to validity.
package stream
