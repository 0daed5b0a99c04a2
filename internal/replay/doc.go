// Package replay reads emitted log streams back into records.
//
// It backs the check and show commands and the round-trip tests: a stream
// produced by the serializer, truncated at any write boundary, must decode
// here without error.
package replay
