// Package sink owns the log destination and guarantees flush-on-write, so a
// crash loses at most the record that was in flight. The file sink also
// takes an advisory lock: two writers interleaving on one destination would
// corrupt the nesting structure, so exclusive ownership is enforced rather
// than documented.
package sink
