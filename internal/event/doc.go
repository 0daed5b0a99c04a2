// Package event defines the record type handed from logging front ends to
// the stream serializer.
//
// An Event carries a level, a message, ordered structured fields, and an
// indent directive describing how the record moves the nesting depth. Events
// are plain value types: construct one, hand it to the logger, forget it.
// Field keys must be unique within a single event; New enforces this at
// construction time so the serializer never sees an invalid record.
package event
