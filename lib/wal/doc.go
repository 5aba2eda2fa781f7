// Package wal provides the append-only log file abstraction underlying the
// durable store: create-or-truncate and open-existing constructors, a
// durable Append (write plus fsync), and a line-oriented Reader for replay.
// The package knows nothing about the record format; it moves lines.
package wal
