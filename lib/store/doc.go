// Package store defines the public surface of the key-value store: the
// IStore interface, the Command type with its line-oriented record codec,
// and the unified error taxonomy shared by all implementations.
//
// The package focuses on:
//   - A unified interface (IStore) for key-value operations
//   - The on-disk record format shared by live writes and replay
//   - Typed errors that let callers distinguish error kinds precisely
//
// Key Components:
//
//   - IStore Interface: The core abstraction for interacting with the store.
//     Execute is the single dispatch point shared by live traffic and
//     write-ahead log replay, which guarantees that the append-then-apply
//     ordering is identical in both paths.
//
//   - Command and Codec: A Command is a tagged operation (get, set, rm) on a
//     key. Mutating commands serialize to exactly one line of text in the
//     write-ahead log ("set <key> <value>", "rm <key>"); get commands are
//     read-only and never logged. Encode and Decode round-trip for every
//     representable command. Because records are split on whitespace, keys
//     and values must themselves be whitespace-free. That is a limitation of the
//     record format, not a general store constraint.
//
//   - Error System: A structured error type carrying a return code, a
//     message and an optional cause. The codes separate the four kinds the
//     system cares about: validation failures (malformed records), absent
//     keys (recoverable, not a corruption signal), I/O failures on the log,
//     and recovery failures during Open (which wrap their underlying
//     cause). Predicates like IsNotFound let the CLI map error kinds to
//     exit codes without string matching.
//
// Implementations:
//
// The wstore package (github.com/valderique/kvgo/lib/store/wstore) provides
// the durable implementation: an in-memory index backed by an append-only
// write-ahead log with an atomic quarantine-and-replay recovery protocol.
//
// The testing package (github.com/valderique/kvgo/lib/store/testing)
// provides a standardized test suite for IStore implementations.
package store
