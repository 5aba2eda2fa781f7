// Package wstore implements a durable, single-process key-value store based
// on the store.IStore interface. An in-memory index (lib/index) serves all
// reads; every mutation is appended to an on-disk write-ahead log
// (lib/wal) and synced before it is applied to the index, so the store can
// be rebuilt after a crash by replaying the log.
//
// Write Path:
//
//	Every Set and Remove follows the same sequence inside one critical
//	section:
//
//	1. The command is encoded into its record representation
//	2. The record is appended to the active log and synced to disk
//	3. The command is applied to the in-memory index
//
//	The mutex guarantees that the order of records in the log matches a
//	total order consistent with the final index state. Reads bypass the
//	mutex entirely and go straight to the concurrent index.
//
//	A crash between step 2 and step 3 is the reason recovery exists: on the
//	next Open, replay reconstructs the index purely from the log, so the
//	durable record is authoritative, not the in-memory state at crash time.
//
//	Remove appends its record before consulting the index. A remove of an
//	absent key therefore leaves a record in the log even though the call
//	returns a not-found error. The log records the attempt.
//
// Recovery Protocol:
//
//	Open reconciles an existing log with a fresh index using only atomic
//	renames and explicit rollback:
//
//	1. Quarantine: the prior log is renamed aside ("wa.log" -> "wa.log.old").
//	   After this rename the active path is free, so a fresh log can be
//	   created there without colliding with un-replayed history.
//	2. Replay: every quarantined record is decoded and re-applied through
//	   Execute, the same path live traffic uses, which re-appends it into
//	   the new active log and applies it to the index. Replay is a rewrite,
//	   not a compaction: every historical record is preserved.
//	3. Commit: the quarantine file is deleted. If the delete fails the
//	   store is still usable; the stray file makes the next Open refuse
//	   until it is removed.
//	4. Rollback: on any replay failure the quarantined log is renamed back
//	   over the discarded fresh log and Open returns the error. A failed
//	   Open leaves the on-disk state exactly as it found it.
//
//	The only condition the store cannot continue from is a failed rollback
//	rename, which leaves the disk state ambiguous between the quarantine
//	and active names; this panics after logging at crit level.
//
// Limitations:
//
//	The log grows without bound; there is no compaction. Keys and values
//	must be whitespace-free (see the record format in lib/store). One
//	process owns the store directory; there is no cross-process locking.
package wstore
