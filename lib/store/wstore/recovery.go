package wstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/valderique/kvgo/lib/store"
	"github.com/valderique/kvgo/lib/wal"
)

// quarantineSuffix is appended to the active log's extension to form the
// quarantine path ("wa.log" -> "wa.log.old").
const quarantineSuffix = ".old"

// --------------------------------------------------------------------------
// Recovery states
// --------------------------------------------------------------------------

type recoveryState uint8

const (
	stateNoPriorLog  recoveryState = iota // No log file found, nothing to replay.
	stateQuarantined                      // Prior log renamed aside, active path free.
	stateReplaying                        // Quarantined records being re-applied.
	stateCommitted                        // Replay done, quarantine removed.
	stateRolledBack                       // Replay failed, prior log restored.
)

func (s recoveryState) String() string {
	switch s {
	case stateNoPriorLog:
		return "NoPriorLog"
	case stateQuarantined:
		return "Quarantined"
	case stateReplaying:
		return "Replaying"
	case stateCommitted:
		return "Committed"
	case stateRolledBack:
		return "RolledBack"
	default:
		return "Unknown"
	}
}

// --------------------------------------------------------------------------
// Recovery manager
// --------------------------------------------------------------------------

// recoveryManager runs the startup protocol that reconciles an existing
// on-disk log with a fresh index:
//
//  1. Quarantine the prior log via an atomic rename. The rename is the
//     durability boundary: once it succeeds the active path is free, so a
//     fresh log can be created there without colliding with un-replayed
//     history.
//  2. Replay every quarantined record through the same Execute path used by
//     live traffic, which re-appends each mutation into the new active log
//     and applies it to the index.
//  3. Delete the quarantine on success, or rename it back on any failure so
//     that a failed Open leaves the disk state exactly as it found it.
type recoveryManager struct {
	activePath     string
	quarantinePath string
	state          recoveryState
	replayed       uint64
}

func newRecoveryManager(activePath string) *recoveryManager {
	return &recoveryManager{
		activePath: activePath,
		state:      stateNoPriorLog,
	}
}

// quarantinePathFor derives the quarantine path by appending a fixed suffix
// to the log file's extension. A path without an extension cannot be
// quarantined and is rejected.
func quarantinePathFor(path string) (string, error) {
	if filepath.Ext(path) == "" {
		return "", store.NewError(store.RetCInvalidLogName,
			fmt.Sprintf("log file name has no extension: %s", filepath.Base(path)))
	}
	return path + quarantineSuffix, nil
}

// quarantine detects a prior log at the active path and renames it aside.
// It returns false when there is no prior log to recover from. The file name
// is only validated once there is something to act on: an extensionless name
// over an empty directory opens fine.
func (r *recoveryManager) quarantine() (bool, error) {
	info, statErr := os.Stat(r.activePath)
	hasPrior := statErr == nil && info.Mode().IsRegular()

	qpath, err := quarantinePathFor(r.activePath)
	if err != nil {
		if !hasPrior {
			r.state = stateNoPriorLog
			return false, nil
		}
		return false, err
	}
	r.quarantinePath = qpath

	// A quarantine file left behind by an earlier interrupted recovery is
	// un-replayed history, so refuse to open over it. The check must not
	// depend on the active path: a crash between the quarantine rename and
	// the creation of the fresh log leaves only the quarantine file behind,
	// and proceeding would hand out an empty store with the history stranded.
	if _, err := os.Lstat(r.quarantinePath); err == nil {
		return false, store.NewError(store.RetCRecovery,
			fmt.Sprintf("stale quarantined log already exists: %s", r.quarantinePath))
	}

	if !hasPrior {
		r.state = stateNoPriorLog
		return false, nil
	}

	if err := os.Rename(r.activePath, r.quarantinePath); err != nil {
		return false, store.WrapError(store.RetCRecovery, "failed to quarantine write-ahead log", err)
	}
	r.state = stateQuarantined
	return true, nil
}

// replay re-applies every record of the quarantined log, in file order,
// through the store's Execute path. It aborts on the first decode or apply
// failure.
func (r *recoveryManager) replay(s store.IStore) error {
	r.state = stateReplaying

	old, err := wal.OpenExisting(r.quarantinePath)
	if err != nil {
		return store.WrapError(store.RetCRecovery, "failed to open quarantined write-ahead log", err)
	}
	defer func() {
		if err := old.Close(); err != nil {
			log.Warn("failed to close quarantined write-ahead log", "err", err)
		}
	}()

	records := old.Records()
	for records.Next() {
		cmd, err := store.Decode(records.Record())
		if err != nil {
			return store.WrapError(store.RetCRecovery,
				fmt.Sprintf("failed to decode record %d", r.replayed+1), err)
		}
		if _, err := s.Execute(cmd); err != nil {
			return store.WrapError(store.RetCRecovery,
				fmt.Sprintf("failed to apply record %d", r.replayed+1), err)
		}
		r.replayed++
		replaysTotal.Inc()
	}
	if err := records.Err(); err != nil {
		return store.WrapError(store.RetCRecovery, "failed to read quarantined write-ahead log", err)
	}

	return nil
}

// commit deletes the quarantined log after a fully successful replay. A
// delete failure is non-fatal: the store is usable, but the stray file will
// make the next Open refuse until it is removed.
func (r *recoveryManager) commit() {
	if err := os.Remove(r.quarantinePath); err != nil {
		log.Warn("failed to remove quarantined write-ahead log", "path", r.quarantinePath, "err", err)
	}
	r.state = stateCommitted
}

// rollback restores the quarantined log at the active path, discarding the
// freshly created active log. A rollback failure leaves the disk state
// ambiguous between the quarantine and active names; that is the one
// condition this store cannot continue from.
func (r *recoveryManager) rollback() {
	if err := os.Rename(r.quarantinePath, r.activePath); err != nil {
		log.Crit("failed to restore quarantined write-ahead log, on-disk state is ambiguous",
			"quarantine", r.quarantinePath, "active", r.activePath, "err", err)
		panic(fmt.Sprintf("wstore: failed to roll back write-ahead log quarantine: %v", err))
	}
	rollbackTotal.Inc()
	r.state = stateRolledBack
}
