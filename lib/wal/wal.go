package wal

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Log is an append-only, line-oriented log file. A Log owns its file handle
// exclusively for its lifetime: writers are created with Create and must be
// closed to release (and sync) the handle, readers are created with
// OpenExisting for replay.
type Log struct {
	path     string
	f        *os.File
	writable bool
}

// Create truncates or creates the file at path fresh and returns a writable
// log. This is used for the post-recovery active log.
func Create(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &Log{path: path, f: f, writable: true}, nil
}

// OpenExisting opens a pre-existing log file for reading during replay.
func OpenExisting(path string) (*Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Log{path: path, f: f}, nil
}

// Append writes the record plus a newline terminator to the log file and
// syncs the file before returning. On error the caller must not treat the
// mutation as committed; a partially written trailing line surfaces as a
// decode failure on the next replay rather than silent data loss.
func (l *Log) Append(record string) error {
	if _, err := l.f.WriteString(record + "\n"); err != nil {
		return err
	}
	return l.f.Sync()
}

// Records returns a cursor over the records of the log, in file order. The
// cursor is not resumable; restarting requires re-opening the file.
func (l *Log) Records() *Reader {
	return &Reader{br: bufio.NewReader(l.f)}
}

// Sync flushes the log to stable storage.
func (l *Log) Sync() error {
	return l.f.Sync()
}

// Close syncs (for writable logs) and releases the file handle. The sync
// happens on every exit path: a sync failure is reported but the handle is
// still closed.
func (l *Log) Close() error {
	var syncErr error
	if l.writable {
		syncErr = l.f.Sync()
	}
	if err := l.f.Close(); err != nil {
		return err
	}
	return syncErr
}

// Path returns the location of the log file.
func (l *Log) Path() string {
	return l.path
}

// Size returns the current size of the log file in bytes.
func (l *Log) Size() (int64, error) {
	info, err := l.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// --------------------------------------------------------------------------
// Reader
// --------------------------------------------------------------------------

// Reader iterates over the records of a log, one line at a time. Lines are
// read without any length cap, so a record is never too long to replay once
// Append accepted it. A read error surfaces through Err without invalidating
// records already consumed.
//
//	r := l.Records()
//	for r.Next() {
//	    _ = r.Record()
//	}
//	if err := r.Err(); err != nil { ... }
type Reader struct {
	br   *bufio.Reader
	rec  string
	err  error
	done bool
}

// Next advances the cursor to the next record. It returns false at end of
// file or on a read error; Err distinguishes the two.
func (r *Reader) Next() bool {
	if r.done {
		return false
	}
	line, err := r.br.ReadString('\n')
	if err != nil {
		r.done = true
		if err != io.EOF {
			r.err = err
			return false
		}
		// An unterminated trailing line (a torn write) is still surfaced as
		// a record; it fails decoding upstream rather than vanishing here.
		if line == "" {
			return false
		}
	}
	r.rec = strings.TrimSuffix(line, "\n")
	return true
}

// Record returns the record the cursor is positioned on, without the
// newline terminator.
func (r *Reader) Record() string {
	return r.rec
}

// Err returns the first read error encountered, or nil on clean end of file.
func (r *Reader) Err() error {
	return r.err
}
