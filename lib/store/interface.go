package store

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IStore is the generic interface for interacting with a key–value store.
// All write operations return only an error (nil on success), while read
// operations return the requested data along with an error (nil on success).
type IStore interface {
	// Execute dispatches a command to Get, Set or Remove. It returns the
	// stored value for a successful get and an empty string for successful
	// mutations. This is the single entry point used by both live calls and
	// write-ahead log replay, so the append-then-apply ordering is identical
	// in both paths.
	Execute(cmd Command) (result string, err error)
	// Set inserts or updates a key–value pair. The record is durably
	// appended to the write-ahead log before the index is updated.
	Set(key, value string) (err error)
	// Remove deletes a key–value pair. The removal attempt is durably
	// appended to the write-ahead log even if the key turns out to be
	// absent, in which case a RetCNotFound error is returned.
	Remove(key string) (err error)
	// Get returns the value for a key. It reads the in-memory index only
	// and returns a RetCNotFound error if the key is absent. Gets are never
	// written to the write-ahead log.
	Get(key string) (value string, err error)
	// Info returns metadata about the store: key count, log location and
	// size, and operation counters.
	Info() (info Info, err error)
	// Close flushes and syncs the write-ahead log handle and releases it.
	// The store must not be used after Close.
	Close() (err error)
}

// Info holds metadata about a store instance.
type Info struct {
	Keys         int    `json:"keys" yaml:"keys"`
	LogPath      string `json:"log_path" yaml:"log_path"`
	LogSizeBytes int64  `json:"log_size_bytes" yaml:"log_size_bytes"`
	Sets         uint64 `json:"sets" yaml:"sets"`
	Gets         uint64 `json:"gets" yaml:"gets"`
	Removes      uint64 `json:"removes" yaml:"removes"`
	Replayed     uint64 `json:"replayed_records" yaml:"replayed_records"`
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode),
// an error message and an optional underlying cause.
type Error struct {
	Code  RetCode // The return code
	Msg   string  // The error message
	Cause error   // The underlying cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new store error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// WrapError creates a new store error with the given code and message,
// carrying cause as the underlying error.
func WrapError(code RetCode, msg string, cause error) *Error {
	return &Error{Code: code, Msg: msg, Cause: cause}
}

// NewNotFound creates the canonical not-found error for a key.
func NewNotFound(key string) *Error {
	return &Error{Code: RetCNotFound, Msg: fmt.Sprintf("key not found: %s", key)}
}

// codeOf extracts the return code from an error, or RetCInternalError if the
// error is not a store error.
func codeOf(err error) RetCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return RetCInternalError
}

// IsNotFound reports whether err signals a get or remove on an absent key.
func IsNotFound(err error) bool {
	return err != nil && codeOf(err) == RetCNotFound
}

// IsValidation reports whether err signals a malformed record.
func IsValidation(err error) bool {
	return err != nil && codeOf(err) == RetCValidation
}

// IsRecovery reports whether err was raised while reconciling an existing
// write-ahead log during Open.
func IsRecovery(err error) bool {
	return err != nil && codeOf(err) == RetCRecovery
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess        RetCode = iota // 0: Command executed successfully.
	RetCInternalError                 // 1: Command failed due to an internal error.
	RetCNotFound                      // 2: Get or remove targeted an absent key.
	RetCValidation                    // 3: Malformed record (bad token, missing key/value).
	RetCIO                            // 4: Open/rename/read/write/sync failure on the log.
	RetCRecovery                      // 5: Failure during write-ahead log replay.
	RetCInvalidLogName                // 6: Log file name has no extension to quarantine.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCNotFound:
		return "NotFound"
	case RetCValidation:
		return "Validation"
	case RetCIO:
		return "IO"
	case RetCRecovery:
		return "Recovery"
	case RetCInvalidLogName:
		return "InvalidLogName"
	default:
		return "Unknown"
	}
}
