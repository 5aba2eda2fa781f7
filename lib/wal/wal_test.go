package wal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	l, err := Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	records := []string{"set a 1", "set b 2", "rm a"}
	for _, rec := range records {
		if err := l.Append(rec); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Every record must be newline-terminated on disk.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "set a 1\nset b 2\nrm a\n" {
		t.Errorf("Unexpected file content: %q", data)
	}

	r, err := OpenExisting(path)
	if err != nil {
		t.Fatalf("OpenExisting failed: %v", err)
	}
	defer r.Close()

	var got []string
	cursor := r.Records()
	for cursor.Next() {
		got = append(got, cursor.Record())
	}
	if err := cursor.Err(); err != nil {
		t.Fatalf("Reader error: %v", err)
	}

	if len(got) != len(records) {
		t.Fatalf("Expected %d records, got %d", len(records), len(got))
	}
	for i, rec := range records {
		if got[i] != rec {
			t.Errorf("Record %d: expected %q, got %q", i, rec, got[i])
		}
	}
}

func TestCreateTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	l, err := Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := l.Append("set a 1"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// A second Create over the same path starts fresh.
	l, err = Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer l.Close()

	size, err := l.Size()
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}
	if size != 0 {
		t.Errorf("Expected truncated log, got %d bytes", size)
	}
}

func TestLongRecordRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	// Well beyond the default bufio.Scanner token limit. Anything Append
	// accepts must come back out of the reader.
	long := "set k " + strings.Repeat("v", 256*1024)

	l, err := Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := l.Append(long); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	r, err := OpenExisting(path)
	if err != nil {
		t.Fatalf("OpenExisting failed: %v", err)
	}
	defer r.Close()

	cursor := r.Records()
	if !cursor.Next() {
		t.Fatalf("Expected one record, got none (err = %v)", cursor.Err())
	}
	if cursor.Record() != long {
		t.Errorf("Long record mangled: got %d bytes, expected %d", len(cursor.Record()), len(long))
	}
	if cursor.Next() {
		t.Errorf("Expected exactly one record, got a second: %q", cursor.Record())
	}
	if err := cursor.Err(); err != nil {
		t.Errorf("Reader error: %v", err)
	}
}

func TestUnterminatedTrailingRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	// A torn write leaves the last line without its newline terminator. The
	// reader must still surface it so replay can reject it.
	if err := os.WriteFile(path, []byte("set a 1\nset b"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	r, err := OpenExisting(path)
	if err != nil {
		t.Fatalf("OpenExisting failed: %v", err)
	}
	defer r.Close()

	var got []string
	cursor := r.Records()
	for cursor.Next() {
		got = append(got, cursor.Record())
	}
	if err := cursor.Err(); err != nil {
		t.Fatalf("Reader error: %v", err)
	}
	if len(got) != 2 || got[0] != "set a 1" || got[1] != "set b" {
		t.Errorf("Unexpected records: %q", got)
	}
}

func TestOpenExistingMissing(t *testing.T) {
	if _, err := OpenExisting(filepath.Join(t.TempDir(), "missing.log")); err == nil {
		t.Errorf("Expected error for missing file, got nil")
	}
}

func TestEmptyLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	l, err := Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	r, err := OpenExisting(path)
	if err != nil {
		t.Fatalf("OpenExisting failed: %v", err)
	}
	defer r.Close()

	cursor := r.Records()
	if cursor.Next() {
		t.Errorf("Expected no records in empty log, got %q", cursor.Record())
	}
	if err := cursor.Err(); err != nil {
		t.Errorf("Expected clean EOF, got %v", err)
	}
}
