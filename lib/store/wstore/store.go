package wstore

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/VictoriaMetrics/metrics"
	"github.com/inconshreveable/log15"
	"github.com/valderique/kvgo/lib/index"
	"github.com/valderique/kvgo/lib/store"
	"github.com/valderique/kvgo/lib/wal"
)

var log = log15.New("pkg", "wstore")

// defaultLogFileName is the well-known name of the active write-ahead log
// inside the store directory.
const defaultLogFileName = "wa.log"

// --------------------------------------------------------------------------
// Metrics
// --------------------------------------------------------------------------

// Recovery events are counted process-wide; they never feed Info.
var (
	replaysTotal  = metrics.NewCounter("kvgo_wal_replayed_records_total")
	rollbackTotal = metrics.NewCounter("kvgo_wal_rollbacks_total")
)

// storeMetrics holds the operation counters of a single store instance. Each
// store carries its own metrics.Set so that Info reports the activity of this
// instance, not process-wide totals across every open store.
type storeMetrics struct {
	sets    *metrics.Counter
	gets    *metrics.Counter
	removes *metrics.Counter
	appends *metrics.Counter
}

func newStoreMetrics() *storeMetrics {
	set := metrics.NewSet()
	return &storeMetrics{
		sets:    set.NewCounter("kvgo_store_sets_total"),
		gets:    set.NewCounter("kvgo_store_gets_total"),
		removes: set.NewCounter("kvgo_store_removes_total"),
		appends: set.NewCounter("kvgo_wal_appends_total"),
	}
}

// --------------------------------------------------------------------------
// Options
// --------------------------------------------------------------------------

// Options configures the store during Open.
type Options struct {
	// LogFileName is the file name of the active write-ahead log inside the
	// store directory. It must carry an extension, since the recovery
	// quarantine path is derived from it ("" = use default: wa.log).
	LogFileName string
	// IndexFactory creates the in-memory index (nil = use index.New).
	IndexFactory index.Factory
}

// DefaultOptions returns the default store options.
func DefaultOptions() *Options {
	return &Options{
		LogFileName:  defaultLogFileName,
		IndexFactory: index.New,
	}
}

// --------------------------------------------------------------------------
// Store implementation
// --------------------------------------------------------------------------

type storeImpl struct {
	mu       sync.Mutex // serializes append+apply for mutating operations
	idx      index.Index
	wal      *wal.Log
	m        *storeMetrics
	replayed uint64
	closed   bool
}

// Open reconciles an existing write-ahead log in dir with a fresh in-memory
// index and returns a ready store. If recovery fails, the on-disk state is
// rolled back to what it was before the attempt and no store is produced.
//
// Thread-safety: the returned store is safe for concurrent use. Open itself
// must not be called concurrently for the same directory.
func Open(dir string, opts *Options) (store.IStore, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.LogFileName == "" {
		opts.LogFileName = defaultLogFileName
	}
	if opts.IndexFactory == nil {
		opts.IndexFactory = index.New
	}

	rec := newRecoveryManager(filepath.Join(dir, opts.LogFileName))

	quarantined, err := rec.quarantine()
	if err != nil {
		return nil, err
	}

	active, err := wal.Create(rec.activePath)
	if err != nil {
		if quarantined {
			rec.rollback()
		}
		return nil, store.WrapError(store.RetCIO, "failed to create write-ahead log", err)
	}

	s := &storeImpl{
		idx: opts.IndexFactory(),
		wal: active,
		m:   newStoreMetrics(),
	}

	if quarantined {
		if err := rec.replay(s); err != nil {
			// Discard the partially replayed active log and restore the
			// quarantined one at its original path.
			if closeErr := s.wal.Close(); closeErr != nil {
				log.Warn("failed to close discarded write-ahead log", "err", closeErr)
			}
			rec.rollback()
			log.Error("write-ahead log recovery failed", "state", rec.state, "err", err)
			return nil, err
		}
		rec.commit()
		s.replayed = rec.replayed
		log.Debug("write-ahead log replayed", "state", rec.state, "records", rec.replayed)
	}

	return s, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Execute(cmd store.Command) (string, error) {
	switch cmd.Type {
	case store.CommandTGet:
		return s.Get(cmd.Key)
	case store.CommandTSet:
		return "", s.Set(cmd.Key, cmd.Value)
	case store.CommandTRemove:
		return "", s.Remove(cmd.Key)
	default:
		return "", store.NewError(store.RetCInternalError, fmt.Sprintf("unknown command type: %s", cmd.Type))
	}
}

func (s *storeImpl) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.NewError(store.RetCInternalError, "store is closed")
	}

	// The record must be durable before the index is touched; a crash after
	// the append is recovered by replay on the next Open.
	if err := s.wal.Append(store.NewSetCommand(key, value).Encode()); err != nil {
		return store.WrapError(store.RetCIO, "failed to append to write-ahead log", err)
	}
	s.m.appends.Inc()

	s.idx.Insert(key, value)
	s.m.sets.Inc()
	return nil
}

func (s *storeImpl) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.NewError(store.RetCInternalError, "store is closed")
	}

	// The log records the removal attempt unconditionally, even when the key
	// turns out to be absent and the logical remove fails below.
	if err := s.wal.Append(store.NewRemoveCommand(key).Encode()); err != nil {
		return store.WrapError(store.RetCIO, "failed to append to write-ahead log", err)
	}
	s.m.appends.Inc()

	if !s.idx.Remove(key) {
		return store.NewNotFound(key)
	}
	s.m.removes.Inc()
	return nil
}

func (s *storeImpl) Get(key string) (string, error) {
	s.m.gets.Inc()

	// Reads go straight to the index and never take the write mutex.
	value, loaded := s.idx.Get(key)
	if !loaded {
		return "", store.NewNotFound(key)
	}
	return value, nil
}

func (s *storeImpl) Info() (store.Info, error) {
	size, err := s.wal.Size()
	if err != nil {
		return store.Info{}, store.WrapError(store.RetCIO, "failed to stat write-ahead log", err)
	}

	return store.Info{
		Keys:         s.idx.Len(),
		LogPath:      s.wal.Path(),
		LogSizeBytes: size,
		Sets:         s.m.sets.Get(),
		Gets:         s.m.gets.Get(),
		Removes:      s.m.removes.Get(),
		Replayed:     s.replayed,
	}, nil
}

func (s *storeImpl) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	log.Debug("flushing and syncing write-ahead log", "path", s.wal.Path())
	if err := s.wal.Close(); err != nil {
		return store.WrapError(store.RetCIO, "failed to close write-ahead log", err)
	}
	return nil
}
