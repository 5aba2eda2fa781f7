package index

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// Index is the capability interface for the in-memory key-value mapping.
// Any thread-safe associative container can implement it; the store only
// relies on get, insert and remove semantics, never on ordering.
type Index interface {
	// Get retrieves the value for an exact key.
	// The boolean return value indicates whether a value for the key was found.
	Get(key string) (value string, loaded bool)

	// Insert inserts or updates an entry with the given key and value.
	// If the key already exists, the old value is overwritten.
	Insert(key, value string)

	// Remove deletes an entry with the specified key.
	// The boolean return value indicates whether the key was present.
	Remove(key string) (loaded bool)

	// Len returns the number of entries currently stored.
	Len() (n int)

	// Range calls fn for each entry until fn returns false.
	// The iteration order is unspecified.
	Range(fn func(key, value string) bool)
}

// Factory is a function type that creates a new Index. It is used to
// abstract the creation of the index from the store implementation.
type Factory func() Index

// --------------------------------------------------------------------------
// xsync-backed implementation
// --------------------------------------------------------------------------

type indexImpl struct {
	m *xsync.MapOf[string, string]
}

// New creates a new concurrent index backed by an xsync.MapOf.
//
// Thread-safety: all methods of the returned index are safe for concurrent
// use; reads never block behind writers.
func New() Index {
	return &indexImpl{m: xsync.NewMapOf[string, string]()}
}

func (idx *indexImpl) Get(key string) (string, bool) {
	return idx.m.Load(key)
}

func (idx *indexImpl) Insert(key, value string) {
	idx.m.Store(key, value)
}

func (idx *indexImpl) Remove(key string) bool {
	_, loaded := idx.m.LoadAndDelete(key)
	return loaded
}

func (idx *indexImpl) Len() int {
	return idx.m.Size()
}

func (idx *indexImpl) Range(fn func(key, value string) bool) {
	idx.m.Range(fn)
}
