// Package testing provides a standardised test suite for implementations
// of the store.IStore interface.
//
// Example usage:
//
//	factory := func() store.IStore {
//		s, _ := wstore.Open(t.TempDir(), nil)
//		return s
//	}
//	testing.RunStoreTests(t, "wstore", factory)
package testing
