package testing

import (
	"fmt"
	"sync"
	"testing"

	"github.com/valderique/kvgo/lib/store"
)

// StoreFactory is a function that creates a new instance of an IStore
// implementation, typically over a fresh directory.
type StoreFactory func() store.IStore

// RunStoreTests runs a comprehensive test suite for an IStore implementation.
func RunStoreTests(t *testing.T, name string, factory StoreFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory())
		})

		t.Run("Overwrite", func(t *testing.T) {
			testOverwrite(t, factory())
		})

		t.Run("Remove", func(t *testing.T) {
			testRemove(t, factory())
		})

		t.Run("NotFound", func(t *testing.T) {
			testNotFound(t, factory())
		})

		t.Run("Execute", func(t *testing.T) {
			testExecute(t, factory())
		})

		t.Run("ConcurrentWrites", func(t *testing.T) {
			testConcurrentWrites(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testSetGet(t *testing.T, s store.IStore) {
	defer s.Close()

	if err := s.Set("key1", "value1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set("key2", "value2"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, err := s.Get("key1")
	if err != nil {
		t.Errorf("Get failed: %v", err)
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %s", value)
	}

	value, err = s.Get("key2")
	if err != nil {
		t.Errorf("Get failed: %v", err)
	}
	if value != "value2" {
		t.Errorf("Expected value2, got %s", value)
	}
}

func testOverwrite(t *testing.T, s store.IStore) {
	defer s.Close()

	if err := s.Set("key1", "value1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set("key1", "value2"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, err := s.Get("key1")
	if err != nil {
		t.Errorf("Get failed: %v", err)
	}
	if value != "value2" {
		t.Errorf("Expected overwritten value2, got %s", value)
	}
}

func testRemove(t *testing.T, s store.IStore) {
	defer s.Close()

	if err := s.Set("key1", "value1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Remove("key1"); err != nil {
		t.Errorf("Remove failed: %v", err)
	}

	if _, err := s.Get("key1"); !store.IsNotFound(err) {
		t.Errorf("Expected not-found after Remove, got %v", err)
	}
}

func testNotFound(t *testing.T, s store.IStore) {
	defer s.Close()

	if _, err := s.Get("nonexistent-key"); !store.IsNotFound(err) {
		t.Errorf("Expected not-found error from Get, got %v", err)
	}

	if err := s.Remove("nonexistent-key"); !store.IsNotFound(err) {
		t.Errorf("Expected not-found error from Remove, got %v", err)
	}

	// Neither miss may have created the key.
	if _, err := s.Get("nonexistent-key"); !store.IsNotFound(err) {
		t.Errorf("Expected key to stay absent, got %v", err)
	}
}

func testExecute(t *testing.T, s store.IStore) {
	defer s.Close()

	result, err := s.Execute(store.NewSetCommand("key1", "value1"))
	if err != nil {
		t.Fatalf("Execute(set) failed: %v", err)
	}
	if result != "" {
		t.Errorf("Expected empty result for set, got %q", result)
	}

	result, err = s.Execute(store.NewGetCommand("key1"))
	if err != nil {
		t.Fatalf("Execute(get) failed: %v", err)
	}
	if result != "value1" {
		t.Errorf("Expected value1, got %q", result)
	}

	result, err = s.Execute(store.NewRemoveCommand("key1"))
	if err != nil {
		t.Fatalf("Execute(rm) failed: %v", err)
	}
	if result != "" {
		t.Errorf("Expected empty result for rm, got %q", result)
	}

	if _, err := s.Execute(store.NewGetCommand("key1")); !store.IsNotFound(err) {
		t.Errorf("Expected not-found after Execute(rm), got %v", err)
	}
}

func testConcurrentWrites(t *testing.T, s store.IStore) {
	defer s.Close()

	const (
		writers       = 8
		keysPerWriter = 50
	)

	var wg sync.WaitGroup
	wg.Add(writers)
	for w := 0; w < writers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < keysPerWriter; i++ {
				key := fmt.Sprintf("w%d-key%d", w, i)
				value := fmt.Sprintf("w%d-value%d", w, i)
				if err := s.Set(key, value); err != nil {
					t.Errorf("Set failed: %v", err)
				}
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < writers; w++ {
		for i := 0; i < keysPerWriter; i++ {
			key := fmt.Sprintf("w%d-key%d", w, i)
			expected := fmt.Sprintf("w%d-value%d", w, i)
			value, err := s.Get(key)
			if err != nil {
				t.Errorf("Get %s failed: %v", key, err)
				continue
			}
			if value != expected {
				t.Errorf("Expected %s, got %s", expected, value)
			}
		}
	}

	// Concurrent sets on the same key must leave exactly one of the written
	// values behind.
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = s.Set("contended", "a")
	}()
	go func() {
		defer wg.Done()
		_ = s.Set("contended", "b")
	}()
	wg.Wait()

	value, err := s.Get("contended")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "a" && value != "b" {
		t.Errorf("Expected a or b, got %s", value)
	}
}
