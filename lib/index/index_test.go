package index

import (
	"fmt"
	"sync"
	"testing"
)

func TestInsertGet(t *testing.T) {
	idx := New()

	idx.Insert("key1", "value1")

	value, loaded := idx.Get("key1")
	if !loaded {
		t.Fatalf("Expected key1 to exist after Insert")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %s", value)
	}

	idx.Insert("key1", "value2")
	value, _ = idx.Get("key1")
	if value != "value2" {
		t.Errorf("Expected overwritten value2, got %s", value)
	}

	if _, loaded := idx.Get("nonexistent-key"); loaded {
		t.Errorf("Expected nonexistent key to return loaded=false")
	}
}

func TestRemove(t *testing.T) {
	idx := New()

	idx.Insert("key1", "value1")
	if !idx.Remove("key1") {
		t.Errorf("Expected Remove of present key to return true")
	}
	if _, loaded := idx.Get("key1"); loaded {
		t.Errorf("Expected key1 to be gone after Remove")
	}
	if idx.Remove("key1") {
		t.Errorf("Expected Remove of absent key to return false")
	}
}

func TestLenRange(t *testing.T) {
	idx := New()

	for i := 0; i < 10; i++ {
		idx.Insert(fmt.Sprintf("key%d", i), fmt.Sprintf("value%d", i))
	}

	if n := idx.Len(); n != 10 {
		t.Errorf("Expected Len 10, got %d", n)
	}

	seen := map[string]string{}
	idx.Range(func(key, value string) bool {
		seen[key] = value
		return true
	})
	if len(seen) != 10 {
		t.Errorf("Expected Range to visit 10 entries, visited %d", len(seen))
	}
	if seen["key3"] != "value3" {
		t.Errorf("Expected value3 for key3, got %s", seen["key3"])
	}
}

func TestConcurrentAccess(t *testing.T) {
	idx := New()

	const (
		goroutines = 8
		keysEach   = 100
	)

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(g int) {
			defer wg.Done()
			for i := 0; i < keysEach; i++ {
				key := fmt.Sprintf("g%d-key%d", g, i)
				idx.Insert(key, "value")
				if _, loaded := idx.Get(key); !loaded {
					t.Errorf("Expected %s to be readable after Insert", key)
				}
			}
		}(g)
	}
	wg.Wait()

	if n := idx.Len(); n != goroutines*keysEach {
		t.Errorf("Expected %d entries, got %d", goroutines*keysEach, n)
	}
}
