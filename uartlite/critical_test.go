package uartlite

import (
	"sync"
	"testing"
)

// Run with -race as well: race builds swap the slot lock for one the
// detector can follow, so the plain counter below must come out clean.
func TestCriticalSection_ExcludesConcurrentWriters(t *testing.T) {
	var cs criticalSection
	var counter int

	const workers, iters = 8, 2000
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				irq := cs.enter()
				counter++
				cs.exit(irq)
			}
		}()
	}
	wg.Wait()

	if counter != workers*iters {
		t.Fatalf("counter=%d; want %d", counter, workers*iters)
	}
}

func TestWakerRef_SwapLoad(t *testing.T) {
	var r wakerRef
	if r.load() != nil {
		t.Fatal("zero wakerRef not empty")
	}
	c := &wakerCell{gen: 3, w: WakerFunc(func() {})}
	r.swap(c)
	if got := r.load(); got != c {
		t.Fatalf("load=%p; want %p", got, c)
	}
	r.swap(nil)
	if r.load() != nil {
		t.Fatal("swap(nil) did not clear")
	}
}
