// uartlite/lock_spin.go

//go:build !race || tinygo

package uartlite

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// raceEnabled reports whether the race detector is active.
const raceEnabled = false

// slotLock is a spinlock. It is only ever held with interrupts masked, so
// the holder cannot be preempted by the handler on its own core.
type slotLock struct {
	locked atomix.Uint64
}

func (l *slotLock) lock() {
	sw := spin.Wait{}
	for !l.locked.CompareAndSwapAcqRel(0, 1) {
		sw.Once()
	}
}

func (l *slotLock) unlock() { l.locked.StoreRelease(0) }

// wakerRef publishes the registered continuation without a lock.
type wakerRef struct {
	p atomix.Pointer[wakerCell]
}

// swap publishes c. The read-modify-write orders the store before the
// caller's following load of the completion flag.
func (r *wakerRef) swap(c *wakerCell) { r.p.SwapAcqRel(c) }

func (r *wakerRef) load() *wakerCell { return r.p.LoadAcquire() }
