// uartlite/critical.go

package uartlite

// criticalSection excludes both the interrupt domain and other cores.
//
// Entering masks interrupts on the current core (TinyGo targets) and then
// takes the slot lock so that a second core, or a host goroutine standing in
// for the interrupt handler, cannot enter concurrently. Sections must be
// short and must not nest.
type criticalSection struct {
	mu slotLock
}

func (cs *criticalSection) enter() irqState {
	st := disableInterrupts()
	cs.mu.lock()
	return st
}

func (cs *criticalSection) exit(st irqState) {
	cs.mu.unlock()
	restoreInterrupts(st)
}

// wakerCell is an immutable registration: the continuation and the transfer
// generation it was registered for.
type wakerCell struct {
	gen uint32
	w   Waker
}
