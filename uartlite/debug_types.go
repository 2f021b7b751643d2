// uartlite/debug_types.go

//go:build uartlitedebug

package uartlite

// Stats holds per-slot async TX counters since the last reset.
type Stats struct {
	ISRCount    uint64 // OnInterruptTx calls that found an active transfer
	ISRBytes    uint64 // bytes moved into the FIFO by the handler
	ISRMaxDrain uint64 // most bytes moved by a single call
	Completions uint64 // completion flag transitions
	Cancels     uint64 // futures cancelled while pending
	Spurious    uint64 // calls with interrupts enabled but no active transfer
}

// DebugReset zeroes the counters of every slot.
func DebugReset() {
	for i := range counters {
		c := &counters[i]
		c.isrCount.StoreRelease(0)
		c.isrBytes.StoreRelease(0)
		c.isrMaxDrain.StoreRelease(0)
		c.completions.StoreRelease(0)
		c.cancels.StoreRelease(0)
		c.spurious.StoreRelease(0)
	}
}

// DebugStats returns a snapshot of slot's counters. Out-of-range slots
// return the zero Stats.
func DebugStats(slot int) Stats {
	if slot < 0 || slot >= NumWakers {
		return Stats{}
	}
	c := &counters[slot]
	return Stats{
		ISRCount:    c.isrCount.LoadAcquire(),
		ISRBytes:    c.isrBytes.LoadAcquire(),
		ISRMaxDrain: c.isrMaxDrain.LoadAcquire(),
		Completions: c.completions.LoadAcquire(),
		Cancels:     c.cancels.LoadAcquire(),
		Spurious:    c.spurious.LoadAcquire(),
	}
}
