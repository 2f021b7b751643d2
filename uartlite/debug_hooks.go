// uartlite/debug_hooks.go

//go:build uartlitedebug

package uartlite

import "code.hybscloud.com/atomix"

type slotCounters struct {
	isrCount    atomix.Uint64
	isrBytes    atomix.Uint64
	isrMaxDrain atomix.Uint64
	completions atomix.Uint64
	cancels     atomix.Uint64
	spurious    atomix.Uint64
}

var counters [NumWakers]slotCounters

// Called once per OnInterruptTx that found an active transfer.
func dbgISR(slot, drained int) {
	c := &counters[slot]
	c.isrCount.AddAcqRel(1)
	c.isrBytes.AddAcqRel(uint64(drained))
	for {
		max := c.isrMaxDrain.LoadAcquire()
		if uint64(drained) <= max {
			break
		}
		if c.isrMaxDrain.CompareAndSwapAcqRel(max, uint64(drained)) {
			break
		}
	}
}

func dbgComplete(slot int) { counters[slot].completions.AddAcqRel(1) }
func dbgCancel(slot int)   { counters[slot].cancels.AddAcqRel(1) }
func dbgSpurious(slot int) { counters[slot].spurious.AddAcqRel(1) }
