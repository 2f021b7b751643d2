//go:build uartlitedebug

package uartlite

import "testing"

func TestDebugStats(t *testing.T) {
	sim, tx := newTestTx(t)
	a := newTestAsync(t, tx)
	DebugReset()

	OnInterruptTx(tx, 0) // spurious
	f := a.Start(payload(20))
	sim.Shift(FIFODepth)
	OnInterruptTx(tx, 0)
	sim.Shift(FIFODepth)
	OnInterruptTx(tx, 0)
	if _, err := f.Poll(nil); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	g := a.Start(payload(40))
	g.Cancel()

	got := DebugStats(0)
	want := Stats{ISRCount: 2, ISRBytes: 4, ISRMaxDrain: 4, Completions: 1, Cancels: 1, Spurious: 1}
	if got != want {
		t.Fatalf("stats=%+v; want %+v", got, want)
	}
	if DebugStats(NumWakers) != (Stats{}) {
		t.Fatal("out-of-range slot returned counters")
	}
}
