// uartlite/tx_async.go

package uartlite

import (
	"context"

	"code.hybscloud.com/atomix"
)

// Asynchronous TX.
//
// Each in-flight transfer occupies one of NumWakers slots. A slot holds the
// transfer context (progress plus the borrowed buffer), the continuation to
// wake on completion, and a completion flag. The task side creates the
// transfer with TxAsync.Start or TxAsync.Write; the interrupt side advances
// it with OnInterruptTx, which must be called with the same slot index from
// the UART Lite interrupt handler.
//
// Buffer contract: the buffer passed to Start or Write is borrowed by the
// slot until the future resolves or is cancelled. The caller must not modify
// it during that time. Nothing is copied.

// Waker is the continuation a pending TxFuture registers. The interrupt
// handler calls Wake at most once per transfer, from interrupt context, so
// implementations must not block.
type Waker interface {
	Wake()
}

// WakerFunc adapts a function to Waker.
type WakerFunc func()

func (f WakerFunc) Wake() { f() }

// chanWaker performs a coalesced, non-blocking send.
type chanWaker chan struct{}

func (c chanWaker) Wake() {
	select {
	case c <- struct{}{}:
	default:
	}
}

type txContext struct {
	active   bool // a buffer is in flight
	progress int  // bytes handed to the FIFO so far
	buf      []byte
}

type txSlot struct {
	cs  criticalSection
	ctx txContext // guarded by cs
	// Bumped by every Start. Written only under cs, read lock-free by Poll.
	gen   atomix.Uint32
	waker wakerRef
	// Set by OnInterruptTx after the final context is written back; cleared
	// by Start, by the Poll that observes it, and by Cancel.
	done atomix.Bool
}

var txSlots [NumWakers]txSlot

// OnInterruptTx services the async transfer bound to slot. Call it from the
// interrupt handler of the UART Lite that tx refers to.
//
// It does nothing if slot is out of range, the peripheral has interrupts
// disabled, or no transfer is active on the slot. Otherwise it either detects
// completion (every byte queued and the FIFO drained) and wakes the waiting
// future, or tops up the FIFO from the buffer.
//
// The slot's critical section is held for the whole call, so Start and
// Cancel on the same slot are serialised against it.
func OnInterruptTx(tx *Tx, slot int) {
	if slot < 0 || slot >= NumWakers {
		return
	}
	s := &txSlots[slot]

	irq := s.cs.enter()
	st := tx.regs.Status()
	if !st.IntrEnabled() {
		s.cs.exit(irq)
		return
	}
	c := &s.ctx
	if !c.active {
		s.cs.exit(irq)
		dbgSpurious(slot)
		return
	}

	length := len(c.buf)
	if (c.progress >= length && st.TxFifoEmpty()) || length == 0 {
		// The CAS orders the flag store before the waker load; Poll does
		// the mirror image, so one of the two sides always sees the other.
		first := s.done.CompareAndSwapAcqRel(false, true)
		var w Waker
		if first {
			if r := s.waker.load(); r != nil && r.gen == s.gen.LoadRelaxed() {
				w = r.w
			}
		}
		s.cs.exit(irq)
		dbgISR(slot, 0)
		if first {
			dbgComplete(slot)
		}
		if w != nil {
			w.Wake()
		}
		return
	}

	drained := 0
	for c.progress < length {
		if tx.regs.Status().TxFifoFull() {
			break
		}
		tx.WriteFIFOUnchecked(c.buf[c.progress])
		c.progress++
		drained++
	}
	s.cs.exit(irq)
	dbgISR(slot, drained)
}

type futureState uint8

const (
	futureReady futureState = iota
	futurePending
	futureCancelled
	futureSuperseded
)

// TxFuture is an in-flight async transfer. The zero value is a future that
// is already ready with 0 bytes.
//
// A TxFuture must be polled by one goroutine at a time and must be resolved
// (Poll returns a result) or cancelled before the slot is reused. Do not copy
// a pending TxFuture: the copies share one transfer but not its resolution.
type TxFuture struct {
	slot   int
	gen    uint32
	state  futureState
	n      int
	notify chan struct{}
}

// Poll registers w as the slot's continuation and reports progress. It
// returns ErrWouldBlock while the transfer is pending and (n, nil) once every
// byte has been transmitted, n being the buffer length. Subsequent calls
// return the same result.
//
// A future whose slot was taken over by a later Start returns
// ErrTransferSuperseded; a cancelled one returns ErrTransferCancelled.
func (f *TxFuture) Poll(w Waker) (int, error) {
	if f.state != futurePending {
		return f.poll(nil)
	}
	return f.poll(&wakerCell{gen: f.gen, w: w})
}

// poll registers c and checks the completion flag. The pending path takes no
// lock; only the Poll that observes completion enters the critical section.
func (f *TxFuture) poll(c *wakerCell) (int, error) {
	switch f.state {
	case futureReady:
		return f.n, nil
	case futureCancelled:
		return 0, ErrTransferCancelled
	case futureSuperseded:
		return 0, ErrTransferSuperseded
	}
	s := &txSlots[f.slot]

	if s.gen.LoadAcquire() != f.gen {
		f.state = futureSuperseded
		return 0, ErrTransferSuperseded
	}
	// A registration that loses a race with a newer Start carries the old
	// generation, and the handler ignores it.
	s.waker.swap(c)
	if !s.done.LoadAcquire() {
		return 0, ErrWouldBlock
	}

	irq := s.cs.enter()
	if s.gen.LoadRelaxed() != f.gen {
		s.cs.exit(irq)
		f.state = futureSuperseded
		return 0, ErrTransferSuperseded
	}
	s.done.StoreRelease(false)
	n := s.ctx.progress
	s.ctx.active = false
	s.ctx.buf = nil
	s.waker.swap(nil)
	s.cs.exit(irq)

	f.state, f.n = futureReady, n
	return n, nil
}

// Cancel abandons a pending transfer: the slot context is cleared (no
// buffer, progress 0) so the interrupt handler stops touching the buffer.
// Bytes already in the FIFO are not recalled; the next Start resets it.
// Cancel is a no-op on a future that has resolved or was already cancelled,
// so it is safe to defer.
func (f *TxFuture) Cancel() {
	if f.state != futurePending {
		return
	}
	f.state = futureCancelled
	s := &txSlots[f.slot]

	irq := s.cs.enter()
	var progress int
	if s.gen.LoadRelaxed() == f.gen {
		progress = s.ctx.progress
		s.ctx.active = false
		s.ctx.buf = nil
		s.ctx.progress = 0
		s.waker.swap(nil)
		s.done.StoreRelease(false)
	}
	s.cs.exit(irq)
	dbgCancel(f.slot)
	logDebug(ComponentAsyncTx, "transfer cancelled", "slot", f.slot, "progress", progress)
}

// Wait suspends until the transfer completes or ctx is done. When ctx ends
// first the transfer is cancelled and ctx.Err() is returned.
func (f *TxFuture) Wait(ctx context.Context) (int, error) {
	c := &wakerCell{gen: f.gen, w: chanWaker(f.notify)}
	for {
		n, err := f.poll(c)
		if !IsWouldBlock(err) {
			return n, err
		}
		select {
		case <-f.notify:
			// coalesced wake; re-poll
		case <-ctx.Done():
			// Completion may have raced with ctx; prefer the result.
			if n, err := f.poll(c); err == nil {
				return n, nil
			}
			f.Cancel()
			return 0, ctx.Err()
		}
	}
}

// TxAsync binds a TX handle to one waker slot.
type TxAsync struct {
	tx     *Tx
	slot   int
	notify chan struct{}
}

// NewTxAsync returns an async TX handle using slot. It fails with an
// *InvalidSlotIndexError if slot is not below NumWakers.
//
// The same slot index must be passed to OnInterruptTx by the interrupt
// handler. Only one transfer may be in flight per slot.
func NewTxAsync(tx *Tx, slot int) (*TxAsync, error) {
	if slot < 0 || slot >= NumWakers {
		logDebug(ComponentAsyncTx, "rejecting waker slot", "slot", slot, "slots", NumWakers)
		return nil, &InvalidSlotIndexError{Index: slot}
	}
	return &TxAsync{tx: tx, slot: slot, notify: make(chan struct{}, 1)}, nil
}

// Slot returns the waker slot index.
func (a *TxAsync) Slot() int { return a.slot }

// Start begins transmitting buf and returns the pending future.
//
// The TX FIFO is reset (dropping leftovers of an abandoned transfer) and
// pre-filled with up to FIFODepth bytes; the interrupt handler sends the
// rest. An empty buf yields a ready future without touching the hardware.
//
// Start has side effects even if the future is never polled: part of buf
// may already be on the wire.
func (a *TxAsync) Start(buf []byte) *TxFuture {
	if len(buf) == 0 {
		return &TxFuture{slot: a.slot, notify: a.notify}
	}
	s := &txSlots[a.slot]

	// Reset, pre-fill and publish inside one section, so the handler never
	// sees a pre-filled FIFO without the context that goes with it.
	irq := s.cs.enter()
	s.done.StoreRelease(false)
	a.tx.ResetFIFO()
	n := min(len(buf), FIFODepth)
	for _, b := range buf[:n] {
		a.tx.WriteFIFOUnchecked(b)
	}
	gen := s.gen.LoadRelaxed() + 1
	s.gen.StoreRelease(gen)
	s.ctx.active = true
	s.ctx.progress = n
	s.ctx.buf = buf
	s.waker.swap(nil)
	s.cs.exit(irq)

	// Drop a wake-up left over from an earlier transfer.
	select {
	case <-a.notify:
	default:
	}
	return &TxFuture{slot: a.slot, gen: gen, state: futurePending, notify: a.notify}
}

// Write transmits buf and blocks until every byte has left the TX FIFO or
// ctx is done. It returns len(buf) on success. If ctx ends first the
// transfer is cancelled, and part of buf may already have been sent.
func (a *TxAsync) Write(ctx context.Context, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	f := a.Start(buf)
	defer f.Cancel()
	return f.Wait(ctx)
}

// Flush is a no-op: Write only returns once the FIFO has drained.
func (a *TxAsync) Flush() error { return nil }

// Release returns the underlying TX handle.
func (a *TxAsync) Release() *Tx { return a.tx }
