// uartlite/tx.go

package uartlite

import "time"

// Tx is the transmit half of a UART Lite.
//
// Write blocks until at least one byte has been accepted by the TX FIFO and
// returns how many were accepted; Flush waits for the FIFO to run empty. For
// interrupt-driven transmission bind the handle to a waker slot with NewTxAsync.
type Tx struct {
	regs    Registers
	errs    RxErrors
	hasErrs bool
}

// NewTx returns a TX handle on regs. The peripheral is assumed configured.
// A second handle on the same registers may be created inside an interrupt
// handler to call OnInterruptTx.
func NewTx(regs Registers) *Tx {
	return &Tx{regs: regs}
}

// WriteFIFO enqueues b, or returns ErrWouldBlock when the TX FIFO is full.
func (tx *Tx) WriteFIFO(b byte) error {
	st := tx.regs.Status()
	if st.TxFifoFull() {
		return ErrWouldBlock
	}
	tx.WriteFIFOUnchecked(b)
	// A status read clears the latched RX flags, so keep them for the caller.
	if errs, ok := st.rxErrors(); ok {
		tx.errs, tx.hasErrs = errs, true
	}
	return nil
}

// WriteFIFOUnchecked enqueues b without checking the FIFO fill level.
// Use it only when the FIFO is known to have room.
func (tx *Tx) WriteFIFOUnchecked(b byte) {
	tx.regs.WriteTxFIFO(b)
}

// ResetFIFO drops everything in the TX FIFO. The interrupt enable setting is
// carried over, since the control register cannot be read back.
func (tx *Tx) ResetFIFO() {
	st := tx.regs.Status()
	tx.regs.WriteControl(NewControl(st.IntrEnabled(), false, true))
}

func (tx *Tx) FIFOEmpty() bool { return tx.regs.Status().TxFifoEmpty() }

func (tx *Tx) FIFOFull() bool { return tx.regs.Status().TxFifoFull() }

// FillFIFO writes from p until p is consumed or the FIFO is full and returns
// the number of bytes written.
func (tx *Tx) FillFIFO(p []byte) int {
	n := 0
	for n < len(p) {
		if err := tx.WriteFIFO(p[n]); err != nil {
			break
		}
		n++
	}
	return n
}

// Write implements io.Writer. It waits for room in the FIFO, then writes as
// much of p as fits. It never returns an error.
func (tx *Tx) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for tx.FIFOFull() {
		time.Sleep(0) // polite yield
	}
	return tx.FillFIFO(p), nil
}

// Flush blocks until the TX FIFO is empty.
func (tx *Tx) Flush() error {
	for !tx.FIFOEmpty() {
		time.Sleep(0)
	}
	return nil
}

// ReadAndClearLastError returns the RX error flags observed during the last
// status reads on this handle, if any, and clears them.
func (tx *Tx) ReadAndClearLastError() (RxErrors, bool) {
	errs, ok := tx.errs, tx.hasErrs
	tx.errs, tx.hasErrs = RxErrors{}, false
	return errs, ok
}

// Registers returns the register block behind the handle.
func (tx *Tx) Registers() Registers { return tx.regs }
