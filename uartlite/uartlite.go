// uartlite/uartlite.go

// Package uartlite is a driver for the AMD AXI UART Lite v2.0 IP core.
//
// The core has 16-byte RX and TX FIFOs, a status register, a write-only
// control register and one interrupt line. Besides plain FIFO access the
// package provides interrupt-driven transmission: TxAsync pre-fills the FIFO,
// OnInterruptTx refills it from the interrupt handler, and the returned
// TxFuture resolves once the whole buffer has left the FIFO.
//
// The number of concurrently usable async TX slots is fixed at build time
// (see NumWakers).
package uartlite

// RxErrorsCounted holds saturating per-kind RX error counters.
type RxErrorsCounted struct {
	Parity  uint8
	Frame   uint8
	Overrun uint8
}

// HasErrors reports whether any counter is non-zero.
func (c RxErrorsCounted) HasErrors() bool {
	return c.Parity > 0 || c.Frame > 0 || c.Overrun > 0
}

func satInc(v *uint8) {
	if *v < 255 {
		*v++
	}
}

// UARTLite drives one peripheral instance through a combined TX/RX handle and
// keeps a running count of RX line errors.
type UARTLite struct {
	regs   Registers
	tx     *Tx
	rx     *Rx
	counts RxErrorsCounted
}

// New returns a driver for the peripheral behind regs.
func New(regs Registers) *UARTLite {
	return &UARTLite{regs: regs, tx: NewTx(regs), rx: NewRx(regs)}
}

// WriteFIFO enqueues b, or returns ErrWouldBlock if the TX FIFO is full.
func (u *UARTLite) WriteFIFO(b byte) error {
	if err := u.tx.WriteFIFO(b); err != nil {
		return err
	}
	if errs, ok := u.tx.ReadAndClearLastError(); ok {
		u.count(errs)
	}
	return nil
}

// ReadFIFO pops one byte, or returns ErrWouldBlock if the RX FIFO is empty.
func (u *UARTLite) ReadFIFO() (byte, error) {
	b, err := u.rx.ReadFIFO()
	if err != nil {
		return 0, err
	}
	if errs, ok := u.rx.ReadAndClearLastError(); ok {
		u.count(errs)
	}
	return b, nil
}

// Write implements io.Writer with Tx.Write semantics.
func (u *UARTLite) Write(p []byte) (int, error) { return u.tx.Write(p) }

// Read implements io.Reader with Rx.Read semantics (non-blocking).
func (u *UARTLite) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		b, err := u.ReadFIFO()
		if err != nil {
			break
		}
		p[n] = b
		n++
	}
	return n, nil
}

// Flush waits for the TX FIFO to drain.
func (u *UARTLite) Flush() error { return u.tx.Flush() }

func (u *UARTLite) TxFIFOEmpty() bool { return u.tx.FIFOEmpty() }
func (u *UARTLite) TxFIFOFull() bool  { return u.tx.FIFOFull() }
func (u *UARTLite) RxHasData() bool   { return u.rx.HasData() }

// ReadAndClearErrors returns the error counters and resets them.
func (u *UARTLite) ReadAndClearErrors() RxErrorsCounted {
	c := u.counts
	u.counts = RxErrorsCounted{}
	return c
}

func (u *UARTLite) count(errs RxErrors) {
	logDebug(ComponentRx, "line error", "parity", errs.Parity, "frame", errs.Frame, "overrun", errs.Overrun)
	if errs.Frame {
		satInc(&u.counts.Frame)
	}
	if errs.Parity {
		satInc(&u.counts.Parity)
	}
	if errs.Overrun {
		satInc(&u.counts.Overrun)
	}
}

// The control register is write-only, so each helper writes a complete value:
// a FIFO reset also disables the interrupt.

func (u *UARTLite) ResetRxFIFO()      { u.regs.WriteControl(NewControl(false, true, false)) }
func (u *UARTLite) ResetTxFIFO()      { u.regs.WriteControl(NewControl(false, false, true)) }
func (u *UARTLite) EnableInterrupt()  { u.regs.WriteControl(NewControl(true, false, false)) }
func (u *UARTLite) DisableInterrupt() { u.regs.WriteControl(NewControl(false, false, false)) }

// Split hands out the TX and RX halves. The UARTLite must not be used afterwards.
func (u *UARTLite) Split() (*Tx, *Rx) { return u.tx, u.rx }
