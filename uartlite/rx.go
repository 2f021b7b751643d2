// uartlite/rx.go

package uartlite

// RxErrors records which line errors were latched by the peripheral.
type RxErrors struct {
	Parity  bool
	Frame   bool
	Overrun bool
}

// HasErrors reports whether any error flag is set.
func (e RxErrors) HasErrors() bool { return e.Parity || e.Frame || e.Overrun }

// Rx is the receive half of a UART Lite. Reads are non-blocking.
type Rx struct {
	regs    Registers
	errs    RxErrors
	hasErrs bool
}

// NewRx returns an RX handle on regs.
func NewRx(regs Registers) *Rx {
	return &Rx{regs: regs}
}

// ReadFIFO pops one byte, or returns ErrWouldBlock if the RX FIFO is empty.
func (rx *Rx) ReadFIFO() (byte, error) {
	st := rx.regs.Status()
	if !st.RxFifoValidData() {
		return 0, ErrWouldBlock
	}
	b := rx.regs.ReadRxFIFO()
	if errs, ok := st.rxErrors(); ok {
		rx.errs, rx.hasErrs = errs, true
	}
	return b, nil
}

// HasData reports whether the RX FIFO holds at least one byte.
func (rx *Rx) HasData() bool { return rx.regs.Status().RxFifoValidData() }

// Read copies up to len(p) buffered bytes into p. It returns 0, nil when
// nothing is available and never blocks.
func (rx *Rx) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		b, err := rx.ReadFIFO()
		if err != nil {
			break
		}
		p[n] = b
		n++
	}
	return n, nil
}

// OnInterruptRx drains the whole RX FIFO into buf and returns the count.
// Call it from the UART Lite interrupt handler.
func (rx *Rx) OnInterruptRx(buf *[FIFODepth]byte) int {
	n, _ := rx.Read(buf[:])
	return n
}

// ReadAndClearLastError returns the last latched error flags, if any, and clears them.
func (rx *Rx) ReadAndClearLastError() (RxErrors, bool) {
	errs, ok := rx.errs, rx.hasErrs
	rx.errs, rx.hasErrs = RxErrors{}, false
	return errs, ok
}
