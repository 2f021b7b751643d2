// uartlite/sim.go

//go:build !tinygo

package uartlite

import "sync"

// Sim is a host-side model of the UART Lite register block used by tests and
// the uartlite_sim tool. Every register access is atomic with respect to the
// others, which matches what a bus access looks like to the driver.
//
// The transmit shifter does not run by itself: Shift moves bytes from the TX
// FIFO to the wire, standing in for bit time passing.
type Sim struct {
	mu sync.Mutex

	tx   fifo
	rx   fifo
	wire []byte

	intrEnabled bool
	errs        RxErrors // latched, cleared by a status read

	dataWrites uint64
	ctrlWrites uint64
	txResets   uint64
	dropped    uint64
}

// NewSim returns a simulated peripheral with empty FIFOs and interrupts disabled.
func NewSim() *Sim { return &Sim{} }

func (s *Sim) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st Status
	if s.rx.n > 0 {
		st |= StatusRxFifoValidData
	}
	if s.rx.n == FIFODepth {
		st |= StatusRxFifoFull
	}
	if s.tx.n == 0 {
		st |= StatusTxFifoEmpty
	}
	if s.tx.n == FIFODepth {
		st |= StatusTxFifoFull
	}
	if s.intrEnabled {
		st |= StatusIntrEnabled
	}
	if s.errs.Overrun {
		st |= StatusOverrunError
	}
	if s.errs.Frame {
		st |= StatusFrameError
	}
	if s.errs.Parity {
		st |= StatusParityError
	}
	s.errs = RxErrors{}
	return st
}

func (s *Sim) WriteControl(c Control) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctrlWrites++
	s.intrEnabled = c.EnableInterrupt()
	if c.ResetTxFifo() {
		s.tx.reset()
		s.txResets++
	}
	if c.ResetRxFifo() {
		s.rx.reset()
	}
}

// WriteTxFIFO enqueues b. A write to a full FIFO is lost, as on hardware.
func (s *Sim) WriteTxFIFO(b byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataWrites++
	if !s.tx.put(b) {
		s.dropped++
	}
}

// ReadRxFIFO pops a received byte. Reading an empty FIFO returns 0.
func (s *Sim) ReadRxFIFO() byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, _ := s.rx.get()
	return b
}

// Shift transmits up to n bytes from the TX FIFO onto the wire and returns
// how many moved.
func (s *Sim) Shift(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	moved := 0
	for moved < n {
		b, ok := s.tx.get()
		if !ok {
			break
		}
		s.wire = append(s.wire, b)
		moved++
	}
	return moved
}

// Inject places b in the RX FIFO and latches errs. It reports false and sets
// the overrun flag when the RX FIFO is already full.
func (s *Sim) Inject(b byte, errs RxErrors) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errs.Parity = s.errs.Parity || errs.Parity
	s.errs.Frame = s.errs.Frame || errs.Frame
	if !s.rx.put(b) {
		s.errs.Overrun = true
		return false
	}
	s.errs.Overrun = s.errs.Overrun || errs.Overrun
	return true
}

// Wire returns a copy of every byte shifted out so far.
func (s *Sim) Wire() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.wire...)
}

// ClearWire discards the captured wire bytes.
func (s *Sim) ClearWire() {
	s.mu.Lock()
	s.wire = s.wire[:0]
	s.mu.Unlock()
}

// TxQueued returns the TX FIFO occupancy.
func (s *Sim) TxQueued() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tx.n
}

// DataWrites returns the number of TX data register writes.
func (s *Sim) DataWrites() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataWrites
}

// ControlWrites returns the number of control register writes.
func (s *Sim) ControlWrites() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrlWrites
}

// TxResets returns the number of TX FIFO resets.
func (s *Sim) TxResets() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txResets
}

// Dropped returns the number of bytes written while the TX FIFO was full.
func (s *Sim) Dropped() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// -------- fixed-depth byte FIFO --------

type fifo struct {
	buf        [FIFODepth]byte
	head, tail int
	n          int
}

func (f *fifo) put(b byte) bool {
	if f.n == FIFODepth {
		return false
	}
	f.buf[f.head] = b
	f.head = (f.head + 1) % FIFODepth
	f.n++
	return true
}

func (f *fifo) get() (byte, bool) {
	if f.n == 0 {
		return 0, false
	}
	b := f.buf[f.tail]
	f.tail = (f.tail + 1) % FIFODepth
	f.n--
	return b, true
}

func (f *fifo) reset() { *f = fifo{} }
