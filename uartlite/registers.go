// uartlite/registers.go

package uartlite

// FIFODepth is the depth of both the RX and TX hardware FIFOs.
const FIFODepth = 16

// Status is the read-only status register.
type Status uint32

// Status register bits.
const (
	StatusRxFifoValidData Status = 1 << iota
	StatusRxFifoFull
	StatusTxFifoEmpty
	StatusTxFifoFull
	StatusIntrEnabled
	StatusOverrunError
	StatusFrameError
	StatusParityError
)

func (s Status) ParityError() bool     { return s&StatusParityError != 0 }
func (s Status) FrameError() bool      { return s&StatusFrameError != 0 }
func (s Status) OverrunError() bool    { return s&StatusOverrunError != 0 }
func (s Status) IntrEnabled() bool     { return s&StatusIntrEnabled != 0 }
func (s Status) TxFifoFull() bool      { return s&StatusTxFifoFull != 0 }
func (s Status) TxFifoEmpty() bool     { return s&StatusTxFifoEmpty != 0 }
func (s Status) RxFifoFull() bool      { return s&StatusRxFifoFull != 0 }
func (s Status) RxFifoValidData() bool { return s&StatusRxFifoValidData != 0 }

// rxErrors extracts the line error flags latched in s.
func (s Status) rxErrors() (RxErrors, bool) {
	e := RxErrors{
		Parity:  s.ParityError(),
		Frame:   s.FrameError(),
		Overrun: s.OverrunError(),
	}
	return e, e.HasErrors()
}

// Control is the write-only control register. There is no way to read it
// back, so every write carries the full intended value.
type Control uint32

// Control register bits.
const (
	ControlResetTxFifo     Control = 1 << 0
	ControlResetRxFifo     Control = 1 << 1
	ControlEnableInterrupt Control = 1 << 4
)

// NewControl builds a control word.
func NewControl(enableInterrupt, resetRxFIFO, resetTxFIFO bool) Control {
	var c Control
	if enableInterrupt {
		c |= ControlEnableInterrupt
	}
	if resetRxFIFO {
		c |= ControlResetRxFifo
	}
	if resetTxFIFO {
		c |= ControlResetTxFifo
	}
	return c
}

func (c Control) EnableInterrupt() bool { return c&ControlEnableInterrupt != 0 }
func (c Control) ResetRxFifo() bool     { return c&ControlResetRxFifo != 0 }
func (c Control) ResetTxFifo() bool     { return c&ControlResetTxFifo != 0 }

// Registers is the AXI UART Lite register block as seen by the driver.
//
// On TinyGo targets it is backed by memory-mapped registers (see NewMMIO);
// host builds use Sim.
type Registers interface {
	// Status reads the status register.
	Status() Status
	// WriteControl writes the control register.
	WriteControl(Control)
	// WriteTxFIFO enqueues one byte into the TX FIFO without checking occupancy.
	WriteTxFIFO(byte)
	// ReadRxFIFO pops one byte from the RX FIFO without checking occupancy.
	ReadRxFIFO() byte
}
