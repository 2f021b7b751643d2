// uartlite/registers_mmio.go

//go:build tinygo

package uartlite

import (
	"runtime/volatile"
	"unsafe"
)

// mmioRegisters mirrors the hardware layout: rx_fifo, tx_fifo, stat_reg, ctrl_reg.
type mmioRegisters struct {
	rxFifo volatile.Register32
	txFifo volatile.Register32
	stat   volatile.Register32
	ctrl   volatile.Register32
}

// NewMMIO maps the register block at base.
//
// base must be the address of an AXI UART Lite instance. Several handles for
// the same base may exist (see Tx/Rx), but callers must not drive the same
// FIFO from two contexts without the async TX slot discipline.
func NewMMIO(base uintptr) Registers {
	return (*mmioRegisters)(unsafe.Pointer(base))
}

func (r *mmioRegisters) Status() Status         { return Status(r.stat.Get()) }
func (r *mmioRegisters) WriteControl(c Control) { r.ctrl.Set(uint32(c)) }
func (r *mmioRegisters) WriteTxFIFO(b byte)     { r.txFifo.Set(uint32(b)) }
func (r *mmioRegisters) ReadRxFIFO() byte       { return byte(r.rxFifo.Get() & 0xFF) }
