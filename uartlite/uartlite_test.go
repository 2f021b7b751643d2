package uartlite

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestStatusBits(t *testing.T) {
	tests := []struct {
		name string
		bit  Status
		get  func(Status) bool
	}{
		{"rx valid", 1 << 0, Status.RxFifoValidData},
		{"rx full", 1 << 1, Status.RxFifoFull},
		{"tx empty", 1 << 2, Status.TxFifoEmpty},
		{"tx full", 1 << 3, Status.TxFifoFull},
		{"intr enabled", 1 << 4, Status.IntrEnabled},
		{"overrun", 1 << 5, Status.OverrunError},
		{"frame", 1 << 6, Status.FrameError},
		{"parity", 1 << 7, Status.ParityError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.get(tt.bit) {
				t.Fatalf("bit %#x not reported", uint32(tt.bit))
			}
			if tt.get(^tt.bit & 0xFF) {
				t.Fatalf("reported with bit %#x clear", uint32(tt.bit))
			}
		})
	}
}

func TestNewControl(t *testing.T) {
	if got := NewControl(true, true, true); got != 0x13 {
		t.Fatalf("all bits: %#x; want 0x13", uint32(got))
	}
	if got := NewControl(false, false, false); got != 0 {
		t.Fatalf("no bits: %#x; want 0", uint32(got))
	}
	c := NewControl(true, false, true)
	if !c.EnableInterrupt() || c.ResetRxFifo() || !c.ResetTxFifo() {
		t.Fatalf("decode mismatch for %#x", uint32(c))
	}
}

func TestTx_WriteFIFOBackpressure(t *testing.T) {
	sim := NewSim()
	tx := NewTx(sim)

	for i := 0; i < FIFODepth; i++ {
		if err := tx.WriteFIFO(byte(i)); err != nil {
			t.Fatalf("byte %d: %v", i, err)
		}
	}
	if !tx.FIFOFull() || tx.FIFOEmpty() {
		t.Fatal("FIFO should report full")
	}
	err := tx.WriteFIFO(0xFF)
	if !IsWouldBlock(err) || !errors.Is(err, ErrWouldBlock) {
		t.Fatalf("err=%v; want ErrWouldBlock", err)
	}
	if sim.Dropped() != 0 {
		t.Fatal("checked write overflowed the FIFO")
	}
}

func TestTx_ResetFIFOPreservesInterruptEnable(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		sim := NewSim()
		sim.WriteControl(NewControl(enabled, false, false))
		tx := NewTx(sim)
		tx.FillFIFO([]byte("abc"))

		tx.ResetFIFO()

		if !tx.FIFOEmpty() {
			t.Fatalf("enabled=%v: FIFO not empty after reset", enabled)
		}
		if got := sim.Status().IntrEnabled(); got != enabled {
			t.Fatalf("enabled=%v: interrupt enable became %v", enabled, got)
		}
	}
}

func TestTx_WriteAndFlush(t *testing.T) {
	sim := NewSim()
	tx := NewTx(sim)
	tx.FillFIFO(bytes.Repeat([]byte{'x'}, FIFODepth))

	go func() {
		for i := 0; i < 50; i++ {
			time.Sleep(time.Millisecond)
			sim.Shift(2)
		}
	}()

	n, err := tx.Write([]byte("hello"))
	if err != nil || n == 0 {
		t.Fatalf("Write: n=%d err=%v", n, err)
	}
	if err := tx.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if !tx.FIFOEmpty() {
		t.Fatal("FIFO not empty after Flush")
	}
	if n, _ := tx.Write(nil); n != 0 {
		t.Fatalf("empty Write returned %d", n)
	}
}

func TestRx_ReadAndErrors(t *testing.T) {
	sim := NewSim()
	rx := NewRx(sim)

	if _, err := rx.ReadFIFO(); !IsWouldBlock(err) {
		t.Fatalf("empty ReadFIFO: err=%v", err)
	}
	if n, err := rx.Read(make([]byte, 4)); n != 0 || err != nil {
		t.Fatalf("empty Read: n=%d err=%v", n, err)
	}

	sim.Inject('A', RxErrors{})
	sim.Inject('B', RxErrors{Parity: true})
	sim.Inject('C', RxErrors{})

	var buf [FIFODepth]byte
	n := rx.OnInterruptRx(&buf)
	if n != 3 || string(buf[:n]) != "ABC" {
		t.Fatalf("got %q; want ABC", buf[:n])
	}
	errs, ok := rx.ReadAndClearLastError()
	if !ok || !errs.Parity || errs.Frame || errs.Overrun {
		t.Fatalf("errors=%+v ok=%v; want parity only", errs, ok)
	}
	if _, ok := rx.ReadAndClearLastError(); ok {
		t.Fatal("errors not cleared")
	}
	if rx.HasData() {
		t.Fatal("RX FIFO should be empty")
	}
}

func TestUARTLite_ErrorCountersSaturate(t *testing.T) {
	sim := NewSim()
	u := New(sim)

	for i := 0; i < 300; i++ {
		sim.Inject(byte(i), RxErrors{Parity: true, Frame: i%2 == 0})
		if _, err := u.ReadFIFO(); err != nil {
			t.Fatalf("ReadFIFO %d: %v", i, err)
		}
	}
	c := u.ReadAndClearErrors()
	if c.Parity != 255 || c.Frame != 150 || c.Overrun != 0 {
		t.Fatalf("counts=%+v; want parity=255 frame=150", c)
	}
	if u.ReadAndClearErrors().HasErrors() {
		t.Fatal("counters not cleared")
	}
}

func TestUARTLite_ControlHelpers(t *testing.T) {
	sim := NewSim()
	u := New(sim)

	u.EnableInterrupt()
	if !sim.Status().IntrEnabled() {
		t.Fatal("interrupt not enabled")
	}
	_ = u.WriteFIFO('a')
	u.ResetTxFIFO()
	if !u.TxFIFOEmpty() || sim.Status().IntrEnabled() {
		t.Fatal("ResetTxFIFO should empty the FIFO and clear the enable bit")
	}
	sim.Inject('z', RxErrors{})
	u.ResetRxFIFO()
	if u.RxHasData() {
		t.Fatal("RX FIFO not reset")
	}
	u.EnableInterrupt()
	u.DisableInterrupt()
	if sim.Status().IntrEnabled() {
		t.Fatal("interrupt still enabled")
	}

	tx, rx := u.Split()
	if tx == nil || rx == nil {
		t.Fatal("Split returned nil halves")
	}
}

func TestSim_InjectOverrun(t *testing.T) {
	sim := NewSim()
	for i := 0; i < FIFODepth; i++ {
		if !sim.Inject(byte(i), RxErrors{}) {
			t.Fatalf("inject %d failed", i)
		}
	}
	if sim.Inject(0xEE, RxErrors{}) {
		t.Fatal("inject into full RX FIFO succeeded")
	}
	st := sim.Status()
	if !st.OverrunError() || !st.RxFifoFull() {
		t.Fatalf("status=%#x; want overrun and rx full", uint32(st))
	}
	if sim.Status().OverrunError() {
		t.Fatal("error flags not cleared by status read")
	}
}
