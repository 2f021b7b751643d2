//go:build tinygo && uartlitedebug

// cmd/uartlite_probe/main.go
// Diagnostic for the async TX path on hardware: sends bursts of increasing
// size through one waker slot and prints the slot counters and status bits
// after each phase. Watch the TX line with a logic analyser or a second UART.

package main

import (
	"context"
	"runtime/interrupt"
	"time"

	"github.com/jangala-dev/tinygo-uartlite/uartlite"
)

// Board specific.
const (
	uartBase = 0x4060_0000
	uartIRQ  = 5
	slot     = 0
)

var irqTx = uartlite.NewTx(uartlite.NewMMIO(uartBase))

func printStats(label string) {
	s := uartlite.DebugStats(slot)
	st := irqTx.Registers().Status()
	println("==", label)
	println("ISR:    count=", s.ISRCount, " bytes=", s.ISRBytes, " maxdrain=", s.ISRMaxDrain)
	println("Xfer:   done=", s.Completions, " cancelled=", s.Cancels, " spurious=", s.Spurious)
	println("Status: intr=", st.IntrEnabled(), " txEmpty=", st.TxFifoEmpty(), " txFull=", st.TxFifoFull(),
		" PE=", st.ParityError(), " FE=", st.FrameError(), " OE=", st.OverrunError())
}

func main() {
	time.Sleep(2 * time.Second)
	println("uartlite probe (diagnostic)")

	u := uartlite.New(uartlite.NewMMIO(uartBase))
	u.ResetTxFIFO()
	u.ResetRxFIFO()
	intr := interrupt.New(uartIRQ, func(interrupt.Interrupt) {
		uartlite.OnInterruptTx(irqTx, slot)
	})
	intr.Enable()
	u.EnableInterrupt()

	tx, _ := u.Split()
	async, err := uartlite.NewTxAsync(tx, slot)
	if err != nil {
		println("fatal:", err.Error())
		return
	}
	uartlite.DebugReset()

	buf := make([]byte, 1024)
	var x uint32 = 0x12345678
	for i := range buf {
		x = 1664525*x + 1013904223
		buf[i] = byte(x >> 24)
	}

	for _, n := range []int{1, uartlite.FIFODepth, uartlite.FIFODepth + 1, 256, len(buf)} {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		t0 := time.Now()
		sent, err := async.Write(ctx, buf[:n])
		cancel()
		if err != nil {
			println(" len", n, "FAIL:", err.Error(), "sent", sent)
		} else {
			println(" len", n, "ok in", time.Since(t0).Microseconds(), "us")
		}
		printStats("after write")
	}

	// Cancellation: a deadline far shorter than the transfer.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Microsecond)
	_, err = async.Write(ctx, buf)
	cancel()
	println(" cancel phase:", err != nil)
	printStats("after cancel")

	for {
		time.Sleep(time.Hour)
	}
}
