// uartlite/critical_host.go

//go:build !tinygo

package uartlite

// Host shim: there are no interrupts to mask; the spinlock alone serialises
// the task goroutines and the goroutine playing the interrupt handler.

type irqState struct{}

func disableInterrupts() irqState { return irqState{} }

func restoreInterrupts(irqState) {}
