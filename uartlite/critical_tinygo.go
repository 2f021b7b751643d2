// uartlite/critical_tinygo.go

//go:build tinygo

package uartlite

import "runtime/interrupt"

type irqState = interrupt.State

func disableInterrupts() irqState { return interrupt.Disable() }

func restoreInterrupts(st irqState) { interrupt.Restore(st) }
