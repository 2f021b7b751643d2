// uartlite/debug_stubs.go

//go:build !uartlitedebug

package uartlite

type Stats struct{}

func DebugReset()          {}
func DebugStats(int) Stats { return Stats{} }
func dbgISR(int, int)      {}
func dbgComplete(int)      {}
func dbgCancel(int)        {}
func dbgSpurious(int)      {}
