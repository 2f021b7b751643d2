// uartlite/lock_race.go

//go:build race && !tinygo

package uartlite

import (
	"sync"
	"sync/atomic"
)

// raceEnabled reports whether the race detector is active.
//
// The detector cannot observe ordering established through atomix, so race
// builds back the slot lock and the waker reference with sync primitives it
// does track.
const raceEnabled = true

type slotLock struct {
	m sync.Mutex
}

func (l *slotLock) lock() { l.m.Lock() }

func (l *slotLock) unlock() { l.m.Unlock() }

type wakerRef struct {
	p atomic.Pointer[wakerCell]
}

func (r *wakerRef) swap(c *wakerCell) { r.p.Swap(c) }

func (r *wakerRef) load() *wakerCell { return r.p.Load() }
