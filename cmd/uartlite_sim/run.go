//go:build !tinygo

package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"golang.org/x/exp/slices"

	"github.com/jangala-dev/tinygo-uartlite/uartlite"
)

type simConfig struct {
	length      int
	count       int
	slot        int
	shift       int
	cancelEvery int
	tick        time.Duration
	timeout     time.Duration
	json        bool
	verbose     bool
}

func (c simConfig) validate() error {
	switch {
	case c.length < 0:
		return errors.New("--len must not be negative")
	case c.count <= 0:
		return errors.New("--count must be positive")
	case c.shift <= 0:
		return errors.New("--shift must be positive")
	case c.tick <= 0:
		return errors.New("--tick must be positive")
	}
	return nil
}

/*** Patterns (deterministic) ***/
func pattern(seq, i int) byte { return byte((i*31 + seq*17 + 0x55) & 0xFF) }

// interruptSource plays the UART Lite interrupt line.
type interruptSource struct {
	sim   *uartlite.Sim
	tx    *uartlite.Tx
	slot  int
	shift int
	tick  time.Duration

	fired atomix.Uint64
	stop  chan struct{}
	wg    sync.WaitGroup
}

func (s *interruptSource) start() {
	s.stop = make(chan struct{})
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		t := time.NewTicker(s.tick)
		defer t.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-t.C:
			}
			s.sim.Shift(s.shift)
			uartlite.OnInterruptTx(s.tx, s.slot)
			s.fired.AddAcqRel(1)
		}
	}()
}

func (s *interruptSource) close() {
	close(s.stop)
	s.wg.Wait()
}

func run(ctx context.Context, cfg simConfig) (*report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	sim := uartlite.NewSim()
	u := uartlite.New(sim)
	u.EnableInterrupt()
	tx, _ := u.Split()

	a, err := uartlite.NewTxAsync(tx, cfg.slot)
	if err != nil {
		return nil, err
	}

	// The handler gets its own handle on the same registers.
	irq := &interruptSource{sim: sim, tx: uartlite.NewTx(sim), slot: cfg.slot, shift: cfg.shift, tick: cfg.tick}
	irq.start()
	defer irq.close()

	rep := &report{Length: cfg.length, Slot: cfg.slot, Slots: uartlite.NumWakers}
	var perTransfer []float64
	began := time.Now()

	for seq := 0; seq < cfg.count; seq++ {
		buf := make([]byte, cfg.length)
		for i := range buf {
			buf[i] = pattern(seq, i)
		}
		cancel := cfg.cancelEvery > 0 && (seq+1)%cfg.cancelEvery == 0

		sim.ClearWire()
		before := irq.fired.LoadAcquire()
		n, done, err := transfer(ctx, a, buf, cancel, cfg.timeout)
		if err != nil {
			return nil, fmt.Errorf("transfer %d: %w", seq, err)
		}
		if !done {
			rep.Cancelled++
			continue
		}
		rep.Completed++
		rep.Bytes += n
		perTransfer = append(perTransfer, float64(irq.fired.LoadAcquire()-before))

		// Bytes of a cancelled predecessor may precede ours on the wire.
		wire := sim.Wire()
		if len(wire) < len(buf) || !slices.Equal(wire[len(wire)-len(buf):], buf) {
			rep.Mismatches++
		}
	}

	rep.Elapsed = time.Since(began)
	rep.summarise(perTransfer)
	return rep, nil
}

// transfer starts buf and polls it to completion, backing off between polls
// the way a cooperative executor would. With cancel set the future is
// abandoned after its first pending poll.
func transfer(ctx context.Context, a *uartlite.TxAsync, buf []byte, cancel bool, timeout time.Duration) (int, bool, error) {
	f := a.Start(buf)
	defer f.Cancel()

	var woken atomix.Bool
	w := uartlite.WakerFunc(func() { woken.StoreRelease(true) })
	deadline := time.Now().Add(timeout)
	backoff := iox.Backoff{}

	for {
		n, err := f.Poll(w)
		if err == nil {
			return n, true, nil
		}
		if !uartlite.IsWouldBlock(err) {
			return 0, false, err
		}
		if cancel {
			f.Cancel()
			return 0, false, nil
		}
		if ctx.Err() != nil {
			return 0, false, ctx.Err()
		}
		if time.Now().After(deadline) {
			return 0, false, context.DeadlineExceeded
		}
		if woken.LoadAcquire() {
			woken.StoreRelease(false)
			backoff.Reset()
			continue
		}
		backoff.Wait()
	}
}
