//go:build !tinygo

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/sugawarayuuta/sonnet"
	"gonum.org/v1/gonum/stat"
)

type report struct {
	Slot       int           `json:"slot"`
	Slots      int           `json:"slots"`
	Length     int           `json:"length"`
	Completed  int           `json:"completed"`
	Cancelled  int           `json:"cancelled"`
	Mismatches int           `json:"mismatches"`
	Bytes      int           `json:"bytes"`
	Elapsed    time.Duration `json:"elapsed_ns"`

	// Interrupts taken while each completed transfer was in flight.
	IRQMean   float64 `json:"irq_mean"`
	IRQStdDev float64 `json:"irq_stddev"`
	IRQMin    float64 `json:"irq_min"`
	IRQMax    float64 `json:"irq_max"`
}

func (r *report) summarise(perTransfer []float64) {
	if len(perTransfer) == 0 {
		return
	}
	r.IRQMean, r.IRQStdDev = stat.MeanStdDev(perTransfer, nil)
	if len(perTransfer) == 1 {
		r.IRQStdDev = 0
	}
	r.IRQMin, r.IRQMax = perTransfer[0], perTransfer[0]
	for _, v := range perTransfer[1:] {
		r.IRQMin = min(r.IRQMin, v)
		r.IRQMax = max(r.IRQMax, v)
	}
}

func writeJSON(w io.Writer, r *report) error {
	b, err := sonnet.Marshal(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

func writeText(w io.Writer, r *report) {
	fmt.Fprintf(w, "uartlite async TX simulation (slot %d of %d)\n", r.Slot, r.Slots)
	fmt.Fprintf(w, "  transfers  completed=%d cancelled=%d corrupted=%d\n", r.Completed, r.Cancelled, r.Mismatches)
	fmt.Fprintf(w, "  bytes      %d in %v\n", r.Bytes, r.Elapsed.Round(time.Microsecond))
	fmt.Fprintf(w, "  irq/xfer   mean=%.2f sd=%.2f min=%.0f max=%.0f\n", r.IRQMean, r.IRQStdDev, r.IRQMin, r.IRQMax)
}
