//go:build !tinygo

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"
)

func testConfig() simConfig {
	return simConfig{
		length:  40,
		count:   6,
		shift:   8,
		tick:    50 * time.Microsecond,
		timeout: 2 * time.Second,
	}
}

func TestRun_AllTransfersIntact(t *testing.T) {
	rep, err := run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rep.Completed != 6 || rep.Cancelled != 0 || rep.Mismatches != 0 {
		t.Fatalf("report=%+v", rep)
	}
	if rep.Bytes != 6*40 {
		t.Fatalf("bytes=%d; want %d", rep.Bytes, 6*40)
	}
	if rep.IRQMean < 1 {
		t.Fatalf("irq mean=%v; each transfer needs at least one interrupt", rep.IRQMean)
	}
}

func TestRun_WithCancellations(t *testing.T) {
	cfg := testConfig()
	cfg.count = 9
	cfg.cancelEvery = 3

	rep, err := run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rep.Completed != 6 || rep.Cancelled != 3 || rep.Mismatches != 0 {
		t.Fatalf("report=%+v", rep)
	}
}

func TestRun_InvalidSlot(t *testing.T) {
	cfg := testConfig()
	cfg.slot = 99
	if _, err := run(context.Background(), cfg); err == nil {
		t.Fatal("expected an invalid slot error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*simConfig)
		ok   bool
	}{
		{"default", func(*simConfig) {}, true},
		{"zero length", func(c *simConfig) { c.length = 0 }, true},
		{"negative length", func(c *simConfig) { c.length = -1 }, false},
		{"no transfers", func(c *simConfig) { c.count = 0 }, false},
		{"no shift", func(c *simConfig) { c.shift = 0 }, false},
		{"no tick", func(c *simConfig) { c.tick = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig()
			tt.mut(&c)
			if err := c.validate(); (err == nil) != tt.ok {
				t.Fatalf("validate()=%v; want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	r := &report{Slots: 1, Length: 3, Completed: 2, Bytes: 6}
	r.summarise([]float64{2, 4})

	var buf bytes.Buffer
	if err := writeJSON(&buf, r); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if got["completed"] != float64(2) || got["irq_mean"] != float64(3) || got["irq_max"] != float64(4) {
		t.Fatalf("unexpected report: %s", buf.String())
	}
}
