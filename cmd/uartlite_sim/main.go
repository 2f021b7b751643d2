// cmd/uartlite_sim/main.go
// Host-side exercise of the async TX path against the simulated UART Lite.
// A goroutine stands in for the interrupt: each tick it shifts bytes out of
// the TX FIFO and calls OnInterruptTx; the main goroutine polls the futures.

//go:build !tinygo

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/jangala-dev/tinygo-uartlite/uartlite"
)

var (
	cfg = simConfig{}

	rootCmd = &cobra.Command{
		Use:   "uartlite_sim",
		Short: "Drive async UART Lite transfers against a simulated peripheral",
		Long: "Runs a series of interrupt-driven transfers on the host, checks that every\n" +
			"completed transfer reached the wire intact and reports interrupt statistics.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.verbose {
				uartlite.SetLogLevel(slog.LevelDebug)
			}
			if err := cfg.validate(); err != nil {
				return err
			}
			rep, err := run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if cfg.json {
				return writeJSON(cmd.OutOrStdout(), rep)
			}
			writeText(cmd.OutOrStdout(), rep)
			if rep.Mismatches > 0 {
				return fmt.Errorf("%d transfers arrived corrupted", rep.Mismatches)
			}
			return nil
		},
	}
)

func init() {
	f := rootCmd.Flags()
	f.IntVarP(&cfg.length, "len", "l", 100, "bytes per transfer")
	f.IntVarP(&cfg.count, "count", "n", 50, "number of transfers")
	f.IntVar(&cfg.slot, "slot", 0, fmt.Sprintf("waker slot (0..%d)", uartlite.NumWakers-1))
	f.IntVar(&cfg.shift, "shift", 4, "bytes the shifter moves out per interrupt")
	f.IntVar(&cfg.cancelEvery, "cancel-every", 0, "cancel every Nth transfer (0 = never)")
	f.DurationVar(&cfg.tick, "tick", 100*time.Microsecond, "interrupt period")
	f.DurationVar(&cfg.timeout, "timeout", 5*time.Second, "per-transfer timeout")
	f.BoolVar(&cfg.json, "json", false, "emit the report as JSON")
	f.BoolVarP(&cfg.verbose, "verbose", "v", false, "debug logging")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
