// Command loadgen drives a synthetic order stream against an in-process
// matching engine and reports throughput and per-command latency, in
// the spirit of a replay benchmark rather than a network client.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"matchbook/internal/clock"
	"matchbook/internal/engine"
	"matchbook/internal/workload"
)

func main() {
	total := flag.Int("ops", 100000, "number of add/cancel operations to submit")
	seed := flag.Uint64("seed", 1, "PCG seed for the synthetic order stream")
	cancelOdds := flag.Float64("cancel-odds", 0.1, "probability that a step cancels instead of adding")
	flag.Parse()

	cfg := workload.DefaultConfig()
	cfg.CancelOdds = *cancelOdds

	gen := workload.New(cfg, rand.NewPCG(*seed, *seed))
	eng := engine.New(clock.System{})

	latencies := make([]time.Duration, *total)
	var trades int

	start := time.Now()
	for i := 0; i < *total; i++ {
		op := gen.Next()
		opStart := time.Now()
		if op.IsCancel {
			_ = eng.CancelOrder(op.CancelTargetID)
		} else {
			fills, err := eng.AddOrder(op.OrderID, op.Price, op.Quantity, op.IsBuy, op.UserID, op.TIF)
			if err == nil {
				trades += len(fills)
			}
		}
		latencies[i] = time.Since(opStart)
	}
	elapsed := time.Since(start)

	mean, stddev := latencyStats(latencies)
	opsPerSec := float64(*total) / elapsed.Seconds()

	fmt.Printf("submitted %d ops in %s (%.0f ops/s)\n", *total, elapsed.Truncate(time.Millisecond), opsPerSec)
	fmt.Printf("produced %d trades\n", trades)
	fmt.Printf("latency: mean=%s stddev=%s\n", mean, stddev)

	snap := eng.Snapshot()
	fmt.Printf("final book: %d bid levels, %d ask levels\n", len(snap.Bids), len(snap.Asks))
}

func latencyStats(samples []time.Duration) (mean, stddev time.Duration) {
	if len(samples) == 0 {
		return 0, 0
	}
	var total int64
	for _, s := range samples {
		total += int64(s)
	}
	meanNanos := float64(total) / float64(len(samples))

	var sqTotal float64
	for _, s := range samples {
		d := float64(s) - meanNanos
		sqTotal += d * d / float64(len(samples))
	}
	return time.Duration(meanNanos), time.Duration(math.Sqrt(sqTotal))
}
