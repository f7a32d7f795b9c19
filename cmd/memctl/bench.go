package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/mem/alloc"
)

var (
	benchOps       int
	benchSize      int
	benchAlign     int
	benchAllocator string
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVar(&benchOps, "ops", 1_000_000, "Acquire/release pairs to run")
	cmd.Flags().IntVar(&benchSize, "size", 64, "Block size in bytes")
	cmd.Flags().IntVar(&benchAlign, "align", 8, "Block alignment (power of two)")
	cmd.Flags().StringVar(&benchAllocator, "allocator", "all",
		"Allocator to exercise: heap, arena, pool, stack, or all")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Run allocator microbenchmarks",
		Long: `The bench command runs acquire/release loops against the chosen
allocators and reports wall time and throughput.

Example:
  memctl bench
  memctl bench --allocator arena --ops 5000000 --size 128
  memctl bench --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
}

// BenchResult is one allocator's measurement.
type BenchResult struct {
	Allocator string  `json:"allocator"`
	Ops       int     `json:"ops"`
	SizeBytes int     `json:"size_bytes"`
	Elapsed   string  `json:"elapsed"`
	NsPerOp   float64 `json:"ns_per_op"`
}

func runBench() error {
	names := []string{"heap", "arena", "pool", "stack"}
	if benchAllocator != "all" {
		names = []string{benchAllocator}
	}

	// Pool chunks are fixed at 8-byte alignment.
	if benchAlign > 8 {
		if benchAllocator == "pool" {
			return fmt.Errorf("pool allocator supports --align up to 8, got %d", benchAlign)
		}
		if benchAllocator == "all" {
			printInfo("skipping pool: supports alignment up to 8, --align is %d\n", benchAlign)
			names = []string{"heap", "arena", "stack"}
		}
	}

	var results []BenchResult
	for _, name := range names {
		res, err := benchOne(name)
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	if jsonOut {
		return printJSON(results)
	}
	printInfo("%-8s %12s %10s %12s\n", "ALLOC", "OPS", "ELAPSED", "NS/OP")
	for _, r := range results {
		printInfo("%-8s %12d %10s %12.1f\n", r.Allocator, r.Ops, r.Elapsed, r.NsPerOp)
	}
	return nil
}

func benchOne(name string) (BenchResult, error) {
	var (
		a       alloc.Allocator
		cleanup func() error
	)
	switch name {
	case "heap":
		a = alloc.NewHeap()
	case "arena":
		ar, err := alloc.NewArena(64 << 20)
		if err != nil {
			return BenchResult{}, err
		}
		a, cleanup = ar, ar.Close
	case "pool":
		p, err := alloc.NewPool(benchSize, 1024)
		if err != nil {
			return BenchResult{}, err
		}
		a = p
	case "stack":
		st, err := alloc.NewStack(64 << 20)
		if err != nil {
			return BenchResult{}, err
		}
		a, cleanup = st, st.Close
	default:
		return BenchResult{}, fmt.Errorf("unknown allocator %q", name)
	}
	if cleanup != nil {
		defer func() { _ = cleanup() }()
	}

	arena, _ := a.(*alloc.Arena)

	start := time.Now()
	for i := 0; i < benchOps; i++ {
		blk, err := a.Acquire(benchSize, benchAlign)
		if err != nil {
			// The arena cannot release individual blocks; rewind and
			// keep going.
			if arena != nil {
				arena.Reset()
				continue
			}
			return BenchResult{}, err
		}
		if arena == nil {
			if err := a.Release(blk); err != nil {
				return BenchResult{}, err
			}
		}
	}
	elapsed := time.Since(start)

	return BenchResult{
		Allocator: name,
		Ops:       benchOps,
		SizeBytes: benchSize,
		Elapsed:   elapsed.Round(time.Microsecond).String(),
		NsPerOp:   float64(elapsed.Nanoseconds()) / float64(benchOps),
	}, nil
}
