package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/soundtracker"
	"github.com/aretw0/soundtracker/pkg/core"
)

func main() {
	count := flag.Int("count", 1000, "Number of rows to add")
	adapter := flag.String("adapter", "fs", "Storage adapter (fs, sqlite, memory)")
	keep := flag.Bool("keep", false, "Keep the benchmark project after running")
	flag.Parse()

	// 1. Setup Namespace
	benchDir, err := os.MkdirTemp("", "soundtracker_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	service, err := soundtracker.New(benchDir,
		soundtracker.WithAdapter(*adapter),
		soundtracker.WithLogger(logger),
	)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	sounds := service.Builtin().All()

	// 2. Mutations: every accepted add rewrites the whole snapshot
	fmt.Printf("Adding %d rows (%s adapter)...\n", *count, *adapter)
	startAdd := time.Now()
	for i := 0; i < *count; i++ {
		row, _ := service.Add(ctx, sounds[i%len(sounds)].ID)
		if i%3 == 0 {
			service.Toggle(ctx, row.RowID, core.AxisDepth, "back")
		}
	}
	addDuration := time.Since(startAdd)

	startTotals := time.Now()
	totals := service.Totals()
	totalsDuration := time.Since(startTotals)
	closeRepo(service)

	// 3. Reload: simulate a new CLI invocation
	startLoad := time.Now()
	service2, err := soundtracker.New(benchDir,
		soundtracker.WithAdapter(*adapter),
		soundtracker.WithLogger(logger),
	)
	if err != nil {
		panic(err)
	}
	loadDuration := time.Since(startLoad)
	rows := len(service2.Rows())
	closeRepo(service2)

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d rows):\n", *count)
	fmt.Printf("  Add+Persist: %v (%v/op)\n", addDuration, addDuration/time.Duration(max(*count, 1)))
	fmt.Printf("  Totals:      %v (back=%d)\n", totalsDuration, totals.Depth["back"])
	fmt.Printf("  Reload:      %v (rows=%d)\n", loadDuration, rows)
	fmt.Printf("--------------------------------------------------\n")
}

func closeRepo(svc *core.Service) {
	if c, ok := svc.Repository().(interface{ Close() error }); ok {
		c.Close()
	}
}
