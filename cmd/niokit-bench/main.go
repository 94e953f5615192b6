package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/niokit/niokit"
	"github.com/niokit/niokit/internal/logging"
	"github.com/niokit/niokit/pqueue"
)

func main() {
	var (
		sizeStr = flag.String("size", "64K", "Payload size per buffer operation (e.g., 4K, 64K, 1M)")
		iters   = flag.Int("iters", 100000, "Iterations per workload")
		seed    = flag.Int64("seed", 1, "Random seed for the queue workload")
		verbose = flag.Bool("v", false, "Verbose output")
	)
	flag.Parse()

	size, err := parseSize(*sizeStr)
	if err != nil {
		log.Fatalf("Invalid size '%s': %v", *sizeStr, err)
	}

	// Set up logging
	logConfig := logging.DefaultConfig()
	if *verbose {
		logConfig.Level = logging.LevelDebug
	}
	logger := logging.NewLogger(logConfig)
	logging.SetDefault(logger)

	logger.Info("starting benchmark",
		"payload", formatSize(size),
		"payload_bytes", size,
		"iters", *iters)

	payload := make([]byte, size)
	for i := range payload {
		payload[i] = byte(i)
	}

	runWorkload("buffer-write", *iters, func() {
		b := niokit.NewByteBuffer(int(size))
		b.WriteBytes(payload)
	})

	runWorkload("clone-mutate", *iters, func() {
		b := niokit.NewByteBuffer(int(size))
		b.WriteBytes(payload)
		c := b.Clone()
		c.SetUint8(0xff, 0)
	})

	runWorkload("replace-grow", *iters, func() {
		b := niokit.NewByteBuffer(int(size))
		b.WriteBytes(payload)
		v := niokit.ViewOf(b)
		v.ReplaceSubrange(v.Start()+1, v.Start()+2, []byte{1, 2, 3, 4})
	})

	rng := rand.New(rand.NewSource(*seed))
	keys := make([]int, *iters)
	for i := range keys {
		keys[i] = rng.Intn(*iters)
	}
	runWorkload("queue-churn", 1, func() {
		q := pqueue.NewQueue(func(a, b int) bool { return a < b })
		for _, k := range keys {
			q.Push(k)
		}
		for q.Len() > *iters/2 {
			q.Pop()
		}
		for range q.Drain() {
		}
	})

	snap := niokit.BufferMetrics().Snapshot()
	fmt.Printf("\nAllocator:\n")
	fmt.Printf("  heap=%d pool=%d arena=%d (pool share %.1f%%)\n",
		snap.HeapAllocs, snap.PoolAllocs, snap.ArenaAllocs, snap.PoolShare*100)
	fmt.Printf("  allocated=%s freed=%s live=%s\n",
		formatSize(int64(snap.AllocBytes)), formatSize(int64(snap.FreedBytes)), formatSize(int64(snap.LiveBytes)))
	fmt.Printf("Copy-on-write:\n")
	fmt.Printf("  copies=%d bytes=%s\n", snap.CoWCopies, formatSize(int64(snap.CoWBytes)))
	fmt.Printf("Shifts:\n")
	fmt.Printf("  ops=%d bytes=%s\n", snap.ShiftOps, formatSize(int64(snap.ShiftBytes)))
}

func runWorkload(name string, iters int, fn func()) {
	start := time.Now()
	for i := 0; i < iters; i++ {
		fn()
	}
	elapsed := time.Since(start)
	perOp := elapsed
	if iters > 0 {
		perOp = elapsed / time.Duration(iters)
	}
	fmt.Printf("%-14s %8d iters  %10v total  %10v/op\n", name, iters, elapsed.Round(time.Microsecond), perOp)
}

// parseSize parses a size string like "64K", "1M", "512"
func parseSize(s string) (int64, error) {
	s = strings.ToUpper(s)

	var multiplier int64 = 1
	var numStr string

	if strings.HasSuffix(s, "K") {
		multiplier = 1024
		numStr = strings.TrimSuffix(s, "K")
	} else if strings.HasSuffix(s, "M") {
		multiplier = 1024 * 1024
		numStr = strings.TrimSuffix(s, "M")
	} else if strings.HasSuffix(s, "G") {
		multiplier = 1024 * 1024 * 1024
		numStr = strings.TrimSuffix(s, "G")
	} else {
		numStr = s
	}

	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return 0, err
	}

	return num * multiplier, nil
}

// formatSize formats a byte count as a human-readable string
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"K", "M", "G", "T"}
	return fmt.Sprintf("%.1f %sB", float64(bytes)/float64(div), units[exp])
}
