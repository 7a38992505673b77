// Package main provides a performance benchmarking tool for the uli CLI.
// It seeds SQLite stores with synthetic reflection histories of increasing size,
// runs each read command multiple times, treating the first successful run as cold
// and averaging the rest as warm, and writes CSV output for performance analysis.
//
// Prerequisites:
// - uli binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where the seeded databases are created
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/huangsam/uli/schema"
)

// BenchmarkResult holds the cold run and the average of warm runs for one command.
type BenchmarkResult struct {
	Size     int
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir  string
	Timeout  time.Duration
	Runs     int
	Sizes    []int
	Commands map[string][]string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir: os.Args[1],
		Timeout: 2 * time.Minute,
		Runs:    5,
		Sizes:   []int{100, 1000, 10000},
		Commands: map[string][]string{
			"dashboard": {"dashboard", "--output", "json"},
			"trend":     {"trend", "--window", "all", "--output", "csv"},
			"history":   {"history", "--search", "pattern", "--limit", "50", "--output", "json"},
			"tags":      {"tags", "--output", "json"},
			"export":    {"data", "export"},
		},
	}

	if _, err := exec.LookPath("uli"); err != nil {
		fmt.Printf("Prerequisites check failed: uli binary not found in PATH\n")
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// runBenchmarks seeds one store per size and times every command against it.
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: sizes %v, %v timeout, %d runs per command\n",
		config.Sizes, config.Timeout, config.Runs)

	for _, size := range config.Sizes {
		dir := filepath.Join(config.WorkDir, fmt.Sprintf("size_%d", size))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		env := []string{
			"ULI_STORE_BACKEND=sqlite",
			"ULI_STORE_DB_CONNECT=" + filepath.Join(dir, "uli.db"),
			"ULI_IDENTITY=bench_user",
			"ULI_COLOR=no",
		}

		fmt.Printf("Seeding %d reflections\n", size)
		if err := seed(config, dir, env, size); err != nil {
			return nil, fmt.Errorf("failed to seed %d reflections: %w", size, err)
		}

		for _, name := range []string{"dashboard", "trend", "history", "tags", "export"} {
			cold, warm := runBenchmark(config, dir, env, config.Commands[name])
			fmt.Printf("  %-10s cold: %s, warm average: %s\n", name, cold, warm)
			results = append(results, BenchmarkResult{Size: size, Command: name, ColdTime: cold, WarmTime: warm})
		}
	}
	return results, nil
}

// seed writes a synthetic bundle and imports it.
func seed(config BenchmarkConfig, dir string, env []string, size int) error {
	data, err := schema.EncodeBundle(syntheticBundle("bench_user", size))
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "seed.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	_, err = runOnce(config, dir, env, []string{"data", "import", path})
	return err
}

// syntheticBundle builds size daily reflections ending today.
func syntheticBundle(identity string, size int) schema.Bundle {
	rng := rand.New(rand.NewPCG(1, uint64(size)))
	words := []string{"breath", "pattern", "boundary", "insight", "speed", "loop"}
	tags := []string{"morning", "evening", "focus", "walk", "work"}

	start := time.Now().UTC().Add(-time.Duration(size) * 24 * time.Hour)
	b := schema.Bundle{Identity: identity}
	var scores schema.ScoreSet
	for i := range size {
		scores = schema.ScoreSet{
			R3:   1 + rng.IntN(10),
			PHCB: 1 + rng.IntN(10),
			APD:  1 + rng.IntN(10),
			LPS:  1 + rng.IntN(10),
			CDR:  1 + rng.IntN(10),
			EIA:  1 + rng.IntN(10),
		}
		entry := schema.ReflectionEntry{
			Reflection: fmt.Sprintf("Day %d: noticed a %s", i, words[rng.IntN(len(words))]),
			Tags:       []string{tags[rng.IntN(len(tags))]},
			Scores:     scores,
			Timestamp:  schema.NewTimestamp(start.Add(time.Duration(i) * 24 * time.Hour)),
		}
		b.Reflections = append(b.Reflections, entry)
		b.History = append(b.History, entry.Point())
	}
	if size > 0 {
		b.Scores = &scores
	}
	return b
}

// runBenchmark executes a command several times and returns the cold time and warm average.
func runBenchmark(config BenchmarkConfig, dir string, env, args []string) (coldTime, warmAvg string) {
	var times []float64
	for range config.Runs {
		elapsed, err := runOnce(config, dir, env, args)
		if err == nil {
			times = append(times, elapsed.Seconds())
		}
	}

	if len(times) == 0 {
		return "TIMEOUT", "TIMEOUT"
	}
	coldTime = fmt.Sprintf("%.3fs", times[0])
	if len(times) == 1 {
		return coldTime, "N/A"
	}
	var sum float64
	for _, t := range times[1:] {
		sum += t
	}
	return coldTime, fmt.Sprintf("%.3fs", sum/float64(len(times)-1))
}

// runOnce runs uli with a timeout and returns how long it took.
func runOnce(config BenchmarkConfig, dir string, env, args []string) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "uli", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)

	start := time.Now()
	if output, err := cmd.CombinedOutput(); err != nil {
		return 0, fmt.Errorf("uli %v failed: %w\nOutput: %s", args, err, string(output))
	}
	return time.Since(start), nil
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/uli_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"size", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{fmt.Sprint(result.Size), result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %6d %-10s: Cold: %s, Warm: %s\n", result.Size, result.Command, result.ColdTime, result.WarmTime)
	}
}
