// Package main provides a performance benchmarking tool for the Polarize CLI.
// It measures execution times across generated datasets of different sizes and
// metric types, running each test multiple times, treating the first successful
// run as cold and averaging the rest as warm, generating CSV output for
// performance analysis and documentation.
//
// Prerequisites:
// - polarize binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where generated datasets are written
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset     string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	RowCounts   []int
}

// benchmarkCase pairs a metric command with the dataset shape it consumes.
type benchmarkCase struct {
	command   string
	extraArgs string
	generate  func(path string, rows int) error
}

var benchmarkCases = []benchmarkCase{
	{command: "gini", generate: generateShares},
	{command: "enp", generate: generateShares},
	{command: "esteban-ray", extraArgs: "--alpha 1.6", generate: generateGroups},
	{command: "divisiveness", generate: generateDistricts},
	{command: "dhondt", extraArgs: "--seats 25", generate: generateVotes},
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:     workDir,
		Timeout:     2 * time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		RowCounts:   []int{1000, 100000, 1000000},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear the cache using polarize cache clear
	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("polarize", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the polarize binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if polarize is available
	if _, err := exec.LookPath("polarize"); err != nil {
		return fmt.Errorf("polarize binary not found in PATH")
	}

	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work directory %s: %w", config.WorkDir, err)
	}

	return nil
}

// runBenchmarks executes all benchmark tests across configured dataset sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sizes, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.RowCounts), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, rows := range config.RowCounts {
		dataset := fmt.Sprintf("%d-rows", rows)
		fmt.Printf("Benchmarking %s\n", dataset)

		for _, bc := range benchmarkCases {
			path := filepath.Join(config.WorkDir, fmt.Sprintf("%s_%d.csv", bc.command, rows))
			if err := bc.generate(path, rows); err != nil {
				fmt.Printf("  Skipping %s: %v\n", bc.command, err)
				continue
			}

			desc := fmt.Sprintf("%s over %s", bc.command, dataset)
			result := runBenchmarkSuite(config, dataset, path, bc.command, desc, bc.extraArgs)
			results = append(results, result)
		}
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, dataset, inputPath, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s\n", description)

	// Helper to run a benchmark phase
	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, inputPath, command, extraArgs, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:     dataset,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a polarize command multiple times with the specified cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, inputPath, command, extraArgs, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command, inputPath, "--cache-backend", cacheBackend}
	if extraArgs != "" {
		args = append(args, strings.Fields(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("polarize", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Computed over") && strings.Contains(outputStr, "rows")
}

// generateShares writes a single-column share dataset.
func generateShares(path string, rows int) error {
	return writeCSV(path, []string{"share"}, rows, func(r *rand.Rand, _ int) []string {
		return []string{strconv.FormatFloat(r.Float64(), 'f', 6, 64)}
	})
}

// generateGroups writes a proportion/position dataset for esteban-ray.
func generateGroups(path string, rows int) error {
	return writeCSV(path, []string{"pi", "y"}, rows, func(r *rand.Rand, _ int) []string {
		return []string{
			strconv.FormatFloat(r.Float64(), 'f', 6, 64),
			strconv.FormatFloat(r.Float64()*10, 'f', 6, 64),
		}
	})
}

// generateDistricts writes a unit/candidate/votes/score dataset for divisiveness.
func generateDistricts(path string, rows int) error {
	return writeCSV(path, []string{"unit", "candidate", "votes", "score"}, rows, func(r *rand.Rand, i int) []string {
		return []string{
			fmt.Sprintf("district-%d", i/8),
			fmt.Sprintf("candidate-%d", i%8),
			strconv.Itoa(r.Intn(100000) + 1),
			strconv.FormatFloat(r.Float64()*5, 'f', 4, 64),
		}
	})
}

// generateVotes writes a party/votes dataset for seat allocation.
func generateVotes(path string, rows int) error {
	return writeCSV(path, []string{"party", "votes"}, rows, func(r *rand.Rand, i int) []string {
		return []string{
			fmt.Sprintf("party-%d", i),
			strconv.Itoa(r.Intn(1000000) + 1),
		}
	})
}

// writeCSV generates a deterministic dataset with the given header and row factory.
func writeCSV(path string, header []string, rows int, makeRow func(r *rand.Rand, i int) []string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", path, closeErr)
		}
	}()

	// Fixed seed keeps the cold/warm comparison on identical bytes
	r := rand.New(rand.NewSource(42))
	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return err
	}
	for i := 0; i < rows; i++ {
		if err := writer.Write(makeRow(r, i)); err != nil {
			return err
		}
	}
	return nil
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/polarize_benchmark_%s.csv", timestamp)

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
	if err := writer.Write([]string{"dataset", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	for _, bc := range benchmarkCases {
		printCommandSummary(results, bc.command, bc.command+":")
	}

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: No-cache: %s, Cold: %s, Warm: %s\n", result.Dataset, result.NoCacheTime, result.ColdTime, result.WarmTime)
		}
	}
}
