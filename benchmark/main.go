// Package main measures wall-clock performance of the recordlens CLI.
// It times single-record evaluation and batch ranking over a directory of
// record files, with history tracking disabled and with the sqlite backend,
// running each case several times and averaging the runs after the first.
//
// Prerequisites:
// - recordlens binary installed and available in PATH
// - A directory of student record JSON files
//
// Usage: go run benchmark/main.go [record-dir]
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the timings of one command under both history backends.
type BenchmarkResult struct {
	Command     string
	Workers     int
	Records     int
	NoTrackTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RecordDir    string
	Records      []string
	Timeout      time.Duration
	WorkerCounts []int
	Runs         int
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [record-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		RecordDir:    os.Args[1],
		Timeout:      2 * time.Minute,
		WorkerCounts: []int{1, 4, 14},
		Runs:         4,
	}

	records, err := checkPrerequisites(config)
	if err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}
	config.Records = records

	fmt.Printf("Clearing history...\n")
	clearCmd := exec.Command("recordlens", "history", "clear", "--history-backend", "sqlite")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear history: %v\nOutput: %s\n", err, string(output))
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the binary exists and returns the record files to use.
func checkPrerequisites(config BenchmarkConfig) ([]string, error) {
	if _, err := exec.LookPath("recordlens"); err != nil {
		return nil, fmt.Errorf("recordlens binary not found in PATH")
	}
	records, err := filepath.Glob(filepath.Join(config.RecordDir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no record files found in %s", config.RecordDir)
	}
	sort.Strings(records)
	return records, nil
}

// runBenchmarks executes the evaluate case once and the batch case per worker count.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	fmt.Printf("Starting benchmark: %d records, %v timeout, workers %v, %d runs per phase\n",
		len(config.Records), config.Timeout, config.WorkerCounts, config.Runs)

	results := []BenchmarkResult{
		runBenchmarkSuite(config, "evaluate", 1, config.Records[:1]),
	}
	for _, workers := range config.WorkerCounts {
		results = append(results, runBenchmarkSuite(config, "batch", workers, config.Records))
	}
	return results
}

// runBenchmarkSuite runs a command without tracking and then with sqlite tracking.
func runBenchmarkSuite(config BenchmarkConfig, command string, workers int, records []string) BenchmarkResult {
	fmt.Printf("Running %s on %d records with %d workers\n", command, len(records), workers)

	args := append([]string{command, "--workers", strconv.Itoa(workers)}, records...)

	_, noTrack := runBenchmark(config, command, append(args, "--history-backend", "none"))
	cold, warm := runBenchmark(config, command, append(args, "--history-backend", "sqlite"))

	result := BenchmarkResult{
		Command:     command,
		Workers:     workers,
		Records:     len(records),
		NoTrackTime: formatAverage(noTrack),
		ColdTime:    "TIMEOUT",
		WarmTime:    formatAverage(warm),
	}
	if cold > 0 {
		result.ColdTime = fmt.Sprintf("%.3fs", cold)
	}
	fmt.Printf("  No-tracking average: %s, Cold time: %s, Warm average: %s\n", result.NoTrackTime, result.ColdTime, result.WarmTime)
	return result
}

// runBenchmark executes recordlens config.Runs times and returns the first and the remaining timings.
func runBenchmark(config BenchmarkConfig, command string, args []string) (coldTime float64, warmTimes []float64) {
	var times []float64
	for range config.Runs {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		output, err := exec.CommandContext(ctx, "recordlens", args...).CombinedOutput()
		elapsed := time.Since(start).Seconds()
		cancel()
		if err == nil && isSuccess(output, command) {
			times = append(times, elapsed)
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func formatAverage(times []float64) string {
	if len(times) == 0 {
		return "TIMEOUT"
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return fmt.Sprintf("%.3fs", sum/float64(len(times)))
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	completionPhrase := "Evaluation completed in"
	if command == "batch" {
		completionPhrase = "Batch completed in"
	}
	return strings.Contains(string(output), completionPhrase)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/recordlens_benchmark_%s.csv", timestamp)

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

	if err := writer.Write([]string{"cmd", "workers", "records", "no_tracking_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		row := []string{r.Command, strconv.Itoa(r.Workers), strconv.Itoa(r.Records), r.NoTrackTime, r.ColdTime, r.WarmTime}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, r := range results {
		fmt.Printf("  %-8s workers=%-3d records=%-4d No-tracking: %s, Cold: %s, Warm: %s\n",
			r.Command, r.Workers, r.Records, r.NoTrackTime, r.ColdTime, r.WarmTime)
	}
}
