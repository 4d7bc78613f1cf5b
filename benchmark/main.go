// Package main provides a performance benchmarking tool for the jupiter CLI.
// It generates synthetic CRM exports of increasing size, runs the audit and
// health commands on each several times, treats the first successful run as
// cold and averages the rest as warm, and writes the timings to a CSV file.
//
// Prerequisites:
// - jupiter binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where the synthetic exports are written
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark suite (cold run and average of warm runs).
type BenchmarkResult struct {
	Size     string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir string
	Timeout time.Duration
	Runs    int
	Sizes   map[string]int // Contacts per size label; companies and tickets scale from it
	Order   []string
}

// exportSet is the paths of one generated size.
type exportSet struct {
	Contacts  string
	Companies string
	Tickets   string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir: os.Args[1],
		Timeout: 5 * time.Minute,
		Runs:    4,
		Sizes: map[string]int{
			"small":  1_000,
			"medium": 25_000,
			"large":  250_000,
		},
		Order: []string{"small", "medium", "large"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
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

// checkPrerequisites verifies that the jupiter binary exists and the work dir is usable
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("jupiter"); err != nil {
		return fmt.Errorf("jupiter binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}
	return nil
}

// runBenchmarks generates exports for each size and benchmarks every command on them
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sizes, %v timeout, %d runs per command\n",
		len(config.Order), config.Timeout, config.Runs)

	for _, size := range config.Order {
		contacts := config.Sizes[size]
		fmt.Printf("Generating %s exports (%d contacts)\n", size, contacts)
		set, err := generateExports(filepath.Join(config.WorkDir, size), contacts)
		if err != nil {
			return nil, err
		}

		args := []string{"--contacts", set.Contacts, "--companies", set.Companies, "--tickets", set.Tickets, "--color", "no"}
		results = append(results,
			runBenchmarkSuite(config, size, "audit", "full audit", append([]string{"audit"}, args...)),
			runBenchmarkSuite(config, size, "health", "contacts health", []string{"health", set.Contacts, "--color", "no"}),
		)
	}

	return results, nil
}

// runBenchmarkSuite runs a command several times and summarizes the timings
func runBenchmarkSuite(config BenchmarkConfig, size, command, description string, args []string) BenchmarkResult {
	fmt.Printf("Running %s on %s (%d runs)\n", description, size, config.Runs)

	coldTime, warmTimes := runBenchmark(config, command, args)

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}
	warmAvg := "TIMEOUT"
	if len(warmTimes) > 0 {
		var sum float64
		for _, t := range warmTimes {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(warmTimes)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTimeStr, warmAvg)

	return BenchmarkResult{
		Size:     size,
		Command:  command,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes a jupiter command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, command string, args []string) (coldTime float64, warmTimes []float64) {
	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("jupiter", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)
	if command == "health" {
		return strings.Contains(outputStr, "Scored in")
	}
	return strings.Contains(outputStr, "Audit ") && strings.Contains(outputStr, "completed in")
}

// generateExports writes contacts, companies and tickets CSVs sized from contacts
func generateExports(dir string, contacts int) (exportSet, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return exportSet{}, err
	}
	companies := max(contacts/10, 1)
	tickets := contacts / 2
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	statuses := []string{"open", "closed", "pending", "resolved"}
	industries := []string{"Software", "Retail", "Finance", "Healthcare", ""}

	set := exportSet{
		Contacts:  filepath.Join(dir, "contacts.csv"),
		Companies: filepath.Join(dir, "companies.csv"),
		Tickets:   filepath.Join(dir, "tickets.csv"),
	}

	err := writeCSV(set.Contacts, []string{"id", "email", "company_id", "last_activity", "phone", "arr"}, contacts, func(i int) []string {
		company := strconv.Itoa(i % companies)
		if i%11 == 0 {
			company = ""
		}
		email := fmt.Sprintf("contact%d@company%d.com", i, i%companies)
		if i%17 == 0 {
			email = "invalid-email"
		}
		return []string{
			strconv.Itoa(i),
			email,
			company,
			base.AddDate(0, 0, -(i % 365)).Format(time.DateOnly),
			fmt.Sprintf("+1555%07d", i),
			strconv.Itoa(1000 * (i%50 + 1)),
		}
	})
	if err != nil {
		return exportSet{}, err
	}

	err = writeCSV(set.Companies, []string{"id", "name", "industry"}, companies, func(i int) []string {
		return []string{strconv.Itoa(i), fmt.Sprintf("Company %d", i), industries[i%len(industries)]}
	})
	if err != nil {
		return exportSet{}, err
	}

	err = writeCSV(set.Tickets, []string{"id", "contact_id", "status", "created_date", "closed_date", "csat"}, tickets, func(i int) []string {
		status := statuses[i%len(statuses)]
		created := base.Add(-time.Duration(i%720) * time.Hour)
		closed := ""
		if status == "closed" || status == "resolved" {
			closed = created.Add(time.Duration(i%96) * time.Hour).Format(time.RFC3339)
		}
		return []string{strconv.Itoa(i), strconv.Itoa(i % contacts), status, created.Format(time.RFC3339), closed, strconv.Itoa(i%5 + 1)}
	})
	if err != nil {
		return exportSet{}, err
	}
	return set, nil
}

// writeCSV writes a header and n generated rows to path
func writeCSV(path string, header []string, n int, row func(int) []string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range n {
		if err := writer.Write(row(i)); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("jupiter_benchmark_%s.csv", timestamp))

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

	if err := writer.Write([]string{"size", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Size, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "audit", "Audit:")
	printCommandSummary(results, "health", "Health:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-8s: Cold: %s, Warm: %s\n", result.Size, result.ColdTime, result.WarmTime)
		}
	}
}
