// Loadtest is a concurrent HTTP load testing tool that measures throughput,
// latency percentiles, and status code distribution for dispatch server testing.
//
// Usage:
//
//	go run loadtest.go -url http://localhost:8080/health -concurrency 10 -requests 1000
//	go run loadtest.go -url http://localhost:8080/items/42 -concurrency 50 -requests 5000 -out summary.json
//
// Features:
//   - Concurrent workers for high throughput testing
//   - Latency percentiles (p50, p90, p95, p99)
//   - Status code distribution across success and fault-boundary responses
//   - JSON summary output
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

func main() {
	var (
		url         = flag.String("url", "http://localhost:8080/health", "Target URL")
		concurrency = flag.Int("concurrency", 10, "Number of concurrent workers")
		requests    = flag.Int("requests", 100, "Total number of requests to send")
		method      = flag.String("method", "GET", "HTTP method")
		body        = flag.String("body", "", "Request body")
		contentType = flag.String("content-type", "application/json", "Content-Type header")
		timeoutSec  = flag.Int("timeout", 10, "Per-request timeout in seconds")
	)

	outJSON := flag.String("out", "", "Write JSON summary to this file (optional)")
	verbose := flag.Bool("v", false, "Verbose per-request logging to stdout")
	flag.Parse()

	client := &http.Client{Timeout: time.Duration(*timeoutSec) * time.Second}

	jobs := make(chan int)
	var wg sync.WaitGroup

	var total int32
	var success int32
	var failure int32

	var allLatencies []time.Duration
	var latMu sync.Mutex

	statusCodes := make(map[int]int32)
	var statusMu sync.Mutex

	testStart := time.Now()

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range jobs {
				atomic.AddInt32(&total, 1)
				start := time.Now()

				req, err := http.NewRequest(*method, *url, bytes.NewBufferString(*body))
				if err != nil {
					atomic.AddInt32(&failure, 1)
					continue
				}
				if *body != "" {
					req.Header.Set("Content-Type", *contentType)
				}

				resp, err := client.Do(req)
				dur := time.Since(start)

				latMu.Lock()
				allLatencies = append(allLatencies, dur)
				latMu.Unlock()

				if err != nil {
					atomic.AddInt32(&failure, 1)
					if *verbose {
						fmt.Printf("[%d] idx=%d error=%v\n", workerID, idx, err)
					}
					continue
				}

				statusMu.Lock()
				statusCodes[resp.StatusCode]++
				statusMu.Unlock()

				if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
					atomic.AddInt32(&success, 1)
				} else {
					atomic.AddInt32(&failure, 1)
				}

				if *verbose {
					fmt.Printf("[%d] idx=%d status=%d dur=%v\n", workerID, idx, resp.StatusCode, dur)
				}

				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
			}
		}(i)
	}

	go func() {
		for i := 0; i < *requests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	wg.Wait()
	totalDuration := time.Since(testStart)
	throughput := float64(total) / totalDuration.Seconds()

	fmt.Println("--- Load Test Summary ---")
	fmt.Printf("Target: %s\n", *url)
	fmt.Printf("Requests: %d  Concurrency: %d\n", *requests, *concurrency)
	fmt.Printf("Total sent: %d  Success: %d  Failure: %d\n", total, success, failure)
	fmt.Printf("Duration: %v  Throughput: %.2f req/s\n", totalDuration, throughput)

	fmt.Println("\nStatus codes:")
	var scKeys []int
	for k := range statusCodes {
		scKeys = append(scKeys, k)
	}
	sort.Ints(scKeys)
	for _, k := range scKeys {
		fmt.Printf("  %d -> %d\n", k, statusCodes[k])
	}

	sort.Slice(allLatencies, func(i, j int) bool { return allLatencies[i] < allLatencies[j] })

	fmt.Println("\nLatency:")
	fmt.Printf("  p50: %v\n", pct(allLatencies, 0.50))
	fmt.Printf("  p90: %v\n", pct(allLatencies, 0.90))
	fmt.Printf("  p95: %v\n", pct(allLatencies, 0.95))
	fmt.Printf("  p99: %v\n", pct(allLatencies, 0.99))

	if *outJSON != "" {
		summary := map[string]any{
			"target":       *url,
			"requests":     *requests,
			"concurrency":  *concurrency,
			"success":      success,
			"failure":      failure,
			"duration_ms":  totalDuration.Milliseconds(),
			"throughput":   throughput,
			"status_codes": statusCodes,
			"p50_ms":       float64(pct(allLatencies, 0.50).Microseconds()) / 1000.0,
			"p90_ms":       float64(pct(allLatencies, 0.90).Microseconds()) / 1000.0,
			"p95_ms":       float64(pct(allLatencies, 0.95).Microseconds()) / 1000.0,
			"p99_ms":       float64(pct(allLatencies, 0.99).Microseconds()) / 1000.0,
		}

		data, err := json.MarshalIndent(summary, "", "  ")
		if err == nil {
			err = os.WriteFile(*outJSON, data, 0644)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to write summary: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nWrote summary to %s\n", *outJSON)
	}
}

func pct(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)) * p)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
