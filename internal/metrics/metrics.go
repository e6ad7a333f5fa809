package metrics

import (
	"sort"
	"sync"
	"time"
)

// Outcome classifies how a dispatched request ended.
type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomeHandlerFailure Outcome = "handler_failure"
	OutcomeUnmatched      Outcome = "unmatched"
	OutcomeMalformed      Outcome = "malformed"
)

type Metrics struct {
	mutex         sync.RWMutex
	requests      map[string]int64
	outcomes      map[Outcome]int64
	responseTimes map[string][]time.Duration
	statusCodes   map[string]map[int]int64
	startTime     time.Time
}

type Snapshot struct {
	TotalRequests int64                   `json:"total_requests"`
	Uptime        time.Duration           `json:"uptime"`
	Outcomes      map[Outcome]int64       `json:"outcomes"`
	Routes        map[string]RouteMetrics `json:"routes"`
}

type RouteMetrics struct {
	Requests    int64         `json:"requests"`
	AvgResponse time.Duration `json:"avg_response"`
	P50Response time.Duration `json:"p50_response"`
	P95Response time.Duration `json:"p95_response"`
	P99Response time.Duration `json:"p99_response"`
	StatusCodes map[int]int64 `json:"status_codes"`
}

func NewMetrics() *Metrics {
	return &Metrics{
		requests:      make(map[string]int64),
		outcomes:      make(map[Outcome]int64),
		responseTimes: make(map[string][]time.Duration),
		statusCodes:   make(map[string]map[int]int64),
		startTime:     time.Now(),
	}
}

func (m *Metrics) IncrementRequests(routePattern string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.requests[routePattern]++
}

func (m *Metrics) RecordOutcome(outcome Outcome) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.outcomes[outcome]++
}

func (m *Metrics) RecordResponse(routePattern string, duration time.Duration, statusCode int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.responseTimes[routePattern] = append(m.responseTimes[routePattern], duration)

	if len(m.responseTimes[routePattern]) > 1000 {
		m.responseTimes[routePattern] = m.responseTimes[routePattern][1:]
	}

	if m.statusCodes[routePattern] == nil {
		m.statusCodes[routePattern] = make(map[int]int64)
	}
	m.statusCodes[routePattern][statusCode]++
}

func (m *Metrics) Snapshot() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		Uptime:   time.Since(m.startTime),
		Outcomes: make(map[Outcome]int64, len(m.outcomes)),
		Routes:   make(map[string]RouteMetrics),
	}

	for outcome, count := range m.outcomes {
		snap.Outcomes[outcome] = count
	}

	// Collect all route patterns seen on any metric
	allRoutes := make(map[string]bool)
	for pattern := range m.requests {
		allRoutes[pattern] = true
	}
	for pattern := range m.responseTimes {
		allRoutes[pattern] = true
	}
	for pattern := range m.statusCodes {
		allRoutes[pattern] = true
	}

	for pattern := range allRoutes {
		snap.TotalRequests += m.requests[pattern]

		rm := RouteMetrics{
			Requests: m.requests[pattern],
		}

		// Copy the status-code counts so the snapshot stays safe to read
		// after the lock is released.
		if codes := m.statusCodes[pattern]; codes != nil {
			rm.StatusCodes = make(map[int]int64, len(codes))
			for code, count := range codes {
				rm.StatusCodes[code] = count
			}
		}

		durations := m.responseTimes[pattern]
		if len(durations) > 0 {
			sorted := make([]time.Duration, len(durations))
			copy(sorted, durations)
			sort.Slice(sorted, func(i, j int) bool {
				return sorted[i] < sorted[j]
			})

			rm.AvgResponse = average(sorted)
			rm.P50Response = percentile(sorted, 0.50)
			rm.P95Response = percentile(sorted, 0.95)
			rm.P99Response = percentile(sorted, 0.99)
		}

		snap.Routes[pattern] = rm
	}

	return snap
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	return sum / time.Duration(len(durations))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
