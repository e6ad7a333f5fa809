package dispatch

import (
	"bufio"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/angeloszaimis/go-dispatch/internal/httpmsg"
	"github.com/angeloszaimis/go-dispatch/internal/metrics"
	"github.com/angeloszaimis/go-dispatch/internal/respond"
	"github.com/angeloszaimis/go-dispatch/internal/route"
)

// Dispatcher routes parsed requests to handlers. The route table is injected
// at construction and never mutated afterwards, so a single dispatcher serves
// concurrent connections without locking.
type Dispatcher struct {
	logger           *slog.Logger
	table            *route.Table
	limits           httpmsg.ParseLimits
	fault            *FaultBoundary
	metricsCollector *metrics.Collector
}

// NewDispatcher creates a dispatcher over the given route table. The metrics
// collector may be nil.
func NewDispatcher(logger *slog.Logger, table *route.Table, limits httpmsg.ParseLimits, collector *metrics.Collector) *Dispatcher {
	return &Dispatcher{
		logger:           logger,
		table:            table,
		limits:           limits,
		fault:            NewFaultBoundary(logger),
		metricsCollector: collector,
	}
}

// Dispatch reads one raw request from the reader and produces exactly one
// response for it. A request the codec rejects yields the fault boundary's
// 400 response with a nil request. A nil response is returned only when the
// connection is unusable (closed before or during the request), in which
// case err says why and nothing should be written back.
func (d *Dispatcher) Dispatch(br *bufio.Reader) (*httpmsg.Response, *httpmsg.Request, error) {
	req, err := httpmsg.ReadRequest(br, d.limits)
	if err != nil {
		var malformedErr *httpmsg.MalformedRequestError
		if errors.As(err, &malformedErr) {
			d.emitCompleted("", metrics.OutcomeMalformed, 0, http.StatusBadRequest)
			return d.fault.Malformed(err), nil, nil
		}
		return nil, nil, err
	}

	return d.DispatchRequest(req), req, nil
}

// DispatchRequest matches a parsed request against the route table, invokes
// the bound handler, and converts the result into a response. Handler errors
// and panics are contained by the fault boundary.
func (d *Dispatcher) DispatchRequest(req *httpmsg.Request) *httpmsg.Response {
	start := time.Now()

	d.logger.Info("Received request",
		slog.String("method", req.Method),
		slog.String("path", req.Path),
		slog.String("proto", req.Proto))

	matched, params, err := d.table.Match(req.Method, req.Path)
	if err != nil {
		resp := d.fault.Unmatched(req.Method, req.Path)
		d.emitCompleted("", metrics.OutcomeUnmatched, time.Since(start), resp.StatusCode)
		return resp
	}

	d.emitEvent(metrics.MetricEvent{
		Type:      metrics.EventRequestReceived,
		Timestamp: time.Now(),
		Route:     matched.Pattern(),
	})

	result, err := invoke(matched.Handler(), req, params)
	if err != nil {
		resp := d.fault.HandlerFailure(req.Method, matched.Pattern(), err)
		d.emitCompleted(matched.Pattern(), metrics.OutcomeHandlerFailure, time.Since(start), resp.StatusCode)
		return resp
	}

	resp, err := respond.Build(result)
	if err != nil {
		resp := d.fault.HandlerFailure(req.Method, matched.Pattern(), err)
		d.emitCompleted(matched.Pattern(), metrics.OutcomeHandlerFailure, time.Since(start), resp.StatusCode)
		return resp
	}

	d.emitCompleted(matched.Pattern(), metrics.OutcomeSuccess, time.Since(start), resp.StatusCode)
	return resp
}

func (d *Dispatcher) emitCompleted(pattern string, outcome metrics.Outcome, duration time.Duration, status int) {
	d.emitEvent(metrics.MetricEvent{
		Type:       metrics.EventDispatchCompleted,
		Timestamp:  time.Now(),
		Route:      pattern,
		Outcome:    outcome,
		Duration:   duration,
		StatusCode: status,
	})
}

func (d *Dispatcher) emitEvent(event metrics.MetricEvent) {
	if d.metricsCollector == nil {
		return
	}

	select {
	case d.metricsCollector.EventChannel() <- event:
	default:
	}
}
