package dispatch

import (
	"fmt"
	"log/slog"

	"github.com/angeloszaimis/go-dispatch/internal/httpmsg"
	"github.com/angeloszaimis/go-dispatch/internal/respond"
	"github.com/angeloszaimis/go-dispatch/internal/route"
)

// FaultBoundary translates every non-success request outcome into a
// standardized client response. Internal failure detail goes to the logger
// only; the client sees a generic envelope.
type FaultBoundary struct {
	logger *slog.Logger
}

// NewFaultBoundary creates a fault boundary reporting to the given logger.
func NewFaultBoundary(logger *slog.Logger) *FaultBoundary {
	return &FaultBoundary{logger: logger}
}

// Malformed produces the 400 response for a request the codec rejected.
func (f *FaultBoundary) Malformed(err error) *httpmsg.Response {
	f.logger.Warn("Rejected malformed request", slog.Any("err", err))
	return respond.BadRequest("malformed request")
}

// Unmatched produces the 404 response for a request no route covers.
func (f *FaultBoundary) Unmatched(method, path string) *httpmsg.Response {
	f.logger.Debug("No route matched",
		slog.String("method", method),
		slog.String("path", path))
	return respond.NotFound("resource not found")
}

// HandlerFailure produces the generic 500 response for a handler error or
// panic. The error detail is recorded for operators and never leaks into
// the response body.
func (f *FaultBoundary) HandlerFailure(method, pattern string, err error) *httpmsg.Response {
	f.logger.Error("Handler failed",
		slog.String("method", method),
		slog.String("route", pattern),
		slog.Any("err", err))
	return respond.InternalError()
}

// invoke runs a handler, containing panics so one misbehaving handler cannot
// take the process down with it.
func invoke(h route.Handler, req *httpmsg.Request, params route.Params) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()

	return h.Handle(req, params)
}
