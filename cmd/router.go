package main

import (
	"github.com/angeloszaimis/go-dispatch/internal/httpmsg"
	"github.com/angeloszaimis/go-dispatch/internal/metrics"
	"github.com/angeloszaimis/go-dispatch/internal/route"
)

func setupRoutes(metricsCollector *metrics.Collector) (*route.Table, error) {
	table := route.NewTable()

	if err := table.Register("GET", "/health", route.HandlerFunc(healthHandler)); err != nil {
		return nil, err
	}

	if metricsCollector != nil {
		if err := table.Register("GET", "/metrics", metricsCollector.Handler()); err != nil {
			return nil, err
		}
	}

	return table, nil
}

func healthHandler(_ *httpmsg.Request, _ route.Params) (any, error) {
	return map[string]string{"status": "ok"}, nil
}
