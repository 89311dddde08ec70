package mcp

import (
	"context"
	"sort"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/taskdeck/adapter/cli"
)

type metricEntry struct {
	Name  string  `json:"name"`
	Kind  string  `json:"kind"`
	Value float64 `json:"value"`
	Count int     `json:"count,omitempty"`
	Max   float64 `json:"max,omitempty"`
}

func registerCoreTools(srv *mcp.Server, s *session) error {
	srv.Tool("cli.health").
		Description("Check server wiring health").
		Handler(func(ctx context.Context, input struct{}) (map[string]string, error) {
			return s.health(), nil
		})

	srv.Tool("cli.version").
		Description("Get version information").
		Handler(func(ctx context.Context, input struct{}) (map[string]string, error) {
			return map[string]string{
				"version":   cli.Version,
				"commit":    cli.Commit,
				"buildDate": cli.BuildDate,
			}, nil
		})

	srv.Tool("cli.metrics").
		Description("Counters, gauges and histograms recorded since the server started").
		Handler(func(ctx context.Context, input struct{}) ([]metricEntry, error) {
			return s.metrics(), nil
		})

	return nil
}

func (s *session) health() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.app.ListTasksHandler == nil {
		return map[string]string{"status": "degraded"}
	}
	return map[string]string{"status": "ok"}
}

func (s *session) metrics() []metricEntry {
	if s.app.Metrics == nil {
		return []metricEntry{}
	}

	var entries []metricEntry
	for name, value := range s.app.Metrics.Counters() {
		entries = append(entries, metricEntry{Name: name, Kind: "counter", Value: float64(value)})
	}
	for name, value := range s.app.Metrics.Gauges() {
		entries = append(entries, metricEntry{Name: name, Kind: "gauge", Value: value})
	}
	for name, h := range s.app.Metrics.Histograms() {
		entries = append(entries, metricEntry{Name: name, Kind: "histogram", Value: h.Last, Count: h.Count, Max: h.Max})
	}
	if entries == nil {
		return []metricEntry{}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}
