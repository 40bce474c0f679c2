package telemetry

import (
	"context"
	"fmt"
	"io"
	"sort"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Collector keeps planner metrics in memory so a short-lived process can
// report them before exiting.
type Collector struct {
	reader   *sdkmetric.ManualReader
	provider *sdkmetric.MeterProvider
	metrics  *MetricsProvider
}

// NewCollector creates a collector with its own meter provider.
func NewCollector() (*Collector, error) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	mp := NewMetricsProvider(MetricsConfig{MeterProvider: provider})
	if err := mp.Error(); err != nil {
		_ = provider.Shutdown(context.Background())
		return nil, err
	}
	return &Collector{reader: reader, provider: provider, metrics: mp}, nil
}

// Metrics returns the recorder to hand to the planner.
func (c *Collector) Metrics() *MetricsProvider {
	return c.metrics
}

// Totals returns the accumulated value of every counter and the number of
// observations of every histogram, keyed by instrument name.
func (c *Collector) Totals(ctx context.Context) (map[string]float64, error) {
	var rm metricdata.ResourceMetrics
	if err := c.reader.Collect(ctx, &rm); err != nil {
		return nil, err
	}

	totals := make(map[string]float64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					totals[m.Name] += float64(dp.Value)
				}
			case metricdata.Sum[float64]:
				for _, dp := range data.DataPoints {
					totals[m.Name] += dp.Value
				}
			case metricdata.Histogram[int64]:
				for _, dp := range data.DataPoints {
					totals[m.Name] += float64(dp.Count)
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					totals[m.Name] += float64(dp.Count)
				}
			}
		}
	}
	return totals, nil
}

// WriteSummary writes one "name value" line per instrument, sorted by name.
func (c *Collector) WriteSummary(ctx context.Context, w io.Writer) error {
	totals, err := c.Totals(ctx)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%s %g\n", name, totals[name]); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown stops the meter provider.
func (c *Collector) Shutdown(ctx context.Context) error {
	return c.provider.Shutdown(ctx)
}
