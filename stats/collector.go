package stats

import (
	"fmt"
	"strconv"

	"github.com/pb33f/reqgrid/motor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reqgrid"

// latency buckets in milliseconds, sized for edge request timings
var latencyBuckets = []float64{10, 25, 50, 75, 100, 150, 200, 300, 500, 1000}

// Collector turns a dataset into Prometheus metrics on its own registry, so
// repeated exports never collide with the default one.
type Collector struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	phaseDuration   *prometheus.HistogramVec
	phaseShare      *prometheus.GaugeVec
	datasetRecords  prometheus.Gauge
	firstRequestSec prometheus.Gauge
	lastRequestSec  prometheus.Gauge
}

// NewCollector creates a collector with a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Requests in the dataset by region, method and status class",
			},
			[]string{"region", "method", "status_class"},
		),
		requestLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_latency_milliseconds",
				Help:      "Total request latency in milliseconds",
				Buckets:   latencyBuckets,
			},
			[]string{"region", "method"},
		),
		phaseDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_phase_milliseconds",
				Help:      "Time spent in each timing phase in milliseconds",
				Buckets:   latencyBuckets,
			},
			[]string{"phase"},
		),
		phaseShare: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "phase_share_percent",
				Help:      "Share of total dataset time spent in each phase",
			},
			[]string{"phase"},
		),
		datasetRecords: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "dataset_records",
				Help:      "Number of records in the dataset",
			},
		),
		firstRequestSec: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "dataset_first_request_timestamp_seconds",
				Help:      "Unix time of the earliest request",
			},
		),
		lastRequestSec: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "dataset_last_request_timestamp_seconds",
				Help:      "Unix time of the latest request",
			},
		),
	}
}

// Registry exposes the collector's registry for gathering.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Observe records every request of the dataset.
func (c *Collector) Observe(ds *motor.Dataset) {
	if c == nil || ds == nil {
		return
	}

	var totals [motor.PhaseCount]float64
	for _, row := range ds.Rows() {
		rec := row.Data
		c.requestsTotal.WithLabelValues(rec.Region.Short, rec.Method, StatusClass(rec.Status)).Inc()
		c.requestLatency.WithLabelValues(rec.Region.Short, rec.Method).Observe(rec.Latency)

		for i, phase := range motor.PhaseOrder {
			v := motor.PhaseValue(rec.Timing, phase)
			c.phaseDuration.WithLabelValues(phase.Token()).Observe(v)
			totals[i] += v
		}
	}

	// dataset-wide shares use the same clamping as a single request
	var sum float64
	for _, v := range totals {
		sum += v
	}
	for i, phase := range motor.PhaseOrder {
		share := 0.0
		if sum > 0 {
			share = totals[i] / sum * 100
		}
		c.phaseShare.WithLabelValues(phase.Token()).Set(share)
	}

	summary := ds.Summary()
	c.datasetRecords.Set(float64(summary.TotalRecords))
	if !summary.TimeRange.Start.IsZero() {
		c.firstRequestSec.Set(float64(summary.TimeRange.Start.Unix()))
		c.lastRequestSec.Set(float64(summary.TimeRange.End.Unix()))
	}
}

// WriteTextfile writes the gathered metrics in the text exposition format,
// ready for a node_exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// StatusClass buckets a status code as "2xx", "4xx" and so on.
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "unknown"
	}
	return strconv.Itoa(status/100) + "xx"
}
