// Package metrics records Prometheus metrics for deck codec operations.
//
// The CLI is short-lived, so nothing is served over HTTP. Instead the
// registry is written in the text exposition format, suitable for the node
// exporter's textfile collector.
package metrics

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

const (
	namespace = "deckcode"

	statusSuccess = "success"
	statusError   = "error"

	resultPass = "pass"
	resultFail = "fail"
)

// Metrics holds all Prometheus metrics for the codec
type Metrics struct {
	// Operation metrics
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	errorsTotal       *prometheus.CounterVec

	// Deck shape metrics
	deckTokens *prometheus.HistogramVec
	codeLength prometheus.Histogram

	// Fixture check metrics
	casesTotal *prometheus.CounterVec
}

// NewMetrics creates all metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of codec operations",
			},
			[]string{"operation", "status"},
		),

		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Codec operation duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"operation"},
		),

		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total number of failed codec operations by error kind",
			},
			[]string{"operation", "kind"},
		),

		deckTokens: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "deck_tokens",
				Help:      "Number of distinct cards per encoded or decoded deck",
				Buckets:   prometheus.LinearBuckets(0, 10, 6),
			},
			[]string{"operation"},
		),

		codeLength: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "code_length_chars",
				Help:      "Length of deck codes in characters",
				Buckets:   prometheus.LinearBuckets(16, 16, 8),
			},
		),

		casesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "check_cases_total",
				Help:      "Total number of fixture cases checked",
			},
			[]string{"result"},
		),
	}
}

// RecordOperation records a codec operation
func (m *Metrics) RecordOperation(operation string, success bool, duration time.Duration) {
	status := statusSuccess
	if !success {
		status = statusError
	}

	m.operationsTotal.WithLabelValues(operation, status).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordError records a failure of the given kind
func (m *Metrics) RecordError(operation, kind string) {
	m.errorsTotal.WithLabelValues(operation, kind).Inc()
}

// ObserveDeck records the size of a deck handled by operation
func (m *Metrics) ObserveDeck(operation string, tokens int) {
	m.deckTokens.WithLabelValues(operation).Observe(float64(tokens))
}

// ObserveCode records the length of a deck code
func (m *Metrics) ObserveCode(code string) {
	m.codeLength.Observe(float64(len(code)))
}

// RecordCase records the outcome of one fixture case
func (m *Metrics) RecordCase(passed bool) {
	result := resultPass
	if !passed {
		result = resultFail
	}
	m.casesTotal.WithLabelValues(result).Inc()
}

// Write writes every metric family gathered from g in the text exposition
// format.
func Write(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteTextfile writes the metrics to path for the textfile collector. The
// file is written next to its destination and renamed into place so the
// collector never reads a partial file.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	var buf bytes.Buffer
	if err := Write(&buf, g); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close metrics file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set metrics file permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move metrics file into place: %w", err)
	}
	return nil
}
