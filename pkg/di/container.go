// Package di provides dependency injection container
package di

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ssargent/deckcode/pkg/codec"
	"github.com/ssargent/deckcode/pkg/metrics"
	"github.com/ssargent/deckcode/pkg/service"
)

// Container holds all the dependencies for the application
type Container struct {
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	codec    service.Codec
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	registry := prometheus.NewRegistry()
	return &Container{
		registry: registry,
		metrics:  metrics.NewMetrics(registry),
		codec:    codec.New(),
	}
}

// GetRegistry returns the metrics registry
func (c *Container) GetRegistry() *prometheus.Registry {
	return c.registry
}

// GetMetrics returns the codec metrics
func (c *Container) GetMetrics() *metrics.Metrics {
	return c.metrics
}

// GetCodec returns the deck codec
func (c *Container) GetCodec() service.Codec {
	return c.codec
}

// SetCodec allows overriding the deck codec (for testing)
func (c *Container) SetCodec(codec service.Codec) {
	c.codec = codec
}

// NewService creates a service over the container's codec and metrics
func (c *Container) NewService(logger *slog.Logger) *service.Service {
	return service.New(c.codec, c.metrics, logger)
}
