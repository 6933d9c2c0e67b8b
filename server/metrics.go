package main

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/meikuraledutech/pipeline"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	validations     *prometheus.CounterVec
	nodes           prometheus.Histogram
	edges           prometheus.Histogram
	requestDuration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	sizeBuckets := prometheus.ExponentialBuckets(1, 4, 8)

	m := &metrics{
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pipeline_validations_total",
			Help: "Validated pipelines by outcome.",
		}, []string{"status"}),
		nodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pipeline_nodes",
			Help:    "Nodes per validated pipeline.",
			Buckets: sizeBuckets,
		}),
		edges: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pipeline_edges",
			Help:    "Edges per validated pipeline.",
			Buckets: sizeBuckets,
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.validations, m.nodes, m.edges, m.requestDuration)
	return m
}

func (m *metrics) observeResult(res pipeline.Result) {
	m.validations.WithLabelValues(res.Status.String()).Inc()
	m.nodes.Observe(float64(res.NumNodes))
	m.edges.Observe(float64(res.NumEdges))
}

// middleware records request latency labelled by the matched route, not the
// raw path, to keep label cardinality bounded.
func (m *metrics) middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			// Let the error handler write the response so the status is final.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		m.requestDuration.WithLabelValues(
			c.Method(),
			c.Route().Path,
			strconv.Itoa(c.Response().StatusCode()),
		).Observe(time.Since(start).Seconds())
		return nil
	}
}
