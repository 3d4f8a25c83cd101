package core

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/studyhall-ai/studyhall/pkg/metrics"
)

type Metrics struct {
	apiResponseTime       *prometheus.HistogramVec
	apiErrorCounter       *prometheus.CounterVec
	assistantResponseTime *prometheus.HistogramVec
	assistantFirstChunk   *prometheus.HistogramVec
	assistantError        *prometheus.CounterVec
	streamCanceled        *prometheus.CounterVec
}

func NewMetrics(ns, system string) *Metrics {
	// setup metric
	metrics.SetupMetricsManager(ns, system, prometheus.DefaultRegisterer.(*prometheus.Registry))

	m := &Metrics{
		apiResponseTime:       metrics.NewHistogramVec("api_response_time", []string{"api"}),
		apiErrorCounter:       metrics.NewCounterVec("api_error", []string{"method", "api", "status"}),
		assistantResponseTime: metrics.NewHistogramVec("assistant_response_time", nil),
		assistantFirstChunk:   metrics.NewHistogramVec("assistant_first_chunk_time", nil),
		assistantError:        metrics.NewCounterVec("assistant_error", []string{"type"}),
		streamCanceled:        metrics.NewCounterVec("assistant_stream_canceled", nil),
	}

	return m
}

func (m *Metrics) ApiErrorInc(method, api string, status int) {
	m.apiErrorCounter.WithLabelValues(method, api, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ApiResponseTimer(api string) *prometheus.Timer {
	return prometheus.NewTimer(m.apiResponseTime.WithLabelValues(api))
}

func (m *Metrics) AssistantResponseTimer() *prometheus.Timer {
	return prometheus.NewTimer(m.assistantResponseTime.WithLabelValues())
}

func (m *Metrics) AssistantFirstChunkTimer() *prometheus.Timer {
	return prometheus.NewTimer(m.assistantFirstChunk.WithLabelValues())
}

func (m *Metrics) AssistantErrorInc(types string) {
	m.assistantError.WithLabelValues(types).Inc()
}

func (m *Metrics) StreamCanceledInc() {
	m.streamCanceled.WithLabelValues().Inc()
}
