// Package metrics exports codec usage of the HTTP service to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/bokysan/b64/internal/codec"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels
const (
	ResultOk               = "ok"
	ResultInvalidCharacter = "invalid_character"
	ResultInvalidPadding   = "invalid_padding"
	ResultInvalidLength    = "invalid_length"
	ResultInvalidTrailing  = "invalid_trailing_bits"
	ResultIoError          = "io_error"
	ResultError            = "error"
)

// NewRegistry returns a fresh Prometheus registry.
func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// Handler returns a Prometheus HTTP handler bound to the registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// CodecObserver counts codec operations and the bytes flowing through them
type CodecObserver struct {
	operations *prometheus.CounterVec
	bytes      *prometheus.CounterVec
	items      *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewCodecObserver registers codec metrics on the registry.
func NewCodecObserver(reg *prometheus.Registry) *CodecObserver {
	o := &CodecObserver{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "b64_operations_total",
			Help: "Codec operations by operation, engine and result.",
		}, []string{"op", "engine", "result"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "b64_bytes_total",
			Help: "Bytes written by codec operations.",
		}, []string{"op", "engine"}),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "b64_batch_items_total",
			Help: "Batch positions by operation and result.",
		}, []string{"op", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "b64_operation_duration_seconds",
			Help:    "Duration of codec operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}
	reg.MustRegister(
		o.operations,
		o.bytes,
		o.items,
		o.duration,
	)
	return o
}

// Operation records one finished operation, writing n bytes
func (o *CodecObserver) Operation(op, engine string, n int64, err error, d time.Duration) {
	o.operations.WithLabelValues(op, engine, Result(err)).Inc()
	if n > 0 {
		o.bytes.WithLabelValues(op, engine).Add(float64(n))
	}
	o.duration.WithLabelValues(op).Observe(d.Seconds())
}

// Items records the outcome of a batch: how many positions succeeded, failed or were absent
func (o *CodecObserver) Items(op string, ok, failed, absent int) {
	o.items.WithLabelValues(op, ResultOk).Add(float64(ok))
	o.items.WithLabelValues(op, ResultError).Add(float64(failed))
	o.items.WithLabelValues(op, "absent").Add(float64(absent))
}

// Result converts an error into a result label
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOk
	case errors.Is(err, codec.ErrInvalidCharacter):
		return ResultInvalidCharacter
	case errors.Is(err, codec.ErrInvalidPadding):
		return ResultInvalidPadding
	case errors.Is(err, codec.ErrInvalidLength):
		return ResultInvalidLength
	case errors.Is(err, codec.ErrInvalidTrailingBits):
		return ResultInvalidTrailing
	case errors.Is(err, codec.ErrIO):
		return ResultIoError
	default:
		return ResultError
	}
}
