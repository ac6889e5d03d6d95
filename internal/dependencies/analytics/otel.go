package analytics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/mcoot/protocasual/analytics"

// OTelSink records each event as a short-lived span so an existing tracing
// pipeline can double as the analytics backend
type OTelSink struct {
	tracer trace.Tracer
}

// NewOTelSink creates a sink on the given provider, or the global one when nil
func NewOTelSink(provider trace.TracerProvider) *OTelSink {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &OTelSink{tracer: provider.Tracer(tracerName)}
}

// Track starts and ends a span named after the event
func (s *OTelSink) Track(ctx context.Context, name string, params Params) {
	_, span := s.tracer.Start(ctx, "analytics."+name, trace.WithAttributes(toAttributes(params)...))
	span.End()
}

func toAttributes(params Params) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(params))
	for k, v := range params {
		switch val := v.(type) {
		case string:
			attrs = append(attrs, attribute.String(k, val))
		case int:
			attrs = append(attrs, attribute.Int(k, val))
		case int64:
			attrs = append(attrs, attribute.Int64(k, val))
		case float64:
			attrs = append(attrs, attribute.Float64(k, val))
		case bool:
			attrs = append(attrs, attribute.Bool(k, val))
		default:
			attrs = append(attrs, attribute.String(k, fmt.Sprint(val)))
		}
	}
	return attrs
}

var _ Sink = (*OTelSink)(nil)
