package analytics_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/mcoot/protocasual/internal/dependencies/analytics"
	"github.com/mcoot/protocasual/internal/dependencies/mocks"
)

func TestFilteredDropsDisabledCategories(t *testing.T) {
	sink := mocks.NewMockSink()
	toggles := analytics.AllEnabled()
	toggles.PurchaseEvents = false

	filtered := analytics.Filtered(sink, toggles)
	filtered.Track(context.Background(), analytics.EventPurchase, analytics.Params{"item": "sword"})
	filtered.Track(context.Background(), analytics.EventLevelStart, analytics.Params{"level": 1})
	filtered.Track(context.Background(), "custom", nil)

	require.Len(t, sink.Events, 2)
	assert.Equal(t, analytics.EventLevelStart, sink.Events[0].Name)
	assert.Equal(t, "custom", sink.Events[1].Name)
}

func TestFilteredDisabledDropsEverything(t *testing.T) {
	sink := mocks.NewMockSink()
	filtered := analytics.Filtered(sink, analytics.Toggles{})

	filtered.Track(context.Background(), "custom", nil)
	assert.Empty(t, sink.Events)
}

func TestOTelSinkRecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	sink := analytics.NewOTelSink(provider)
	sink.Track(context.Background(), analytics.EventPurchase, analytics.Params{
		"item":  "sword",
		"price": 80,
		"hard":  false,
	})

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "analytics.purchase", spans[0].Name())

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "sword", attrs["item"])
	assert.Equal(t, "80", attrs["price"])
	assert.Equal(t, "false", attrs["hard"])
}

func TestTracerProviderExportsToWriter(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	provider, err := analytics.NewTracerProvider(ctx, analytics.ProviderConfig{
		ServiceName: "protocasual-test",
		Writer:      &out,
	})
	require.NoError(t, err)

	analytics.NewOTelSink(provider).Track(ctx, analytics.EventLevelStart, analytics.Params{"level": 2})
	require.NoError(t, provider.Shutdown(ctx))

	assert.Contains(t, out.String(), "analytics.level_start")
	assert.Contains(t, out.String(), "protocasual-test")
}
