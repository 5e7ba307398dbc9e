package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetupTracing_Enabled(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var out bytes.Buffer
	shutdown, err := SetupTracing("task-api-test", true, &out)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "TaskRepo.Get")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, out.String(), "TaskRepo.Get")
	assert.Contains(t, out.String(), "task-api-test")
}

func TestSetupTracing_Disabled(t *testing.T) {
	var out bytes.Buffer
	shutdown, err := SetupTracing("task-api-test", false, &out)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "ignored")
	span.End()

	assert.NoError(t, shutdown(context.Background()))
	assert.Empty(t, out.String())
}
