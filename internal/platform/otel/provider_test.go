package otel

import (
	"context"
	"testing"

	"chain-reaction/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestSetupDisabledIsNoop(t *testing.T) {
	ctx := context.Background()

	shutdown, err := Setup(ctx, config.Config{OTelEnabled: true, OTelEndpoint: "  "})
	require.NoError(t, err)
	assert.NoError(t, shutdown(ctx))

	shutdown, err = Setup(ctx, config.Config{OTelEnabled: false, OTelEndpoint: "http://localhost:4318"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(ctx))
}

func TestResourceCarriesDeployment(t *testing.T) {
	res := Resource(config.Config{Version: "1.2.0", Environment: "staging", Store: config.StoreSQLite})
	set := res.Set()

	for key, want := range map[attribute.Key]string{
		"service.name":           ServiceName,
		"service.version":        "1.2.0",
		"deployment.environment": "staging",
		"chain_reaction.store":   config.StoreSQLite,
	} {
		got, ok := set.Value(key)
		require.True(t, ok, "missing %s", key)
		assert.Equal(t, want, got.AsString(), "attribute %s", key)
	}
}

func TestSampler(t *testing.T) {
	cases := []struct {
		ratio float64
		want  string
	}{
		{ratio: 1, want: "AlwaysOnSampler"},
		{ratio: 3, want: "AlwaysOnSampler"},
		{ratio: 0, want: "AlwaysOffSampler"},
		{ratio: 0.25, want: "TraceIDRatioBased{0.25}"},
	}
	for _, tc := range cases {
		desc := Sampler(tc.ratio).Description()
		assert.Contains(t, desc, "ParentBased{root:"+tc.want, "ratio %g", tc.ratio)
	}
}
