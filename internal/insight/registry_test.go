package insight

import (
	"testing"

	insightdomain "github.com/smallbiznis/insight/internal/insight/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryResolvesKnownMetrics(t *testing.T) {
	r := NewRegistry(RegistryParam{})

	for _, name := range []string{"accounts", "mrr", "arpu", "goals", "properties", "events", "conversions"} {
		_, err := r.Handler(name)
		assert.NoError(t, err, "metric %q", name)
	}
}

func TestRegistryRejectsUnknownMetric(t *testing.T) {
	r := NewRegistry(RegistryParam{})

	_, err := r.Handler("churn")
	require.Error(t, err)
	assert.ErrorIs(t, err, insightdomain.ErrUnsupportedMetric)
	assert.Contains(t, err.Error(), `"churn"`)
}
