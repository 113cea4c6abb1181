package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestInitIsRepeatable(t *testing.T) {
	require.NotPanics(t, func() {
		Init("1.0.0", "abc", "today", "sqlite")
		Init("1.0.1", "def", "today", "postgres")
	})

	require.Equal(t, 1, testutil.CollectAndCount(AppInfo))
	require.Equal(t, float64(1), testutil.ToFloat64(AppInfo.WithLabelValues("1.0.1", "def", "today", "postgres")))
}

func TestCheckStatusValue(t *testing.T) {
	require.Equal(t, float64(2), CheckStatusValue("pass"))
	require.Equal(t, float64(1), CheckStatusValue("warn"))
	require.Equal(t, float64(0), CheckStatusValue("fail"))
	require.Equal(t, float64(0), CheckStatusValue(""))
}
