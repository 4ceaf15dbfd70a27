package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertBizMetricLine checks that the Prometheus output contains a business metric
// matching the given name, partial label pattern, and value. Uses regex to handle
// extra OTel scope labels injected by the Prometheus exporter.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("fieldcrypt_test")
	require.NoError(t, err)

	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "fieldcrypt_test")

	require.NoError(t, err)
	assert.NotNil(t, businessMetrics)
}

func TestBusinessMetrics_RecordOperation(t *testing.T) {
	provider, err := NewProvider("fieldcrypt_test")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "fieldcrypt_test")
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic for any operation/status combination.
	bm.RecordOperation(ctx, "fieldcrypt", "protect", "success")
	bm.RecordOperation(ctx, "fieldcrypt", "reveal", "error")
	bm.RecordOperation(ctx, "fieldcrypt", "search_hash", "success")
	bm.RecordOperation(ctx, "fieldcrypt", "protect_with_hash", "success")
}

func TestBusinessMetrics_RecordDuration(t *testing.T) {
	provider, err := NewProvider("fieldcrypt_test")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "fieldcrypt_test")
	require.NoError(t, err)

	ctx := context.Background()

	bm.RecordDuration(ctx, "fieldcrypt", "protect", 5*time.Millisecond, "success")
	bm.RecordDuration(ctx, "fieldcrypt", "reveal", 10*time.Millisecond, "error")
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	noOpMetrics := NewNoOpBusinessMetrics()

	assert.NotNil(t, noOpMetrics)
	assert.IsType(t, &NoOpBusinessMetrics{}, noOpMetrics)

	// Should not panic or record anything.
	noOpMetrics.RecordOperation(context.Background(), "fieldcrypt", "protect", "success")
	noOpMetrics.RecordDuration(context.Background(), "fieldcrypt", "reveal", 100*time.Millisecond, "error")
}

func TestBusinessMetrics_Integration(t *testing.T) {
	provider, err := NewProvider("integration_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "integration_test")
	require.NoError(t, err)

	ctx := context.Background()

	bm.RecordOperation(ctx, "fieldcrypt", "protect", "success")
	bm.RecordOperation(ctx, "fieldcrypt", "protect", "success")
	bm.RecordOperation(ctx, "fieldcrypt", "reveal", "error")
	bm.RecordOperation(ctx, "fieldcrypt", "search_hash", "success")

	bm.RecordDuration(ctx, "fieldcrypt", "protect", 50*time.Millisecond, "success")
	bm.RecordDuration(ctx, "fieldcrypt", "protect", 60*time.Millisecond, "success")
	bm.RecordDuration(ctx, "fieldcrypt", "reveal", 100*time.Millisecond, "error")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)

	output := w.Body.String()

	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="fieldcrypt".*operation="protect".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="fieldcrypt".*operation="reveal".*status="error"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operation_duration_seconds_count`,
		`domain="fieldcrypt".*operation="protect".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operation_duration_seconds_sum`,
		`domain="fieldcrypt".*operation="protect".*status="success"`,
		``,
	)
}
