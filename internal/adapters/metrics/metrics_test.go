package metrics

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequestCountsByOutcome(t *testing.T) {
	t.Parallel()

	recorder := NewRecorder()
	recorder.ObserveRequest("GET", "dishes", "ok", 20*time.Millisecond)
	recorder.ObserveRequest("GET", "dishes", "ok", 30*time.Millisecond)
	recorder.ObserveRequest("GET", "dishes", "not_found", 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(recorder.requests.WithLabelValues("GET", "dishes", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.requests.WithLabelValues("GET", "dishes", "not_found")))
	assert.Equal(t, 1, testutil.CollectAndCount(recorder.duration))
}

func TestWriteTextDumpsFamilies(t *testing.T) {
	t.Parallel()

	recorder := NewRecorder()
	recorder.ObserveRequest("POST", "meal-records", "ok", time.Millisecond)

	var buf bytes.Buffer
	require.NoError(t, recorder.WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "# TYPE fc_api_requests_total counter")
	assert.Contains(t, out, `fc_api_requests_total{method="POST",outcome="ok",resource="meal-records"} 1`)
	assert.Contains(t, out, "fc_api_request_duration_seconds_count")
}

func TestWriteTextEmptyRegistry(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewRecorder().WriteText(&buf))
	assert.Empty(t, buf.String())
}
