package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservePipeline(t *testing.T) {
	m := New()
	m.ObservePipeline("vessel", 5*time.Millisecond)
	m.ObservePipeline("vessel", 7*time.Millisecond)
	m.ObservePipeline("po", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.pipelineRuns.WithLabelValues("vessel")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pipelineRuns.WithLabelValues("po")))
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.AddIngestedRows("xlsx", 12)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `fup_ingested_rows_total{format="xlsx"} 12`))
}
