package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()
	m.RoundsStarted.WithLabelValues("escape").Inc()
	m.RoundsCompleted.WithLabelValues("escape", "false").Inc()
	m.RoundsCompleted.WithLabelValues("escape", "false").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RoundsStarted.WithLabelValues("escape")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RoundsCompleted.WithLabelValues("escape", "false")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.Points.WithLabelValues("battle").Observe(120)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `linguoquest_round_points_count{mode="battle"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}
