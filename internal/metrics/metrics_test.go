package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	m := New()

	m.Record("score", OutcomeOK, time.Millisecond)
	m.Record("score", OutcomeOK, time.Millisecond)
	m.Record("whatever", OutcomeUnknown, 0)
	m.Record("", OutcomeMalformed, 0)
	m.JournalError()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.invocations.WithLabelValues("score", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.invocations.WithLabelValues("-", OutcomeUnknown)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.invocations.WithLabelValues("-", OutcomeMalformed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.journalErrs))
}

func TestHandler(t *testing.T) {
	m := New()
	m.Record("val_ans_1", OutcomeOK, time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `ext_command_invocations_total{command="val_ans_1",outcome="ok"} 1`)
	assert.Contains(t, w.Body.String(), "ext_command_duration_seconds_bucket")
}
