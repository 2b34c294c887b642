package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCountsOutcomes(t *testing.T) {
	r := NewRecorder()

	r.Start()(OutcomeSuccess)
	r.Start()(OutcomeSuccess)
	r.Start()("transport")

	assert.Equal(t, float64(2), testutil.ToFloat64(r.generateTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.generateTotal.WithLabelValues("transport")))
	assert.Equal(t, float64(0), testutil.ToFloat64(r.inFlight))
	assert.Equal(t, 2, testutil.CollectAndCount(r.generateDuration))
}

func TestRecorderTracksInFlight(t *testing.T) {
	r := NewRecorder()

	done := r.Start()
	assert.Equal(t, float64(1), testutil.ToFloat64(r.inFlight))

	done(OutcomeSuccess)
	assert.Equal(t, float64(0), testutil.ToFloat64(r.inFlight))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.Start()(OutcomeSuccess)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRecorder()
	r.Start()(OutcomeSuccess)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `eardo_speech_generate_total{outcome="success"} 1`)
}
