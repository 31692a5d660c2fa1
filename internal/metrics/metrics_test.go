package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(cyclesRendered.WithLabelValues("blink"))
	CycleRendered("blink")
	CycleRendered("blink")
	assert.Equal(t, before+2, testutil.ToFloat64(cyclesRendered.WithLabelValues("blink")))

	swaps := testutil.ToFloat64(patternSwaps)
	PatternSwapped()
	assert.Equal(t, swaps+1, testutil.ToFloat64(patternSwaps))

	f := testutil.ToFloat64(faults)
	Faulted()
	assert.Equal(t, f+1, testutil.ToFloat64(faults))

	r := testutil.ToFloat64(running)
	ExecutorStarted()
	assert.Equal(t, r+1, testutil.ToFloat64(running))
	ExecutorExited()
	assert.Equal(t, r, testutil.ToFloat64(running))
}

func TestHandler(t *testing.T) {
	CycleRendered("breathe")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `rgbled_pattern_cycles_rendered_total{kind="breathe"}`)
}
