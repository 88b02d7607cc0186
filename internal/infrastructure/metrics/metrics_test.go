package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ObserveAuth(t *testing.T) {
	r := NewRegistry()

	r.ObserveAuth("login", nil)
	r.ObserveAuth("login", errors.New("bad credentials"))
	r.ObserveAuth("login", errors.New("bad credentials"))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.AuthEvents.WithLabelValues("login", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.AuthEvents.WithLabelValues("login", "failure")))

	var nilRegistry *Registry
	assert.NotPanics(t, func() { nilRegistry.ObserveAuth("login", nil) })
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.SessionsPurged.Add(3)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "tasknest_sessions_purged_total 3"))
}
