package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// httptestServer starts h on a loopback port and returns its base URL
func httptestServer(t *testing.T, h http.Handler) string {
	t.Helper()

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts.URL
}
