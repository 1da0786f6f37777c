package test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// PerformRequest runs one request through r and returns the recorder.
// Headers are given as "Name: value" strings.
func PerformRequest(r *gin.Engine, t *testing.T, method, url string, body io.Reader, headers []string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	for _, h := range headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			t.Fatalf("malformed header %q", h)
		}
		req.Header.Set(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
