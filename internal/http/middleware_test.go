package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	t.Run("attaches a request scoped logger to the context", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		base := slog.New(slog.NewTextHandler(&buf, nil))

		var sawLogger bool
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sawLogger = LoggerFromContext(r.Context()) != nil
			w.WriteHeader(http.StatusOK)
		})

		handler := RequestLogger(base)(next)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/meetings", nil))

		if recorder.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
		}
		if !sawLogger {
			t.Fatal("expected a logger in the request context")
		}

		out := buf.String()
		for _, want := range []string{"request started", "request completed", "method=GET", "path=/meetings"} {
			if !strings.Contains(out, want) {
				t.Fatalf("log output %q missing %q", out, want)
			}
		}
	})

	t.Run("assigns increasing request ids", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		base := slog.New(slog.NewTextHandler(&buf, nil))

		handler := RequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		for i := 0; i < 2; i++ {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/rooms", nil))
		}

		out := buf.String()
		if !strings.Contains(out, "request_id=1") || !strings.Contains(out, "request_id=2") {
			t.Fatalf("log output %q missing sequential request ids", out)
		}
	})
}
