package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestMiddleware(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Transport Middleware Suite")
}

var _ = ginkgo.Describe("LoggingMiddleware", func() {
	var (
		logOutput *bytes.Buffer
		handler   http.Handler
	)

	decodeLines := func() []map[string]any {
		var entries []map[string]any
		for _, line := range strings.Split(strings.TrimSpace(logOutput.String()), "\n") {
			if line == "" {
				continue
			}
			var entry map[string]any
			gomega.Expect(json.Unmarshal([]byte(line), &entry)).To(gomega.Succeed())
			entries = append(entries, entry)
		}
		return entries
	}

	ginkgo.BeforeEach(func() {
		logOutput = &bytes.Buffer{}
		logger := slog.New(slog.NewJSONHandler(logOutput, nil))

		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"ok":true}`))
		})
		// the same chain order the router mounts
		handler = chiMiddleware.RequestID(RequestID(LoggingMiddleware(logger)(inner)))
	})

	ginkgo.It("stamps every request and response line with a request id", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		entries := decodeLines()
		gomega.Expect(len(entries)).To(gomega.BeNumerically(">=", 2))
		for _, entry := range entries {
			gomega.Expect(entry).To(gomega.HaveKey("request_id"))
			gomega.Expect(entry["request_id"]).ToNot(gomega.BeEmpty())
		}
	})

	ginkgo.It("filters credential fields out of logged bodies", func() {
		body := strings.NewReader(`{"email":"admin@acme.test","password":"correct_password"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
		req.Header.Set("Content-Type", "application/json")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		gomega.Expect(logOutput.String()).ToNot(gomega.ContainSubstring("correct_password"))
		gomega.Expect(logOutput.String()).To(gomega.ContainSubstring("admin@acme.test"))
	})

	ginkgo.It("filters the authorization header", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		req.Header.Set("Authorization", "Bearer secret-token-value")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		gomega.Expect(logOutput.String()).ToNot(gomega.ContainSubstring("secret-token-value"))
	})
})
