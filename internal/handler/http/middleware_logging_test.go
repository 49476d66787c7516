package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// makeRequest creates a test request whose context logger writes to buf,
// the same way withTraceID attaches it.
func makeRequest(method, target string, buf *bytes.Buffer) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	l := zerolog.New(buf)
	return req.WithContext(l.WithContext(req.Context()))
}

func TestWithLogging_TableTest(t *testing.T) {
	tests := []struct {
		name             string
		method           string
		target           string
		handlerStatus    int
		handlerResponse  string
		checkLogContains []string
		checkLogOmits    []string
	}{
		{
			name:             "GET 200",
			method:           http.MethodGet,
			target:           "/api/version",
			handlerStatus:    http.StatusOK,
			handlerResponse:  "OK",
			checkLogContains: []string{`"method":"GET"`, `"path":"/api/version"`, `"status":200`, `"duration":`, `"size":2`},
		},
		{
			name:             "DELETE 204 no body",
			method:           http.MethodDelete,
			target:           "/api/links/9",
			handlerStatus:    http.StatusNoContent,
			checkLogContains: []string{`"method":"DELETE"`, `"status":204`, `"size":0`},
		},
		{
			name:             "query string is not logged",
			method:           http.MethodGet,
			target:           "/api/links?limit=10&offset=20",
			handlerStatus:    http.StatusOK,
			handlerResponse:  "[]",
			checkLogContains: []string{`"path":"/api/links"`},
			checkLogOmits:    []string{"limit=10"},
		},
		{
			name:             "redirect",
			method:           http.MethodGet,
			target:           "/s/abc123",
			handlerStatus:    http.StatusFound,
			checkLogContains: []string{`"status":302`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf bytes.Buffer
			h := &Handler{logger: logger.Nop()}

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.handlerStatus)
				if tt.handlerResponse != "" {
					_, _ = w.Write([]byte(tt.handlerResponse))
				}
			})

			rr := serve(h.withLogging(next), makeRequest(tt.method, tt.target, &logBuf))
			assert.Equal(t, tt.handlerStatus, rr.Code)

			logOutput := logBuf.String()
			for _, expected := range tt.checkLogContains {
				assert.Contains(t, logOutput, expected)
			}
			for _, omitted := range tt.checkLogOmits {
				assert.NotContains(t, logOutput, omitted)
			}
		})
	}
}
