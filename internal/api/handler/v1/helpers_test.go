package v1

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"github.com/bigbull/event-ticket-api/internal/api/middleware"
	"github.com/bigbull/event-ticket-api/internal/domain"
)

var (
	adminCaller = domain.Caller{Subject: "1", Role: domain.RoleAdmin}
	userCaller  = domain.Caller{Subject: "7", Email: "fan@example.com", Role: domain.RoleUser}
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withCaller stands in for VerifyJWT.
func withCaller(caller domain.Caller) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		middleware.SetCaller(ctx, caller)
		ctx.Next()
	}
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), v))
}
