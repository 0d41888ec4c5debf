package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	v1 "github.com/bigbull/event-ticket-api/internal/api/handler/v1"
	"github.com/bigbull/event-ticket-api/internal/config"
)

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)
	conf := &config.AppConfig{
		API: &config.APIConfig{
			Environment:     "test",
			Port:            "0",
			JWTSigningKey:   "test-signing-key",
			TokenTTLMinutes: 60,
		},
		Gin:    &config.GinConfig{Mode: gin.TestMode},
		Admin:  &config.AdminConfig{InitialUsername: "root", InitialPassword: "s3cretpass"},
		Ticket: &config.TicketConfig{EventName: "Big Bull Night", Price: 2500, ScanQueueSize: 1},
	}

	s := &Server{
		Config: conf,
		Router: gin.New(),
	}
	s.MountMiddlewares()
	s.MountHandlers(
		v1.NewAuthHandler(conf.API, nil),
		v1.NewUserHandler(nil),
		v1.NewTicketHandler(nil, nil, nil, nil, nil),
	)

	return s
}

func serve(s *Server, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestServer_Welcome(t *testing.T) {
	rec := serve(newTestServer(), http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Welcome to Event Ticket API"}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "default-src 'self'")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_NotFound(t *testing.T) {
	rec := serve(newTestServer(), http.MethodGet, "/api/v1/nowhere")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Route not found"}`, rec.Body.String())
}

func TestServer_ProtectedRoutes(t *testing.T) {
	s := newTestServer()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/tickets/generate"},
		{http.MethodGet, "/api/v1/tickets/list"},
		{http.MethodPut, "/api/v1/tickets/ticket_1"},
		{http.MethodDelete, "/api/v1/tickets/ticket_1"},
		{http.MethodPost, "/api/v1/tickets/purchase"},
		{http.MethodGet, "/api/v1/users/list"},
		{http.MethodPut, "/api/v1/users/1"},
	}

	for _, route := range routes {
		rec := serve(s, route.method, route.path)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.method+" "+route.path)
	}
}
