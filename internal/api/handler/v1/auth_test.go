package v1

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bigbull/event-ticket-api/internal/api/handler/v1/response"
	"github.com/bigbull/event-ticket-api/internal/config"
	"github.com/bigbull/event-ticket-api/internal/domain"
	"github.com/bigbull/event-ticket-api/internal/pkg/jwthelper"
	"github.com/bigbull/event-ticket-api/internal/service"
)

const testSigningKey = "test-signing-key"

func newAuthRouter() (*gin.Engine, *mockAuthService) {
	svc := new(mockAuthService)
	h := NewAuthHandler(&config.APIConfig{JWTSigningKey: testSigningKey, TokenTTLMinutes: 60}, svc)

	r := gin.New()
	r.POST("/auth/login", h.HandleAdminLogin)
	r.GET("/auth/check", h.HandleCheckAdmin)
	r.POST("/users/register", h.HandleRegister)
	r.POST("/users/login", h.HandleLogin)

	return r, svc
}

func TestHandleAdminLogin(t *testing.T) {
	r, svc := newAuthRouter()
	svc.On("AdminLogin", mock.Anything, "root", "s3cretpass").Return(domain.Admin{ID: 1, Username: "root"}, nil)
	svc.On("AdminLogin", mock.Anything, "root", "wrong").Return(domain.Admin{}, service.ErrInvalidCredentials)

	rec := do(r, http.MethodPost, "/auth/login", `{"username":"root","password":"s3cretpass"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body response.AdminLoginResponse
	decode(t, rec, &body)
	claims, err := jwthelper.ParseToken([]byte(testSigningKey), body.Token)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, string(domain.RoleAdmin), claims.Role)

	rec = do(r, http.MethodPost, "/auth/login", `{"username":"root","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var errBody response.Err
	decode(t, rec, &errBody)
	assert.Equal(t, "Invalid credentials", errBody.Message)

	rec = do(r, http.MethodPost, "/auth/login", `{"username":"root"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCheckAdmin(t *testing.T) {
	r, svc := newAuthRouter()
	svc.On("CheckAdmin", mock.Anything).Return(domain.Admin{ID: 1, Username: "root"}, true, nil).Once()
	svc.On("CheckAdmin", mock.Anything).Return(domain.Admin{}, false, errors.New("db down")).Once()

	rec := do(r, http.MethodGet, "/auth/check", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"exists":true,"username":"root"}`, rec.Body.String())

	rec = do(r, http.MethodGet, "/auth/check", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleRegister(t *testing.T) {
	r, svc := newAuthRouter()
	svc.On("Register", mock.Anything, mock.MatchedBy(func(u domain.User) bool { return u.Username == "alice" })).
		Return(domain.User{ID: 1, Username: "alice"}, nil)
	svc.On("Register", mock.Anything, mock.MatchedBy(func(u domain.User) bool { return u.Username == "bob" })).
		Return(domain.User{}, service.ErrUsernameTaken)
	svc.On("Register", mock.Anything, mock.MatchedBy(func(u domain.User) bool { return u.Username == "carol" })).
		Return(domain.User{}, service.ErrEmailTaken)

	rec := do(r, http.MethodPost, "/users/register", `{"username":"alice","email":"alice@example.com","password":"passw0rd"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = do(r, http.MethodPost, "/users/register", `{"username":"bob","email":"bob@example.com","password":"passw0rd"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var errBody response.Err
	decode(t, rec, &errBody)
	assert.Equal(t, "Username already taken", errBody.Message)

	rec = do(r, http.MethodPost, "/users/register", `{"username":"carol","email":"alice@example.com","password":"passw0rd"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	decode(t, rec, &errBody)
	assert.Equal(t, "Email already registered", errBody.Message)
}

func TestHandleRegister_WeakPassword(t *testing.T) {
	r, svc := newAuthRouter()

	for _, password := range []string{"short1", "allletters", "12345678"} {
		rec := do(r, http.MethodPost, "/users/register", `{"username":"dave","email":"dave@example.com","password":"`+password+`"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, password)
	}
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestHandleLogin(t *testing.T) {
	r, svc := newAuthRouter()
	svc.On("Login", mock.Anything, "alice", "passw0rd").Return(domain.User{ID: 3, Username: "alice", Email: "alice@example.com", IsActive: true}, nil)
	svc.On("Login", mock.Anything, "carol", "passw0rd").Return(domain.User{}, service.ErrAccountDisabled)
	svc.On("Login", mock.Anything, "alice", "nope").Return(domain.User{}, service.ErrInvalidCredentials)

	rec := do(r, http.MethodPost, "/users/login", `{"identifier":"alice","password":"passw0rd"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body response.LoginResponse
	decode(t, rec, &body)
	assert.Equal(t, uint(3), body.User.ID)
	assert.NotContains(t, rec.Body.String(), "password")

	claims, err := jwthelper.ParseToken([]byte(testSigningKey), body.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, string(domain.RoleUser), claims.Role)

	rec = do(r, http.MethodPost, "/users/login", `{"identifier":"carol","password":"passw0rd"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var errBody response.Err
	decode(t, rec, &errBody)
	assert.Equal(t, "Account is disabled", errBody.Message)

	rec = do(r, http.MethodPost, "/users/login", `{"identifier":"alice","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
