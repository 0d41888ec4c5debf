package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bigbull/event-ticket-api/internal/api/handler/v1/response"
	"github.com/bigbull/event-ticket-api/internal/domain"
	"github.com/bigbull/event-ticket-api/internal/pkg/jwthelper"
)

const callerKey = "caller"

var (
	errMissingToken = errors.New("missing bearer token")
	errNotAdmin     = errors.New("admin role required")
)

type Authenticator struct {
	key []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		key: []byte(signingKey),
	}
}

// VerifyJWT turns a bearer token into a domain.Caller stored on the context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx.GetHeader("Authorization"))
		if token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.key, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		role := domain.Role(claims.Role)
		if role != domain.RoleAdmin && role != domain.RoleUser {
			response.RenderErr(ctx, response.ErrUnauthorized(jwthelper.ErrInvalidToken))
			return
		}

		ctx.Set(callerKey, domain.Caller{
			Subject: claims.Subject,
			Email:   claims.Email,
			Role:    role,
		})
		ctx.Next()
	}
}

// RequireAdmin must run after VerifyJWT.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		caller, ok := CallerFromContext(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}
		if !caller.IsAdmin() {
			response.RenderErr(ctx, response.ErrPermissionDenied(errNotAdmin))
			return
		}
		ctx.Next()
	}
}

func CallerFromContext(ctx *gin.Context) (domain.Caller, bool) {
	v, ok := ctx.Get(callerKey)
	if !ok {
		return domain.Caller{}, false
	}
	caller, ok := v.(domain.Caller)
	return caller, ok
}

// SetCaller is used by tests that bypass token verification.
func SetCaller(ctx *gin.Context, caller domain.Caller) {
	ctx.Set(callerKey, caller)
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
