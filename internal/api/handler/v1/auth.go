package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bigbull/event-ticket-api/internal/api/handler/v1/request"
	"github.com/bigbull/event-ticket-api/internal/api/handler/v1/response"
	"github.com/bigbull/event-ticket-api/internal/config"
	"github.com/bigbull/event-ticket-api/internal/domain"
	"github.com/bigbull/event-ticket-api/internal/pkg/jwthelper"
	"github.com/bigbull/event-ticket-api/internal/service"
)

type AuthService interface {
	AdminLogin(ctx context.Context, username, password string) (domain.Admin, error)
	CheckAdmin(ctx context.Context) (domain.Admin, bool, error)
	Register(ctx context.Context, user domain.User) (domain.User, error)
	Login(ctx context.Context, identifier, password string) (domain.User, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

func (h *AuthHandler) tokenTTL() time.Duration {
	return time.Duration(h.conf.TokenTTLMinutes) * time.Minute
}

// HandleAdminLogin godoc
// @Summary      Login as the admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.AdminLoginRequest true "request body"
// @Success      200      {object}   response.AdminLoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleAdminLogin(ctx *gin.Context) {
	req := request.AdminLoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	admin, err := h.svc.AdminLogin(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleAdminLogin -> h.svc.AdminLogin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	subject := strconv.FormatUint(uint64(admin.ID), 10)
	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), subject, "", string(domain.RoleAdmin), h.tokenTTL())
	if err != nil {
		err = fmt.Errorf("v1.HandleAdminLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.AdminLoginResponse{Token: token})
}

// HandleCheckAdmin godoc
// @Summary      Report whether the admin account exists
// @Tags         auth
// @Produce      json
// @Success      200      {object}   response.AdminCheckResponse
// @Failure      500      {object}   response.Err
// @Router       /auth/check [get]
func (h *AuthHandler) HandleCheckAdmin(ctx *gin.Context) {
	admin, exists, err := h.svc.CheckAdmin(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleCheckAdmin -> h.svc.CheckAdmin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.AdminCheckResponse{Exists: exists, Username: admin.Username})
}

// HandleRegister godoc
// @Summary      Register an end-user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request   body      request.RegisterRequest true "request body"
// @Success      201      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/register [post]
func (h *AuthHandler) HandleRegister(ctx *gin.Context) {
	var req request.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	_, err := h.svc.Register(ctx.Request.Context(), domain.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.RenderErr(ctx, response.ErrBadRequestMessage(err, "Username already taken"))
			return
		}
		if errors.Is(err, service.ErrEmailTaken) {
			response.RenderErr(ctx, response.ErrBadRequestMessage(err, "Email already registered"))
			return
		}
		err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.MessageResponse{Success: true, Message: "User registered successfully"})
}

// HandleLogin godoc
// @Summary      Login an end-user by email or username
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.Login(ctx.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.RenderErr(ctx, response.ErrWrongCredentials(err))
		case errors.Is(err, service.ErrAccountDisabled):
			response.RenderErr(ctx, response.ErrAccountDisabled(err))
		default:
			err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	subject := strconv.FormatUint(uint64(user.ID), 10)
	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), subject, user.Email, string(domain.RoleUser), h.tokenTTL())
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token: token,
		User:  user,
	})
}
