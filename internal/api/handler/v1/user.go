package v1

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bigbull/event-ticket-api/internal/api/handler/v1/request"
	"github.com/bigbull/event-ticket-api/internal/api/handler/v1/response"
	"github.com/bigbull/event-ticket-api/internal/api/middleware"
	"github.com/bigbull/event-ticket-api/internal/domain"
)

var errInvalidUserID = errors.New("userID must be a positive integer")

type UserService interface {
	ListUsers(ctx context.Context, caller domain.Caller) ([]domain.User, error)
	GetUser(ctx context.Context, caller domain.Caller, id uint) (domain.User, error)
	UpdateUser(ctx context.Context, caller domain.Caller, id uint, update domain.UserUpdate) (domain.User, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleListUsers godoc
// @Summary      List end-user accounts
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.UserListResponse
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/list [get]
// @Security BearerAuth
func (h *UserHandler) HandleListUsers(ctx *gin.Context) {
	caller, _ := middleware.CallerFromContext(ctx)
	users, err := h.svc.ListUsers(ctx.Request.Context(), caller)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListUsers -> h.svc.ListUsers", err)
		return
	}

	if users == nil {
		users = []domain.User{}
	}

	ctx.JSON(http.StatusOK, response.UserListResponse{Success: true, Users: users})
}

// HandleGetUser godoc
// @Summary      Get an end-user account
// @Tags         users
// @Produce      json
// @Param        userID   path      int  true  "User ID"
// @Success      200      {object}  response.UserResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/{userID} [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	id, err := parseUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	caller, _ := middleware.CallerFromContext(ctx)
	user, err := h.svc.GetUser(ctx.Request.Context(), caller, id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetUser -> h.svc.GetUser", err)
		return
	}

	ctx.JSON(http.StatusOK, response.UserResponse{Success: true, User: user})
}

// HandleUpdateUser godoc
// @Summary      Rename or enable/disable an end-user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userID   path      int  true  "User ID"
// @Param        request  body      request.UpdateUserRequest true "request body"
// @Success      200      {object}  response.UserResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/{userID} [put]
// @Security BearerAuth
func (h *UserHandler) HandleUpdateUser(ctx *gin.Context) {
	id, err := parseUserID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateUserRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	caller, _ := middleware.CallerFromContext(ctx)
	user, err := h.svc.UpdateUser(ctx.Request.Context(), caller, id, domain.UserUpdate{
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateUser -> h.svc.UpdateUser", err)
		return
	}

	ctx.JSON(http.StatusOK, response.UserResponse{Success: true, User: user})
}

func parseUserID(ctx *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param("userID"), 10, 32)
	if err != nil || id == 0 {
		return 0, errInvalidUserID
	}
	return uint(id), nil
}
