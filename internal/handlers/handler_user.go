package handlers

import (
	"log/slog"
	"net/http"

	"github.com/microcred/loan_management_app/internal/core/domain"
	portssvc "github.com/microcred/loan_management_app/internal/core/ports/services"
	"github.com/microcred/loan_management_app/internal/dto"
	"github.com/microcred/loan_management_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to staff accounts.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.GET("", h.listUsers)         // Admin only
		users.GET("/:id", h.getUser)       // Own or admin
		users.PUT("/:id", h.updateUser)    // Admin only
		users.DELETE("/:id", h.deleteUser) // Admin only
		users.POST("", h.createUser)       // Admin only
	}
}

// requireAdmin aborts with 403 unless the caller is an admin.
func requireAdmin(c *gin.Context) (domain.User, bool) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return domain.User{}, false
	}
	if actor.Role != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return domain.User{}, false
	}
	return actor, true
}

func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := requireAdmin(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create user request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	createdUser, err := h.userService.CreateUser(c.Request.Context(), req, actor.UserID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("User created successfully", slog.String("new_user_id", createdUser.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(createdUser))
}

func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	// Staff can see their own record; only admins can see others.
	if actor.UserID != userID && actor.Role != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *userHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if _, ok := requireAdmin(c); !ok {
		return
	}

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListUsers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

func (h *userHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	actor, ok := requireAdmin(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updatedUser, err := h.userService.UpdateUser(c.Request.Context(), userID, req, actor.UserID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(updatedUser))
}

func (h *userHandler) deleteUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	actor, ok := requireAdmin(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID, actor.UserID); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("User deleted successfully", slog.String("target_user_id", userID))
	c.Status(http.StatusNoContent)
}
