package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/microcred/loan_management_app/internal/core/ports/services"
	"github.com/microcred/loan_management_app/internal/dto"
	"github.com/microcred/loan_management_app/internal/middleware"
	"github.com/microcred/loan_management_app/internal/platform/config"
	"github.com/microcred/loan_management_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// authHandler handles authentication related requests.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

func newAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up the routes for authentication. Login and refresh
// are public but rate limited per IP; logout requires a valid access token.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.User, services.Token, cfg)

	// 5 requests per minute per IP on the credential endpoints.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	limitMiddleware := middleware.RateLimit(limiter.New(store, rate))

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.login)
		auth.POST("/refresh", limitMiddleware, h.refresh)
		auth.POST("/logout", middleware.AuthMiddleware(cfg.JWTSecret), h.logout)
	}
}

// setRefreshCookie writes the refresh token cookie. The value carries the
// user ID so refresh can look up the stored hash without a session store.
func (h *authHandler) setRefreshCookie(c *gin.Context, userID, rawToken string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		h.cfg.RefreshTokenCookieName,
		userID+":"+rawToken,
		maxAge,
		h.cfg.RefreshTokenCookiePath,
		"",
		h.cfg.IsProduction,
		true,
	)
}

func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
		return
	}

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	refreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to generate refresh token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	if err := h.userService.UpdateRefreshToken(c.Request.Context(), user.UserID, utils.HashRefreshToken(refreshToken), refreshExpiry); err != nil {
		logger.Error("Failed to persist refresh token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	h.setRefreshCookie(c, user.UserID, refreshToken, int(h.cfg.RefreshTokenExpiryDuration.Seconds()))

	logger.Info("User logged in", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     accessToken,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	})
}

func (h *authHandler) refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cookie, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token missing"})
		return
	}

	userID, rawToken, found := strings.Cut(cookie, ":")
	if !found || userID == "" || rawToken == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
		return
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), userID, rawToken)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to generate access token on refresh", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	// Rotate the refresh token on every use.
	newRefreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to rotate refresh token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}
	if err := h.userService.UpdateRefreshToken(c.Request.Context(), user.UserID, utils.HashRefreshToken(newRefreshToken), refreshExpiry); err != nil {
		logger.Error("Failed to persist rotated refresh token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}
	h.setRefreshCookie(c, user.UserID, newRefreshToken, int(h.cfg.RefreshTokenExpiryDuration.Seconds()))

	c.JSON(http.StatusOK, dto.RefreshTokenResponse{Token: accessToken, ExpiresAt: expiresAt})
}

func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.userService.ClearRefreshToken(c.Request.Context(), userID); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	// Expire the cookie.
	h.setRefreshCookie(c, "", "", -1)

	logger.Info("User logged out", slog.String("user_id", userID))
	c.Status(http.StatusNoContent)
}
