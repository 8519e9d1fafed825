package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pausalko/pausal-backend/internal/dto"
	"github.com/pausalko/pausal-backend/internal/middleware"
	"github.com/pausalko/pausal-backend/internal/platform/config"
	"github.com/pausalko/pausal-backend/internal/utils"
)

// authSubject is the JWT subject for the single owner account.
const authSubject = "owner"

// AuthHandler handles authentication for the single owner account. There are
// no user records: login checks the submitted password against the configured
// bcrypt hash and issues a JWT.
type AuthHandler struct {
	passwordHash string
	jwtSecret    string
	jwtDuration  time.Duration
	jwtIssuer    string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		passwordHash: cfg.AppPasswordHash,
		jwtSecret:    cfg.JWTSecret,
		jwtDuration:  cfg.JWTExpiryDuration,
		jwtIssuer:    cfg.JWTIssuer,
	}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config) {
	h := NewAuthHandler(cfg)

	// Define rate limit: 5 requests per minute
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
		auth.GET("/verify", middleware.AuthMiddleware(cfg.JWTSecret), h.Verify)
	}
}

// Login godoc
// @Summary Owner login
// @Description Checks the owner password and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if !utils.CheckPasswordHash(req.Password, h.passwordHash) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid password"})
		return
	}

	claims := jwt.RegisteredClaims{
		Issuer:    h.jwtIssuer,
		Subject:   authSubject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.jwtDuration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		NotBefore: jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: signed})
}

// Verify godoc
// @Summary Verify token
// @Description Confirms the presented JWT token is still valid.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.VerifyResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(c *gin.Context) {
	// AuthMiddleware already rejected invalid tokens.
	c.JSON(http.StatusOK, dto.VerifyResponse{Valid: true})
}
