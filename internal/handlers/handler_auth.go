package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/dto"
	"github.com/coinkeep/coinkeep_backend/internal/middleware"
	"github.com/coinkeep/coinkeep_backend/internal/platform/config"
	"github.com/coinkeep/coinkeep_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ownerSubject is the JWT subject for the single installation owner.
const ownerSubject = "owner"

// authHandler issues tokens for the single-user installation.
type authHandler struct {
	cfg *config.Config
}

func newAuthHandler(cfg *config.Config) *authHandler {
	return &authHandler{cfg: cfg}
}

// registerAuthRoutes registers the public login route.
func registerAuthRoutes(rg *gin.RouterGroup, cfg *config.Config) {
	h := newAuthHandler(cfg)
	rg.POST("/login", h.login)
}

func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if h.cfg.AuthPasswordHash == "" {
		logger.Warn("Login attempted but AUTH_PASSWORD_HASH is not configured")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Login is not configured"})
		return
	}

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if !utils.CheckPasswordHash(req.Password, h.cfg.AuthPasswordHash) {
		logger.Warn("Login failed: password mismatch")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   ownerSubject,
		Issuer:    h.cfg.JWTIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.cfg.JWTExpiryDuration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		logger.Error("Failed to sign JWT", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	logger.Info("Login succeeded")
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     signed,
		ExpiresIn: int64(h.cfg.JWTExpiryDuration.Seconds()),
	})
}
