package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/example/voltline/internal/catalog"
	"github.com/example/voltline/internal/config"
	"github.com/example/voltline/internal/middleware"
	"github.com/example/voltline/internal/store"
	"github.com/example/voltline/internal/utils"
)

// AuthHandler bundles dependencies for admin authentication endpoints.
type AuthHandler struct {
	store   *store.Store
	cfg     config.AuthConfig
	timeout time.Duration
	log     *zap.SugaredLogger
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(st *store.Store, cfg config.AuthConfig, timeout time.Duration, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{store: st, cfg: cfg, timeout: timeout, log: log}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login exchanges admin credentials for a bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	admin, err := h.store.AdminByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return err
	}

	if !utils.CheckPassword(admin.PasswordHash, req.Password) {
		h.log.Warnw("failed admin login", "email", admin.Email, "ip", c.IP())
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, admin.ID, admin.Email, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"admin": fiber.Map{
			"id":    admin.ID,
			"email": admin.Email,
			"name":  admin.Name,
		},
	})
}

// Me returns the signed-in admin.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := middleware.CurrentAdmin(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "not signed in")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":         claims.AdminID,
			"email":      claims.Email,
			"expires_at": claims.ExpiresAt,
		},
	})
}
