package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/voltline/internal/store"
)

// AdminHandler serves dashboard-only endpoints that are not CRUD.
type AdminHandler struct {
	store   *store.Store
	timeout time.Duration
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(st *store.Store, timeout time.Duration) *AdminHandler {
	return &AdminHandler{store: st, timeout: timeout}
}

// DashboardStats returns row counts for the admin dashboard.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	stats, err := h.store.Stats(ctx)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}
