package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/example/voltline/internal/models"
	"github.com/example/voltline/internal/services"
	"github.com/example/voltline/internal/store"
	"github.com/example/voltline/internal/utils"
)

// NewsletterHandler manages newsletter sign-ups.
type NewsletterHandler struct {
	store    *store.Store
	notifier services.Notifier
	timeout  time.Duration
	log      *zap.SugaredLogger
}

func NewNewsletterHandler(st *store.Store, notifier services.Notifier, timeout time.Duration, log *zap.SugaredLogger) *NewsletterHandler {
	return &NewsletterHandler{store: st, notifier: notifier, timeout: timeout, log: log}
}

type subscribeRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

type subscriptionStatusRequest struct {
	Status models.SubscriptionStatus `json:"status" validate:"required,oneof=active unsubscribed"`
}

// Subscribe registers an email or re-activates one that had unsubscribed.
func (h *NewsletterHandler) Subscribe(c *fiber.Ctx) error {
	var req subscribeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	sub, activated, err := h.store.Subscribe(ctx, req.Email)
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if activated {
		status = fiber.StatusCreated
		subscription := *sub
		go dispatch(h.log, "subscription", func(ctx context.Context) error {
			return h.notifier.NotifySubscription(ctx, subscription)
		})
	}

	return c.Status(status).JSON(fiber.Map{"success": true, "data": sub})
}

func (h *NewsletterHandler) List(c *fiber.Ctx) error {
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	pg := utils.ParsePagination(c)
	rows, total, err := h.store.Subscriptions(ctx, models.SubscriptionStatus(c.Query("status")), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": rows, "pagination": pg.Meta(total)})
}

func (h *NewsletterHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	sub, err := h.store.SubscriptionByID(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": sub})
}

func (h *NewsletterHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req subscriptionStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	sub, err := h.store.SetSubscriptionStatus(ctx, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": sub})
}

func (h *NewsletterHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	if err := h.store.DeleteSubscription(ctx, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
