package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/example/voltline/internal/models"
	"github.com/example/voltline/internal/services"
	"github.com/example/voltline/internal/store"
	"github.com/example/voltline/internal/utils"
)

const notifyTimeout = 15 * time.Second

// ContactHandler captures contact enquiries and lets admins moderate them.
type ContactHandler struct {
	store    *store.Store
	notifier services.Notifier
	timeout  time.Duration
	log      *zap.SugaredLogger
}

// NewContactHandler constructs ContactHandler.
func NewContactHandler(st *store.Store, notifier services.Notifier, timeout time.Duration, log *zap.SugaredLogger) *ContactHandler {
	return &ContactHandler{store: st, notifier: notifier, timeout: timeout, log: log}
}

type contactRequest struct {
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  string  `json:"last_name" validate:"max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     string  `json:"phone" validate:"max=40"`
	Message   string  `json:"message" validate:"required,max=5000"`
	Business  *string `json:"business" validate:"omitempty,max=200"`
}

type enquiryStatusRequest struct {
	Status models.EnquiryStatus `json:"status" validate:"required,oneof=pending resolved archived"`
}

// Submit stores a public contact form submission and alerts staff.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req contactRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	enquiry := models.ContactEnquiry{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		Message:   strings.TrimSpace(req.Message),
		Business:  req.Business,
	}
	if err := h.store.CreateEnquiry(ctx, &enquiry); err != nil {
		return err
	}

	go dispatch(h.log, "enquiry", func(ctx context.Context) error {
		return h.notifier.NotifyEnquiry(ctx, enquiry)
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fiber.Map{"id": enquiry.ID}})
}

// List returns paginated enquiries, optionally filtered by status.
func (h *ContactHandler) List(c *fiber.Ctx) error {
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	pg := utils.ParsePagination(c)
	rows, total, err := h.store.Enquiries(ctx, models.EnquiryStatus(c.Query("status")), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": rows, "pagination": pg.Meta(total)})
}

func (h *ContactHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	enquiry, err := h.store.EnquiryByID(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": enquiry})
}

// UpdateStatus moves an enquiry to pending, resolved or archived.
func (h *ContactHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req enquiryStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	enquiry, err := h.store.SetEnquiryStatus(ctx, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": enquiry})
}

func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	if err := h.store.DeleteEnquiry(ctx, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// dispatch runs a notification outside the request and logs its failure.
func dispatch(log *zap.SugaredLogger, kind string, send func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := send(ctx); err != nil {
		log.Warnw("notification failed", "kind", kind, "error", err)
	}
}
