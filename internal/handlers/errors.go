package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/voltline/internal/catalog"
	"github.com/example/voltline/internal/chatbot"
	"github.com/example/voltline/internal/utils"
)

// ErrorHandler renders every error returned by a handler as
// {"success": false, "message": ...} with a matching status code.
func ErrorHandler(log *zap.SugaredLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, message := fiber.StatusInternalServerError, "internal server error"
		body := fiber.Map{"success": false}

		var fe *fiber.Error
		var verr *utils.ValidationError
		switch {
		case errors.As(err, &fe):
			code, message = fe.Code, fe.Message
		case errors.As(err, &verr):
			code, message = fiber.StatusBadRequest, verr.Error()
			body["errors"] = verr.Fields
		case errors.Is(err, catalog.ErrNotFound):
			code, message = fiber.StatusNotFound, "not found"
		case errors.Is(err, catalog.ErrInvalidPlacement):
			code, message = fiber.StatusBadRequest, err.Error()
		case errors.Is(err, chatbot.ErrEmptyMessage):
			code, message = fiber.StatusBadRequest, "message is required"
		case errors.Is(err, catalog.ErrHasDependents):
			code, message = fiber.StatusConflict, "cannot delete: remove its sub-categories and products first"
		case errors.Is(err, gorm.ErrDuplicatedKey):
			code, message = fiber.StatusConflict, "a record with this slug or email already exists"
		case errors.Is(err, catalog.ErrBrokenHierarchy):
			message = "catalog hierarchy is inconsistent"
			log.Errorw("broken catalog hierarchy", "path", c.Path(), "error", err)
		case errors.Is(err, context.DeadlineExceeded):
			code, message = fiber.StatusGatewayTimeout, "request timed out"
			log.Warnw("query timeout", "path", c.Path())
		default:
			log.Errorw("unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
		}

		body["message"] = message
		return c.Status(code).JSON(body)
	}
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// normalizer is implemented by requests that fill derived fields after
// decoding.
type normalizer interface {
	normalize() error
}

// parseBody decodes the request body into dst and validates it.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(dst); err != nil {
		return err
	}
	if n, ok := dst.(normalizer); ok {
		return n.normalize()
	}
	return nil
}

// queryContext bounds a store call by the configured query timeout.
func queryContext(c *fiber.Ctx, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), timeout)
}
