package handlers

import (
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/example/voltline/internal/config"
	"github.com/example/voltline/internal/services"
)

var (
	imageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
	pdfTypes   = []string{"application/pdf"}
)

// UploadHandler accepts dashboard uploads into object storage.
type UploadHandler struct {
	storage services.FileStorage
	limits  config.LimitsConfig
	timeout time.Duration
	log     *zap.SugaredLogger
}

func NewUploadHandler(storage services.FileStorage, limits config.LimitsConfig, log *zap.SugaredLogger) *UploadHandler {
	return &UploadHandler{storage: storage, limits: limits, timeout: 60 * time.Second, log: log}
}

// UploadImage stores a product or category image.
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	return h.upload(c, "images", h.limits.ImageMaxBytes, imageTypes)
}

// UploadPDF stores a catalogue PDF.
func (h *UploadHandler) UploadPDF(c *fiber.Ctx) error {
	return h.upload(c, "catalogues", h.limits.PDFMaxBytes, pdfTypes)
}

func (h *UploadHandler) upload(c *fiber.Ctx, folder string, maxBytes int64, allowed []string) error {
	header, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	if header.Size == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "file is empty")
	}
	if header.Size > maxBytes {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d MB", maxBytes>>20))
	}

	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	// sniff the content rather than trusting the client's Content-Type
	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return err
	}
	if !mimetype.EqualsAny(mtype.String(), allowed...) {
		return fiber.NewError(fiber.StatusUnsupportedMediaType, "unsupported file type "+mtype.String())
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	url, err := h.storage.Upload(ctx, folder, header.Filename, file, header.Size, mtype.String())
	if err != nil {
		return err
	}
	h.log.Infow("file uploaded", "folder", folder, "name", header.Filename, "size", header.Size)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "url": url})
}

// ListFiles returns every stored object with the bucket totals.
func (h *UploadHandler) ListFiles(c *fiber.Ctx) error {
	ctx, cancel := queryContext(c, h.timeout)
	defer cancel()

	files, err := h.storage.List(ctx)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"files":      files,
		"count":      len(files),
		"total_size": services.TotalSize(files),
	})
}
