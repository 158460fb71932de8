package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/voltline/internal/cache"
	"github.com/example/voltline/internal/chatbot"
	"github.com/example/voltline/internal/config"
	"github.com/example/voltline/internal/handlers"
	"github.com/example/voltline/internal/middleware"
	"github.com/example/voltline/internal/services"
	"github.com/example/voltline/internal/store"
)

// Deps are the long-lived services the routes are built from. Storage may
// be nil, in which case upload routes are not mounted.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Cache    cache.Cache
	Storage  services.FileStorage
	Notifier services.Notifier
	Bot      *chatbot.Bot
	Log      *zap.SugaredLogger
}

// Register wires up all HTTP routes.
func Register(app *fiber.App, d Deps) {
	cfg := d.Config
	timeout := cfg.Database.QueryTimeout
	st := store.New(d.DB)

	catalogHandler := handlers.NewCatalogHandler(st, d.Cache, timeout, d.Log)
	adminCatalogHandler := handlers.NewAdminCatalogHandler(st, d.Cache, timeout, d.Log)
	adminHandler := handlers.NewAdminHandler(st, timeout)
	authHandler := handlers.NewAuthHandler(st, cfg.Auth, timeout, d.Log)
	contactHandler := handlers.NewContactHandler(st, d.Notifier, timeout, d.Log)
	newsletterHandler := handlers.NewNewsletterHandler(st, d.Notifier, timeout, d.Log)
	chatHandler := handlers.NewChatHandler(d.Bot)

	requireAdmin := middleware.AdminAuth(cfg.Auth.JWTSecret)
	// each public form gets its own per-IP budget
	publicForm := func() fiber.Handler {
		return limiter.New(limiter.Config{
			Max:        cfg.Limits.PublicFormPerMin,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return fiber.NewError(fiber.StatusTooManyRequests, "too many requests, try again in a minute")
			},
		})
	}

	api := app.Group("/api")
	api.Get("/health", handlers.Health(d.DB))

	// Public catalog
	api.Get("/categories", catalogHandler.ListCategories)
	api.Get("/categories/:slug", catalogHandler.CategoryContents)
	api.Get("/subcategories/:slug", catalogHandler.SubCategoryContents)
	api.Get("/super-subcategories/:slug", catalogHandler.SuperSubCategoryContents)
	api.Get("/products/*", catalogHandler.BrowsePath)
	api.Get("/product/:slug", catalogHandler.GetProduct)
	api.Get("/featured-products", catalogHandler.FeaturedProducts)

	api.Post("/chat", publicForm(), chatHandler.Reply)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", publicForm(), authHandler.Login)
	auth.Get("/me", requireAdmin, authHandler.Me)

	// Contact and newsletter
	contact := api.Group("/contact")
	contact.Post("/", publicForm(), contactHandler.Submit)
	contact.Get("/", requireAdmin, contactHandler.List)
	contact.Get("/:id", requireAdmin, contactHandler.Get)
	contact.Patch("/:id", requireAdmin, contactHandler.UpdateStatus)
	contact.Delete("/:id", requireAdmin, contactHandler.Delete)

	newsletter := api.Group("/newsletter")
	newsletter.Post("/", publicForm(), newsletterHandler.Subscribe)
	newsletter.Get("/", requireAdmin, newsletterHandler.List)
	newsletter.Get("/:id", requireAdmin, newsletterHandler.Get)
	newsletter.Patch("/:id", requireAdmin, newsletterHandler.UpdateStatus)
	newsletter.Delete("/:id", requireAdmin, newsletterHandler.Delete)

	// Dashboard
	admin := api.Group("/admin", requireAdmin)
	admin.Get("/stats", adminHandler.DashboardStats)

	categories := admin.Group("/categories")
	categories.Get("/", adminCatalogHandler.ListCategories)
	categories.Post("/", adminCatalogHandler.CreateCategory)
	categories.Get("/:id", adminCatalogHandler.GetCategory)
	categories.Put("/:id", adminCatalogHandler.UpdateCategory)
	categories.Delete("/:id", adminCatalogHandler.DeleteCategory)

	subCategories := admin.Group("/sub-categories")
	subCategories.Get("/", adminCatalogHandler.ListSubCategories)
	subCategories.Post("/", adminCatalogHandler.CreateSubCategory)
	subCategories.Get("/:id", adminCatalogHandler.GetSubCategory)
	subCategories.Put("/:id", adminCatalogHandler.UpdateSubCategory)
	subCategories.Delete("/:id", adminCatalogHandler.DeleteSubCategory)

	superSubCategories := admin.Group("/super-sub-categories")
	superSubCategories.Get("/", adminCatalogHandler.ListSuperSubCategories)
	superSubCategories.Post("/", adminCatalogHandler.CreateSuperSubCategory)
	superSubCategories.Get("/:id", adminCatalogHandler.GetSuperSubCategory)
	superSubCategories.Put("/:id", adminCatalogHandler.UpdateSuperSubCategory)
	superSubCategories.Delete("/:id", adminCatalogHandler.DeleteSuperSubCategory)

	products := admin.Group("/products")
	products.Get("/", adminCatalogHandler.ListProducts)
	products.Get("/filters", adminCatalogHandler.ProductFilters)
	products.Post("/", adminCatalogHandler.CreateProduct)
	products.Get("/:id", adminCatalogHandler.GetProduct)
	products.Put("/:id", adminCatalogHandler.UpdateProduct)
	products.Delete("/:id", adminCatalogHandler.DeleteProduct)

	// Uploads
	if d.Storage == nil {
		d.Log.Warnw("object storage not configured, upload routes disabled")
		return
	}
	uploadHandler := handlers.NewUploadHandler(d.Storage, cfg.Limits, d.Log)
	api.Post("/upload", requireAdmin, uploadHandler.UploadImage)
	api.Post("/upload/pdf", requireAdmin, uploadHandler.UploadPDF)
	api.Get("/storage/list", requireAdmin, uploadHandler.ListFiles)
}
