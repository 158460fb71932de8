package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/voltline/internal/cache"
	"github.com/example/voltline/internal/chatbot"
	"github.com/example/voltline/internal/config"
	"github.com/example/voltline/internal/database"
	"github.com/example/voltline/internal/handlers"
	"github.com/example/voltline/internal/models"
	"github.com/example/voltline/internal/testutil"
)

const (
	adminEmail    = "admin@voltline.example"
	adminPassword = "correct-horse"
)

type recordingNotifier struct {
	enquiries     chan models.ContactEnquiry
	subscriptions chan models.NewsletterSubscription
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{
		enquiries:     make(chan models.ContactEnquiry, 4),
		subscriptions: make(chan models.NewsletterSubscription, 4),
	}
}

func (n *recordingNotifier) NotifyEnquiry(_ context.Context, e models.ContactEnquiry) error {
	n.enquiries <- e
	return nil
}

func (n *recordingNotifier) NotifySubscription(_ context.Context, s models.NewsletterSubscription) error {
	n.subscriptions <- s
	return nil
}

type testServer struct {
	t        *testing.T
	app      *fiber.App
	notifier *recordingNotifier
	token    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zap.NewNop().Sugar()
	db := testutil.NewDB(t)

	cfg := &config.Config{
		Database: config.DatabaseConfig{QueryTimeout: 2 * time.Second},
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret",
			TokenExpires:  time.Hour,
			AdminEmail:    adminEmail,
			AdminPassword: adminPassword,
		},
		Limits: config.LimitsConfig{ImageMaxBytes: 1 << 20, PDFMaxBytes: 1 << 20, PublicFormPerMin: 3},
	}
	require.NoError(t, database.SeedAdmin(context.Background(), db, cfg.Auth, log))

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler(log)})
	notifier := newRecordingNotifier()
	Register(app, Deps{
		Config:   cfg,
		DB:       db,
		Cache:    cache.Noop{},
		Notifier: notifier,
		Bot:      chatbot.Default(),
		Log:      log,
	})
	return &testServer{t: t, app: app, notifier: notifier}
}

func (s *testServer) do(method, path string, body any) (int, map[string]any) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.app.Test(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(s.t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func (s *testServer) login() {
	s.t.Helper()
	status, body := s.do("POST", "/api/auth/login", map[string]string{"email": "Admin@Voltline.example", "password": adminPassword})
	require.Equal(s.t, fiber.StatusOK, status, body)
	s.token = body["token"].(string)
}

func id(body map[string]any) string {
	return body["data"].(map[string]any)["id"].(string)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	status, body := s.do("GET", "/api/health", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/admin/stats", "/api/admin/categories", "/api/contact", "/api/newsletter", "/api/auth/me"} {
		status, _ := s.do("GET", path, nil)
		assert.Equal(t, fiber.StatusUnauthorized, status, path)
	}

	s.token = "not-a-jwt"
	status, body := s.do("GET", "/api/admin/stats", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "invalid token", body["message"])
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do("POST", "/api/auth/login", map[string]string{"email": adminEmail, "password": "wrong"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "invalid credentials", body["message"])

	status, body = s.do("POST", "/api/auth/login", map[string]string{"email": "not-an-email"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.NotEmpty(t, body["errors"])

	s.login()
	status, body = s.do("GET", "/api/auth/me", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, fmt.Sprint(body), adminEmail)
}

func TestAdminCatalogLifecycle(t *testing.T) {
	s := newTestServer(t)
	s.login()

	status, body := s.do("POST", "/api/admin/categories", map[string]any{"name": "Power Supplies"})
	require.Equal(t, fiber.StatusCreated, status, body)
	categoryID := id(body)
	assert.Equal(t, "power-supplies", body["data"].(map[string]any)["slug"])

	status, _ = s.do("POST", "/api/admin/categories", map[string]any{"name": "Power Supplies"})
	assert.Equal(t, fiber.StatusConflict, status)

	status, body = s.do("POST", "/api/admin/sub-categories", map[string]any{"name": "DC", "category_id": categoryID})
	require.Equal(t, fiber.StatusCreated, status, body)
	subID := id(body)

	status, _ = s.do("POST", "/api/admin/sub-categories", map[string]any{"name": "Lost", "category_id": "00000000-0000-0000-0000-000000000001"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = s.do("POST", "/api/admin/products", map[string]any{
		"name": "P100", "category_id": categoryID, "sub_category_id": subID,
	})
	assert.Equal(t, fiber.StatusBadRequest, status, "a product sits at exactly one level")

	status, body = s.do("POST", "/api/admin/products", map[string]any{
		"name": "P100", "sub_category_id": subID, "featured": true,
	})
	require.Equal(t, fiber.StatusCreated, status, body)
	productID := id(body)

	status, _ = s.do("DELETE", "/api/admin/categories/"+categoryID, nil)
	assert.Equal(t, fiber.StatusConflict, status)

	s.token = ""
	status, body = s.do("GET", "/api/products/power-supplies/dc", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["products"], 1)
	s.login()

	status, body = s.do("GET", "/api/admin/products?category_id="+categoryID, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 1)
	assert.EqualValues(t, 1, body["pagination"].(map[string]any)["total_items"])

	status, body = s.do("GET", "/api/admin/products?page=461168601842738792", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 0)

	status, body = s.do("GET", "/api/admin/categories?page=461168601842738792", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 0)

	status, body = s.do("GET", "/api/admin/products?category_id="+categoryID+"&q=nothing", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 0)

	status, body = s.do("GET", "/api/admin/products/filters?category_id="+categoryID, nil)
	require.Equal(t, fiber.StatusOK, status)
	opts := body["data"].(map[string]any)
	assert.Len(t, opts["categories"], 1)
	assert.Len(t, opts["subCategories"], 1)

	status, _ = s.do("GET", "/api/admin/products?category_id=nope", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = s.do("GET", "/api/admin/stats", nil)
	require.Equal(t, fiber.StatusOK, status)
	stats := body["data"].(map[string]any)
	assert.EqualValues(t, 1, stats["products"])
	assert.EqualValues(t, 1, stats["featured_products"])

	status, _ = s.do("DELETE", "/api/admin/products/"+productID, nil)
	assert.Equal(t, fiber.StatusNoContent, status)
	status, _ = s.do("DELETE", "/api/admin/sub-categories/"+subID, nil)
	assert.Equal(t, fiber.StatusNoContent, status)
	status, _ = s.do("DELETE", "/api/admin/categories/"+categoryID, nil)
	assert.Equal(t, fiber.StatusNoContent, status)
	status, _ = s.do("GET", "/api/admin/categories/"+categoryID, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestSlugDerivedFromName(t *testing.T) {
	s := newTestServer(t)
	s.login()

	status, body := s.do("POST", "/api/admin/categories", map[string]any{"name": "Осциллографы"})
	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, []any{map[string]any{"field": "slug", "rule": "slug"}}, body["errors"])

	status, body = s.do("POST", "/api/admin/categories", map[string]any{"name": "Осциллографы", "slug": "oscilloscopes"})
	require.Equal(t, fiber.StatusCreated, status, body)
	categoryID := id(body)

	status, _ = s.do("PUT", "/api/admin/categories/"+categoryID, map[string]any{"name": "Осциллографы"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = s.do("POST", "/api/admin/products", map[string]any{"name": "Прибор", "category_id": categoryID})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = s.do("POST", "/api/admin/products", map[string]any{"name": "Scope 200 MHz", "category_id": categoryID})
	require.Equal(t, fiber.StatusCreated, status, body)
	assert.Equal(t, "scope-200-mhz", body["data"].(map[string]any)["slug"])
}

func TestContactForm(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do("POST", "/api/contact", map[string]any{
		"first_name": "Ada", "email": "ADA@example.com", "message": "Need a quote for 10 units",
	})
	require.Equal(t, fiber.StatusCreated, status, body)

	select {
	case e := <-s.notifier.enquiries:
		assert.Equal(t, "ada@example.com", e.Email)
	case <-time.After(2 * time.Second):
		t.Fatal("enquiry notification not sent")
	}

	status, _ = s.do("POST", "/api/contact", map[string]any{"first_name": "Ada"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	s.login()
	status, body = s.do("GET", "/api/contact?status=pending", nil)
	require.Equal(t, fiber.StatusOK, status)
	rows := body["data"].([]any)
	require.Len(t, rows, 1)
	enquiryID := rows[0].(map[string]any)["id"].(string)

	status, body = s.do("PATCH", "/api/contact/"+enquiryID, map[string]any{"status": "resolved"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "resolved", body["data"].(map[string]any)["status"])

	status, _ = s.do("PATCH", "/api/contact/"+enquiryID, map[string]any{"status": "bogus"})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestNewsletterAndRateLimit(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do("POST", "/api/newsletter", map[string]any{"email": "reader@example.com"})
	require.Equal(t, fiber.StatusCreated, status)
	select {
	case sub := <-s.notifier.subscriptions:
		assert.Equal(t, "reader@example.com", sub.Email)
	case <-time.After(2 * time.Second):
		t.Fatal("subscription notification not sent")
	}

	status, _ = s.do("POST", "/api/newsletter", map[string]any{"email": "Reader@Example.com"})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, s.notifier.subscriptions)

	status, _ = s.do("POST", "/api/newsletter", map[string]any{"email": "second@example.com"})
	assert.Equal(t, fiber.StatusCreated, status)

	status, body := s.do("POST", "/api/newsletter", map[string]any{"email": "third@example.com"})
	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.Equal(t, false, body["success"])
}

func TestNewsletterReactivation(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do("POST", "/api/newsletter", map[string]any{"email": "back@example.com"})
	require.Equal(t, fiber.StatusCreated, status)
	subID := id(body)
	select {
	case <-s.notifier.subscriptions:
	case <-time.After(2 * time.Second):
		t.Fatal("subscription notification not sent")
	}

	s.login()
	status, _ = s.do("PATCH", "/api/newsletter/"+subID, map[string]any{"status": "unsubscribed"})
	require.Equal(t, fiber.StatusOK, status)
	s.token = ""

	status, body = s.do("POST", "/api/newsletter", map[string]any{"email": "back@example.com"})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, subID, id(body))
	assert.Equal(t, "active", body["data"].(map[string]any)["status"])

	select {
	case sub := <-s.notifier.subscriptions:
		assert.Equal(t, "back@example.com", sub.Email)
	case <-time.After(2 * time.Second):
		t.Fatal("reactivation notification not sent")
	}
}

func TestChatRoute(t *testing.T) {
	s := newTestServer(t)
	status, body := s.do("POST", "/api/chat", map[string]string{"message": "hello"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, chatbot.TopicGreeting, body["topic"])
}

func TestUploadRoutesNeedStorage(t *testing.T) {
	s := newTestServer(t)
	s.login()
	status, _ := s.do("GET", "/api/storage/list", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}
