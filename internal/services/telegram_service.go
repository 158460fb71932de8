package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/voltline/internal/models"
)

const telegramAPI = "https://api.telegram.org"

// TelegramService posts enquiry and subscription alerts to the admin chat.
type TelegramService struct {
	botToken    string
	adminChatID string
	baseURL     string
	client      *http.Client
	log         *zap.SugaredLogger
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string, log *zap.SugaredLogger) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
		baseURL:     telegramAPI,
		client:      &http.Client{Timeout: 10 * time.Second},
		log:         log,
	}
}

// Enabled reports whether both the token and the admin chat are configured.
func (s *TelegramService) Enabled() bool {
	return s.botToken != "" && s.adminChatID != ""
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends an HTML formatted message to chatID.
func (s *TelegramService) SendMessage(ctx context.Context, chatID, text string) error {
	if s.botToken == "" {
		s.log.Debugw("telegram bot token not configured")
		return nil
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.botToken)

	body, err := json.Marshal(telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}
	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(ctx context.Context, text string) error {
	if s.adminChatID == "" {
		s.log.Debugw("telegram admin chat not configured")
		return nil
	}
	return s.SendMessage(ctx, s.adminChatID, text)
}

func (s *TelegramService) NotifyEnquiry(ctx context.Context, e models.ContactEnquiry) error {
	return s.SendToAdmin(ctx, enquiryText(e))
}

func (s *TelegramService) NotifySubscription(ctx context.Context, sub models.NewsletterSubscription) error {
	message := fmt.Sprintf("<b>New newsletter subscriber</b>\n%s", html.EscapeString(sub.Email))
	return s.SendToAdmin(ctx, message)
}

func enquiryText(e models.ContactEnquiry) string {
	var b strings.Builder
	b.WriteString("<b>New contact enquiry</b>\n")
	fmt.Fprintf(&b, "<b>Name:</b> %s\n", html.EscapeString(strings.TrimSpace(e.FirstName+" "+e.LastName)))
	fmt.Fprintf(&b, "<b>Email:</b> %s\n", html.EscapeString(e.Email))
	if e.Phone != "" {
		fmt.Fprintf(&b, "<b>Phone:</b> %s\n", html.EscapeString(e.Phone))
	}
	if e.Business != nil && *e.Business != "" {
		fmt.Fprintf(&b, "<b>Business:</b> %s\n", html.EscapeString(*e.Business))
	}
	b.WriteString("━━━━━━━━━━━━━━━━━━\n")
	b.WriteString(html.EscapeString(e.Message))
	return b.String()
}
