package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/example/voltline/internal/config"
	"github.com/example/voltline/internal/models"
)

// MailService emails enquiry and subscription alerts to the sales inbox.
type MailService struct {
	cfg config.SMTPConfig
}

func NewMailService(cfg config.SMTPConfig) *MailService {
	return &MailService{cfg: cfg}
}

// Enabled reports whether an SMTP host and at least one recipient are set.
func (s *MailService) Enabled() bool {
	return s.cfg.Host != "" && len(s.cfg.NotifyTo) > 0
}

func (s *MailService) NotifyEnquiry(ctx context.Context, e models.ContactEnquiry) error {
	subject := fmt.Sprintf("Contact enquiry from %s", strings.TrimSpace(e.FirstName+" "+e.LastName))
	msg, err := s.message(subject, enquiryBody(e))
	if err != nil {
		return err
	}
	if err := msg.ReplyTo(e.Email); err != nil {
		return err
	}
	return s.send(ctx, msg)
}

func (s *MailService) NotifySubscription(ctx context.Context, sub models.NewsletterSubscription) error {
	msg, err := s.message("New newsletter subscriber", sub.Email+" subscribed to the newsletter.")
	if err != nil {
		return err
	}
	return s.send(ctx, msg)
}

func (s *MailService) message(subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return nil, err
	}
	if err := msg.To(s.cfg.NotifyTo...); err != nil {
		return nil, err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

func (s *MailService) send(ctx context.Context, msg *mail.Msg) error {
	if !s.Enabled() {
		return nil
	}

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}

func enquiryBody(e models.ContactEnquiry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s %s\n", e.FirstName, e.LastName)
	fmt.Fprintf(&b, "Email: %s\n", e.Email)
	if e.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", e.Phone)
	}
	if e.Business != nil && *e.Business != "" {
		fmt.Fprintf(&b, "Business: %s\n", *e.Business)
	}
	b.WriteString("\n")
	b.WriteString(e.Message)
	return b.String()
}
