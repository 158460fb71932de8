package services

import (
	"context"
	"errors"

	"github.com/example/voltline/internal/models"
)

// Notifier tells staff about public form submissions.
type Notifier interface {
	NotifyEnquiry(ctx context.Context, e models.ContactEnquiry) error
	NotifySubscription(ctx context.Context, sub models.NewsletterSubscription) error
}

// MultiNotifier fans out to every configured channel and joins the failures.
type MultiNotifier []Notifier

func (m MultiNotifier) NotifyEnquiry(ctx context.Context, e models.ContactEnquiry) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.NotifyEnquiry(ctx, e))
	}
	return errors.Join(errs...)
}

func (m MultiNotifier) NotifySubscription(ctx context.Context, sub models.NewsletterSubscription) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.NotifySubscription(ctx, sub))
	}
	return errors.Join(errs...)
}
