package store

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/voltline/internal/catalog"
	"github.com/example/voltline/internal/models"
)

// CreateEnquiry stores a contact form submission as pending.
func (s *Store) CreateEnquiry(ctx context.Context, e *models.ContactEnquiry) error {
	e.Status = models.EnquiryPending
	return s.conn(ctx).Create(e).Error
}

// Enquiries returns one page of enquiries, newest first, optionally
// restricted to a status.
func (s *Store) Enquiries(ctx context.Context, status models.EnquiryStatus, limit, offset int) ([]models.ContactEnquiry, int64, error) {
	query := func() *gorm.DB {
		db := s.conn(ctx).Model(&models.ContactEnquiry{})
		if status != "" {
			db = db.Where("status = ?", status)
		}
		return db
	}
	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	rows := []models.ContactEnquiry{}
	if err := query().Order("created_at desc").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *Store) EnquiryByID(ctx context.Context, id uuid.UUID) (*models.ContactEnquiry, error) {
	return first[models.ContactEnquiry](s.conn(ctx), "id = ?", id)
}

// SetEnquiryStatus moves an enquiry through moderation.
func (s *Store) SetEnquiryStatus(ctx context.Context, id uuid.UUID, status models.EnquiryStatus) (*models.ContactEnquiry, error) {
	e, err := s.EnquiryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.conn(ctx).Model(e).Update("status", status).Error; err != nil {
		return nil, err
	}
	e.Status = status
	return e, nil
}

func (s *Store) DeleteEnquiry(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.ContactEnquiry](s.conn(ctx), id)
}

// Subscribe adds an email to the newsletter. An unsubscribed address is
// re-activated. activated is false only when the address was already active.
func (s *Store) Subscribe(ctx context.Context, email string) (sub *models.NewsletterSubscription, activated bool, err error) {
	email = strings.ToLower(strings.TrimSpace(email))

	err = s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := first[models.NewsletterSubscription](tx, "email = ?", email)
		switch {
		case err == nil:
			sub = existing
			if existing.Status != models.SubscriptionActive {
				existing.Status = models.SubscriptionActive
				activated = true
				return tx.Model(existing).Update("status", models.SubscriptionActive).Error
			}
			return nil
		case errors.Is(err, catalog.ErrNotFound):
			sub = &models.NewsletterSubscription{Email: email, Status: models.SubscriptionActive}
			activated = true
			return tx.Create(sub).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, false, err
	}
	return sub, activated, nil
}

func (s *Store) Subscriptions(ctx context.Context, status models.SubscriptionStatus, limit, offset int) ([]models.NewsletterSubscription, int64, error) {
	query := func() *gorm.DB {
		db := s.conn(ctx).Model(&models.NewsletterSubscription{})
		if status != "" {
			db = db.Where("status = ?", status)
		}
		return db
	}
	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	rows := []models.NewsletterSubscription{}
	if err := query().Order("created_at desc").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *Store) SubscriptionByID(ctx context.Context, id uuid.UUID) (*models.NewsletterSubscription, error) {
	return first[models.NewsletterSubscription](s.conn(ctx), "id = ?", id)
}

func (s *Store) SetSubscriptionStatus(ctx context.Context, id uuid.UUID, status models.SubscriptionStatus) (*models.NewsletterSubscription, error) {
	sub, err := s.SubscriptionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.conn(ctx).Model(sub).Update("status", status).Error; err != nil {
		return nil, err
	}
	sub.Status = status
	return sub, nil
}

func (s *Store) DeleteSubscription(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.NewsletterSubscription](s.conn(ctx), id)
}

// AdminByEmail finds a dashboard account.
func (s *Store) AdminByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	return first[models.AdminUser](s.conn(ctx), "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func deleteByID[T any](db *gorm.DB, id uuid.UUID) error {
	res := db.Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
