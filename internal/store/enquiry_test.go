package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/voltline/internal/catalog"
	"github.com/example/voltline/internal/models"
	"github.com/example/voltline/internal/testutil"
)

func TestEnquiryLifecycle(t *testing.T) {
	s := New(testutil.NewDB(t))
	ctx := context.Background()

	e := models.ContactEnquiry{FirstName: "Grace", Email: "grace@example.com", Message: "quote please", Status: models.EnquiryResolved}
	require.NoError(t, s.CreateEnquiry(ctx, &e))
	assert.Equal(t, models.EnquiryPending, e.Status)

	rows, total, err := s.Enquiries(ctx, models.EnquiryPending, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, rows, 1)

	updated, err := s.SetEnquiryStatus(ctx, e.ID, models.EnquiryResolved)
	require.NoError(t, err)
	assert.Equal(t, models.EnquiryResolved, updated.Status)

	_, total, err = s.Enquiries(ctx, models.EnquiryPending, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)

	require.NoError(t, s.DeleteEnquiry(ctx, e.ID))
	_, err = s.EnquiryByID(ctx, e.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.ErrorIs(t, s.DeleteEnquiry(ctx, uuid.New()), catalog.ErrNotFound)
}

func TestSubscribe(t *testing.T) {
	s := New(testutil.NewDB(t))
	ctx := context.Background()

	sub, activated, err := s.Subscribe(ctx, " News@Example.com ")
	require.NoError(t, err)
	assert.True(t, activated)
	assert.Equal(t, "news@example.com", sub.Email)

	again, activated, err := s.Subscribe(ctx, "news@example.com")
	require.NoError(t, err)
	assert.False(t, activated)
	assert.Equal(t, sub.ID, again.ID)

	_, err = s.SetSubscriptionStatus(ctx, sub.ID, models.SubscriptionUnsubscribed)
	require.NoError(t, err)

	back, activated, err := s.Subscribe(ctx, "news@example.com")
	require.NoError(t, err)
	assert.True(t, activated, "an unsubscribed address comes back")
	assert.Equal(t, sub.ID, back.ID)
	assert.Equal(t, models.SubscriptionActive, back.Status)

	stored, err := s.SubscriptionByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionActive, stored.Status)

	rows, total, err := s.Subscriptions(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, rows, 1)
}

func TestAdminByEmail(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	require.NoError(t, db.Create(&models.AdminUser{Email: "root@example.com", PasswordHash: "x"}).Error)

	a, err := s.AdminByEmail(context.Background(), "ROOT@example.com")
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", a.Email)

	_, err = s.AdminByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}
