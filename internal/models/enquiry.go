package models

// EnquiryStatus tracks admin moderation of a contact enquiry.
type EnquiryStatus string

const (
	EnquiryPending  EnquiryStatus = "pending"
	EnquiryResolved EnquiryStatus = "resolved"
	EnquiryArchived EnquiryStatus = "archived"
)

// ContactEnquiry is a message submitted through the public contact form.
type ContactEnquiry struct {
	BaseModel
	FirstName string        `gorm:"not null" json:"first_name"`
	LastName  string        `json:"last_name"`
	Email     string        `gorm:"not null;index" json:"email"`
	Phone     string        `json:"phone"`
	Message   string        `gorm:"type:text;not null" json:"message"`
	Business  *string       `json:"business"`
	Status    EnquiryStatus `gorm:"type:varchar(16);default:pending;index" json:"status"`
}

// SubscriptionStatus tracks newsletter opt-in state.
type SubscriptionStatus string

const (
	SubscriptionActive       SubscriptionStatus = "active"
	SubscriptionUnsubscribed SubscriptionStatus = "unsubscribed"
)

type NewsletterSubscription struct {
	BaseModel
	Email  string             `gorm:"uniqueIndex;not null" json:"email"`
	Status SubscriptionStatus `gorm:"type:varchar(16);default:active;index" json:"status"`
}
