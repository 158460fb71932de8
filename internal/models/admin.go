package models

// AdminUser can sign in to the dashboard.
type AdminUser struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
}
