package models

// User is an account identified by a unique username. A user owns zero or
// more orders; accounts are never mutated or deleted after registration.
type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Username     string  `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash string  `gorm:"size:128;not null" json:"-"` // bcrypt, never serialised
	Orders       []Order `gorm:"foreignKey:UserID" json:"orders,omitempty"`
}
