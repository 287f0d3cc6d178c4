package models

// StatusOpen is the status every order starts in.
const StatusOpen = "open"

// Order belongs to exactly one user. Only the owner may change its status
// or delete it; ownership is enforced in the service layer, not here.
type Order struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Quantity int    `gorm:"not null" json:"quantity"`
	Status   string `gorm:"size:16;not null;default:open" json:"status"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
}
