package types

import "time"

// Users
type User struct {
	ID             uint64 `gorm:"primaryKey"`
	Email          string `gorm:"size:255;uniqueIndex;not null"`
	HashedPassword string `gorm:"size:255;not null"`
	Name           string `gorm:"size:128"`
	CreatedAt      time.Time
}

// News item lifecycle states.
const (
	StatusVerified = "verified"
	StatusRejected = "rejected"
	StatusPending  = "pending"
)

// Uploaded news items that passed verification
type NewsItem struct {
	ID               uint64 `gorm:"primaryKey"`
	Title            string `gorm:"size:255;not null"`
	Description      string `gorm:"type:text;not null"`
	Status           string `gorm:"size:32;default:verified"`
	GenuinenessScore int
	VerdictSummary   string  `gorm:"type:text"`
	CreatorID        *uint64 `gorm:"index"`
	CreatedAt        time.Time
}
