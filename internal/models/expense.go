package models

import "time"

// Expense represents a single spending event. The owner (UserID) is set to
// the authenticated caller at creation and is never updatable afterwards.
type Expense struct {
	Base
	Name       string    `gorm:"not null" json:"name"`
	Amount     float64   `gorm:"not null" json:"amount"`
	Date       time.Time `gorm:"not null;index" json:"date"`
	CategoryID string    `gorm:"type:uuid;not null" json:"-"`
	UserID     string    `gorm:"type:uuid;not null;index" json:"-"`

	// Relationships, rendered inline when preloaded. The owner is only
	// expanded on the global listing; per-user listings omit it.
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	User     *UserRef  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
