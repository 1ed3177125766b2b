package models

// User represents an identity record. Password is empty for accounts that
// only ever signed in through Google; GoogleUID is nil for accounts that
// only ever signed in with a password. A registered user always has at
// least one of the two.
type User struct {
	Base
	Name      string  `gorm:"not null" json:"name"`
	Email     string  `gorm:"uniqueIndex;not null" json:"email"`
	Password  string  `json:"-"`
	GoogleUID *string `gorm:"uniqueIndex" json:"-"`
	PhotoURL  string  `json:"photoURL,omitempty"`

	Expenses []Expense `gorm:"foreignKey:UserID" json:"-"`
}

// UserRef is a lean projection of an expense owner (name/email only),
// used when the global expense listing expands the user inline.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TableName maps UserRef onto the users table.
func (UserRef) TableName() string { return "users" }
