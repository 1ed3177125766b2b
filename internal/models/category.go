package models

// Category represents a spending classification shared by all users.
// Names are globally unique; color is a #RRGGBB hex code.
type Category struct {
	Base
	Name  string `gorm:"uniqueIndex;not null" json:"name"`
	Color string `gorm:"not null" json:"color"`

	Expenses []Expense `gorm:"foreignKey:CategoryID" json:"-"`
}
