package models

// User represents a registered account. Usernames are stored lowercase so
// lookups and JWT subjects stay case-insensitive.
type User struct {
	Base
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	Holdings []Portfolio `gorm:"foreignKey:UserID" json:"-"`
}
