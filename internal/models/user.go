package models

import "gorm.io/gorm"

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a user in the system. Experience accumulates from
// completed missions and drives level-ups against the Level ladder.
type User struct {
	gorm.Model
	Nickname     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:50;not null;default:'user';index"`
	LevelID      uint   `gorm:"not null;default:1"`
	Experience   uint   `gorm:"not null;default:0"`

	Wallet *Wallet `gorm:"foreignKey:UserID"`
	Level  *Level  `gorm:"foreignKey:LevelID"`
}
