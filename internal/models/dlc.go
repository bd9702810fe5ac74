package models

import (
	"time"

	"gorm.io/gorm"
)

// Dlc represents downloadable content attached to a game. DLCs share
// the polymorphic classification tables with games under their own
// owner discriminator.
type Dlc struct {
	gorm.Model
	GameID           uint   `gorm:"not null;index"`
	Name             string `gorm:"size:255;not null"`
	Slug             string `gorm:"size:255;unique;not null"`
	Cover            string `gorm:"size:512"`
	About            string
	Description      string
	ShortDescription string `gorm:"size:512"`
	ReleaseDate      time.Time
	Free             bool `gorm:"not null;default:false"`
	Legal            string

	Game Game `gorm:"foreignKey:GameID"`
}
