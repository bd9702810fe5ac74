package models

import "gorm.io/gorm"

// Developer represents a game development studio. Acting marks studios
// that are still operating.
type Developer struct {
	gorm.Model
	Name   string `gorm:"size:255;unique;not null"`
	Slug   string `gorm:"size:255;unique;not null"`
	Acting bool   `gorm:"not null;default:true"`
}

// Publisher represents a game publisher.
type Publisher struct {
	gorm.Model
	Name   string `gorm:"size:255;unique;not null"`
	Slug   string `gorm:"size:255;unique;not null"`
	Acting bool   `gorm:"not null;default:true"`
}
