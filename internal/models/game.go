package models

import (
	"time"

	"gorm.io/gorm"
)

// Game condition buckets used by the home feed and catalog filters.
const (
	ConditionHot        = "hot"
	ConditionSale       = "sale"
	ConditionCommon     = "common"
	ConditionPopular    = "popular"
	ConditionUnreleased = "unreleased"
)

// Game represents a catalog game. Classification (tags, genres,
// platforms, ...) lives in the polymorphic join tables and is resolved
// through the assoc store, never preloaded implicitly.
type Game struct {
	gorm.Model
	Title            string    `gorm:"size:255;not null"`
	Slug             string    `gorm:"size:255;unique;not null"`
	Cover            string    `gorm:"size:512"`
	About            string
	Description      string
	ShortDescription string    `gorm:"size:512"`
	ReleaseDate      time.Time `gorm:"index"`
	Age              int       `gorm:"not null;default:0"`
	Condition        string    `gorm:"size:50;not null;default:'common';index"`
	GreatRelease     bool      `gorm:"not null;default:false"`
	Legal            string
	Website          string `gorm:"size:512"`
	Views            uint   `gorm:"not null;default:0"`

	Dlcs []Dlc `gorm:"foreignKey:GameID"`
}
