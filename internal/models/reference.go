package models

import "gorm.io/gorm"

// Store represents a storefront games are sold on (Steam, GOG, ...).
type Store struct {
	gorm.Model
	Name string `gorm:"size:255;unique;not null"`
	Slug string `gorm:"size:255;unique;not null"`
	URL  string `gorm:"size:512"`
	Logo string `gorm:"size:512"`
}

// Critic represents a review outlet whose scores are attached to games.
type Critic struct {
	gorm.Model
	Name   string `gorm:"size:255;unique;not null"`
	Slug   string `gorm:"size:255;unique;not null"`
	URL    string `gorm:"size:512"`
	Logo   string `gorm:"size:512"`
	Acting bool   `gorm:"not null;default:true"`
}

// Cracker represents a scene group tracked for crack status.
type Cracker struct {
	gorm.Model
	Name   string `gorm:"size:255;unique;not null"`
	Slug   string `gorm:"size:255;unique;not null"`
	Acting bool   `gorm:"not null;default:true"`
}

// TorrentProvider represents a torrent source listed on game pages.
type TorrentProvider struct {
	gorm.Model
	Name string `gorm:"size:255;unique;not null"`
	Slug string `gorm:"size:255;unique;not null"`
	URL  string `gorm:"size:512"`
}

// Language represents a supported game language.
type Language struct {
	gorm.Model
	Name string `gorm:"size:100;unique;not null"`
	Slug string `gorm:"size:100;unique;not null"`
	ISO  string `gorm:"size:10;column:iso"`
}

// RequirementType classifies a hardware requirement block, e.g.
// minimum/recommended/maximum for a given OS.
type RequirementType struct {
	gorm.Model
	OS        string `gorm:"size:50;not null;column:os;uniqueIndex:uniq_requirement_types"`
	Potential string `gorm:"size:50;not null;uniqueIndex:uniq_requirement_types"`
}
