package models

import "gorm.io/gorm"

// Tag represents a game tag (e.g., "Souls-like", "Roguelite").
type Tag struct {
	gorm.Model
	Name string `gorm:"size:100;unique;not null"`
	Slug string `gorm:"size:100;unique;not null"`
}

// Genre represents a game genre (e.g., "RPG", "Shooter").
type Genre struct {
	gorm.Model
	Name string `gorm:"size:100;unique;not null"`
	Slug string `gorm:"size:100;unique;not null"`
}

// Category represents a catalog category.
type Category struct {
	gorm.Model
	Name string `gorm:"size:100;unique;not null"`
	Slug string `gorm:"size:100;unique;not null"`
}

// Platform represents a platform a game ships on (e.g., "PC", "PS5").
type Platform struct {
	gorm.Model
	Name string `gorm:"size:100;unique;not null"`
	Slug string `gorm:"size:100;unique;not null"`
}
