package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet holds a user's coin balance. Balance only changes through
// gamify wallet operations, which record a Transaction per change.
type Wallet struct {
	gorm.Model
	UserID  uint `gorm:"not null;uniqueIndex"`
	Balance uint `gorm:"not null;default:0"`
}

// Transaction type names.
const (
	TransactionAddition    = "addition"
	TransactionSubtraction = "subtraction"
)

// TransactionType classifies wallet transactions.
type TransactionType struct {
	gorm.Model
	Type string `gorm:"size:50;unique;not null"`
}

// Transaction records one wallet movement.
type Transaction struct {
	gorm.Model
	UserID            uint   `gorm:"not null;index"`
	TransactionTypeID uint   `gorm:"not null"`
	Amount            uint   `gorm:"not null"`
	Description       string `gorm:"size:512"`

	TransactionType TransactionType `gorm:"foreignKey:TransactionTypeID"`
}

// Level is one rung of the experience ladder. Experience is the total
// XP needed to reach the level; Coins are awarded on reaching it.
type Level struct {
	gorm.Model
	Level      uint `gorm:"unique;not null"`
	Experience uint `gorm:"not null"`
	Coins      uint `gorm:"not null;default:0"`
}

// Title statuses.
const (
	TitleAvailable   = "available"
	TitleUnavailable = "unavailable"
)

// Title is a cosmetic rank users earn through rewards or buy with
// coins. Cost is nil for titles that cannot be purchased.
type Title struct {
	gorm.Model
	Title       string `gorm:"size:255;unique;not null"`
	Description string `gorm:"size:512"`
	Cost        *uint
	Purchasable bool   `gorm:"not null;default:false"`
	Status      string `gorm:"size:50;not null;default:'available'"`
}

// UserTitle marks a title as owned by a user; at most one may be
// enabled for display at a time.
type UserTitle struct {
	gorm.Model
	UserID  uint `gorm:"not null;uniqueIndex:uniq_user_titles"`
	TitleID uint `gorm:"not null;uniqueIndex:uniq_user_titles"`
	Enabled bool `gorm:"not null;default:false"`

	Title Title `gorm:"foreignKey:TitleID"`
}

// Mission frequencies.
const (
	MissionOneTime = "one_time"
	MissionDaily   = "daily"
	MissionWeekly  = "weekly"
	MissionMonthly = "monthly"
)

// Mission statuses.
const (
	MissionAvailable   = "available"
	MissionUnavailable = "unavailable"
)

// Mission is a gamified task awarding coins and experience, optionally
// granting titles through Rewardable rows.
type Mission struct {
	gorm.Model
	Mission     string `gorm:"size:255;not null"`
	Description string `gorm:"size:512"`
	Coins       uint   `gorm:"not null;default:0"`
	Experience  uint   `gorm:"not null;default:0"`
	Frequency   string `gorm:"size:50;not null;default:'one_time'"`
	Status      string `gorm:"size:50;not null;default:'available'"`
	ForAll      bool   `gorm:"not null;default:true"`

	Requirements []MissionRequirement `gorm:"foreignKey:MissionID"`
}

// MissionRequirement is one task counter a user must fill to complete
// the mission. Key identifies the tracked action (e.g. "games_viewed").
type MissionRequirement struct {
	gorm.Model
	MissionID uint   `gorm:"not null;index"`
	Task      string `gorm:"size:255;not null"`
	Key       string `gorm:"size:100;not null"`
	Goal      int    `gorm:"not null;default:1"`
}

// UserMission tracks a user's completion state for a mission.
type UserMission struct {
	gorm.Model
	UserID          uint `gorm:"not null;uniqueIndex:uniq_user_missions"`
	MissionID       uint `gorm:"not null;uniqueIndex:uniq_user_missions"`
	Completed       bool `gorm:"not null;default:false"`
	LastCompletedAt *time.Time
}

// UserMissionProgress tracks a user's counter for one requirement.
type UserMissionProgress struct {
	gorm.Model
	UserID               uint `gorm:"not null;uniqueIndex:uniq_user_mission_progresses"`
	MissionRequirementID uint `gorm:"not null;uniqueIndex:uniq_user_mission_progresses"`
	Progress             int  `gorm:"not null;default:0"`
	Completed            bool `gorm:"not null;default:false"`
}
