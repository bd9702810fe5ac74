package models

import "time"

// Polymorphic join tables. Each row links one reference entity (the
// parent) to one owning entity identified by (<kind>able_id,
// <kind>able_type). The assoc store reads and writes these tables
// generically through its kind registry; the structs exist so
// AutoMigrate creates the schema, including the composite unique
// indexes that back the no-duplicate-tagging invariant. Pure tag-link
// kinds get the unique index; multi-valued kinds (criticables,
// torrentables, requirementables) do not.
//
// Join rows are hard-deleted: detaching is removal, and a soft-deleted
// parent simply stops resolving (the row stays behind, filtered on
// read).

// Taggable links a Tag to a game or DLC.
type Taggable struct {
	ID           uint   `gorm:"primarykey"`
	TagID        uint   `gorm:"not null;uniqueIndex:uniq_taggables"`
	TaggableID   uint   `gorm:"not null;uniqueIndex:uniq_taggables;index:idx_taggables_owner"`
	TaggableType string `gorm:"size:50;not null;uniqueIndex:uniq_taggables;index:idx_taggables_owner"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Genreable links a Genre to a game or DLC.
type Genreable struct {
	ID            uint   `gorm:"primarykey"`
	GenreID       uint   `gorm:"not null;uniqueIndex:uniq_genreables"`
	GenreableID   uint   `gorm:"not null;uniqueIndex:uniq_genreables;index:idx_genreables_owner"`
	GenreableType string `gorm:"size:50;not null;uniqueIndex:uniq_genreables;index:idx_genreables_owner"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Categoriable links a Category to a game or DLC.
type Categoriable struct {
	ID               uint   `gorm:"primarykey"`
	CategoryID       uint   `gorm:"not null;uniqueIndex:uniq_categoriables"`
	CategoriableID   uint   `gorm:"not null;uniqueIndex:uniq_categoriables;index:idx_categoriables_owner"`
	CategoriableType string `gorm:"size:50;not null;uniqueIndex:uniq_categoriables;index:idx_categoriables_owner"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Platformable links a Platform to a game or DLC.
type Platformable struct {
	ID               uint   `gorm:"primarykey"`
	PlatformID       uint   `gorm:"not null;uniqueIndex:uniq_platformables"`
	PlatformableID   uint   `gorm:"not null;uniqueIndex:uniq_platformables;index:idx_platformables_owner"`
	PlatformableType string `gorm:"size:50;not null;uniqueIndex:uniq_platformables;index:idx_platformables_owner"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Developerable links a Developer to a game or DLC.
type Developerable struct {
	ID                uint   `gorm:"primarykey"`
	DeveloperID       uint   `gorm:"not null;uniqueIndex:uniq_developerables"`
	DeveloperableID   uint   `gorm:"not null;uniqueIndex:uniq_developerables;index:idx_developerables_owner"`
	DeveloperableType string `gorm:"size:50;not null;uniqueIndex:uniq_developerables;index:idx_developerables_owner"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Publisherable links a Publisher to a game or DLC.
type Publisherable struct {
	ID                uint   `gorm:"primarykey"`
	PublisherID       uint   `gorm:"not null;uniqueIndex:uniq_publisherables"`
	PublisherableID   uint   `gorm:"not null;uniqueIndex:uniq_publisherables;index:idx_publisherables_owner"`
	PublisherableType string `gorm:"size:50;not null;uniqueIndex:uniq_publisherables;index:idx_publisherables_owner"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Languageable links a Language to a game or DLC, with flags for which
// parts of the game carry that language.
type Languageable struct {
	ID               uint   `gorm:"primarykey"`
	LanguageID       uint   `gorm:"not null;uniqueIndex:uniq_languageables"`
	LanguageableID   uint   `gorm:"not null;uniqueIndex:uniq_languageables;index:idx_languageables_owner"`
	LanguageableType string `gorm:"size:50;not null;uniqueIndex:uniq_languageables;index:idx_languageables_owner"`
	Menu             bool   `gorm:"not null;default:false"`
	Dubs             bool   `gorm:"not null;default:false"`
	Subtitles        bool   `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Storeable links a Store to a game or DLC with listing price and URL.
// Price is in cents.
type Storeable struct {
	ID            uint   `gorm:"primarykey"`
	StoreID       uint   `gorm:"not null;uniqueIndex:uniq_storeables"`
	StoreableID   uint   `gorm:"not null;uniqueIndex:uniq_storeables;index:idx_storeables_owner"`
	StoreableType string `gorm:"size:50;not null;uniqueIndex:uniq_storeables;index:idx_storeables_owner"`
	Price         uint   `gorm:"not null;default:0"`
	URL           string `gorm:"size:512"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Requirementable links a RequirementType to a game together with the
// hardware spec for that block. Multi-valued: one game carries several
// requirement blocks.
type Requirementable struct {
	ID                  uint   `gorm:"primarykey"`
	RequirementTypeID   uint   `gorm:"not null;index"`
	RequirementableID   uint   `gorm:"not null;index:idx_requirementables_owner"`
	RequirementableType string `gorm:"size:50;not null;index:idx_requirementables_owner"`
	SO                  string `gorm:"size:255;column:so"`
	DX                  string `gorm:"size:100;column:dx"`
	CPU                 string `gorm:"size:255;column:cpu"`
	RAM                 string `gorm:"size:100;column:ram"`
	GPU                 string `gorm:"size:255;column:gpu"`
	ROM                 string `gorm:"size:100;column:rom"`
	OBS                 string `gorm:"size:512;column:obs"`
	Network             string `gorm:"size:100"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Criticable links a Critic review to a game or DLC. Multi-valued: the
// same outlet may review the same game more than once (re-reviews,
// updated scores).
type Criticable struct {
	ID             uint    `gorm:"primarykey"`
	CriticID       uint    `gorm:"not null;index"`
	CriticableID   uint    `gorm:"not null;index:idx_criticables_owner"`
	CriticableType string  `gorm:"size:50;not null;index:idx_criticables_owner"`
	Rate           float64 `gorm:"not null;default:0"`
	URL            string  `gorm:"size:512"`
	PostedAt       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Crackable links a Cracker to a game and records when the crack landed.
type Crackable struct {
	ID            uint   `gorm:"primarykey"`
	CrackerID     uint   `gorm:"not null;uniqueIndex:uniq_crackables"`
	CrackableID   uint   `gorm:"not null;uniqueIndex:uniq_crackables;index:idx_crackables_owner"`
	CrackableType string `gorm:"size:50;not null;uniqueIndex:uniq_crackables;index:idx_crackables_owner"`
	CrackedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Torrentable links a TorrentProvider listing to a game. Multi-valued.
type Torrentable struct {
	ID                uint   `gorm:"primarykey"`
	TorrentProviderID uint   `gorm:"not null;index"`
	TorrentableID     uint   `gorm:"not null;index:idx_torrentables_owner"`
	TorrentableType   string `gorm:"size:50;not null;index:idx_torrentables_owner"`
	URL               string `gorm:"size:512;not null"`
	PostedAt          *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Rewardable discriminators. Both sides of the row are polymorphic:
// sourceable is what triggered the reward (a mission, a level),
// rewardable is what gets granted (a title).
const (
	SourceableMission = "missions"
	SourceableLevel   = "levels"
	RewardableTitle   = "titles"
)

// Rewardable links a reward source to the thing it grants. Unlike the
// kinds above it has no shared parent table, so it is consumed by the
// gamify service directly rather than through the assoc store.
type Rewardable struct {
	ID             uint   `gorm:"primarykey"`
	SourceableID   uint   `gorm:"not null;index:idx_rewardables_source"`
	SourceableType string `gorm:"size:50;not null;index:idx_rewardables_source"`
	RewardableID   uint   `gorm:"not null"`
	RewardableType string `gorm:"size:50;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
