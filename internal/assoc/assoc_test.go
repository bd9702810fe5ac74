package assoc_test

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gcstatus/backend/internal/assoc"
	"gcstatus/backend/internal/database"
	"gcstatus/backend/internal/models"
	"gcstatus/backend/pkg/logger"
)

func testStore(t *testing.T) (*assoc.Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return assoc.NewStore(db, logger.From(io.Discard)), db
}

func createGame(t *testing.T, db *gorm.DB, slug string) models.Game {
	t.Helper()
	game := models.Game{Title: slug, Slug: slug}
	require.NoError(t, db.Create(&game).Error)
	return game
}

func createDlc(t *testing.T, db *gorm.DB, gameID uint, slug string) models.Dlc {
	t.Helper()
	dlc := models.Dlc{GameID: gameID, Name: slug, Slug: slug}
	require.NoError(t, db.Create(&dlc).Error)
	return dlc
}

func createTags(t *testing.T, db *gorm.DB, names ...string) []models.Tag {
	t.Helper()
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag := models.Tag{Name: name, Slug: name}
		require.NoError(t, db.Create(&tag).Error)
		tags = append(tags, tag)
	}
	return tags
}

func parentIDs(parents []assoc.Parent) []uint {
	ids := make([]uint, 0, len(parents))
	for _, p := range parents {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestSyncAllRoundTrip(t *testing.T) {
	store, db := testStore(t)
	game := createGame(t, db, "elden-ring")
	tags := createTags(t, db, "souls-like", "open-world", "hard")
	owner := assoc.GameRef(game.ID)

	err := store.SyncAll(owner, assoc.Tags, []uint{tags[0].ID, tags[1].ID})
	require.NoError(t, err)

	parents, err := store.ListFor(owner, assoc.Tags)
	require.NoError(t, err)
	assert.Equal(t, []uint{tags[0].ID, tags[1].ID}, parentIDs(parents))
	assert.Equal(t, "souls-like", parents[0].Name())
	assert.Equal(t, "souls-like", parents[0].Slug())

	// Replace the set: one kept, one dropped, one added.
	err = store.SyncAll(owner, assoc.Tags, []uint{tags[2].ID, tags[0].ID})
	require.NoError(t, err)

	parents, err = store.ListFor(owner, assoc.Tags)
	require.NoError(t, err)
	// The kept association keeps its original position; the new one
	// lands at the end.
	assert.Equal(t, []uint{tags[0].ID, tags[2].ID}, parentIDs(parents))
}

func TestSyncAllIdempotent(t *testing.T) {
	store, db := testStore(t)
	game := createGame(t, db, "hades")
	tags := createTags(t, db, "roguelite", "action")
	owner := assoc.GameRef(game.ID)
	ids := []uint{tags[0].ID, tags[1].ID}

	require.NoError(t, store.SyncAll(owner, assoc.Tags, ids))
	require.NoError(t, store.SyncAll(owner, assoc.Tags, ids))

	var count int64
	require.NoError(t, db.Model(&models.Taggable{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestSyncAllEmptySetDetachesAll(t *testing.T) {
	store, db := testStore(t)
	game := createGame(t, db, "celeste")
	tags := createTags(t, db, "platformer", "pixel-art")
	owner := assoc.GameRef(game.ID)

	require.NoError(t, store.SyncAll(owner, assoc.Tags, []uint{tags[0].ID, tags[1].ID}))
	require.NoError(t, store.SyncAll(owner, assoc.Tags, nil))

	parents, err := store.ListFor(owner, assoc.Tags)
	require.NoError(t, err)
	assert.Empty(t, parents)
}

func TestSyncAllRejectsUnknownParent(t *testing.T) {
	store, db := testStore(t)
	game := createGame(t, db, "doom")
	tags := createTags(t, db, "shooter")
	owner := assoc.GameRef(game.ID)

	require.NoError(t, store.SyncAll(owner, assoc.Tags, []uint{tags[0].ID}))

	err := store.SyncAll(owner, assoc.Tags, []uint{tags[0].ID, 999})
	require.Error(t, err)
	assert.ErrorIs(t, err, assoc.ErrInvalidAssociationTarget)
	assert.Contains(t, err.Error(), "999")

	// The failed sync must not have touched the existing set.
	parents, err := store.ListFor(owner, assoc.Tags)
	require.NoError(t, err)
	assert.Equal(t, []uint{tags[0].ID}, parentIDs(parents))
}

func TestOwnersAreIsolated(t *testing.T) {
	store, db := testStore(t)
	game := createGame(t, db, "witcher-3")
	dlc := createDlc(t, db, game.ID, "blood-and-wine")
	tags := createTags(t, db, "rpg", "expansion")

	require.NoError(t, store.SyncAll(assoc.GameRef(game.ID), assoc.Tags, []uint{tags[0].ID}))
	require.NoError(t, store.SyncAll(assoc.DlcRef(dlc.ID), assoc.Tags, []uint{tags[1].ID}))

	gameParents, err := store.ListFor(assoc.GameRef(game.ID), assoc.Tags)
	require.NoError(t, err)
	assert.Equal(t, []uint{tags[0].ID}, parentIDs(gameParents))

	dlcParents, err := store.ListFor(assoc.DlcRef(dlc.ID), assoc.Tags)
	require.NoError(t, err)
	assert.Equal(t, []uint{tags[1].ID}, parentIDs(dlcParents))

	// Even when game and DLC share a numeric id, detaching one side
	// leaves the other untouched.
	require.NoError(t, store.DetachAll(assoc.DlcRef(dlc.ID), assoc.Tags))
	gameParents, err = store.ListFor(assoc.GameRef(game.ID), assoc.Tags)
	require.NoError(t, err)
	assert.Len(t, gameParents, 1)
}

func TestListForSkipsSoftDeletedParents(t *testing.T) {
	store, db := testStore(t)
	game := createGame(t, db, "stray")
	tags := createTags(t, db, "cats", "adventure")
	owner := assoc.GameRef(game.ID)

	require.NoError(t, store.SyncAll(owner, assoc.Tags, []uint{tags[0].ID, tags[1].ID}))
	require.NoError(t, db.Delete(&models.Tag{}, tags[0].ID).Error)

	parents, err := store.ListFor(owner, assoc.Tags)
	require.NoError(t, err)
	assert.Equal(t, []uint{tags[1].ID}, parentIDs(parents))

	// The association row survives the parent's soft delete.
	var count int64
	require.NoError(t, db.Model(&models.Taggable{}).Where("tag_id = ?", tags[0].ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAttachOneRejectsDuplicateOnUniqueKind(t *testing.T) {
	store, db := testStore(t)
	game := createGame(t, db, "factorio")
	shop := models.Store{Name: "Steam", Slug: "steam"}
	require.NoError(t, db.Create(&shop).Error)
	owner := assoc.GameRef(game.ID)

	rec, err := store.AttachOne(owner, assoc.Stores, shop.ID, map[string]any{
		"price": 3500,
		"url":   "https://store.steampowered.com/app/427520",
	})
	require.NoError(t, err)
	assert.NotZero(t, rec.ID)
	assert.Equal(t, "stores", rec.Kind)
	assert.Equal(t, shop.ID, rec.ParentID)

	_, err = store.AttachOne(owner, assoc.Stores, shop.ID, map[string]any{"price": 2999})
	require.Error(t, err)
	assert.ErrorIs(t, err, assoc.ErrDuplicateAssociation)
}

func TestAttachOneMultiValuedKindAllowsRepeats(t *testing.T) {
	store, db := testStore(t)
	game := createGame(t, db, "cyberpunk-2077")
	critic := models.Critic{Name: "IGN", Slug: "ign"}
	require.NoError(t, db.Create(&critic).Error)
	owner := assoc.GameRef(game.ID)

	_, err := store.AttachOne(owner, assoc.Critics, critic.ID, map[string]any{"rate": 6.5})
	require.NoError(t, err)
	_, err = store.AttachOne(owner, assoc.Critics, critic.ID, map[string]any{"rate": 9.0})
	require.NoError(t, err)

	parents, err := store.ListFor(owner, assoc.Critics)
	require.NoError(t, err)
	require.Len(t, parents, 2)
	assert.EqualValues(t, 6.5, parents[0].Pivot["rate"])
	assert.EqualValues(t, 9.0, parents[1].Pivot["rate"])
}

func TestAttachOneRejectsUnknownExtraColumn(t *testing.T) {
	store, db := testStore(t)
	game := createGame(t, db, "terraria")
	tags := createTags(t, db, "sandbox")

	_, err := store.AttachOne(assoc.GameRef(game.ID), assoc.Tags, tags[0].ID, map[string]any{"price": 999})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pivot column")
}

func TestAttachOneRejectsUnknownParent(t *testing.T) {
	store, db := testStore(t)
	game := createGame(t, db, "gris")

	_, err := store.AttachOne(assoc.GameRef(game.ID), assoc.Tags, 42, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, assoc.ErrInvalidAssociationTarget)
}

func TestUnsupportedOwnerType(t *testing.T) {
	store, db := testStore(t)
	game := createGame(t, db, "rimworld")
	dlc := createDlc(t, db, game.ID, "royalty")

	// Torrents only accept games.
	_, err := store.ListFor(assoc.DlcRef(dlc.ID), assoc.Torrents)
	require.Error(t, err)
	assert.ErrorIs(t, err, assoc.ErrUnsupportedOwnerType)

	err = store.SyncAll(assoc.DlcRef(dlc.ID), assoc.Requirements, []uint{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, assoc.ErrUnsupportedOwnerType)
}

func TestDetachOne(t *testing.T) {
	store, db := testStore(t)
	game := createGame(t, db, "dishonored")
	tags := createTags(t, db, "stealth", "immersive-sim")
	owner := assoc.GameRef(game.ID)

	require.NoError(t, store.SyncAll(owner, assoc.Tags, []uint{tags[0].ID, tags[1].ID}))
	require.NoError(t, store.DetachOne(owner, assoc.Tags, tags[0].ID))

	parents, err := store.ListFor(owner, assoc.Tags)
	require.NoError(t, err)
	assert.Equal(t, []uint{tags[1].ID}, parentIDs(parents))

	// Detaching an absent association is a no-op.
	require.NoError(t, store.DetachOne(owner, assoc.Tags, tags[0].ID))
}

func TestDetachOneRemovesEveryRecordOfMultiValuedPair(t *testing.T) {
	store, db := testStore(t)
	game := createGame(t, db, "baldurs-gate-3")
	critic := models.Critic{Name: "GameSpot", Slug: "gamespot"}
	require.NoError(t, db.Create(&critic).Error)
	owner := assoc.GameRef(game.ID)

	_, err := store.AttachOne(owner, assoc.Critics, critic.ID, map[string]any{"rate": 8.0})
	require.NoError(t, err)
	_, err = store.AttachOne(owner, assoc.Critics, critic.ID, map[string]any{"rate": 10.0})
	require.NoError(t, err)

	require.NoError(t, store.DetachOne(owner, assoc.Critics, critic.ID))

	parents, err := store.ListFor(owner, assoc.Critics)
	require.NoError(t, err)
	assert.Empty(t, parents)
}

func TestLanguagePivotFlags(t *testing.T) {
	store, db := testStore(t)
	game := createGame(t, db, "persona-5")
	lang := models.Language{Name: "Japanese", Slug: "japanese", ISO: "ja"}
	require.NoError(t, db.Create(&lang).Error)
	owner := assoc.GameRef(game.ID)

	_, err := store.AttachOne(owner, assoc.Languages, lang.ID, map[string]any{
		"menu": true, "dubs": true, "subtitles": false,
	})
	require.NoError(t, err)

	parents, err := store.ListFor(owner, assoc.Languages)
	require.NoError(t, err)
	require.Len(t, parents, 1)
	assert.EqualValues(t, lang.ID, parents[0].ID)
	assert.Contains(t, parents[0].Pivot, "menu")
	assert.Contains(t, parents[0].Pivot, "dubs")
}

func TestRequirementPivotBlock(t *testing.T) {
	store, db := testStore(t)
	game := createGame(t, db, "starfield")
	reqType := models.RequirementType{OS: "windows", Potential: "minimum"}
	require.NoError(t, db.Create(&reqType).Error)
	owner := assoc.GameRef(game.ID)

	_, err := store.AttachOne(owner, assoc.Requirements, reqType.ID, map[string]any{
		"so":  "Windows 11 64-bit",
		"cpu": "Ryzen 5 3600X",
		"ram": "16 GB",
		"gpu": "RTX 2080",
		"rom": "125 GB",
	})
	require.NoError(t, err)

	parents, err := store.ListFor(owner, assoc.Requirements)
	require.NoError(t, err)
	require.Len(t, parents, 1)
	assert.EqualValues(t, reqType.ID, parents[0].ID)
	assert.Equal(t, "Windows 11 64-bit", parents[0].Pivot["so"])
	assert.Equal(t, "Ryzen 5 3600X", parents[0].Pivot["cpu"])
}

func TestKindRegistry(t *testing.T) {
	kind, ok := assoc.KindByName("tags")
	require.True(t, ok)
	assert.Equal(t, "taggables", kind.Table)
	assert.True(t, kind.Allows(assoc.OwnerGame))
	assert.True(t, kind.Allows(assoc.OwnerDlc))

	_, ok = assoc.KindByName("reviews")
	assert.False(t, ok)

	assert.Len(t, assoc.KindNames(), 12)

	_, ok = assoc.OwnerRefFor("users", 1)
	assert.False(t, ok)
	ref, ok := assoc.OwnerRefFor("dlcs", 7)
	require.True(t, ok)
	assert.Equal(t, assoc.OwnerDlc, ref.Type)
	assert.EqualValues(t, 7, ref.ID)
}
