package gamify_test

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gcstatus/backend/internal/database"
	"gcstatus/backend/internal/gamify"
	"gcstatus/backend/internal/models"
	"gcstatus/backend/pkg/logger"
)

func testService(t *testing.T) (*gamify.Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return gamify.NewService(db, logger.From(io.Discard)), db
}

func createUser(t *testing.T, db *gorm.DB, nickname string) models.User {
	t.Helper()
	level := models.Level{Level: 1, Experience: 0}
	require.NoError(t, db.Where(models.Level{Level: 1}).FirstOrCreate(&level).Error)
	user := models.User{
		Nickname:     nickname,
		Email:        nickname + "@example.com",
		PasswordHash: "x",
		LevelID:      level.ID,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func balanceOf(t *testing.T, svc *gamify.Service, userID uint) uint {
	t.Helper()
	wallet, err := svc.Wallet(userID)
	require.NoError(t, err)
	return wallet.Balance
}

func TestCreditAndDebit(t *testing.T) {
	svc, db := testService(t)
	user := createUser(t, db, "alice")

	require.NoError(t, svc.Credit(user.ID, 100, "welcome bonus"))
	assert.EqualValues(t, 100, balanceOf(t, svc, user.ID))

	require.NoError(t, svc.Debit(user.ID, 40, "bought something"))
	assert.EqualValues(t, 60, balanceOf(t, svc, user.ID))

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestDebitInsufficientFunds(t *testing.T) {
	svc, db := testService(t)
	user := createUser(t, db, "bob")

	require.NoError(t, svc.Credit(user.ID, 10, "small bonus"))

	err := svc.Debit(user.ID, 50, "too expensive")
	require.Error(t, err)
	assert.ErrorIs(t, err, gamify.ErrInsufficientFunds)

	// The failed debit leaves the balance and the ledger untouched.
	assert.EqualValues(t, 10, balanceOf(t, svc, user.ID))
	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTrackCapsAtGoal(t *testing.T) {
	svc, db := testService(t)
	user := createUser(t, db, "carol")

	mission := models.Mission{Mission: "View games", Coins: 10}
	require.NoError(t, db.Create(&mission).Error)
	req := models.MissionRequirement{MissionID: mission.ID, Task: "View 3 games", Key: "games_viewed", Goal: 3}
	require.NoError(t, db.Create(&req).Error)

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Track(user.ID, "games_viewed", 1))
	}

	var progress models.UserMissionProgress
	require.NoError(t, db.Where("user_id = ? AND mission_requirement_id = ?", user.ID, req.ID).First(&progress).Error)
	assert.Equal(t, 3, progress.Progress)
	assert.True(t, progress.Completed)
}

func TestCompleteMission(t *testing.T) {
	svc, db := testService(t)
	user := createUser(t, db, "dave")

	mission := models.Mission{Mission: "First steps", Coins: 50, Experience: 120}
	require.NoError(t, db.Create(&mission).Error)
	req := models.MissionRequirement{MissionID: mission.ID, Task: "View a game", Key: "games_viewed", Goal: 1}
	require.NoError(t, db.Create(&req).Error)

	// Requirements unmet.
	_, err := svc.CompleteMission(user.ID, mission.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, gamify.ErrMissionRequirementsUnmet)

	require.NoError(t, svc.Track(user.ID, "games_viewed", 1))

	result, err := svc.CompleteMission(user.ID, mission.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 50, result.Coins)
	assert.EqualValues(t, 120, result.Experience)
	assert.EqualValues(t, 50, balanceOf(t, svc, user.ID))

	// One-time missions cannot be claimed twice.
	_, err = svc.CompleteMission(user.ID, mission.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, gamify.ErrMissionAlreadyCompleted)
}

func TestCompleteMissionLevelsUpAndGrantsRewards(t *testing.T) {
	svc, db := testService(t)
	user := createUser(t, db, "erin")

	level2 := models.Level{Level: 2, Experience: 100, Coins: 25}
	level3 := models.Level{Level: 3, Experience: 300, Coins: 0}
	require.NoError(t, db.Create(&level2).Error)
	require.NoError(t, db.Create(&level3).Error)

	title := models.Title{Title: "Rising Star"}
	require.NoError(t, db.Create(&title).Error)
	require.NoError(t, db.Create(&models.Rewardable{
		SourceableID:   level2.ID,
		SourceableType: models.SourceableLevel,
		RewardableID:   title.ID,
		RewardableType: models.RewardableTitle,
	}).Error)

	mission := models.Mission{Mission: "Grind", Coins: 10, Experience: 150}
	require.NoError(t, db.Create(&mission).Error)

	result, err := svc.CompleteMission(user.ID, mission.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, result.LevelsGained)
	assert.Equal(t, []string{"Rising Star"}, result.TitlesGranted)

	// Mission coins plus the level-up award.
	assert.EqualValues(t, 35, balanceOf(t, svc, user.ID))

	var refreshed models.User
	require.NoError(t, db.Preload("Level").First(&refreshed, user.ID).Error)
	assert.EqualValues(t, 150, refreshed.Experience)
	require.NotNil(t, refreshed.Level)
	assert.EqualValues(t, 2, refreshed.Level.Level)

	var owned models.UserTitle
	require.NoError(t, db.Where("user_id = ? AND title_id = ?", user.ID, title.ID).First(&owned).Error)
}

func TestCompleteMissionUnavailable(t *testing.T) {
	svc, db := testService(t)
	user := createUser(t, db, "frank")

	mission := models.Mission{Mission: "Retired", Status: models.MissionUnavailable}
	require.NoError(t, db.Create(&mission).Error)

	_, err := svc.CompleteMission(user.ID, mission.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, gamify.ErrMissionUnavailable)

	_, err = svc.CompleteMission(user.ID, 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, gamify.ErrMissionUnavailable)
}

func TestBuyTitle(t *testing.T) {
	svc, db := testService(t)
	user := createUser(t, db, "grace")

	cost := uint(80)
	title := models.Title{Title: "Collector", Cost: &cost, Purchasable: true}
	require.NoError(t, db.Create(&title).Error)

	err := svc.BuyTitle(user.ID, title.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, gamify.ErrInsufficientFunds)

	require.NoError(t, svc.Credit(user.ID, 100, "allowance"))
	require.NoError(t, svc.BuyTitle(user.ID, title.ID))
	assert.EqualValues(t, 20, balanceOf(t, svc, user.ID))

	err = svc.BuyTitle(user.ID, title.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, gamify.ErrTitleAlreadyOwned)
}

func TestBuyTitleNotPurchasable(t *testing.T) {
	svc, db := testService(t)
	user := createUser(t, db, "heidi")

	title := models.Title{Title: "Founder"}
	require.NoError(t, db.Create(&title).Error)

	err := svc.BuyTitle(user.ID, title.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, gamify.ErrTitleNotPurchasable)
}

func TestToggleTitle(t *testing.T) {
	svc, db := testService(t)
	user := createUser(t, db, "ivan")

	first := models.Title{Title: "Speedrunner"}
	second := models.Title{Title: "Completionist"}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	err := svc.ToggleTitle(user.ID, first.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, gamify.ErrTitleNotOwned)

	require.NoError(t, db.Create(&models.UserTitle{UserID: user.ID, TitleID: first.ID}).Error)
	require.NoError(t, db.Create(&models.UserTitle{UserID: user.ID, TitleID: second.ID}).Error)

	require.NoError(t, svc.ToggleTitle(user.ID, first.ID))
	require.NoError(t, svc.ToggleTitle(user.ID, second.ID))

	// Enabling the second disables the first.
	var enabled []models.UserTitle
	require.NoError(t, db.Where("user_id = ? AND enabled = ?", user.ID, true).Find(&enabled).Error)
	require.Len(t, enabled, 1)
	assert.Equal(t, second.ID, enabled[0].TitleID)

	// Toggling the enabled title turns it off.
	require.NoError(t, svc.ToggleTitle(user.ID, second.ID))
	require.NoError(t, db.Where("user_id = ? AND enabled = ?", user.ID, true).Find(&enabled).Error)
	assert.Empty(t, enabled)
}
