// Package gamify implements the reward economy: wallets with recorded
// transactions, the experience/level ladder, missions, and titles.
// Rewards attached through rewardable rows (mission -> title,
// level -> title) are granted here. Every state change runs in one
// transaction, mirroring the association store's write discipline.
package gamify

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"gcstatus/backend/internal/models"
)

// Service owns all wallet, mission, level and title state changes.
type Service struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewService wraps a gorm handle and a logger into a gamify service.
func NewService(db *gorm.DB, log zerolog.Logger) *Service {
	return &Service{db: db, log: log}
}

// CompletionResult reports what a mission completion awarded.
type CompletionResult struct {
	Coins         uint     `json:"coins"`
	Experience    uint     `json:"experience"`
	LevelsGained  []uint   `json:"levels_gained,omitempty"`
	TitlesGranted []string `json:"titles_granted,omitempty"`
}

// Credit adds coins to the user's wallet and records the transaction.
func (s *Service) Credit(userID, amount uint, description string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.credit(tx, userID, amount, description)
	})
}

// Debit removes coins from the user's wallet, failing with
// ErrInsufficientFunds when the balance does not cover the amount.
func (s *Service) Debit(userID, amount uint, description string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.debit(tx, userID, amount, description)
	})
}

// Wallet returns the user's wallet, creating an empty one on first use.
func (s *Service) Wallet(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := s.db.Where(models.Wallet{UserID: userID}).FirstOrCreate(&wallet).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Track increments every progress counter of the user whose mission
// requirement listens on the given key. Counters cap at their goal and
// flip to completed when they reach it.
func (s *Service) Track(userID uint, key string, delta int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var reqs []models.MissionRequirement
		if err := tx.Where("key = ?", key).Find(&reqs).Error; err != nil {
			return err
		}
		for _, req := range reqs {
			var progress models.UserMissionProgress
			err := tx.Where(models.UserMissionProgress{
				UserID:               userID,
				MissionRequirementID: req.ID,
			}).FirstOrCreate(&progress).Error
			if err != nil {
				return err
			}
			if progress.Completed {
				continue
			}
			progress.Progress += delta
			if progress.Progress >= req.Goal {
				progress.Progress = req.Goal
				progress.Completed = true
			}
			if err := tx.Save(&progress).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CompleteMission claims a mission for the user: awards its coins and
// experience, applies level-ups against the level ladder, and grants
// any titles attached to the mission or to reached levels through
// rewardable rows. All-or-nothing.
func (s *Service) CompleteMission(userID, missionID uint) (*CompletionResult, error) {
	var result CompletionResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var mission models.Mission
		if err := tx.Preload("Requirements").First(&mission, missionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMissionUnavailable
			}
			return err
		}
		if mission.Status != models.MissionAvailable || !mission.ForAll {
			return ErrMissionUnavailable
		}

		var userMission models.UserMission
		err := tx.Where(models.UserMission{UserID: userID, MissionID: mission.ID}).
			FirstOrCreate(&userMission).Error
		if err != nil {
			return err
		}
		if userMission.Completed && !dueAgain(mission.Frequency, userMission.LastCompletedAt) {
			return ErrMissionAlreadyCompleted
		}

		for _, req := range mission.Requirements {
			var progress models.UserMissionProgress
			err := tx.Where(models.UserMissionProgress{
				UserID:               userID,
				MissionRequirementID: req.ID,
			}).First(&progress).Error
			if err != nil || !progress.Completed {
				return fmt.Errorf("%w: %s", ErrMissionRequirementsUnmet, req.Task)
			}
		}

		if mission.Coins > 0 {
			desc := fmt.Sprintf("Completed mission: %s", mission.Mission)
			if err := s.credit(tx, userID, mission.Coins, desc); err != nil {
				return err
			}
			result.Coins = mission.Coins
		}

		if mission.Experience > 0 {
			gained, err := s.addExperience(tx, userID, mission.Experience, &result)
			if err != nil {
				return err
			}
			result.Experience = mission.Experience
			result.LevelsGained = gained
		}

		granted, err := s.grantRewards(tx, userID, models.SourceableMission, mission.ID)
		if err != nil {
			return err
		}
		result.TitlesGranted = append(result.TitlesGranted, granted...)

		now := time.Now()
		userMission.Completed = true
		userMission.LastCompletedAt = &now
		if err := tx.Save(&userMission).Error; err != nil {
			return err
		}

		// Periodic missions start a fresh cycle.
		if mission.Frequency != models.MissionOneTime {
			for _, req := range mission.Requirements {
				err := tx.Model(&models.UserMissionProgress{}).
					Where("user_id = ? AND mission_requirement_id = ?", userID, req.ID).
					Updates(map[string]any{"progress": 0, "completed": false}).Error
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Uint("user_id", userID).
		Uint("mission_id", missionID).
		Uint("coins", result.Coins).
		Uint("experience", result.Experience).
		Msg("mission completed")
	return &result, nil
}

// BuyTitle debits the title's cost from the user's wallet and marks the
// title as owned.
func (s *Service) BuyTitle(userID, titleID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var title models.Title
		if err := tx.First(&title, titleID).Error; err != nil {
			return err
		}
		if !title.Purchasable || title.Cost == nil || title.Status != models.TitleAvailable {
			return ErrTitleNotPurchasable
		}

		var n int64
		err := tx.Model(&models.UserTitle{}).
			Where("user_id = ? AND title_id = ?", userID, titleID).
			Count(&n).Error
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrTitleAlreadyOwned
		}

		desc := fmt.Sprintf("Bought title: %s", title.Title)
		if err := s.debit(tx, userID, *title.Cost, desc); err != nil {
			return err
		}
		return tx.Create(&models.UserTitle{UserID: userID, TitleID: titleID}).Error
	})
}

// ToggleTitle enables the given owned title for display and disables
// every other one.
func (s *Service) ToggleTitle(userID, titleID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var owned models.UserTitle
		err := tx.Where("user_id = ? AND title_id = ?", userID, titleID).First(&owned).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTitleNotOwned
			}
			return err
		}
		if owned.Enabled {
			return tx.Model(&owned).Update("enabled", false).Error
		}
		err = tx.Model(&models.UserTitle{}).
			Where("user_id = ? AND enabled = ?", userID, true).
			Update("enabled", false).Error
		if err != nil {
			return err
		}
		return tx.Model(&owned).Update("enabled", true).Error
	})
}

func (s *Service) credit(tx *gorm.DB, userID, amount uint, description string) error {
	wallet, err := walletFor(tx, userID)
	if err != nil {
		return err
	}
	if err := tx.Model(wallet).Update("balance", gorm.Expr("balance + ?", amount)).Error; err != nil {
		return err
	}
	return s.record(tx, userID, models.TransactionAddition, amount, description)
}

func (s *Service) debit(tx *gorm.DB, userID, amount uint, description string) error {
	wallet, err := walletFor(tx, userID)
	if err != nil {
		return err
	}
	if wallet.Balance < amount {
		return fmt.Errorf("%w: balance %d, need %d", ErrInsufficientFunds, wallet.Balance, amount)
	}
	if err := tx.Model(wallet).Update("balance", gorm.Expr("balance - ?", amount)).Error; err != nil {
		return err
	}
	return s.record(tx, userID, models.TransactionSubtraction, amount, description)
}

func (s *Service) record(tx *gorm.DB, userID uint, typeName string, amount uint, description string) error {
	var txType models.TransactionType
	err := tx.Where(models.TransactionType{Type: typeName}).FirstOrCreate(&txType).Error
	if err != nil {
		return err
	}
	return tx.Create(&models.Transaction{
		UserID:            userID,
		TransactionTypeID: txType.ID,
		Amount:            amount,
		Description:       description,
	}).Error
}

// addExperience adds XP to the user and walks the level ladder: every
// newly reached level awards its coins and its rewardable titles.
func (s *Service) addExperience(tx *gorm.DB, userID, amount uint, result *CompletionResult) ([]uint, error) {
	var user models.User
	if err := tx.Preload("Level").First(&user, userID).Error; err != nil {
		return nil, err
	}
	user.Experience += amount

	var gained []uint
	current := uint(1)
	if user.Level != nil {
		current = user.Level.Level
	}
	for {
		var next models.Level
		err := tx.Where("level = ?", current+1).First(&next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
		if user.Experience < next.Experience {
			break
		}
		current = next.Level
		user.LevelID = next.ID
		gained = append(gained, next.Level)

		if next.Coins > 0 {
			desc := fmt.Sprintf("Reached level %d", next.Level)
			if err := s.credit(tx, userID, next.Coins, desc); err != nil {
				return nil, err
			}
		}
		granted, err := s.grantRewards(tx, userID, models.SourceableLevel, next.ID)
		if err != nil {
			return nil, err
		}
		result.TitlesGranted = append(result.TitlesGranted, granted...)
	}

	err := tx.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]any{"experience": user.Experience, "level_id": user.LevelID}).Error
	if err != nil {
		return nil, err
	}
	return gained, nil
}

// grantRewards resolves rewardable rows for the source and hands out
// every title among them. Already-owned titles are skipped quietly.
func (s *Service) grantRewards(tx *gorm.DB, userID uint, sourceType string, sourceID uint) ([]string, error) {
	var rewards []models.Rewardable
	err := tx.Where("sourceable_type = ? AND sourceable_id = ?", sourceType, sourceID).
		Find(&rewards).Error
	if err != nil {
		return nil, err
	}

	var granted []string
	for _, reward := range rewards {
		if reward.RewardableType != models.RewardableTitle {
			continue
		}
		var title models.Title
		if err := tx.First(&title, reward.RewardableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		var userTitle models.UserTitle
		err := tx.Where(models.UserTitle{UserID: userID, TitleID: title.ID}).
			FirstOrCreate(&userTitle).Error
		if err != nil {
			return nil, err
		}
		granted = append(granted, title.Title)
	}
	return granted, nil
}

func walletFor(tx *gorm.DB, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := tx.Where(models.Wallet{UserID: userID}).FirstOrCreate(&wallet).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// dueAgain reports whether a completed periodic mission can be claimed
// again given its frequency and last completion time.
func dueAgain(frequency string, last *time.Time) bool {
	if last == nil {
		return true
	}
	switch frequency {
	case models.MissionDaily:
		return time.Since(*last) >= 24*time.Hour
	case models.MissionWeekly:
		return time.Since(*last) >= 7*24*time.Hour
	case models.MissionMonthly:
		return time.Since(*last) >= 30*24*time.Hour
	}
	return false
}
