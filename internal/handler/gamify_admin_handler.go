package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gcstatus/backend/internal/database"
	"gcstatus/backend/internal/models"
)

// Admin CRUD for the gamification reference data: the level ladder,
// titles, missions and reward links.

// LevelInput is the admin payload for one rung of the level ladder.
type LevelInput struct {
	Level      uint `json:"level" binding:"required"`
	Experience uint `json:"experience" binding:"required"`
	Coins      uint `json:"coins"`
}

func CreateLevel(c *gin.Context) {
	var input LevelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	level := models.Level{Level: input.Level, Experience: input.Experience, Coins: input.Coins}
	if err := database.DB.Create(&level).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Level already exists or another error occurred"})
		return
	}
	c.JSON(http.StatusCreated, level)
}

func GetLevels(c *gin.Context)   { listTaxonomy[models.Level](c) }
func DeleteLevel(c *gin.Context) { deleteEntity[models.Level](c) }

// TitleInput is the admin payload for titles.
type TitleInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Cost        *uint  `json:"cost"`
	Purchasable bool   `json:"purchasable"`
	Status      string `json:"status"`
}

func CreateTitle(c *gin.Context) {
	var input TitleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	title := models.Title{
		Title:       input.Title,
		Description: input.Description,
		Cost:        input.Cost,
		Purchasable: input.Purchasable,
		Status:      input.Status,
	}
	if title.Status == "" {
		title.Status = models.TitleAvailable
	}
	if err := database.DB.Create(&title).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Title already exists or another error occurred"})
		return
	}
	c.JSON(http.StatusCreated, title)
}

func GetAllTitles(c *gin.Context) { listTaxonomy[models.Title](c) }

func UpdateTitle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input TitleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var title models.Title
	if err := database.DB.First(&title, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Title not found"})
		return
	}
	title.Title = input.Title
	title.Description = input.Description
	title.Cost = input.Cost
	title.Purchasable = input.Purchasable
	if input.Status != "" {
		title.Status = input.Status
	}
	if err := database.DB.Save(&title).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to update title"})
		return
	}
	c.JSON(http.StatusOK, title)
}

func DeleteTitle(c *gin.Context) { deleteEntity[models.Title](c) }

// MissionInput creates a mission together with its requirements.
type MissionInput struct {
	Mission      string                    `json:"mission" binding:"required"`
	Description  string                    `json:"description"`
	Coins        uint                      `json:"coins"`
	Experience   uint                      `json:"experience"`
	Frequency    string                    `json:"frequency"`
	ForAll       *bool                     `json:"for_all"`
	Requirements []MissionRequirementInput `json:"requirements"`
}

type MissionRequirementInput struct {
	Task string `json:"task" binding:"required"`
	Key  string `json:"key" binding:"required"`
	Goal int    `json:"goal" binding:"required"`
}

func CreateMission(c *gin.Context) {
	var input MissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mission := models.Mission{
		Mission:     input.Mission,
		Description: input.Description,
		Coins:       input.Coins,
		Experience:  input.Experience,
		Frequency:   input.Frequency,
		ForAll:      input.ForAll == nil || *input.ForAll,
	}
	if mission.Frequency == "" {
		mission.Frequency = models.MissionOneTime
	}
	for _, req := range input.Requirements {
		mission.Requirements = append(mission.Requirements, models.MissionRequirement{
			Task: req.Task,
			Key:  req.Key,
			Goal: req.Goal,
		})
	}

	if err := database.DB.Create(&mission).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to create mission"})
		return
	}
	c.JSON(http.StatusCreated, mission)
}

func GetAllMissions(c *gin.Context) { listTaxonomy[models.Mission](c) }
func DeleteMission(c *gin.Context)  { deleteEntity[models.Mission](c) }

// RewardInput links a reward source (mission, level) to what it grants
// (title). Both sides are polymorphic discriminator + id pairs.
type RewardInput struct {
	SourceableType string `json:"sourceable_type" binding:"required"`
	SourceableID   uint   `json:"sourceable_id" binding:"required"`
	RewardableType string `json:"rewardable_type" binding:"required"`
	RewardableID   uint   `json:"rewardable_id" binding:"required"`
}

// CreateReward godoc
// @Summary      Create a reward link
// @Description  Links a mission or level to a title it grants. Both sides are validated against their registered discriminators and existing rows.
// @Tags         admin-rewards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body RewardInput true "Reward link"
// @Success      201  {object}  models.Rewardable
// @Failure      400  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse "Unknown discriminator or target"
// @Router       /admin/rewards [post]
func CreateReward(c *gin.Context) {
	var input RewardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sourceErr error
	switch input.SourceableType {
	case models.SourceableMission:
		sourceErr = database.DB.First(&models.Mission{}, input.SourceableID).Error
	case models.SourceableLevel:
		sourceErr = database.DB.First(&models.Level{}, input.SourceableID).Error
	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unknown sourceable type"})
		return
	}
	if sourceErr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Reward source not found"})
		return
	}

	if input.RewardableType != models.RewardableTitle {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unknown rewardable type"})
		return
	}
	if err := database.DB.First(&models.Title{}, input.RewardableID).Error; err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Reward target not found"})
		return
	}

	reward := models.Rewardable{
		SourceableID:   input.SourceableID,
		SourceableType: input.SourceableType,
		RewardableID:   input.RewardableID,
		RewardableType: input.RewardableType,
	}
	if err := database.DB.Create(&reward).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reward"})
		return
	}
	c.JSON(http.StatusCreated, reward)
}

func DeleteReward(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	result := database.DB.Unscoped().Delete(&models.Rewardable{}, id)
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reward deleted"})
}
