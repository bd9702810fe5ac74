package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gcstatus/backend/internal/database"
	"gcstatus/backend/internal/models"
)

// MissionResponse is one mission with the user's progress folded in.
type MissionResponse struct {
	ID           uint                         `json:"id"`
	Mission      string                       `json:"mission"`
	Description  string                       `json:"description"`
	Coins        uint                         `json:"coins"`
	Experience   uint                         `json:"experience"`
	Frequency    string                       `json:"frequency"`
	Completed    bool                         `json:"completed"`
	Requirements []MissionRequirementResponse `json:"requirements"`
}

type MissionRequirementResponse struct {
	ID       uint   `json:"id"`
	Task     string `json:"task"`
	Goal     int    `json:"goal"`
	Progress int    `json:"progress"`
}

// GetMissions godoc
// @Summary      List available missions
// @Description  Retrieves every available mission with the authenticated user's progress per requirement.
// @Tags         missions
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} MissionResponse
// @Failure      401 {object} ErrorResponse
// @Router       /missions [get]
func GetMissions(c *gin.Context) {
	userID, _ := c.Get("userID")

	var missions []models.Mission
	err := database.DB.Preload("Requirements").
		Where("status = ? AND for_all = ?", models.MissionAvailable, true).
		Find(&missions).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve missions"})
		return
	}

	response := make([]MissionResponse, 0, len(missions))
	for _, mission := range missions {
		entry := MissionResponse{
			ID:          mission.ID,
			Mission:     mission.Mission,
			Description: mission.Description,
			Coins:       mission.Coins,
			Experience:  mission.Experience,
			Frequency:   mission.Frequency,
		}

		var userMission models.UserMission
		err := database.DB.
			Where("user_id = ? AND mission_id = ?", userID, mission.ID).
			First(&userMission).Error
		entry.Completed = err == nil && userMission.Completed

		for _, req := range mission.Requirements {
			reqEntry := MissionRequirementResponse{
				ID:   req.ID,
				Task: req.Task,
				Goal: req.Goal,
			}
			var progress models.UserMissionProgress
			err := database.DB.
				Where("user_id = ? AND mission_requirement_id = ?", userID, req.ID).
				First(&progress).Error
			if err == nil {
				reqEntry.Progress = progress.Progress
			}
			entry.Requirements = append(entry.Requirements, reqEntry)
		}
		response = append(response, entry)
	}

	c.JSON(http.StatusOK, response)
}

// CompleteMission godoc
// @Summary      Complete a mission
// @Description  Claims a mission: awards its coins and experience, applies level-ups and grants attached title rewards. Fails if requirements are unmet or the mission was already claimed this cycle.
// @Tags         missions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Mission ID"
// @Success      200 {object} gamify.CompletionResult
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Mission unavailable"
// @Failure      422 {object} ErrorResponse "Requirements unmet or already completed"
// @Router       /missions/{id}/complete [post]
func CompleteMission(c *gin.Context) {
	userID, _ := c.Get("userID")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	result, err := Gamify.CompleteMission(userID.(uint), id)
	if err != nil {
		respondGamifyError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
