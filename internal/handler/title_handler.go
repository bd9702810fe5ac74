package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gcstatus/backend/internal/database"
	"gcstatus/backend/internal/models"
)

// TitleResponse is one title with ownership state for the requesting
// user.
type TitleResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Cost        *uint  `json:"cost,omitempty"`
	Purchasable bool   `json:"purchasable"`
	Owned       bool   `json:"owned"`
	Enabled     bool   `json:"enabled"`
}

// GetTitles godoc
// @Summary      List titles
// @Description  Retrieves every available title with the authenticated user's ownership state.
// @Tags         titles
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} TitleResponse
// @Router       /titles [get]
func GetTitles(c *gin.Context) {
	userID, _ := c.Get("userID")

	var titles []models.Title
	err := database.DB.Where("status = ?", models.TitleAvailable).Find(&titles).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve titles"})
		return
	}

	var owned []models.UserTitle
	database.DB.Where("user_id = ?", userID).Find(&owned)
	ownership := make(map[uint]models.UserTitle, len(owned))
	for _, userTitle := range owned {
		ownership[userTitle.TitleID] = userTitle
	}

	response := make([]TitleResponse, 0, len(titles))
	for _, title := range titles {
		userTitle, has := ownership[title.ID]
		response = append(response, TitleResponse{
			ID:          title.ID,
			Title:       title.Title,
			Description: title.Description,
			Cost:        title.Cost,
			Purchasable: title.Purchasable,
			Owned:       has,
			Enabled:     has && userTitle.Enabled,
		})
	}
	c.JSON(http.StatusOK, response)
}

// BuyTitle godoc
// @Summary      Buy a title
// @Description  Debits the title's cost from the wallet and grants the title.
// @Tags         titles
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Title ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse "Not purchasable, already owned or insufficient funds"
// @Router       /titles/{id}/buy [post]
func BuyTitle(c *gin.Context) {
	userID, _ := c.Get("userID")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := Gamify.BuyTitle(userID.(uint), id); err != nil {
		respondGamifyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Title purchased"})
}

// ToggleTitle godoc
// @Summary      Toggle a title for display
// @Description  Enables the owned title (disabling any other) or disables it when already enabled.
// @Tags         titles
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Title ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} ErrorResponse "Title not owned"
// @Router       /users/me/titles/{id}/toggle [put]
func ToggleTitle(c *gin.Context) {
	userID, _ := c.Get("userID")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := Gamify.ToggleTitle(userID.(uint), id); err != nil {
		respondGamifyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Title toggled"})
}

// GetMyTitles godoc
// @Summary      List owned titles
// @Tags         titles
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} TitleResponse
// @Router       /users/me/titles [get]
func GetMyTitles(c *gin.Context) {
	userID, _ := c.Get("userID")

	var owned []models.UserTitle
	err := database.DB.Preload("Title").Where("user_id = ?", userID).Find(&owned).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve titles"})
		return
	}

	response := make([]TitleResponse, 0, len(owned))
	for _, userTitle := range owned {
		response = append(response, TitleResponse{
			ID:          userTitle.Title.ID,
			Title:       userTitle.Title.Title,
			Description: userTitle.Title.Description,
			Cost:        userTitle.Title.Cost,
			Purchasable: userTitle.Title.Purchasable,
			Owned:       true,
			Enabled:     userTitle.Enabled,
		})
	}
	c.JSON(http.StatusOK, response)
}
