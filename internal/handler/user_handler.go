package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gcstatus/backend/internal/database"
	"gcstatus/backend/internal/models"
)

// PrivateUserResponse defines the structure for the authenticated user's own profile.
type PrivateUserResponse struct {
	ID         uint   `json:"id" example:"1"`
	Nickname   string `json:"nickname" example:"testuser"`
	Email      string `json:"email" example:"test@example.com"`
	Level      uint   `json:"level"`
	Experience uint   `json:"experience"`
	Balance    uint   `json:"balance"`
	Title      string `json:"title,omitempty"`
}

// GetMe godoc
// @Summary      Get own profile
// @Description  Retrieves the authenticated user's profile with level, wallet balance and enabled title.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PrivateUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	userID, _ := c.Get("userID")

	var user models.User
	if err := database.DB.Preload("Level").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	wallet, err := Gamify.Wallet(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wallet"})
		return
	}

	response := PrivateUserResponse{
		ID:         user.ID,
		Nickname:   user.Nickname,
		Email:      user.Email,
		Level:      1,
		Experience: user.Experience,
		Balance:    wallet.Balance,
	}
	if user.Level != nil {
		response.Level = user.Level.Level
	}

	var enabled models.UserTitle
	err = database.DB.Preload("Title").
		Where("user_id = ? AND enabled = ?", user.ID, true).
		First(&enabled).Error
	if err == nil {
		response.Title = enabled.Title.Title
	}

	c.JSON(http.StatusOK, response)
}

// GetWallet godoc
// @Summary      Get own wallet
// @Description  Retrieves the authenticated user's wallet and recent transactions.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me/wallet [get]
func GetWallet(c *gin.Context) {
	userID, _ := c.Get("userID")

	wallet, err := Gamify.Wallet(userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wallet"})
		return
	}

	var transactions []models.Transaction
	database.DB.Preload("TransactionType").
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(50).
		Find(&transactions)

	c.JSON(http.StatusOK, gin.H{
		"balance":      wallet.Balance,
		"transactions": transactions,
	})
}
