package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gcstatus/backend/internal/database"
	"gcstatus/backend/internal/models"
)

const (
	homeCacheKey = "home:feed"
	homeCacheTTL = time.Minute
	homeSection  = 9
)

// HomeResponse is the curated landing feed: condition buckets plus the
// next great release and upcoming games.
type HomeResponse struct {
	Hot         []GameResponse `json:"hot"`
	Popular     []GameResponse `json:"popular"`
	Upcoming    []GameResponse `json:"upcoming"`
	NextRelease *GameResponse  `json:"next_release,omitempty"`
}

// GetHome godoc
// @Summary      Get the home feed
// @Description  Retrieves the curated landing feed (hot, popular, upcoming, next great release). Cached for a minute; admin catalog writes invalidate it.
// @Tags         home
// @Produce      json
// @Success      200 {object} HomeResponse
// @Router       /home [get]
func GetHome(c *gin.Context) {
	ctx := c.Request.Context()

	var cached HomeResponse
	if Cache.Get(ctx, homeCacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	var feed HomeResponse
	var err error
	if feed.Hot, err = gamesByCondition(models.ConditionHot); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build home feed"})
		return
	}
	if feed.Popular, err = gamesByCondition(models.ConditionPopular); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build home feed"})
		return
	}
	if feed.Upcoming, err = upcomingGames(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build home feed"})
		return
	}

	var next models.Game
	err = database.DB.
		Where("great_release = ? AND release_date > ?", true, time.Now()).
		Order("release_date ASC").
		First(&next).Error
	switch {
	case err == nil:
		response := newGameResponse(next)
		feed.NextRelease = &response
	case !errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build home feed"})
		return
	}

	Cache.Set(ctx, homeCacheKey, feed, homeCacheTTL)
	c.JSON(http.StatusOK, feed)
}

func gamesByCondition(condition string) ([]GameResponse, error) {
	var games []models.Game
	err := database.DB.
		Where("condition = ?", condition).
		Order("release_date DESC").
		Limit(homeSection).
		Find(&games).Error
	if err != nil {
		return nil, err
	}

	response := make([]GameResponse, 0, len(games))
	for _, game := range games {
		response = append(response, newGameResponse(game))
	}
	return response, nil
}

func upcomingGames() ([]GameResponse, error) {
	var games []models.Game
	err := database.DB.
		Where("release_date > ?", time.Now()).
		Order("release_date ASC").
		Limit(homeSection).
		Find(&games).Error
	if err != nil {
		return nil, err
	}

	response := make([]GameResponse, 0, len(games))
	for _, game := range games {
		response = append(response, newGameResponse(game))
	}
	return response, nil
}
