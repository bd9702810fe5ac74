package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"gcstatus/backend/internal/assoc"
	"gcstatus/backend/internal/database"
	"gcstatus/backend/internal/models"
)

// GameInput is the admin payload for creating or updating a game. The
// id sets are authoritative: each non-nil set replaces the matching
// association kind wholesale via the assoc store.
type GameInput struct {
	Title            string     `json:"title" binding:"required"`
	Cover            string     `json:"cover"`
	About            string     `json:"about"`
	Description      string     `json:"description"`
	ShortDescription string     `json:"short_description"`
	ReleaseDate      *time.Time `json:"release_date"`
	Age              int        `json:"age"`
	Condition        string     `json:"condition"`
	GreatRelease     bool       `json:"great_release"`
	Legal            string     `json:"legal"`
	Website          string     `json:"website"`

	TagIDs       []uint `json:"tag_ids"`
	GenreIDs     []uint `json:"genre_ids"`
	CategoryIDs  []uint `json:"category_ids"`
	PlatformIDs  []uint `json:"platform_ids"`
	DeveloperIDs []uint `json:"developer_ids"`
	PublisherIDs []uint `json:"publisher_ids"`
}

// GameResponse is the public shape of a game. Associations carries the
// resolved parents per kind and is only populated on detail views;
// list views keep it nil so the cost of resolution stays visible where
// it is paid.
type GameResponse struct {
	ID               uint                      `json:"id"`
	Title            string                    `json:"title"`
	Slug             string                    `json:"slug"`
	Cover            string                    `json:"cover"`
	About            string                    `json:"about,omitempty"`
	Description      string                    `json:"description,omitempty"`
	ShortDescription string                    `json:"short_description"`
	ReleaseDate      time.Time                 `json:"release_date"`
	Age              int                       `json:"age"`
	Condition        string                    `json:"condition"`
	GreatRelease     bool                      `json:"great_release"`
	Legal            string                    `json:"legal,omitempty"`
	Website          string                    `json:"website,omitempty"`
	Views            uint                      `json:"views"`
	Associations     map[string][]assoc.Parent `json:"associations,omitempty"`
}

func newGameResponse(game models.Game) GameResponse {
	return GameResponse{
		ID:               game.ID,
		Title:            game.Title,
		Slug:             game.Slug,
		Cover:            game.Cover,
		About:            game.About,
		Description:      game.Description,
		ShortDescription: game.ShortDescription,
		ReleaseDate:      game.ReleaseDate,
		Age:              game.Age,
		Condition:        game.Condition,
		GreatRelease:     game.GreatRelease,
		Legal:            game.Legal,
		Website:          game.Website,
		Views:            game.Views,
	}
}

// gameAssociationKinds are the kinds synced from GameInput id sets, in
// payload order.
var gameAssociationKinds = []struct {
	kind assoc.Kind
	ids  func(GameInput) []uint
}{
	{assoc.Tags, func(in GameInput) []uint { return in.TagIDs }},
	{assoc.Genres, func(in GameInput) []uint { return in.GenreIDs }},
	{assoc.Categories, func(in GameInput) []uint { return in.CategoryIDs }},
	{assoc.Platforms, func(in GameInput) []uint { return in.PlatformIDs }},
	{assoc.Developers, func(in GameInput) []uint { return in.DeveloperIDs }},
	{assoc.Publishers, func(in GameInput) []uint { return in.PublisherIDs }},
}

func syncGameAssociations(owner assoc.OwnerRef, input GameInput) error {
	for _, entry := range gameAssociationKinds {
		ids := entry.ids(input)
		if ids == nil {
			continue
		}
		if err := Assoc.SyncAll(owner, entry.kind, ids); err != nil {
			return err
		}
	}
	return nil
}

// CreateGame godoc
// @Summary      Create a new game
// @Description  Creates a game and syncs the submitted association id sets.
// @Tags         admin-games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameInput true "Game Info"
// @Success      201  {object}  GameResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      422  {object}  ErrorResponse "Unknown association parent ids"
// @Router       /admin/games [post]
func CreateGame(c *gin.Context) {
	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game := models.Game{
		Title:            input.Title,
		Slug:             slug.Make(input.Title),
		Cover:            input.Cover,
		About:            input.About,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		Age:              input.Age,
		Condition:        input.Condition,
		GreatRelease:     input.GreatRelease,
		Legal:            input.Legal,
		Website:          input.Website,
	}
	if input.ReleaseDate != nil {
		game.ReleaseDate = *input.ReleaseDate
	}
	if game.Condition == "" {
		game.Condition = models.ConditionCommon
	}

	if err := database.DB.Create(&game).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Game already exists or another error occurred"})
		return
	}

	if err := syncGameAssociations(assoc.GameRef(game.ID), input); err != nil {
		respondAssocError(c, err)
		return
	}

	Cache.Forget(c.Request.Context(), homeCacheKey)
	c.JSON(http.StatusCreated, newGameResponse(game))
}

// UpdateGame godoc
// @Summary      Update a game
// @Description  Updates a game's fields and replaces the submitted association sets. Omitted sets are left untouched; an empty set detaches that kind entirely.
// @Tags         admin-games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int       true  "Game ID"
// @Param        input body      GameInput true  "New Game Info"
// @Success      200   {object}  GameResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Game not found"
// @Failure      422   {object}  ErrorResponse "Unknown association parent ids"
// @Router       /admin/games/{id} [put]
func UpdateGame(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var game models.Game
	if err := database.DB.First(&game, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game.Title = input.Title
	game.Slug = slug.Make(input.Title)
	game.Cover = input.Cover
	game.About = input.About
	game.Description = input.Description
	game.ShortDescription = input.ShortDescription
	game.Age = input.Age
	game.GreatRelease = input.GreatRelease
	game.Legal = input.Legal
	game.Website = input.Website
	if input.ReleaseDate != nil {
		game.ReleaseDate = *input.ReleaseDate
	}
	if input.Condition != "" {
		game.Condition = input.Condition
	}

	if err := database.DB.Save(&game).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update game"})
		return
	}

	if err := syncGameAssociations(assoc.GameRef(game.ID), input); err != nil {
		respondAssocError(c, err)
		return
	}

	Cache.Forget(c.Request.Context(), homeCacheKey)
	c.JSON(http.StatusOK, newGameResponse(game))
}

// DeleteGame godoc
// @Summary      Delete a game
// @Description  Soft-deletes a game. Its association rows stay behind and stop resolving.
// @Tags         admin-games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200 {object} map[string]string "{"message": "Game deleted"}"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /admin/games/{id} [delete]
func DeleteGame(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	result := database.DB.Delete(&models.Game{}, id)
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	Cache.Forget(c.Request.Context(), homeCacheKey)
	c.JSON(http.StatusOK, gin.H{"message": "Game deleted"})
}

// GetGames godoc
// @Summary      Get a list of games
// @Description  Retrieves a paginated list of games, optionally filtered by condition or search query.
// @Tags         games
// @Produce      json
// @Param        q         query string false "Search query for game title"
// @Param        condition query string false "Filter by condition (hot, sale, common, popular, unreleased)"
// @Param        page      query int    false "Page number" default(1)
// @Param        limit     query int    false "Items per page" default(10)
// @Success      200 {object} PaginatedResponse[GameResponse]
// @Router       /games [get]
func GetGames(c *gin.Context) {
	page, limit := pageParams(c)

	dbQuery := database.DB.Model(&models.Game{})
	if q := c.Query("q"); q != "" {
		dbQuery = dbQuery.Where("title ILIKE ?", "%"+q+"%")
	}
	if condition := c.Query("condition"); condition != "" {
		dbQuery = dbQuery.Where("condition = ?", condition)
	}

	var totalItems int64
	if err := dbQuery.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count games"})
		return
	}

	var games []models.Game
	err := dbQuery.Order("release_date DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&games).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve games"})
		return
	}

	response := make([]GameResponse, 0, len(games))
	for _, game := range games {
		response = append(response, newGameResponse(game))
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(response, totalItems, page, limit))
}

// GetGameBySlug godoc
// @Summary      Get a single game by slug
// @Description  Retrieves a game with every association kind resolved. Counts a view and feeds mission progress for authenticated users.
// @Tags         games
// @Produce      json
// @Param        slug path string true "Game slug"
// @Success      200 {object} GameResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{slug} [get]
func GetGameBySlug(c *gin.Context) {
	var game models.Game
	if err := database.DB.Where("slug = ?", c.Param("slug")).First(&game).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	database.DB.Model(&game).UpdateColumn("views", gorm.Expr("views + 1"))

	owner := assoc.GameRef(game.ID)
	associations := make(map[string][]assoc.Parent)
	for _, name := range assoc.KindNames() {
		kind, _ := assoc.KindByName(name)
		if !kind.Allows(owner.Type) {
			continue
		}
		parents, err := Assoc.ListFor(owner, kind)
		if err != nil {
			respondAssocError(c, err)
			return
		}
		associations[name] = parents
	}

	// Viewing games counts toward missions for logged-in users.
	if userID, exists := c.Get("userID"); exists {
		if err := Gamify.Track(userID.(uint), "games_viewed", 1); err != nil {
			Log.Warn().Err(err).Msg("tracking game view")
		}
	}

	response := newGameResponse(game)
	response.Views = game.Views + 1
	response.Associations = associations
	c.JSON(http.StatusOK, response)
}
