package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"

	"gcstatus/backend/internal/assoc"
	"gcstatus/backend/internal/database"
	"gcstatus/backend/internal/models"
)

// DlcInput is the admin payload for creating or updating a DLC.
type DlcInput struct {
	GameID           uint       `json:"game_id" binding:"required"`
	Name             string     `json:"name" binding:"required"`
	Cover            string     `json:"cover"`
	About            string     `json:"about"`
	Description      string     `json:"description"`
	ShortDescription string     `json:"short_description"`
	ReleaseDate      *time.Time `json:"release_date"`
	Free             bool       `json:"free"`
	Legal            string     `json:"legal"`

	TagIDs      []uint `json:"tag_ids"`
	GenreIDs    []uint `json:"genre_ids"`
	CategoryIDs []uint `json:"category_ids"`
	PlatformIDs []uint `json:"platform_ids"`
}

func syncDlcAssociations(owner assoc.OwnerRef, input DlcInput) error {
	for _, entry := range []struct {
		kind assoc.Kind
		ids  []uint
	}{
		{assoc.Tags, input.TagIDs},
		{assoc.Genres, input.GenreIDs},
		{assoc.Categories, input.CategoryIDs},
		{assoc.Platforms, input.PlatformIDs},
	} {
		if entry.ids == nil {
			continue
		}
		if err := Assoc.SyncAll(owner, entry.kind, entry.ids); err != nil {
			return err
		}
	}
	return nil
}

// CreateDlc godoc
// @Summary      Create a new DLC
// @Description  Creates a DLC under a game and syncs the submitted association id sets.
// @Tags         admin-dlcs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body DlcInput true "DLC Info"
// @Success      201  {object}  models.Dlc
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Failure      422  {object}  ErrorResponse "Unknown association parent ids"
// @Router       /admin/dlcs [post]
func CreateDlc(c *gin.Context) {
	var input DlcInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var game models.Game
	if err := database.DB.First(&game, input.GameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	dlc := models.Dlc{
		GameID:           game.ID,
		Name:             input.Name,
		Slug:             slug.Make(input.Name),
		Cover:            input.Cover,
		About:            input.About,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		Free:             input.Free,
		Legal:            input.Legal,
	}
	if input.ReleaseDate != nil {
		dlc.ReleaseDate = *input.ReleaseDate
	}

	if err := database.DB.Create(&dlc).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "DLC already exists or another error occurred"})
		return
	}

	if err := syncDlcAssociations(assoc.DlcRef(dlc.ID), input); err != nil {
		respondAssocError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dlc)
}

// UpdateDlc godoc
// @Summary      Update a DLC
// @Tags         admin-dlcs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int      true "DLC ID"
// @Param        input body DlcInput true "New DLC Info"
// @Success      200  {object}  models.Dlc
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /admin/dlcs/{id} [put]
func UpdateDlc(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var dlc models.Dlc
	if err := database.DB.First(&dlc, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "DLC not found"})
		return
	}

	var input DlcInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dlc.GameID = input.GameID
	dlc.Name = input.Name
	dlc.Slug = slug.Make(input.Name)
	dlc.Cover = input.Cover
	dlc.About = input.About
	dlc.Description = input.Description
	dlc.ShortDescription = input.ShortDescription
	dlc.Free = input.Free
	dlc.Legal = input.Legal
	if input.ReleaseDate != nil {
		dlc.ReleaseDate = *input.ReleaseDate
	}

	if err := database.DB.Save(&dlc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update DLC"})
		return
	}

	if err := syncDlcAssociations(assoc.DlcRef(dlc.ID), input); err != nil {
		respondAssocError(c, err)
		return
	}

	c.JSON(http.StatusOK, dlc)
}

// DeleteDlc godoc
// @Summary      Delete a DLC
// @Tags         admin-dlcs
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "DLC ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} ErrorResponse
// @Router       /admin/dlcs/{id} [delete]
func DeleteDlc(c *gin.Context) { deleteEntity[models.Dlc](c) }

// GetDlcsByGame godoc
// @Summary      List a game's DLCs
// @Tags         games
// @Produce      json
// @Param        slug path string true "Game slug"
// @Success      200 {array} models.Dlc
// @Failure      404 {object} ErrorResponse
// @Router       /games/{slug}/dlcs [get]
func GetDlcsByGame(c *gin.Context) {
	var game models.Game
	if err := database.DB.Where("slug = ?", c.Param("slug")).First(&game).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	var dlcs []models.Dlc
	if err := database.DB.Where("game_id = ?", game.ID).Find(&dlcs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve DLCs"})
		return
	}
	c.JSON(http.StatusOK, dlcs)
}
