package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"

	"gcstatus/backend/internal/database"
	"gcstatus/backend/internal/models"
)

// TaxonomyInput is the admin payload for the pure name+slug reference
// entities (tags, genres, categories, platforms). Slugs are derived,
// never submitted.
type TaxonomyInput struct {
	Name string `json:"name" binding:"required"`
}

func createTaxonomy[T any](c *gin.Context, build func(name, slug string) T) {
	var input TaxonomyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entity := build(input.Name, slug.Make(input.Name))
	if err := database.DB.Create(&entity).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Entity already exists or another error occurred"})
		return
	}

	c.JSON(http.StatusCreated, entity)
}

func listTaxonomy[T any](c *gin.Context) {
	page, limit := pageParams(c)
	response, err := Paginate[T](database.DB, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entities"})
		return
	}
	c.JSON(http.StatusOK, response)
}

func updateTaxonomy[T any](c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input TaxonomyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var entity T
	if err := database.DB.First(&entity, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
		return
	}

	err := database.DB.Model(&entity).
		Updates(map[string]any{"name": input.Name, "slug": slug.Make(input.Name)}).Error
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to update entity"})
		return
	}
	c.JSON(http.StatusOK, entity)
}

// deleteEntity soft-deletes any reference entity. Association rows that
// point at it are intentionally left behind; resolution filters them on
// read.
func deleteEntity[T any](c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var entity T
	result := database.DB.Delete(&entity, id)
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Entity deleted"})
}

// CreateTag godoc
// @Summary      Create a new tag
// @Description  Creates a new tag for classifying games and DLCs.
// @Tags         admin-taxonomies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body TaxonomyInput true "Tag Info"
// @Success      201  {object}  models.Tag
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      409  {object}  ErrorResponse "Tag already exists"
// @Router       /admin/tags [post]
func CreateTag(c *gin.Context) {
	createTaxonomy(c, func(name, slug string) models.Tag {
		return models.Tag{Name: name, Slug: slug}
	})
}

func GetTags(c *gin.Context)   { listTaxonomy[models.Tag](c) }
func UpdateTag(c *gin.Context) { updateTaxonomy[models.Tag](c) }
func DeleteTag(c *gin.Context) { deleteEntity[models.Tag](c) }

func CreateGenre(c *gin.Context) {
	createTaxonomy(c, func(name, slug string) models.Genre {
		return models.Genre{Name: name, Slug: slug}
	})
}

func GetGenres(c *gin.Context)   { listTaxonomy[models.Genre](c) }
func UpdateGenre(c *gin.Context) { updateTaxonomy[models.Genre](c) }
func DeleteGenre(c *gin.Context) { deleteEntity[models.Genre](c) }

func CreateCategory(c *gin.Context) {
	createTaxonomy(c, func(name, slug string) models.Category {
		return models.Category{Name: name, Slug: slug}
	})
}

func GetCategories(c *gin.Context)  { listTaxonomy[models.Category](c) }
func UpdateCategory(c *gin.Context) { updateTaxonomy[models.Category](c) }
func DeleteCategory(c *gin.Context) { deleteEntity[models.Category](c) }

func CreatePlatform(c *gin.Context) {
	createTaxonomy(c, func(name, slug string) models.Platform {
		return models.Platform{Name: name, Slug: slug}
	})
}

func GetPlatforms(c *gin.Context)   { listTaxonomy[models.Platform](c) }
func UpdatePlatform(c *gin.Context) { updateTaxonomy[models.Platform](c) }
func DeletePlatform(c *gin.Context) { deleteEntity[models.Platform](c) }
