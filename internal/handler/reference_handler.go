package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"

	"gcstatus/backend/internal/database"
	"gcstatus/backend/internal/models"
)

// Admin CRUD for the reference entities that carry more than a name:
// companies, storefronts, critics, crackers, torrent providers,
// languages, requirement types and transaction types. Listing always
// goes through Paginate; deletion is the shared soft delete from
// taxonomy_handler.go.

// CompanyInput covers developers, publishers and crackers.
type CompanyInput struct {
	Name   string `json:"name" binding:"required"`
	Acting *bool  `json:"acting"`
}

func acting(input *bool) bool {
	if input == nil {
		return true
	}
	return *input
}

func CreateDeveloper(c *gin.Context) {
	var input CompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dev := models.Developer{Name: input.Name, Slug: slug.Make(input.Name), Acting: acting(input.Acting)}
	if err := database.DB.Create(&dev).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Developer already exists or another error occurred"})
		return
	}
	c.JSON(http.StatusCreated, dev)
}

func GetDevelopers(c *gin.Context) { listTaxonomy[models.Developer](c) }

func UpdateDeveloper(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input CompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var dev models.Developer
	if err := database.DB.First(&dev, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Developer not found"})
		return
	}
	updates := map[string]any{"name": input.Name, "slug": slug.Make(input.Name), "acting": acting(input.Acting)}
	if err := database.DB.Model(&dev).Updates(updates).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to update developer"})
		return
	}
	c.JSON(http.StatusOK, dev)
}

func DeleteDeveloper(c *gin.Context) { deleteEntity[models.Developer](c) }

func CreatePublisher(c *gin.Context) {
	var input CompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pub := models.Publisher{Name: input.Name, Slug: slug.Make(input.Name), Acting: acting(input.Acting)}
	if err := database.DB.Create(&pub).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Publisher already exists or another error occurred"})
		return
	}
	c.JSON(http.StatusCreated, pub)
}

func GetPublishers(c *gin.Context) { listTaxonomy[models.Publisher](c) }

func UpdatePublisher(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input CompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var pub models.Publisher
	if err := database.DB.First(&pub, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Publisher not found"})
		return
	}
	updates := map[string]any{"name": input.Name, "slug": slug.Make(input.Name), "acting": acting(input.Acting)}
	if err := database.DB.Model(&pub).Updates(updates).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to update publisher"})
		return
	}
	c.JSON(http.StatusOK, pub)
}

func DeletePublisher(c *gin.Context) { deleteEntity[models.Publisher](c) }

func CreateCracker(c *gin.Context) {
	var input CompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cracker := models.Cracker{Name: input.Name, Slug: slug.Make(input.Name), Acting: acting(input.Acting)}
	if err := database.DB.Create(&cracker).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Cracker already exists or another error occurred"})
		return
	}
	c.JSON(http.StatusCreated, cracker)
}

func GetCrackers(c *gin.Context)   { listTaxonomy[models.Cracker](c) }
func DeleteCracker(c *gin.Context) { deleteEntity[models.Cracker](c) }

// OutletInput covers stores, critics and torrent providers.
type OutletInput struct {
	Name   string `json:"name" binding:"required"`
	URL    string `json:"url"`
	Logo   string `json:"logo"`
	Acting *bool  `json:"acting"`
}

func CreateStore(c *gin.Context) {
	var input OutletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	store := models.Store{Name: input.Name, Slug: slug.Make(input.Name), URL: input.URL, Logo: input.Logo}
	if err := database.DB.Create(&store).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Store already exists or another error occurred"})
		return
	}
	c.JSON(http.StatusCreated, store)
}

func GetStores(c *gin.Context) { listTaxonomy[models.Store](c) }

func UpdateStore(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input OutletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var store models.Store
	if err := database.DB.First(&store, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}
	updates := map[string]any{"name": input.Name, "slug": slug.Make(input.Name), "url": input.URL, "logo": input.Logo}
	if err := database.DB.Model(&store).Updates(updates).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to update store"})
		return
	}
	c.JSON(http.StatusOK, store)
}

func DeleteStore(c *gin.Context) { deleteEntity[models.Store](c) }

func CreateCritic(c *gin.Context) {
	var input OutletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	critic := models.Critic{
		Name: input.Name, Slug: slug.Make(input.Name),
		URL: input.URL, Logo: input.Logo, Acting: acting(input.Acting),
	}
	if err := database.DB.Create(&critic).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Critic already exists or another error occurred"})
		return
	}
	c.JSON(http.StatusCreated, critic)
}

func GetCritics(c *gin.Context)   { listTaxonomy[models.Critic](c) }
func DeleteCritic(c *gin.Context) { deleteEntity[models.Critic](c) }

func CreateTorrentProvider(c *gin.Context) {
	var input OutletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	provider := models.TorrentProvider{Name: input.Name, Slug: slug.Make(input.Name), URL: input.URL}
	if err := database.DB.Create(&provider).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Provider already exists or another error occurred"})
		return
	}
	c.JSON(http.StatusCreated, provider)
}

func GetTorrentProviders(c *gin.Context)   { listTaxonomy[models.TorrentProvider](c) }
func DeleteTorrentProvider(c *gin.Context) { deleteEntity[models.TorrentProvider](c) }

// LanguageInput is the admin payload for languages.
type LanguageInput struct {
	Name string `json:"name" binding:"required"`
	ISO  string `json:"iso"`
}

func CreateLanguage(c *gin.Context) {
	var input LanguageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	language := models.Language{Name: input.Name, Slug: slug.Make(input.Name), ISO: input.ISO}
	if err := database.DB.Create(&language).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Language already exists or another error occurred"})
		return
	}
	c.JSON(http.StatusCreated, language)
}

func GetLanguages(c *gin.Context)   { listTaxonomy[models.Language](c) }
func DeleteLanguage(c *gin.Context) { deleteEntity[models.Language](c) }

// RequirementTypeInput is the admin payload for requirement types.
type RequirementTypeInput struct {
	OS        string `json:"os" binding:"required"`
	Potential string `json:"potential" binding:"required"`
}

func CreateRequirementType(c *gin.Context) {
	var input RequirementTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reqType := models.RequirementType{OS: input.OS, Potential: input.Potential}
	if err := database.DB.Create(&reqType).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Requirement type already exists or another error occurred"})
		return
	}
	c.JSON(http.StatusCreated, reqType)
}

func GetRequirementTypes(c *gin.Context)   { listTaxonomy[models.RequirementType](c) }
func DeleteRequirementType(c *gin.Context) { deleteEntity[models.RequirementType](c) }

// TransactionTypeInput is the admin payload for transaction types.
type TransactionTypeInput struct {
	Type string `json:"type" binding:"required"`
}

func CreateTransactionType(c *gin.Context) {
	var input TransactionTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	txType := models.TransactionType{Type: input.Type}
	if err := database.DB.Create(&txType).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Transaction type already exists or another error occurred"})
		return
	}
	c.JSON(http.StatusCreated, txType)
}

func GetTransactionTypes(c *gin.Context)   { listTaxonomy[models.TransactionType](c) }
func DeleteTransactionType(c *gin.Context) { deleteEntity[models.TransactionType](c) }
