package main

import (
	"fmt"
	"log"
	"net/http"

	"gcstatus/backend/internal/assoc"
	"gcstatus/backend/internal/auth"
	"gcstatus/backend/internal/cache"
	"gcstatus/backend/internal/config"
	"gcstatus/backend/internal/database"
	"gcstatus/backend/internal/gamify"
	"gcstatus/backend/internal/handler"
	"gcstatus/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	// Swagger imports
	_ "gcstatus/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           GCStatus API
// @version         1.0
// @description     Content-management backend for the game catalog platform.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	appLog := logger.New()

	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	// Redis backs the home feed cache. The API stays up without it.
	var redisClient *redis.Client
	client, err := database.NewRedis(
		config.AppConfig.RedisAddr,
		config.AppConfig.RedisPassword,
		config.AppConfig.RedisDB,
	)
	if err != nil {
		appLog.Warn().Err(err).Msg("redis unavailable, home feed cache disabled")
	} else {
		redisClient = client
	}

	handler.Setup(
		assoc.NewStore(database.DB, appLog),
		gamify.NewService(database.DB, appLog),
		cache.New(redisClient),
		appLog,
	)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("/me", handler.GetMe)
			userRoutes.GET("/me/wallet", handler.GetWallet)
			userRoutes.GET("/me/titles", handler.GetMyTitles)
			userRoutes.PUT("/me/titles/:id/toggle", handler.ToggleTitle)
		}

		// Home feed (public, auth optional)
		apiV1.GET("/home", auth.OptionalAuthMiddleware(), handler.GetHome)

		// Public game routes (auth optional; views feed missions when logged in)
		gameRoutes := apiV1.Group("/games")
		gameRoutes.Use(auth.OptionalAuthMiddleware())
		{
			gameRoutes.GET("", handler.GetGames)
			gameRoutes.GET("/:slug", handler.GetGameBySlug)
			gameRoutes.GET("/:slug/dlcs", handler.GetDlcsByGame)
		}

		// Title routes (protected)
		titleRoutes := apiV1.Group("/titles")
		titleRoutes.Use(auth.AuthMiddleware())
		{
			titleRoutes.GET("", handler.GetTitles)
			titleRoutes.POST("/:id/buy", handler.BuyTitle)
		}

		// Mission routes (protected)
		missionRoutes := apiV1.Group("/missions")
		missionRoutes.Use(auth.AuthMiddleware())
		{
			missionRoutes.GET("", handler.GetMissions)
			missionRoutes.POST("/:id/complete", handler.CompleteMission)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			// Reference data CRUD
			crud := func(path string, create, list, del gin.HandlerFunc, update ...gin.HandlerFunc) {
				group := adminRoutes.Group(path)
				group.POST("", create)
				group.GET("", list)
				group.DELETE("/:id", del)
				if len(update) > 0 {
					group.PUT("/:id", update[0])
				}
			}

			crud("/tags", handler.CreateTag, handler.GetTags, handler.DeleteTag, handler.UpdateTag)
			crud("/genres", handler.CreateGenre, handler.GetGenres, handler.DeleteGenre, handler.UpdateGenre)
			crud("/categories", handler.CreateCategory, handler.GetCategories, handler.DeleteCategory, handler.UpdateCategory)
			crud("/platforms", handler.CreatePlatform, handler.GetPlatforms, handler.DeletePlatform, handler.UpdatePlatform)
			crud("/developers", handler.CreateDeveloper, handler.GetDevelopers, handler.DeleteDeveloper, handler.UpdateDeveloper)
			crud("/publishers", handler.CreatePublisher, handler.GetPublishers, handler.DeletePublisher, handler.UpdatePublisher)
			crud("/crackers", handler.CreateCracker, handler.GetCrackers, handler.DeleteCracker)
			crud("/stores", handler.CreateStore, handler.GetStores, handler.DeleteStore, handler.UpdateStore)
			crud("/critics", handler.CreateCritic, handler.GetCritics, handler.DeleteCritic)
			crud("/torrent-providers", handler.CreateTorrentProvider, handler.GetTorrentProviders, handler.DeleteTorrentProvider)
			crud("/languages", handler.CreateLanguage, handler.GetLanguages, handler.DeleteLanguage)
			crud("/requirement-types", handler.CreateRequirementType, handler.GetRequirementTypes, handler.DeleteRequirementType)
			crud("/transaction-types", handler.CreateTransactionType, handler.GetTransactionTypes, handler.DeleteTransactionType)

			// Gamification reference data
			crud("/levels", handler.CreateLevel, handler.GetLevels, handler.DeleteLevel)
			crud("/titles", handler.CreateTitle, handler.GetAllTitles, handler.DeleteTitle, handler.UpdateTitle)
			crud("/missions", handler.CreateMission, handler.GetAllMissions, handler.DeleteMission)
			adminRoutes.POST("/rewards", handler.CreateReward)
			adminRoutes.DELETE("/rewards/:id", handler.DeleteReward)

			// Catalog CRUD
			adminGameRoutes := adminRoutes.Group("/games")
			{
				adminGameRoutes.POST("", handler.CreateGame)
				adminGameRoutes.PUT("/:id", handler.UpdateGame)
				adminGameRoutes.DELETE("/:id", handler.DeleteGame)
			}
			adminDlcRoutes := adminRoutes.Group("/dlcs")
			{
				adminDlcRoutes.POST("", handler.CreateDlc)
				adminDlcRoutes.PUT("/:id", handler.UpdateDlc)
				adminDlcRoutes.DELETE("/:id", handler.DeleteDlc)
			}

			// Polymorphic association surface
			assocRoutes := adminRoutes.Group("/:ownerType/:id/associations/:kind")
			{
				assocRoutes.GET("", handler.ListAssociations)
				assocRoutes.PUT("", handler.SyncAssociations)
				assocRoutes.POST("", handler.AttachAssociation)
				assocRoutes.DELETE("", handler.DetachAllAssociations)
				assocRoutes.DELETE("/:parentID", handler.DetachAssociation)
			}
		}
	}

	addr := ":" + config.AppConfig.Port
	fmt.Printf("Server is running on %s\n", addr)
	fmt.Printf("Swagger UI is available at http://localhost%s/swagger/index.html\n", addr)
	log.Fatal(router.Run(addr))
}
