package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gcstatus/backend/internal/assoc"
	"gcstatus/backend/internal/cache"
	"gcstatus/backend/internal/database"
	"gcstatus/backend/internal/gamify"
	"gcstatus/backend/internal/handler"
	"gcstatus/backend/internal/models"
	"gcstatus/backend/pkg/logger"
)

func setupHomeRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	log := logger.From(io.Discard)
	handler.Setup(assoc.NewStore(db, log), gamify.NewService(db, log), cache.New(nil), log)

	router := gin.New()
	router.GET("/home", handler.GetHome)
	return router, db
}

func TestGetHome(t *testing.T) {
	router, db := setupHomeRouter(t)

	past := time.Now().AddDate(0, -1, 0)
	future := time.Now().AddDate(0, 1, 0)
	games := []models.Game{
		{Title: "Hot One", Slug: "hot-one", Condition: models.ConditionHot, ReleaseDate: past},
		{Title: "Popular One", Slug: "popular-one", Condition: models.ConditionPopular, ReleaseDate: past},
		{Title: "Next Big Thing", Slug: "next-big-thing", Condition: models.ConditionUnreleased, ReleaseDate: future, GreatRelease: true},
	}
	for i := range games {
		require.NoError(t, db.Create(&games[i]).Error)
	}

	w := doJSON(t, router, http.MethodGet, "/home", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var feed handler.HomeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	require.Len(t, feed.Hot, 1)
	assert.Equal(t, "Hot One", feed.Hot[0].Title)
	require.Len(t, feed.Popular, 1)
	assert.Equal(t, "Popular One", feed.Popular[0].Title)
	require.Len(t, feed.Upcoming, 1)
	require.NotNil(t, feed.NextRelease)
	assert.Equal(t, "next-big-thing", feed.NextRelease.Slug)
}

func TestGetHomeSurfacesQueryFailure(t *testing.T) {
	router, db := setupHomeRouter(t)

	require.NoError(t, db.Exec("DROP TABLE games").Error)

	w := doJSON(t, router, http.MethodGet, "/home", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to build home feed")
}
