package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

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

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	log := logger.From(io.Discard)
	handler.Setup(assoc.NewStore(db, log), gamify.NewService(db, log), cache.New(nil), log)

	router := gin.New()
	group := router.Group("/:ownerType/:id/associations/:kind")
	group.GET("", handler.ListAssociations)
	group.PUT("", handler.SyncAssociations)
	group.POST("", handler.AttachAssociation)
	group.DELETE("", handler.DetachAllAssociations)
	group.DELETE("/:parentID", handler.DetachAssociation)
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSyncAndListAssociations(t *testing.T) {
	router, db := setupRouter(t)

	game := models.Game{Title: "Hollow Knight", Slug: "hollow-knight"}
	require.NoError(t, db.Create(&game).Error)
	tagA := models.Tag{Name: "metroidvania", Slug: "metroidvania"}
	tagB := models.Tag{Name: "indie", Slug: "indie"}
	require.NoError(t, db.Create(&tagA).Error)
	require.NoError(t, db.Create(&tagB).Error)

	path := fmt.Sprintf("/games/%d/associations/tags", game.ID)

	w := doJSON(t, router, http.MethodPut, path, handler.SyncInput{ParentIDs: []uint{tagA.ID, tagB.ID}})
	require.Equal(t, http.StatusOK, w.Code)

	var parents []assoc.Parent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parents))
	require.Len(t, parents, 2)
	assert.Equal(t, tagA.ID, parents[0].ID)
	assert.Equal(t, "metroidvania", parents[0].Name())

	w = doJSON(t, router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parents))
	assert.Len(t, parents, 2)
}

func TestSyncAssociationsUnknownParentIs422(t *testing.T) {
	router, db := setupRouter(t)

	game := models.Game{Title: "Outer Wilds", Slug: "outer-wilds"}
	require.NoError(t, db.Create(&game).Error)

	path := fmt.Sprintf("/games/%d/associations/tags", game.ID)
	w := doJSON(t, router, http.MethodPut, path, handler.SyncInput{ParentIDs: []uint{777}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "777")
}

func TestAttachAssociationDuplicateIs422(t *testing.T) {
	router, db := setupRouter(t)

	game := models.Game{Title: "Portal 2", Slug: "portal-2"}
	require.NoError(t, db.Create(&game).Error)
	tag := models.Tag{Name: "puzzle", Slug: "puzzle"}
	require.NoError(t, db.Create(&tag).Error)

	path := fmt.Sprintf("/games/%d/associations/tags", game.ID)
	input := handler.AttachInput{ParentID: tag.ID}

	w := doJSON(t, router, http.MethodPost, path, input)
	require.Equal(t, http.StatusCreated, w.Code)

	var record assoc.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, "tags", record.Kind)
	assert.Equal(t, tag.ID, record.ParentID)

	w = doJSON(t, router, http.MethodPost, path, input)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUnknownKindAndOwnerTypeAre404(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/games/1/associations/reviews", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/users/1/associations/tags", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDetachEndpoints(t *testing.T) {
	router, db := setupRouter(t)

	game := models.Game{Title: "Inside", Slug: "inside"}
	require.NoError(t, db.Create(&game).Error)
	tagA := models.Tag{Name: "atmospheric", Slug: "atmospheric"}
	tagB := models.Tag{Name: "dark", Slug: "dark"}
	require.NoError(t, db.Create(&tagA).Error)
	require.NoError(t, db.Create(&tagB).Error)

	base := fmt.Sprintf("/games/%d/associations/tags", game.ID)
	w := doJSON(t, router, http.MethodPut, base, handler.SyncInput{ParentIDs: []uint{tagA.ID, tagB.ID}})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("%s/%d", base, tagA.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Taggable{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	w = doJSON(t, router, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.Model(&models.Taggable{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
