package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"gcstatus/backend/internal/assoc"
	"gcstatus/backend/internal/cache"
	"gcstatus/backend/internal/gamify"
)

// Package-level collaborators, wired once from main. Mirrors the global
// database.DB connection style used across the handler package.
var (
	Assoc  *assoc.Store
	Gamify *gamify.Service
	Cache  *cache.Cache
	Log    zerolog.Logger
)

// Setup wires the handler package's collaborators.
func Setup(store *assoc.Store, svc *gamify.Service, c *cache.Cache, log zerolog.Logger) {
	Assoc = store
	Gamify = svc
	Cache = c
	Log = log
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}

// respondAssocError maps association store failures onto HTTP statuses:
// bad input (missing parents, duplicates) is a validation failure,
// an allow-list violation is a server fault.
func respondAssocError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, assoc.ErrInvalidAssociationTarget),
		errors.Is(err, assoc.ErrDuplicateAssociation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, assoc.ErrUnsupportedOwnerType):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update associations"})
	}
}

func respondGamifyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gamify.ErrInsufficientFunds),
		errors.Is(err, gamify.ErrMissionAlreadyCompleted),
		errors.Is(err, gamify.ErrMissionRequirementsUnmet),
		errors.Is(err, gamify.ErrTitleNotPurchasable),
		errors.Is(err, gamify.ErrTitleAlreadyOwned):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, gamify.ErrMissionUnavailable),
		errors.Is(err, gamify.ErrTitleNotOwned):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
