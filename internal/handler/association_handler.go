package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gcstatus/backend/internal/assoc"
)

// Admin endpoints over the polymorphic association store. Routes are
// shaped /admin/:ownerType/:id/associations/:kind so one set of
// handlers serves every owner/kind combination; the store's allow-lists
// decide which combinations are legal.

// SyncInput is the authoritative replacement payload: the full new set
// of parent ids for the owner and kind.
type SyncInput struct {
	ParentIDs []uint `json:"parent_ids"`
}

// AttachInput creates a single association, optionally carrying the
// kind's pivot columns (e.g. price/url for stores, rate for critics).
type AttachInput struct {
	ParentID uint           `json:"parent_id" binding:"required"`
	Extras   map[string]any `json:"extras"`
}

func resolveAssociation(c *gin.Context) (assoc.OwnerRef, assoc.Kind, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return assoc.OwnerRef{}, assoc.Kind{}, false
	}
	owner, ok := assoc.OwnerRefFor(c.Param("ownerType"), id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown owner type"})
		return assoc.OwnerRef{}, assoc.Kind{}, false
	}
	kind, ok := assoc.KindByName(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown association kind"})
		return assoc.OwnerRef{}, assoc.Kind{}, false
	}
	return owner, kind, true
}

// ListAssociations godoc
// @Summary      List an owner's associations of one kind
// @Description  Resolves every association of the owner for the kind to its parent entity, in insertion order.
// @Tags         admin-associations
// @Produce      json
// @Security     BearerAuth
// @Param        ownerType path string true "Owner type (games, dlcs)"
// @Param        id        path int    true "Owner ID"
// @Param        kind      path string true "Association kind (tags, genres, stores, ...)"
// @Success      200  {array}   assoc.Parent
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/{ownerType}/{id}/associations/{kind} [get]
func ListAssociations(c *gin.Context) {
	owner, kind, ok := resolveAssociation(c)
	if !ok {
		return
	}
	parents, err := Assoc.ListFor(owner, kind)
	if err != nil {
		respondAssocError(c, err)
		return
	}
	c.JSON(http.StatusOK, parents)
}

// SyncAssociations godoc
// @Summary      Replace an owner's associations of one kind
// @Description  Authoritative replace: unlisted associations are removed, missing ones created. An empty set detaches everything. Rejected entirely if any id does not reference an existing parent.
// @Tags         admin-associations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        ownerType path string    true "Owner type (games, dlcs)"
// @Param        id        path int       true "Owner ID"
// @Param        kind      path string    true "Association kind"
// @Param        input     body SyncInput true "Full parent id set"
// @Success      200  {array}   assoc.Parent
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse "Unknown parent ids"
// @Router       /admin/{ownerType}/{id}/associations/{kind} [put]
func SyncAssociations(c *gin.Context) {
	owner, kind, ok := resolveAssociation(c)
	if !ok {
		return
	}
	var input SyncInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := Assoc.SyncAll(owner, kind, input.ParentIDs); err != nil {
		respondAssocError(c, err)
		return
	}
	parents, err := Assoc.ListFor(owner, kind)
	if err != nil {
		respondAssocError(c, err)
		return
	}
	c.JSON(http.StatusOK, parents)
}

// AttachAssociation godoc
// @Summary      Attach a single association
// @Description  Creates one association record with optional pivot extras. Unique kinds reject duplicates; multi-valued kinds (critics, torrents) permit repeated records.
// @Tags         admin-associations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        ownerType path string      true "Owner type (games, dlcs)"
// @Param        id        path int         true "Owner ID"
// @Param        kind      path string      true "Association kind"
// @Param        input     body AttachInput true "Parent id and pivot extras"
// @Success      201  {object}  assoc.Record
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse "Unknown parent or duplicate"
// @Router       /admin/{ownerType}/{id}/associations/{kind} [post]
func AttachAssociation(c *gin.Context) {
	owner, kind, ok := resolveAssociation(c)
	if !ok {
		return
	}
	var input AttachInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	record, err := Assoc.AttachOne(owner, kind, input.ParentID, input.Extras)
	if err != nil {
		respondAssocError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// DetachAssociation godoc
// @Summary      Detach one association
// @Description  Deletes the association between the owner and the given parent. Detaching an absent association is a no-op.
// @Tags         admin-associations
// @Produce      json
// @Security     BearerAuth
// @Param        ownerType path string true "Owner type (games, dlcs)"
// @Param        id        path int    true "Owner ID"
// @Param        kind      path string true "Association kind"
// @Param        parentID  path int    true "Parent ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/{ownerType}/{id}/associations/{kind}/{parentID} [delete]
func DetachAssociation(c *gin.Context) {
	owner, kind, ok := resolveAssociation(c)
	if !ok {
		return
	}
	parentID, ok := paramID(c, "parentID")
	if !ok {
		return
	}
	if err := Assoc.DetachOne(owner, kind, parentID); err != nil {
		respondAssocError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Association removed"})
}

// DetachAllAssociations godoc
// @Summary      Detach every association of one kind
// @Tags         admin-associations
// @Produce      json
// @Security     BearerAuth
// @Param        ownerType path string true "Owner type (games, dlcs)"
// @Param        id        path int    true "Owner ID"
// @Param        kind      path string true "Association kind"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/{ownerType}/{id}/associations/{kind} [delete]
func DetachAllAssociations(c *gin.Context) {
	owner, kind, ok := resolveAssociation(c)
	if !ok {
		return
	}
	if err := Assoc.DetachAll(owner, kind); err != nil {
		respondAssocError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Associations removed"})
}
