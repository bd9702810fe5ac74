// Package assoc implements the polymorphic association layer that links
// catalog owners (games, DLCs) to reference entities (tags, genres,
// stores, critics, ...) through type-tagged join tables. Each join row
// stores (parent_id, owner_id, owner_type) plus kind-specific pivot
// columns. Kinds are registered statically in kind.go; every operation
// checks the owner discriminator against the kind's allow-list before
// touching storage.
package assoc

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Parent is one resolved reference entity, together with the pivot
// attributes of the association that reached it. Attributes are the raw
// columns of the parent row; heterogeneous parent tables (tags vs.
// requirement types) make a generic map the honest shape here.
type Parent struct {
	ID         uint           `json:"id"`
	Attributes map[string]any `json:"attributes"`
	Pivot      map[string]any `json:"pivot,omitempty"`
}

// Name returns the parent's name attribute, or "" when the parent table
// has no name column.
func (p Parent) Name() string {
	s, _ := p.Attributes["name"].(string)
	return s
}

// Slug returns the parent's slug attribute, or "".
func (p Parent) Slug() string {
	s, _ := p.Attributes["slug"].(string)
	return s
}

// Record is one association row as written by AttachOne.
type Record struct {
	ID        uint           `json:"id"`
	Kind      string         `json:"kind"`
	ParentID  uint           `json:"parent_id"`
	Owner     OwnerRef       `json:"owner"`
	Extras    map[string]any `json:"extras,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Store resolves, replaces and removes association records. Every write
// runs in its own transaction; reads are plain queries.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewStore wraps a gorm handle and a logger into an association store.
func NewStore(db *gorm.DB, log zerolog.Logger) *Store {
	return &Store{db: db, log: log}
}

// ListFor loads every association of the owner for the given kind,
// resolves each to its parent and returns the parents in insertion
// order (join-row id). Associations whose parent has been soft-deleted
// since they were created are silently skipped; the rows themselves are
// left in place.
func (s *Store) ListFor(owner OwnerRef, kind Kind) ([]Parent, error) {
	if err := s.checkOwner(owner, kind); err != nil {
		return nil, err
	}

	var joins []map[string]any
	err := s.db.Table(kind.Table).
		Where(fmt.Sprintf("%s = ? AND %s = ?", kind.OwnerIDColumn, kind.OwnerTypeColumn), owner.ID, string(owner.Type)).
		Order("id").
		Find(&joins).Error
	if err != nil {
		return nil, fmt.Errorf("listing %s for %s/%d: %w", kind.Name, owner.Type, owner.ID, err)
	}
	if len(joins) == 0 {
		return []Parent{}, nil
	}

	parentIDs := make([]uint, 0, len(joins))
	for _, row := range joins {
		parentIDs = append(parentIDs, toUint(row[kind.ParentColumn]))
	}

	var parentRows []map[string]any
	err = s.db.Table(kind.ParentTable).
		Where("id IN ? AND deleted_at IS NULL", parentIDs).
		Find(&parentRows).Error
	if err != nil {
		return nil, fmt.Errorf("resolving %s parents: %w", kind.Name, err)
	}

	byID := make(map[uint]map[string]any, len(parentRows))
	for _, row := range parentRows {
		attrs := make(map[string]any, len(row))
		for col, v := range row {
			if col == "deleted_at" {
				continue
			}
			attrs[col] = v
		}
		byID[toUint(row["id"])] = attrs
	}

	parents := make([]Parent, 0, len(joins))
	for _, join := range joins {
		id := toUint(join[kind.ParentColumn])
		attrs, ok := byID[id]
		if !ok {
			// Parent soft-deleted after the association was created.
			continue
		}
		parents = append(parents, Parent{
			ID:         id,
			Attributes: attrs,
			Pivot:      pivotOf(kind, join),
		})
	}
	return parents, nil
}

// SyncAll authoritatively replaces the owner's association set for the
// kind: unlisted records are deleted, missing ones created, matching
// ones left untouched. The call is idempotent and all-or-nothing. An
// empty parentIDs set detaches everything.
func (s *Store) SyncAll(owner OwnerRef, kind Kind, parentIDs []uint) error {
	if err := s.checkOwner(owner, kind); err != nil {
		return err
	}
	parentIDs = dedupe(parentIDs)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.requireParents(tx, kind, parentIDs); err != nil {
			return err
		}

		ownerWhere := fmt.Sprintf("%s = ? AND %s = ?", kind.OwnerIDColumn, kind.OwnerTypeColumn)

		if len(parentIDs) == 0 {
			del := fmt.Sprintf("DELETE FROM %s WHERE %s", kind.Table, ownerWhere)
			return tx.Exec(del, owner.ID, string(owner.Type)).Error
		}

		del := fmt.Sprintf("DELETE FROM %s WHERE %s AND %s NOT IN ?", kind.Table, ownerWhere, kind.ParentColumn)
		if err := tx.Exec(del, owner.ID, string(owner.Type), parentIDs).Error; err != nil {
			return fmt.Errorf("detaching unlisted %s: %w", kind.Name, err)
		}

		var existing []uint
		err := tx.Table(kind.Table).
			Where(ownerWhere, owner.ID, string(owner.Type)).
			Pluck(kind.ParentColumn, &existing).Error
		if err != nil {
			return fmt.Errorf("reading existing %s: %w", kind.Name, err)
		}
		present := make(map[uint]bool, len(existing))
		for _, id := range existing {
			present[id] = true
		}

		now := time.Now()
		for _, id := range parentIDs {
			if present[id] {
				continue
			}
			row := map[string]any{
				kind.ParentColumn:    id,
				kind.OwnerIDColumn:   owner.ID,
				kind.OwnerTypeColumn: string(owner.Type),
				"created_at":         now,
				"updated_at":         now,
			}
			if err := tx.Table(kind.Table).Create(row).Error; err != nil {
				return fmt.Errorf("attaching %s %d: %w", kind.Name, id, err)
			}
		}
		return nil
	})
}

// AttachOne creates a single association record carrying the given pivot
// extras. Unique kinds reject a second record for the same
// (owner, parent) pair with ErrDuplicateAssociation; multi-valued kinds
// (critic reviews, torrents) permit repeats.
func (s *Store) AttachOne(owner OwnerRef, kind Kind, parentID uint, extras map[string]any) (*Record, error) {
	if err := s.checkOwner(owner, kind); err != nil {
		return nil, err
	}
	for col := range extras {
		if !kind.allowsExtra(col) {
			return nil, fmt.Errorf("kind %q has no pivot column %q", kind.Name, col)
		}
	}

	var rec *Record
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.requireParents(tx, kind, []uint{parentID}); err != nil {
			return err
		}

		ownerWhere := fmt.Sprintf("%s = ? AND %s = ? AND %s = ?", kind.ParentColumn, kind.OwnerIDColumn, kind.OwnerTypeColumn)
		if kind.Unique {
			var n int64
			err := tx.Table(kind.Table).
				Where(ownerWhere, parentID, owner.ID, string(owner.Type)).
				Count(&n).Error
			if err != nil {
				return err
			}
			if n > 0 {
				return fmt.Errorf("%w: %s %d already attached to %s/%d",
					ErrDuplicateAssociation, kind.Name, parentID, owner.Type, owner.ID)
			}
		}

		now := time.Now()
		row := map[string]any{
			kind.ParentColumn:    parentID,
			kind.OwnerIDColumn:   owner.ID,
			kind.OwnerTypeColumn: string(owner.Type),
			"created_at":         now,
			"updated_at":         now,
		}
		for col, v := range extras {
			row[col] = v
		}
		if err := tx.Table(kind.Table).Create(row).Error; err != nil {
			return fmt.Errorf("attaching %s %d: %w", kind.Name, parentID, err)
		}

		var ids []uint
		err := tx.Table(kind.Table).
			Where(ownerWhere, parentID, owner.ID, string(owner.Type)).
			Order("id DESC").
			Limit(1).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		var id uint
		if len(ids) > 0 {
			id = ids[0]
		}
		rec = &Record{
			ID:        id,
			Kind:      kind.Name,
			ParentID:  parentID,
			Owner:     owner,
			Extras:    extras,
			CreatedAt: now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// DetachOne deletes the association between the owner and the given
// parent. Deleting an absent association is a no-op, not an error. For
// multi-valued kinds every record of the pair goes.
func (s *Store) DetachOne(owner OwnerRef, kind Kind, parentID uint) error {
	if err := s.checkOwner(owner, kind); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		del := fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND %s = ? AND %s = ?",
			kind.Table, kind.ParentColumn, kind.OwnerIDColumn, kind.OwnerTypeColumn)
		return tx.Exec(del, parentID, owner.ID, string(owner.Type)).Error
	})
}

// DetachAll deletes every association of the owner for the kind.
func (s *Store) DetachAll(owner OwnerRef, kind Kind) error {
	if err := s.checkOwner(owner, kind); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		del := fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND %s = ?",
			kind.Table, kind.OwnerIDColumn, kind.OwnerTypeColumn)
		return tx.Exec(del, owner.ID, string(owner.Type)).Error
	})
}

// checkOwner enforces the kind's allow-list. A violation means a routing
// or wiring bug, so it is logged with full context before returning.
func (s *Store) checkOwner(owner OwnerRef, kind Kind) error {
	if kind.Allows(owner.Type) {
		return nil
	}
	err := fmt.Errorf("%w: kind %q does not accept owner type %q",
		ErrUnsupportedOwnerType, kind.Name, owner.Type)
	s.log.Error().
		Str("title", "unsupported owner type").
		Str("code", "assoc.unsupported_owner_type").
		Str("message", err.Error()).
		Str("trace", string(debug.Stack())).
		Msg("association kind rejected owner")
	return err
}

// requireParents verifies every id references an existing, non-deleted
// parent row. Reported ids make the error actionable for admin clients.
func (s *Store) requireParents(tx *gorm.DB, kind Kind, parentIDs []uint) error {
	if len(parentIDs) == 0 {
		return nil
	}
	var found []uint
	err := tx.Table(kind.ParentTable).
		Where("id IN ? AND deleted_at IS NULL", parentIDs).
		Pluck("id", &found).Error
	if err != nil {
		return fmt.Errorf("checking %s parents: %w", kind.ParentTable, err)
	}
	if len(found) == len(parentIDs) {
		return nil
	}
	ok := make(map[uint]bool, len(found))
	for _, id := range found {
		ok[id] = true
	}
	var missing []uint
	for _, id := range parentIDs {
		if !ok[id] {
			missing = append(missing, id)
		}
	}
	return fmt.Errorf("%w: no %s with ids %v", ErrInvalidAssociationTarget, kind.ParentTable, missing)
}

func pivotOf(kind Kind, join map[string]any) map[string]any {
	if len(kind.Extras) == 0 {
		return nil
	}
	pivot := make(map[string]any, len(kind.Extras))
	for _, col := range kind.Extras {
		if v, ok := join[col]; ok {
			pivot[col] = v
		}
	}
	return pivot
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func toUint(v any) uint {
	switch n := v.(type) {
	case uint:
		return n
	case uint32:
		return uint(n)
	case uint64:
		return uint(n)
	case int:
		return uint(n)
	case int32:
		return uint(n)
	case int64:
		return uint(n)
	case float64:
		return uint(n)
	}
	return 0
}
