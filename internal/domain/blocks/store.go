package blocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"linkbio/internal/domain/errs"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the owner-scoped block collection. Every method takes the owner
// explicitly and never touches another owner's rows.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func ownedBlocks(db *gorm.DB, ownerID uint) *gorm.DB {
	return db.Model(&Block{}).Where("owner_id = ?", ownerID)
}

// ListBlocks returns the owner's visible blocks in display order.
func (s *Store) ListBlocks(ctx context.Context, ownerID uint) ([]Block, error) {
	out := make([]Block, 0)
	if err := ownedBlocks(s.db.WithContext(ctx), ownerID).
		Where("is_visible = ?", true).
		Order("order_index ASC, created_at ASC").
		Find(&out).Error; err != nil {
		return nil, errs.Store("list blocks", err)
	}
	return out, nil
}

// ListAllBlocks includes hidden blocks; used by the editor.
func (s *Store) ListAllBlocks(ctx context.Context, ownerID uint) ([]Block, int64, error) {
	out := make([]Block, 0)
	var version int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ownedBlocks(tx, ownerID).
			Order("order_index ASC, created_at ASC").
			Find(&out).Error; err != nil {
			return err
		}
		v, err := currentVersion(tx, ownerID)
		version = v
		return err
	})
	if err != nil {
		return nil, 0, errs.Store("list all blocks", err)
	}
	return out, version, nil
}

func (s *Store) GetBlock(ctx context.Context, ownerID uint, blockID string) (*Block, error) {
	if _, err := uuid.Parse(blockID); err != nil {
		return nil, errs.NotFound("block", blockID)
	}

	var b Block
	err := ownedBlocks(s.db.WithContext(ctx), ownerID).
		Where("id = ?", blockID).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("block", blockID)
	}
	if err != nil {
		return nil, errs.Store("get block", err)
	}
	return &b, nil
}

// CreateBlock validates content and appends the block after the owner's
// current maximum order index (0 for the first block).
func (s *Store) CreateBlock(ctx context.Context, ownerID uint, t Type, content []byte) (*Block, error) {
	c, err := DecodeContent(t, content)
	if err != nil {
		return nil, err
	}
	canonical, err := EncodeContent(c)
	if err != nil {
		return nil, err
	}

	b := Block{
		OwnerID:   ownerID,
		Type:      t,
		Content:   datatypes.JSON(canonical),
		IsVisible: true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := bumpVersion(tx, ownerID); err != nil {
			return err
		}

		var maxIndex sql.NullInt64
		if err := ownedBlocks(tx, ownerID).
			Select("MAX(order_index)").
			Row().
			Scan(&maxIndex); err != nil {
			return err
		}
		if maxIndex.Valid {
			b.OrderIndex = int(maxIndex.Int64) + 1
		}

		return tx.Create(&b).Error
	})
	if err != nil {
		return nil, errs.Store("create block", err)
	}
	return &b, nil
}

// UpdateBlockContent replaces the content after validating it against the
// block's stored type. The type itself never changes.
func (s *Store) UpdateBlockContent(ctx context.Context, ownerID uint, blockID string, content []byte) (*Block, error) {
	if _, err := uuid.Parse(blockID); err != nil {
		return nil, errs.NotFound("block", blockID)
	}

	var b Block
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ownedBlocks(tx, ownerID).Where("id = ?", blockID).First(&b).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("block", blockID)
			}
			return errs.Store("load block", err)
		}

		c, err := DecodeContent(b.Type, content)
		if err != nil {
			return err
		}
		canonical, err := EncodeContent(c)
		if err != nil {
			return err
		}

		if err := tx.Model(&Block{}).
			Where("id = ? AND owner_id = ?", b.ID, ownerID).
			Update("content", datatypes.JSON(canonical)).Error; err != nil {
			return errs.Store("update block", err)
		}
		b.Content = datatypes.JSON(canonical)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// SetVisibility hides or shows a block without touching its order.
func (s *Store) SetVisibility(ctx context.Context, ownerID uint, blockID string, visible bool) error {
	if _, err := uuid.Parse(blockID); err != nil {
		return errs.NotFound("block", blockID)
	}

	res := ownedBlocks(s.db.WithContext(ctx), ownerID).
		Where("id = ?", blockID).
		Update("is_visible", visible)
	if res.Error != nil {
		return errs.Store("set visibility", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("block", blockID)
	}
	return nil
}

// DeleteBlock removes the block permanently. Remaining indices keep their gaps.
func (s *Store) DeleteBlock(ctx context.Context, ownerID uint, blockID string) error {
	if _, err := uuid.Parse(blockID); err != nil {
		return errs.NotFound("block", blockID)
	}

	res := s.db.WithContext(ctx).Delete(&Block{}, "id = ? AND owner_id = ?", blockID, ownerID)
	if res.Error != nil {
		return errs.Store("delete block", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("block", blockID)
	}
	return nil
}

// ReorderBlocks assigns order_index = position for every id in ids, in one
// transaction. ids must be exactly the owner's block ids, hidden ones included.
// When expectedVersion is set and the collection changed since, nothing is written.
func (s *Store) ReorderBlocks(ctx context.Context, ownerID uint, ids []string, expectedVersion *int64) (int64, error) {
	var version int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := bumpVersion(tx, ownerID)
		if err != nil {
			return errs.Store("lock block collection", err)
		}
		if expectedVersion != nil && *expectedVersion != v-1 {
			return &errs.ConflictError{Expected: *expectedVersion, Actual: v - 1}
		}
		version = v

		var owned []string
		if err := ownedBlocks(tx, ownerID).Pluck("id", &owned).Error; err != nil {
			return errs.Store("load block ids", err)
		}
		if err := samePermutation(owned, ids); err != nil {
			return err
		}

		for i, id := range ids {
			if err := tx.Model(&Block{}).
				Where("id = ? AND owner_id = ?", id, ownerID).
				Update("order_index", i).Error; err != nil {
				return errs.Store("reorder blocks", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return version, nil
}

func samePermutation(owned, ids []string) error {
	if len(ids) != len(owned) {
		return errs.Validation("block_ids",
			fmt.Sprintf("expected %d block ids, got %d", len(owned), len(ids)))
	}

	ownedSet := make(map[string]struct{}, len(owned))
	for _, id := range owned {
		ownedSet[id] = struct{}{}
	}

	seen := make(map[string]struct{}, len(ids))
	for i, id := range ids {
		if _, ok := ownedSet[id]; !ok {
			return errs.Validation(fmt.Sprintf("block_ids[%d]", i), "unknown block id "+id)
		}
		if _, dup := seen[id]; dup {
			return errs.Validation(fmt.Sprintf("block_ids[%d]", i), "duplicate block id "+id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// bumpVersion increments the owner's collection version, creating the row on
// first use. In Postgres the upsert holds the row lock until commit.
func bumpVersion(tx *gorm.DB, ownerID uint) (int64, error) {
	row := BlockCollection{OwnerID: ownerID, Version: 1}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"version":    gorm.Expr("block_collections.version + 1"),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&row).Error; err != nil {
		return 0, err
	}
	return currentVersion(tx, ownerID)
}

func currentVersion(tx *gorm.DB, ownerID uint) (int64, error) {
	var bc BlockCollection
	err := tx.Where("owner_id = ?", ownerID).Limit(1).Find(&bc).Error
	if err != nil {
		return 0, err
	}
	return bc.Version, nil
}
