package blocks

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Block struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	OwnerID uint `gorm:"not null;index:idx_blocks_owner_order,priority:1" json:"owner_id"`
	Type    Type `gorm:"type:varchar(20);not null" json:"type"`

	Content    datatypes.JSON `gorm:"type:jsonb;not null" json:"content"`
	OrderIndex int            `gorm:"not null;default:0;index:idx_blocks_owner_order,priority:2" json:"order_index"`
	IsVisible  bool           `gorm:"not null;default:true" json:"is_visible"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Block) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Decoded returns the stored content as its typed payload.
func (b Block) Decoded() (Content, error) {
	return DecodeContent(b.Type, b.Content)
}

// BlockCollection holds one row per owner. Writers that change ordering bump
// Version inside their transaction, which also serializes them per owner.
type BlockCollection struct {
	OwnerID uint  `gorm:"primaryKey;autoIncrement:false"`
	Version int64 `gorm:"not null;default:0"`

	UpdatedAt time.Time
}
