package analytics

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Kind string

const (
	KindView  Kind = "view"
	KindClick Kind = "click"
)

type Event struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	OwnerID uint    `gorm:"not null;index:idx_events_owner_created,priority:1" json:"owner_id"`
	BlockID *string `gorm:"type:uuid;index" json:"block_id,omitempty"`
	Kind    Kind    `gorm:"type:varchar(10);not null" json:"kind"`

	CreatedAt time.Time `gorm:"index:idx_events_owner_created,priority:2" json:"created_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
