package profiles

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Theme struct {
	Background  string `gorm:"type:varchar(9)" json:"background,omitempty" validate:"omitempty,hexcolor"`
	TextColor   string `gorm:"type:varchar(9)" json:"text_color,omitempty" validate:"omitempty,hexcolor"`
	ButtonStyle string `gorm:"type:varchar(10)" json:"button_style,omitempty" validate:"omitempty,oneof=fill outline soft"`
	Font        string `gorm:"type:varchar(40)" json:"font,omitempty" validate:"max=40"`
}

type Profile struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	UserID   uint   `gorm:"not null;uniqueIndex" json:"-"`
	Username string `gorm:"not null;uniqueIndex:idx_profiles_username" json:"username"`

	DisplayName string `gorm:"type:varchar(60)" json:"display_name" validate:"max=60"`
	Bio         string `gorm:"type:varchar(160)" json:"bio" validate:"max=160"`
	AvatarURL   string `json:"avatar_url,omitempty" validate:"omitempty,url"`

	Theme Theme `gorm:"embedded;embeddedPrefix:theme_" json:"theme"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
