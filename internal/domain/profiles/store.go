package profiles

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"linkbio/internal/domain/errs"
	"linkbio/internal/domain/validation"

	"gorm.io/gorm"
)

// Fields set on create or update; nil pointers are left unchanged.
type Input struct {
	Username    *string
	DisplayName *string
	Bio         *string
	AvatarURL   *string
	Theme       *Theme
}

// GetByUser returns the profile owned by userID.
// IMPORTANT: pass db in, do NOT import linkbio/database here (avoids import cycle).
func GetByUser(ctx context.Context, db *gorm.DB, userID uint) (*Profile, error) {
	var p Profile
	err := db.WithContext(ctx).First(&p, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("profile", strconv.FormatUint(uint64(userID), 10))
	}
	if err != nil {
		return nil, errs.Store("load profile", err)
	}
	return &p, nil
}

func GetByUsername(ctx context.Context, db *gorm.DB, username string) (*Profile, error) {
	name := strings.ToLower(strings.TrimSpace(username))

	var p Profile
	err := db.WithContext(ctx).First(&p, "username = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("profile", name)
	}
	if err != nil {
		return nil, errs.Store("load profile", err)
	}
	return &p, nil
}

// Create makes the user's profile. Without a username one is suggested from email.
func Create(ctx context.Context, db *gorm.DB, userID uint, email string, in Input) (*Profile, error) {
	p := Profile{UserID: userID}

	if in.Username != nil && strings.TrimSpace(*in.Username) != "" {
		name, err := NormalizeUsername(*in.Username)
		if err != nil {
			return nil, err
		}
		p.Username = name
	} else {
		p.Username = SuggestUsername(email, userID)
	}
	apply(&p, in)

	if err := validation.Struct(p); err != nil {
		return nil, err
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Profile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return errs.Store("check profile", err)
		}
		if count > 0 {
			return &errs.ConflictError{Message: "profile already exists"}
		}
		if err := ensureUsernameFree(tx, p.Username, userID); err != nil {
			return err
		}
		if err := tx.Create(&p).Error; err != nil {
			return translateWriteErr("create profile", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update applies a partial change to the user's profile.
func Update(ctx context.Context, db *gorm.DB, userID uint, in Input) (*Profile, error) {
	var p Profile
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("profile", strconv.FormatUint(uint64(userID), 10))
			}
			return errs.Store("load profile", err)
		}

		if in.Username != nil {
			name, err := NormalizeUsername(*in.Username)
			if err != nil {
				return err
			}
			if name != p.Username {
				if err := ensureUsernameFree(tx, name, userID); err != nil {
					return err
				}
				p.Username = name
			}
		}
		apply(&p, in)

		if err := validation.Struct(p); err != nil {
			return err
		}
		if err := tx.Save(&p).Error; err != nil {
			return translateWriteErr("update profile", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func apply(p *Profile, in Input) {
	if in.DisplayName != nil {
		p.DisplayName = strings.TrimSpace(*in.DisplayName)
	}
	if in.Bio != nil {
		p.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.AvatarURL != nil {
		p.AvatarURL = strings.TrimSpace(*in.AvatarURL)
	}
	if in.Theme != nil {
		p.Theme = *in.Theme
	}
}

func ensureUsernameFree(tx *gorm.DB, username string, userID uint) error {
	var count int64
	if err := tx.Model(&Profile{}).
		Where("username = ? AND user_id <> ?", username, userID).
		Count(&count).Error; err != nil {
		return errs.Store("check username", err)
	}
	if count > 0 {
		return &errs.ConflictError{Message: "username already taken"}
	}
	return nil
}

func translateWriteErr(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &errs.ConflictError{Message: "username already taken"}
	}
	return errs.Store(op, err)
}
